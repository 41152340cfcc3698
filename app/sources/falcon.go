package sources

import (
	"github.com/secboard/secboard/app/database"
	"github.com/secboard/secboard/app/ingest"
	"github.com/secboard/secboard/app/rules"
)

// FalconImporter ingests CrowdStrike Falcon detection exports.
type FalconImporter struct {
	detections database.DetectionRepository
	aliases    rules.AliasTable
	importer   *ingest.Importer
}

func NewFalconImporter(logs database.IngestionLogRepository, detections database.DetectionRepository, rs *rules.Set) *FalconImporter {
	f := &FalconImporter{
		detections: detections,
		aliases:    rs.Falcon,
	}
	f.importer = ingest.NewImporter(logs, ingest.ImporterOptions{
		Source:    "falcon_detections",
		MaxErrors: 5,
	}, f.handleRow)

	return f
}

func (f *FalconImporter) Import(content []byte, filename string) (*ingest.Summary, error) {
	return f.importer.Run(content, filename)
}

func (f *FalconImporter) handleRow(row ingest.Row) error {
	return f.detections.Upsert(f.Normalize(row))
}

// Normalize maps one raw row onto a Detection. Absent fields fall back to
// documented defaults; a missing detect ID gets a synthesized one from the
// identity fields plus the row ordinal.
func (f *FalconImporter) Normalize(row ingest.Row) database.Detection {
	get := func(field string) string { return row.Lookup(f.aliases[field]) }

	hostname := get("hostname")
	tactic := get("tactic")
	severity := ingest.NormalizeSeverity(get("severity"), ingest.SeverityLow)
	detectedAt := get("detected_at")

	externalID := get("id")
	if externalID == "" {
		externalID = "det-" + ingest.SynthesizeID([]string{hostname, detectedAt, severity, tactic}, row.Ordinal)
	}

	return database.Detection{
		ExternalID:  externalID,
		Hostname:    hostname,
		Username:    get("username"),
		Tactic:      tactic,
		Technique:   get("technique"),
		Severity:    severity,
		Status:      ingest.NormalizeStatus(get("status")),
		Description: get("description"),
		DetectedAt:  detectedAt,
	}
}
