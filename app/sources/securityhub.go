package sources

import (
	"github.com/secboard/secboard/app/database"
	"github.com/secboard/secboard/app/ingest"
	"github.com/secboard/secboard/app/rules"
)

// SecurityHubImporter ingests AWS Security Hub finding exports. Hub exports
// embed JSON blobs (resource details) in some columns, so tokenization is
// nesting-aware.
type SecurityHubImporter struct {
	findings database.FindingRepository
	aliases  rules.AliasTable
	importer *ingest.Importer
}

func NewSecurityHubImporter(logs database.IngestionLogRepository, findings database.FindingRepository, rs *rules.Set) *SecurityHubImporter {
	s := &SecurityHubImporter{
		findings: findings,
		aliases:  rs.SecurityHub,
	}
	s.importer = ingest.NewImporter(logs, ingest.ImporterOptions{
		Source:    "securityhub_findings",
		MaxErrors: 10,
		Nested:    true,
	}, s.handleRow)

	return s
}

func (s *SecurityHubImporter) Import(content []byte, filename string) (*ingest.Summary, error) {
	return s.importer.Run(content, filename)
}

func (s *SecurityHubImporter) handleRow(row ingest.Row) error {
	return s.findings.Upsert(s.Normalize(row))
}

// Normalize maps one raw row onto a Finding. Unrecognized severities default
// to MEDIUM for this source.
func (s *SecurityHubImporter) Normalize(row ingest.Row) database.Finding {
	get := func(field string) string { return row.Lookup(s.aliases[field]) }

	title := get("title")
	resourceID := get("resource_id")
	region := get("region")

	externalID := get("id")
	if externalID == "" {
		externalID = "fnd-" + ingest.SynthesizeID([]string{title, resourceID, region}, row.Ordinal)
	}

	return database.Finding{
		ExternalID:       externalID,
		Title:            title,
		Severity:         ingest.NormalizeSeverity(get("severity"), ingest.SeverityMedium),
		Status:           ingest.NormalizeStatus(get("status")),
		ResourceType:     get("resource_type"),
		ResourceID:       resourceID,
		Region:           region,
		AccountID:        get("account_id"),
		ComplianceStatus: get("compliance_status"),
		Description:      get("description"),
	}
}
