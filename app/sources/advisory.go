package sources

import (
	"regexp"
	"strings"

	"github.com/secboard/secboard/app/database"
	"github.com/secboard/secboard/app/ingest"
	"github.com/secboard/secboard/app/rules"
)

var advisoryCVERe = regexp.MustCompile(`(?i)CVE-\d{4}-\d{4,}`)

// AdvisoryImporter ingests threat advisory exports.
type AdvisoryImporter struct {
	advisories database.AdvisoryRepository
	aliases    rules.AliasTable
	importer   *ingest.Importer
}

func NewAdvisoryImporter(logs database.IngestionLogRepository, advisories database.AdvisoryRepository, rs *rules.Set) *AdvisoryImporter {
	a := &AdvisoryImporter{
		advisories: advisories,
		aliases:    rs.Advisory,
	}
	a.importer = ingest.NewImporter(logs, ingest.ImporterOptions{
		Source:    "threat_advisories",
		MaxErrors: 10,
	}, a.handleRow)

	return a
}

func (a *AdvisoryImporter) Import(content []byte, filename string) (*ingest.Summary, error) {
	return a.importer.Run(content, filename)
}

func (a *AdvisoryImporter) handleRow(row ingest.Row) error {
	return a.advisories.Upsert(a.Normalize(row))
}

func (a *AdvisoryImporter) Normalize(row ingest.Row) database.Advisory {
	get := func(field string) string { return row.Lookup(a.aliases[field]) }

	title := get("title")
	source := get("source")
	publishedOn := get("published_on")

	externalID := get("id")
	if externalID == "" {
		externalID = "adv-" + ingest.SynthesizeID([]string{title, source, publishedOn}, row.Ordinal)
	}

	return database.Advisory{
		ExternalID:  externalID,
		Title:       title,
		Source:      source,
		Severity:    ingest.NormalizeSeverity(get("severity"), ingest.SeverityLow),
		Status:      ingest.NormalizeStatus(get("status")),
		URL:         get("url"),
		Description: get("description"),
		CVEs:        extractCVEList(get("cves")),
		PublishedOn: publishedOn,
	}
}

// extractCVEList pulls CVE identifiers out of a free-form column value,
// uppercased and de-duplicated in first-seen order.
func extractCVEList(value string) []string {
	matches := advisoryCVERe.FindAllString(value, -1)

	seen := make(map[string]bool)
	cves := make([]string, 0, len(matches))
	for _, match := range matches {
		cve := strings.ToUpper(match)
		if !seen[cve] {
			seen[cve] = true
			cves = append(cves, cve)
		}
	}

	return cves
}
