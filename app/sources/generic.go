package sources

import (
	"strings"

	"github.com/secboard/secboard/app/database"
	"github.com/secboard/secboard/app/ingest"
	"github.com/secboard/secboard/app/rules"
)

// Source tags reported by DetectSource.
const (
	SourceFalcon          = "falcon_detections"
	SourceSecurityHub     = "securityhub_findings"
	SourceAdvisory        = "threat_advisories"
	SourceScorecardIssue  = "scorecard_issues"
	SourceScorecardRating = "scorecard_ratings"
	SourceUnknown         = "unknown"
)

// DetectSource guesses the record type of a CSV from its header set.
// Checks run from the most distinctive header signature to the least.
func DetectSource(headers []string) string {
	joined := strings.ToLower(strings.Join(headers, "|"))
	has := func(s string) bool { return strings.Contains(joined, s) }

	switch {
	case has("tactic") || has("detect id") || has("detect date"):
		return SourceFalcon
	case has("compliance") || has("workflow status") || has("finding"):
		return SourceSecurityHub
	case has("grade") && has("factor"):
		return SourceScorecardRating
	case has("factor") || has("issue type"):
		return SourceScorecardIssue
	case has("cve") || has("advisory") || has("bulletin"):
		return SourceAdvisory
	default:
		return SourceUnknown
	}
}

// GenericImporter accepts an export of unknown origin, sniffs the source
// from the header row, and routes every row through the matching
// normalizer. Rows of a file that matches no known signature are stored as
// detections with the generic LOW-severity default.
type GenericImporter struct {
	falcon   *FalconImporter
	hub      *SecurityHubImporter
	advisory *AdvisoryImporter
	issues   *ScorecardIssueImporter
	ratings  *ScorecardRatingImporter
	importer *ingest.Importer
}

func NewGenericImporter(logs database.IngestionLogRepository,
	detections database.DetectionRepository, findings database.FindingRepository,
	advisories database.AdvisoryRepository, scorecards database.ScorecardRepository,
	rs *rules.Set) *GenericImporter {

	g := &GenericImporter{
		falcon:   NewFalconImporter(logs, detections, rs),
		hub:      NewSecurityHubImporter(logs, findings, rs),
		advisory: NewAdvisoryImporter(logs, advisories, rs),
		issues:   NewScorecardIssueImporter(logs, scorecards, rs),
		ratings:  NewScorecardRatingImporter(logs, scorecards, rs),
	}
	g.importer = ingest.NewImporter(logs, ingest.ImporterOptions{
		Source:    "generic",
		MaxErrors: 5,
		Nested:    true,
	}, g.handleRow)

	return g
}

func (g *GenericImporter) Import(content []byte, filename string) (*ingest.Summary, error) {
	return g.importer.Run(content, filename)
}

func (g *GenericImporter) handleRow(row ingest.Row) error {
	switch DetectSource(row.Headers) {
	case SourceFalcon:
		return g.falcon.handleRow(row)
	case SourceSecurityHub:
		return g.hub.handleRow(row)
	case SourceAdvisory:
		return g.advisory.handleRow(row)
	case SourceScorecardIssue:
		return g.issues.handleRow(row)
	case SourceScorecardRating:
		return g.ratings.handleRow(row)
	default:
		return g.falcon.handleRow(row)
	}
}
