package sources

import (
	"strings"

	"github.com/secboard/secboard/app/database"
	"github.com/secboard/secboard/app/ingest"
	"github.com/secboard/secboard/app/rules"
)

// ScorecardIssueImporter ingests SecurityScorecard issue exports.
type ScorecardIssueImporter struct {
	scorecards database.ScorecardRepository
	aliases    rules.AliasTable
	importer   *ingest.Importer
}

func NewScorecardIssueImporter(logs database.IngestionLogRepository, scorecards database.ScorecardRepository, rs *rules.Set) *ScorecardIssueImporter {
	s := &ScorecardIssueImporter{
		scorecards: scorecards,
		aliases:    rs.ScorecardIssue,
	}
	s.importer = ingest.NewImporter(logs, ingest.ImporterOptions{
		Source:    "scorecard_issues",
		MaxErrors: 5,
	}, s.handleRow)

	return s
}

func (s *ScorecardIssueImporter) Import(content []byte, filename string) (*ingest.Summary, error) {
	return s.importer.Run(content, filename)
}

func (s *ScorecardIssueImporter) handleRow(row ingest.Row) error {
	return s.scorecards.UpsertIssue(s.Normalize(row))
}

func (s *ScorecardIssueImporter) Normalize(row ingest.Row) database.ScorecardIssue {
	get := func(field string) string { return row.Lookup(s.aliases[field]) }

	factor := get("factor")
	issueType := get("issue_type")
	severity := ingest.NormalizeSeverity(get("severity"), ingest.SeverityLow)

	externalID := get("id")
	if externalID == "" {
		externalID = "sci-" + ingest.SynthesizeID([]string{factor, issueType, severity}, row.Ordinal)
	}

	return database.ScorecardIssue{
		ExternalID: externalID,
		Factor:     factor,
		IssueType:  issueType,
		Severity:   severity,
		Status:     ingest.NormalizeStatus(get("status")),
		Count:      ingest.ParseInt(get("count"), 0),
	}
}

// ScorecardRatingImporter ingests SecurityScorecard factor rating exports.
type ScorecardRatingImporter struct {
	scorecards database.ScorecardRepository
	aliases    rules.AliasTable
	importer   *ingest.Importer
}

func NewScorecardRatingImporter(logs database.IngestionLogRepository, scorecards database.ScorecardRepository, rs *rules.Set) *ScorecardRatingImporter {
	s := &ScorecardRatingImporter{
		scorecards: scorecards,
		aliases:    rs.ScorecardRating,
	}
	s.importer = ingest.NewImporter(logs, ingest.ImporterOptions{
		Source:    "scorecard_ratings",
		MaxErrors: 5,
	}, s.handleRow)

	return s
}

func (s *ScorecardRatingImporter) Import(content []byte, filename string) (*ingest.Summary, error) {
	return s.importer.Run(content, filename)
}

func (s *ScorecardRatingImporter) handleRow(row ingest.Row) error {
	return s.scorecards.UpsertRating(s.Normalize(row))
}

// Normalize maps one raw row onto a ScorecardRating. Ratings have a natural
// identity of factor plus report date, so re-importing the same report
// upserts instead of duplicating.
func (s *ScorecardRatingImporter) Normalize(row ingest.Row) database.ScorecardRating {
	get := func(field string) string { return row.Lookup(s.aliases[field]) }

	factor := get("factor")
	reportedOn := get("reported_on")

	return database.ScorecardRating{
		ExternalID: strings.ToLower(strings.TrimSpace(factor)) + "|" + strings.TrimSpace(reportedOn),
		Factor:     factor,
		Grade:      get("grade"),
		Score:      ingest.ParseFloat(get("score"), 0),
		ReportedOn: reportedOn,
	}
}
