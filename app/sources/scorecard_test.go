package sources

import (
	"testing"

	"github.com/secboard/secboard/app/ingest"
	"github.com/secboard/secboard/app/rules"
)

func TestScorecardIssueImport(t *testing.T) {
	logs := NewMockIngestionLogRepository()
	scorecards := NewMockScorecardRepository()
	importer := NewScorecardIssueImporter(logs, scorecards, rules.Defaults())

	content := "Issue ID,Factor Name,Issue Type Title,Issue Severity,Issue Status,Issue Count\n" +
		"iss-1,Network Security,Open Port,HIGH,active,14\n" +
		"iss-2,DNS Health,SPF Missing,low,resolved,not-a-number\n"

	summary, err := importer.Import([]byte(content), "scorecard_issues_20240115.csv")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if summary.ProcessedCount != 2 {
		t.Fatalf("Expected 2 processed rows, got: %+v", summary)
	}

	i1 := scorecards.issues["iss-1"]
	if i1.Count != 14 {
		t.Errorf("Expected count 14, got: %d", i1.Count)
	}
	if i1.Severity != ingest.SeverityHigh {
		t.Errorf("Expected HIGH severity, got: %s", i1.Severity)
	}

	i2 := scorecards.issues["iss-2"]
	if i2.Count != 0 {
		t.Errorf("Expected malformed count to default to 0, got: %d", i2.Count)
	}
	if i2.Status != ingest.StatusResolved {
		t.Errorf("Expected RESOLVED status, got: %s", i2.Status)
	}
}

func TestScorecardRatingImport(t *testing.T) {
	logs := NewMockIngestionLogRepository()
	scorecards := NewMockScorecardRepository()
	importer := NewScorecardRatingImporter(logs, scorecards, rules.Defaults())

	content := "Factor Name,Grade,Score,Report Date\n" +
		"Network Security,B,82.5,2024-01-15\n"

	// Ratings key on factor plus report date, so a re-import of the same
	// report upserts instead of duplicating.
	for i := 0; i < 2; i++ {
		if _, err := importer.Import([]byte(content), "scorecard_ratings_20240115.csv"); err != nil {
			t.Fatalf("Import %d: expected no error, got: %v", i+1, err)
		}
	}

	if len(scorecards.ratings) != 1 {
		t.Fatalf("Expected 1 rating after re-import, got: %d", len(scorecards.ratings))
	}

	r := scorecards.ratings["network security|2024-01-15"]
	if r.Grade != "B" {
		t.Errorf("Expected grade 'B', got: %s", r.Grade)
	}
	if r.Score != 82.5 {
		t.Errorf("Expected score 82.5, got: %f", r.Score)
	}
}
