package sources

import (
	"testing"

	"github.com/secboard/secboard/app/rules"
)

func TestDetectSource(t *testing.T) {
	cases := []struct {
		headers  []string
		expected string
	}{
		{[]string{"Detect ID", "Hostname", "Tactic"}, SourceFalcon},
		{[]string{"Finding Id", "Compliance Status", "Region"}, SourceSecurityHub},
		{[]string{"Factor Name", "Grade", "Score"}, SourceScorecardRating},
		{[]string{"Factor Name", "Issue Type", "Issue Severity"}, SourceScorecardIssue},
		{[]string{"Advisory ID", "CVE IDs", "Title"}, SourceAdvisory},
		{[]string{"ColA", "ColB"}, SourceUnknown},
	}

	for _, c := range cases {
		if got := DetectSource(c.headers); got != c.expected {
			t.Errorf("DetectSource(%v) = %s, expected %s", c.headers, got, c.expected)
		}
	}
}

func TestGenericImportRoutesBySignature(t *testing.T) {
	logs := NewMockIngestionLogRepository()
	detections := NewMockDetectionRepository()
	findings := NewMockFindingRepository()
	advisories := NewMockAdvisoryRepository()
	scorecards := NewMockScorecardRepository()

	importer := NewGenericImporter(logs, detections, findings, advisories, scorecards, rules.Defaults())

	content := "Finding Id,Title,Severity Label,Compliance Status\n" +
		"arn:f9,Root account used,CRITICAL,FAILED\n"

	summary, err := importer.Import([]byte(content), "export_20240115.csv")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if summary.ProcessedCount != 1 {
		t.Fatalf("Expected 1 processed row, got: %+v", summary)
	}

	if _, ok := findings.store["arn:f9"]; !ok {
		t.Error("Expected row routed to the findings store")
	}
	if len(detections.store) != 0 {
		t.Error("Expected no detections for a Security Hub shaped file")
	}
}
