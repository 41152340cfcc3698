package sources

import (
	"testing"

	"github.com/secboard/secboard/app/ingest"
	"github.com/secboard/secboard/app/rules"
)

func TestSecurityHubImport(t *testing.T) {
	logs := NewMockIngestionLogRepository()
	findings := NewMockFindingRepository()
	importer := NewSecurityHubImporter(logs, findings, rules.Defaults())

	// The resource details column embeds JSON with commas; nesting-aware
	// tokenization must keep it as one field.
	content := "Finding Id,Title,Severity Label,Workflow Status,Resource Type,Resource Id,Region,Description\n" +
		`arn:f1,S3 bucket public,HIGH,NOTIFIED,AwsS3Bucket,{"name": "b1", "tags": ["a", "b"]},us-east-1,Bucket allows public read` + "\n"

	summary, err := importer.Import([]byte(content), "securityhub_findings_20240115.csv")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if summary.ProcessedCount != 1 {
		t.Fatalf("Expected 1 processed row, got: %+v", summary)
	}

	f, ok := findings.store["arn:f1"]
	if !ok {
		t.Fatal("Expected finding keyed on its finding ID")
	}
	if f.Severity != ingest.SeverityHigh {
		t.Errorf("Expected HIGH severity, got: %s", f.Severity)
	}
	if f.ResourceID != `{"name": "b1", "tags": ["a", "b"]}` {
		t.Errorf("Expected embedded JSON preserved, got: %s", f.ResourceID)
	}
}

func TestSecurityHubSeverityDefault(t *testing.T) {
	importer := NewSecurityHubImporter(NewMockIngestionLogRepository(), NewMockFindingRepository(), rules.Defaults())

	row := ingest.Row{
		Headers: []string{"Title", "Severity Label"},
		Fields:  []string{"Some finding", "WEIRD"},
		Ordinal: 1,
	}

	f := importer.Normalize(row)
	if f.Severity != ingest.SeverityMedium {
		t.Errorf("Expected MEDIUM default for Security Hub, got: %s", f.Severity)
	}
}
