package ingest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/secboard/secboard/app/database"
)

// MockIngestionLogRepository implements a simple mock for testing
type MockIngestionLogRepository struct {
	created   []database.IngestionLog
	finalized map[string]database.IngestionLog
	createErr error
}

func NewMockIngestionLogRepository() *MockIngestionLogRepository {
	return &MockIngestionLogRepository{finalized: make(map[string]database.IngestionLog)}
}

func (m *MockIngestionLogRepository) Create(log database.IngestionLog) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.created = append(m.created, log)
	return fmt.Sprintf("log-%d", len(m.created)), nil
}

func (m *MockIngestionLogRepository) Finalize(id string, rowsProcessed int, status string, errorLog string) error {
	m.finalized[id] = database.IngestionLog{
		RowsProcessed: rowsProcessed,
		Status:        status,
		ErrorLog:      errorLog,
	}
	return nil
}

func (m *MockIngestionLogRepository) Get(id string) (*database.IngestionLog, error) {
	return nil, nil
}

func (m *MockIngestionLogRepository) List(limit int) ([]database.IngestionLog, error) {
	return nil, nil
}

func TestImporterHappyPath(t *testing.T) {
	logs := NewMockIngestionLogRepository()
	var seen []Row

	importer := NewImporter(logs, ImporterOptions{Source: "test_source"}, func(row Row) error {
		seen = append(seen, row)
		return nil
	})

	content := "Hostname,Severity\nweb-01,High\nweb-02,Low\n"
	summary, err := importer.Run([]byte(content), "test_source_20240115.csv")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !summary.Success {
		t.Error("Expected success")
	}
	if summary.ProcessedCount != 2 {
		t.Errorf("Expected 2 processed rows, got: %d", summary.ProcessedCount)
	}
	if len(seen) != 2 {
		t.Fatalf("Expected handler called for 2 rows, got: %d", len(seen))
	}
	if seen[0].Ordinal != 1 || seen[1].Ordinal != 2 {
		t.Errorf("Expected 1-based ordinals, got: %d, %d", seen[0].Ordinal, seen[1].Ordinal)
	}
	if summary.ErrorCSV != "" {
		t.Error("Expected no error CSV for a clean import")
	}

	if len(logs.created) != 1 {
		t.Fatalf("Expected 1 ingestion log created, got: %d", len(logs.created))
	}
	if logs.created[0].Checksum == "" {
		t.Error("Expected a content checksum on the ingestion log")
	}
	if logs.created[0].ReportDate == nil {
		t.Error("Expected report date parsed from filename")
	}

	final := logs.finalized[summary.IngestionLogID]
	if final.Status != database.IngestionStatusSuccess {
		t.Errorf("Expected SUCCESS status, got: %s", final.Status)
	}
}

func TestImporterRowIsolation(t *testing.T) {
	logs := NewMockIngestionLogRepository()

	importer := NewImporter(logs, ImporterOptions{Source: "test_source"}, func(row Row) error {
		return nil
	})

	// Row 2 has too few columns and must be skipped without aborting.
	content := "Hostname,Severity\nweb-01,High\nweb-02\nweb-03,Low\n"
	summary, err := importer.Run([]byte(content), "upload.csv")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if summary.ProcessedCount != 2 {
		t.Errorf("Expected 2 processed rows, got: %d", summary.ProcessedCount)
	}
	if summary.TotalErrors != 1 {
		t.Fatalf("Expected 1 error, got: %d", summary.TotalErrors)
	}
	if !strings.HasPrefix(summary.Errors[0], "Row 2:") {
		t.Errorf("Expected error referencing row 2, got: %s", summary.Errors[0])
	}
	if !summary.Success {
		t.Error("Expected success despite one bad row")
	}
}

func TestImporterHandlerErrorContinues(t *testing.T) {
	logs := NewMockIngestionLogRepository()

	importer := NewImporter(logs, ImporterOptions{Source: "test_source"}, func(row Row) error {
		if row.Ordinal == 1 {
			return fmt.Errorf("storage rejected row")
		}
		return nil
	})

	content := "Hostname,Severity\nweb-01,High\nweb-02,Low\n"
	summary, err := importer.Run([]byte(content), "upload.csv")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if summary.ProcessedCount != 1 {
		t.Errorf("Expected 1 processed row, got: %d", summary.ProcessedCount)
	}
	if summary.TotalErrors != 1 {
		t.Errorf("Expected 1 error, got: %d", summary.TotalErrors)
	}
	if !strings.Contains(summary.Errors[0], "storage rejected row") {
		t.Errorf("Expected handler error surfaced, got: %s", summary.Errors[0])
	}
}

func TestImporterEmptyAfterHeader(t *testing.T) {
	logs := NewMockIngestionLogRepository()

	importer := NewImporter(logs, ImporterOptions{Source: "test_source"}, func(row Row) error {
		return nil
	})

	summary, err := importer.Run([]byte("Hostname,Severity\n"), "upload.csv")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// No error but no progress is still reported as failure.
	if summary.Success {
		t.Error("Expected failure for a header-only file")
	}
	if summary.ProcessedCount != 0 {
		t.Errorf("Expected 0 processed rows, got: %d", summary.ProcessedCount)
	}
	if summary.TotalErrors != 0 {
		t.Errorf("Expected 0 errors, got: %d", summary.TotalErrors)
	}

	final := logs.finalized[summary.IngestionLogID]
	if final.Status != database.IngestionStatusFailed {
		t.Errorf("Expected FAILED status, got: %s", final.Status)
	}
}

func TestImporterInputRejection(t *testing.T) {
	logs := NewMockIngestionLogRepository()
	importer := NewImporter(logs, ImporterOptions{Source: "test_source"}, func(row Row) error {
		return nil
	})

	if _, err := importer.Run(nil, "upload.csv"); err == nil {
		t.Error("Expected error for empty content")
	}
	if _, err := importer.Run([]byte("a,b\n1,2\n"), "upload.pdf"); err == nil {
		t.Error("Expected error for non-csv extension")
	}
	if len(logs.created) != 0 {
		t.Errorf("Expected no ingestion log for rejected input, got: %d", len(logs.created))
	}
}

func TestImporterErrorLimitAndCSV(t *testing.T) {
	logs := NewMockIngestionLogRepository()

	importer := NewImporter(logs, ImporterOptions{Source: "test_source", MaxErrors: 5}, func(row Row) error {
		return fmt.Errorf(`bad "value" here`)
	})

	var b strings.Builder
	b.WriteString("Hostname,Severity\n")
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, "host-%d,High\n", i)
	}

	summary, err := importer.Run([]byte(b.String()), "upload.csv")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(summary.Errors) != 5 {
		t.Errorf("Expected 5 inline errors, got: %d", len(summary.Errors))
	}
	if summary.TotalErrors != 8 {
		t.Errorf("Expected 8 total errors, got: %d", summary.TotalErrors)
	}

	lines := strings.Split(strings.TrimSpace(summary.ErrorCSV), "\n")
	if lines[0] != "Row,Error" {
		t.Errorf("Expected 'Row,Error' header, got: %s", lines[0])
	}
	if len(lines) != 9 {
		t.Errorf("Expected 9 CSV lines, got: %d", len(lines))
	}
	if !strings.Contains(lines[1], `""value""`) {
		t.Errorf("Expected embedded quotes doubled, got: %s", lines[1])
	}
}
