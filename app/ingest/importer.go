package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/secboard/secboard/app/database"
)

// ErrInvalidInput marks rejections of the upload itself, as opposed to
// failures while processing it. Callers map it to a 400-class response.
var ErrInvalidInput = errors.New("invalid input")

// RowHandler normalizes one tokenized row and persists the resulting record.
// A non-nil error is recorded against that row; processing continues.
type RowHandler func(row Row) error

// Importer drives one CSV import end to end: checksum, ingestion log
// lifecycle, tokenization, per-row dispatch, error accounting.
type Importer struct {
	logs      database.IngestionLogRepository
	source    string
	maxErrors int
	nested    bool
	handle    RowHandler
}

type ImporterOptions struct {
	Source    string
	MaxErrors int  // errors surfaced inline in the summary
	Nested    bool // tokenize with bracket/brace nesting awareness
}

func NewImporter(logs database.IngestionLogRepository, opts ImporterOptions, handle RowHandler) *Importer {
	maxErrors := opts.MaxErrors
	if maxErrors <= 0 {
		maxErrors = 5
	}

	return &Importer{
		logs:      logs,
		source:    opts.Source,
		maxErrors: maxErrors,
		nested:    opts.Nested,
		handle:    handle,
	}
}

var reportDateRe = regexp.MustCompile(`\d{8}`)

// Run imports one uploaded CSV. Input-rejection errors (missing content,
// wrong extension, no data rows) fail the whole import before any row work;
// row-level failures are collected and never abort the run.
func (im *Importer) Run(content []byte, filename string) (*Summary, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: uploaded file is empty", ErrInvalidInput)
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return nil, fmt.Errorf("%w: expected a .csv file", ErrInvalidInput)
	}

	checksum := sha256.Sum256(content)

	lines := SplitLines(string(content))
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: uploaded file has no header row", ErrInvalidInput)
	}

	logID, err := im.logs.Create(database.IngestionLog{
		Filename:   filename,
		Checksum:   hex.EncodeToString(checksum[:]),
		Source:     im.source,
		ReportDate: reportDateFromFilename(filename),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ingestion log: %w", err)
	}

	headers := im.tokenize(lines[0])

	processed := 0
	var rowErrors []string

	for i, line := range lines[1:] {
		ordinal := i + 1
		fields := im.tokenize(line)

		if len(fields) < len(headers) {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: insufficient columns (%d < %d)", ordinal, len(fields), len(headers)))
			continue
		}

		row := Row{Headers: headers, Fields: fields, Ordinal: ordinal}
		if err := im.handle(row); err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %v", ordinal, err))
			continue
		}

		processed++
	}

	status := database.IngestionStatusSuccess
	if processed == 0 {
		status = database.IngestionStatusFailed
	}

	if err := im.logs.Finalize(logID, processed, status, strings.Join(rowErrors, "; ")); err != nil {
		return nil, fmt.Errorf("failed to finalize ingestion log: %w", err)
	}

	slog.Info("Import completed",
		"source", im.source,
		"filename", filename,
		"status", status,
		"processed", processed,
		"errors", len(rowErrors))

	summary := &Summary{
		Success:        status == database.IngestionStatusSuccess,
		ProcessedCount: processed,
		IngestionLogID: logID,
		Errors:         firstN(rowErrors, im.maxErrors),
		TotalErrors:    len(rowErrors),
	}
	if len(rowErrors) > 0 {
		summary.ErrorCSV = BuildErrorCSV(rowErrors)
	}

	return summary, nil
}

func (im *Importer) tokenize(line string) []string {
	if im.nested {
		return SplitFieldsNested(line)
	}
	return SplitFields(line)
}

// reportDateFromFilename extracts an 8-digit YYYYMMDD date embedded in the
// filename by naming convention. Absence is not an error.
func reportDateFromFilename(filename string) *time.Time {
	match := reportDateRe.FindString(filename)
	if match == "" {
		return nil
	}

	date, err := time.Parse("20060102", match)
	if err != nil {
		return nil
	}

	return &date
}

func firstN(errors []string, n int) []string {
	if len(errors) <= n {
		return errors
	}
	return errors[:n]
}

// BuildErrorCSV renders the full error list as a downloadable two-column
// CSV. Each error string carries its "Row N: " prefix; the prefix is split
// back out into the Row column.
func BuildErrorCSV(rowErrors []string) string {
	var b strings.Builder
	b.WriteString("Row,Error\n")

	for _, entry := range rowErrors {
		row, message := splitRowError(entry)
		escaped := strings.ReplaceAll(message, `"`, `""`)
		b.WriteString(fmt.Sprintf(`%s,"%s"`+"\n", row, escaped))
	}

	return b.String()
}

func splitRowError(entry string) (string, string) {
	rest, ok := strings.CutPrefix(entry, "Row ")
	if !ok {
		return "", entry
	}

	row, message, ok := strings.Cut(rest, ": ")
	if !ok {
		return "", entry
	}

	return row, message
}
