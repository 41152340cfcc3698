package ingest

// Canonical severity values shared by all importers and the feed classifier.
const (
	SeverityCritical = "CRITICAL"
	SeverityHigh     = "HIGH"
	SeverityMedium   = "MEDIUM"
	SeverityLow      = "LOW"
	SeverityInfo     = "INFORMATIONAL"
)

// Canonical record statuses.
const (
	StatusOpen          = "OPEN"
	StatusInProgress    = "IN_PROGRESS"
	StatusResolved      = "RESOLVED"
	StatusClosed        = "CLOSED"
	StatusFalsePositive = "FALSE_POSITIVE"
)

// Row is one tokenized CSV data row handed to a source normalizer.
// Ordinal is the 1-based data row number (the header line is not counted).
type Row struct {
	Headers []string
	Fields  []string
	Ordinal int
}

// Lookup resolves the first matching alias against the row's headers and
// returns the corresponding field value, or the empty string when no alias
// matches.
func (r Row) Lookup(aliases []string) string {
	idx, ok := ResolveIndex(r.Headers, aliases)
	if !ok || idx >= len(r.Fields) {
		return ""
	}
	return r.Fields[idx]
}

// Summary is the result of one import run, returned to the HTTP caller.
type Summary struct {
	Success        bool     `json:"success"`
	ProcessedCount int      `json:"processed_count"`
	IngestionLogID string   `json:"ingestion_log_id"`
	Errors         []string `json:"errors"`
	TotalErrors    int      `json:"total_errors"`
	ErrorCSV       string   `json:"error_csv,omitempty"`
}
