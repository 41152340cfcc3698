package database

import (
	"time"
)

// Ingestion log statuses
const (
	IngestionStatusPending = "PENDING"
	IngestionStatusSuccess = "SUCCESS"
	IngestionStatusFailed  = "FAILED"
)

// IngestionLog is the audit record of one file-upload attempt.
type IngestionLog struct {
	ID            string
	Filename      string
	Checksum      string
	Source        string
	RowsProcessed int
	ReportDate    *time.Time
	Status        string
	ErrorLog      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Detection is a normalized endpoint detection (CrowdStrike Falcon export).
type Detection struct {
	ID          string
	ExternalID  string
	Hostname    string
	Username    string
	Tactic      string
	Technique   string
	Severity    string
	Status      string
	Description string
	DetectedAt  string // vendor-formatted date string, kept verbatim
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Finding is a normalized cloud posture finding (AWS Security Hub export).
type Finding struct {
	ID               string
	ExternalID       string
	Title            string
	Severity         string
	Status           string
	ResourceType     string
	ResourceID       string
	Region           string
	AccountID        string
	ComplianceStatus string
	Description      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Advisory is a normalized threat advisory row.
type Advisory struct {
	ID          string
	ExternalID  string
	Title       string
	Source      string
	Severity    string
	Status      string
	URL         string
	Description string
	CVEs        []string
	PublishedOn string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ScorecardIssue is a normalized SecurityScorecard issue row.
type ScorecardIssue struct {
	ID         string
	ExternalID string
	Factor     string
	IssueType  string
	Severity   string
	Status     string
	Count      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ScorecardRating is a normalized SecurityScorecard factor rating.
type ScorecardRating struct {
	ID         string
	ExternalID string
	Factor     string
	Grade      string
	Score      float64
	ReportedOn string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Content extraction statuses
const (
	ExtractionStatusPending = "pending"
	ExtractionStatusSuccess = "success"
	ExtractionStatusFailed  = "failed"
)

// Feed represents an RSS/Atom threat feed registration.
type Feed struct {
	ID            string
	Name          string
	URL           string
	Category      string
	Enabled       bool
	LastFetchedAt *time.Time
	NextFetchAt   *time.Time
	FetchError    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FeedItem is a classified threat-feed item. Unique by link.
type FeedItem struct {
	ID                      string
	FeedID                  string
	GUID                    string
	Link                    string
	Title                   string
	Description             string
	Content                 string
	PublishedAt             time.Time
	Severity                string
	Tags                    []string
	CVEs                    []string
	Products                []string
	CVSSScore               *float64
	IsRead                  bool
	IsBookmarked            bool
	ContentExtractedAt      *time.Time
	ContentExtractionStatus string
	ContentExtractionError  string
	CreatedAt               time.Time
}
