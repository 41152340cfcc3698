package database

import (
	"time"
)

type IngestionLogRepository interface {
	Create(log IngestionLog) (string, error)
	Finalize(id string, rowsProcessed int, status string, errorLog string) error
	Get(id string) (*IngestionLog, error)
	List(limit int) ([]IngestionLog, error)
}

type DetectionRepository interface {
	Upsert(d Detection) error
	UpdateStatus(externalID, status string) error
	CountBySeverity() (map[string]int, error)
	DeleteAll() error
}

type FindingRepository interface {
	Upsert(f Finding) error
	UpdateStatus(externalID, status string) error
	CountBySeverity() (map[string]int, error)
	DeleteAll() error
}

type AdvisoryRepository interface {
	Upsert(a Advisory) error
	UpdateStatus(externalID, status string) error
	CountBySeverity() (map[string]int, error)
	DeleteAll() error
}

type ScorecardRepository interface {
	UpsertIssue(i ScorecardIssue) error
	UpsertRating(r ScorecardRating) error
	CountIssuesBySeverity() (map[string]int, error)
	DeleteAllIssues() error
	DeleteAllRatings() error
}

type FeedRepository interface {
	Create(name, url, category string) (string, error)
	Get(id string) (*Feed, error)
	GetByURL(url string) (*Feed, error)
	GetAll() ([]Feed, error)
	GetDueForRefresh(limit int) ([]Feed, error)
	SetEnabled(id string, enabled bool) error
	MarkFetched(id string, fetchError string, nextFetch time.Time) error
	GetFeedCount() (int, error)
}

type ItemForExtraction struct {
	ID   string
	Link string
}

type ItemRepository interface {
	Exists(link string) (bool, error)
	Insert(item FeedItem) error
	GetRecent(limit int, severity string) ([]FeedItem, error)
	SetRead(id string, read bool) error
	SetBookmarked(id string, bookmarked bool) error
	GetItemCount() (int, error)
	CountBySeverity() (map[string]int, error)
	GetItemsForExtraction(limit int) ([]ItemForExtraction, error)
	UpdateExtractionStatus(itemID string, status string, extractedAt *time.Time, errorMsg string) error
	UpdateExtractedContentAndStatus(itemID string, content string, status string, extractedAt *time.Time, errorMsg string) error
	DeleteAll() error
}
