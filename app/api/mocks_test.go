package api

import (
	"fmt"
	"time"

	"github.com/secboard/secboard/app/database"
	"github.com/secboard/secboard/app/tasks"
)

// Hand-rolled mocks backing the handler tests.

type mockLogRepo struct {
	logs map[string]database.IngestionLog
}

func newMockLogRepo() *mockLogRepo {
	return &mockLogRepo{logs: make(map[string]database.IngestionLog)}
}

func (m *mockLogRepo) Create(log database.IngestionLog) (string, error) {
	id := fmt.Sprintf("log-%d", len(m.logs)+1)
	log.ID = id
	log.Status = database.IngestionStatusPending
	m.logs[id] = log
	return id, nil
}

func (m *mockLogRepo) Finalize(id string, rowsProcessed int, status string, errorLog string) error {
	log := m.logs[id]
	log.RowsProcessed = rowsProcessed
	log.Status = status
	log.ErrorLog = errorLog
	m.logs[id] = log
	return nil
}

func (m *mockLogRepo) Get(id string) (*database.IngestionLog, error) {
	if log, ok := m.logs[id]; ok {
		return &log, nil
	}
	return nil, nil
}

func (m *mockLogRepo) List(limit int) ([]database.IngestionLog, error) {
	logs := make([]database.IngestionLog, 0, len(m.logs))
	for _, log := range m.logs {
		logs = append(logs, log)
	}
	if limit < len(logs) {
		logs = logs[:limit]
	}
	return logs, nil
}

type mockDetectionRepo struct {
	store   map[string]database.Detection
	deleted bool
}

func newMockDetectionRepo() *mockDetectionRepo {
	return &mockDetectionRepo{store: make(map[string]database.Detection)}
}

func (m *mockDetectionRepo) Upsert(d database.Detection) error {
	m.store[d.ExternalID] = d
	return nil
}

func (m *mockDetectionRepo) UpdateStatus(externalID, status string) error { return nil }

func (m *mockDetectionRepo) CountBySeverity() (map[string]int, error) {
	counts := make(map[string]int)
	for _, d := range m.store {
		counts[d.Severity]++
	}
	return counts, nil
}

func (m *mockDetectionRepo) DeleteAll() error {
	m.store = make(map[string]database.Detection)
	m.deleted = true
	return nil
}

type mockFindingRepo struct {
	store   map[string]database.Finding
	deleted bool
}

func newMockFindingRepo() *mockFindingRepo {
	return &mockFindingRepo{store: make(map[string]database.Finding)}
}

func (m *mockFindingRepo) Upsert(f database.Finding) error {
	m.store[f.ExternalID] = f
	return nil
}

func (m *mockFindingRepo) UpdateStatus(externalID, status string) error { return nil }

func (m *mockFindingRepo) CountBySeverity() (map[string]int, error) {
	return map[string]int{}, nil
}

func (m *mockFindingRepo) DeleteAll() error {
	m.deleted = true
	return nil
}

type mockAdvisoryRepo struct {
	deleted bool
}

func (m *mockAdvisoryRepo) Upsert(a database.Advisory) error { return nil }

func (m *mockAdvisoryRepo) UpdateStatus(externalID, status string) error { return nil }

func (m *mockAdvisoryRepo) CountBySeverity() (map[string]int, error) {
	return map[string]int{}, nil
}

func (m *mockAdvisoryRepo) DeleteAll() error {
	m.deleted = true
	return nil
}

type mockScorecardRepo struct {
	deletedIssues  bool
	deletedRatings bool
}

func (m *mockScorecardRepo) UpsertIssue(i database.ScorecardIssue) error { return nil }

func (m *mockScorecardRepo) UpsertRating(r database.ScorecardRating) error { return nil }

func (m *mockScorecardRepo) CountIssuesBySeverity() (map[string]int, error) {
	return map[string]int{}, nil
}

func (m *mockScorecardRepo) DeleteAllIssues() error {
	m.deletedIssues = true
	return nil
}

func (m *mockScorecardRepo) DeleteAllRatings() error {
	m.deletedRatings = true
	return nil
}

type mockFeedRepo struct {
	feeds map[string]database.Feed
}

func newMockFeedRepo() *mockFeedRepo {
	return &mockFeedRepo{feeds: make(map[string]database.Feed)}
}

func (m *mockFeedRepo) Create(name, url, category string) (string, error) {
	id := fmt.Sprintf("feed-%d", len(m.feeds)+1)
	m.feeds[id] = database.Feed{ID: id, Name: name, URL: url, Category: category, Enabled: true}
	return id, nil
}

func (m *mockFeedRepo) Get(id string) (*database.Feed, error) {
	if feed, ok := m.feeds[id]; ok {
		return &feed, nil
	}
	return nil, nil
}

func (m *mockFeedRepo) GetByURL(url string) (*database.Feed, error) {
	for _, feed := range m.feeds {
		if feed.URL == url {
			return &feed, nil
		}
	}
	return nil, nil
}

func (m *mockFeedRepo) GetAll() ([]database.Feed, error) {
	feeds := make([]database.Feed, 0, len(m.feeds))
	for _, feed := range m.feeds {
		feeds = append(feeds, feed)
	}
	return feeds, nil
}

func (m *mockFeedRepo) GetDueForRefresh(limit int) ([]database.Feed, error) { return nil, nil }

func (m *mockFeedRepo) SetEnabled(id string, enabled bool) error {
	feed := m.feeds[id]
	feed.Enabled = enabled
	m.feeds[id] = feed
	return nil
}

func (m *mockFeedRepo) MarkFetched(id string, fetchError string, nextFetch time.Time) error {
	return nil
}

func (m *mockFeedRepo) GetFeedCount() (int, error) {
	return len(m.feeds), nil
}

type mockItemRepo struct {
	items   map[string]database.FeedItem
	deleted bool
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[string]database.FeedItem)}
}

func (m *mockItemRepo) Exists(link string) (bool, error) {
	_, ok := m.items[link]
	return ok, nil
}

func (m *mockItemRepo) Insert(item database.FeedItem) error {
	m.items[item.Link] = item
	return nil
}

func (m *mockItemRepo) GetRecent(limit int, severity string) ([]database.FeedItem, error) {
	items := make([]database.FeedItem, 0, len(m.items))
	for _, item := range m.items {
		if severity == "" || item.Severity == severity {
			items = append(items, item)
		}
	}
	if limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

func (m *mockItemRepo) SetRead(id string, read bool) error { return nil }
func (m *mockItemRepo) SetBookmarked(id string, bookmarked bool) error { return nil }

func (m *mockItemRepo) GetItemCount() (int, error) {
	return len(m.items), nil
}

func (m *mockItemRepo) CountBySeverity() (map[string]int, error) {
	counts := make(map[string]int)
	for _, item := range m.items {
		counts[item.Severity]++
	}
	return counts, nil
}

func (m *mockItemRepo) GetItemsForExtraction(limit int) ([]database.ItemForExtraction, error) {
	return nil, nil
}

func (m *mockItemRepo) UpdateExtractionStatus(itemID string, status string, extractedAt *time.Time, errorMsg string) error {
	return nil
}

func (m *mockItemRepo) UpdateExtractedContentAndStatus(itemID string, content string, status string, extractedAt *time.Time, errorMsg string) error {
	return nil
}

func (m *mockItemRepo) DeleteAll() error {
	m.deleted = true
	return nil
}

type mockScheduler struct {
	enqueued    []tasks.TaskInterface
	refreshed   []string
	refreshAll  int
	enqueueFail error
}

var _ tasks.TaskSchedulerInterface = (*mockScheduler)(nil)

func (m *mockScheduler) Start() {}
func (m *mockScheduler) Stop() {}

func (m *mockScheduler) EnqueueTask(task tasks.TaskInterface) error {
	if m.enqueueFail != nil {
		return m.enqueueFail
	}
	m.enqueued = append(m.enqueued, task)
	return nil
}

func (m *mockScheduler) EnqueueFeedRefresh(feed database.Feed) error {
	if m.enqueueFail != nil {
		return m.enqueueFail
	}
	m.refreshed = append(m.refreshed, feed.ID)
	return nil
}

func (m *mockScheduler) EnqueueAllFeedsRefresh() (int, error) {
	m.refreshAll++
	return m.refreshAll, nil
}
