package tasks

import (
	"time"

	"github.com/secboard/secboard/app/database"
)

type MockFeedRepository struct {
	feeds          map[string]database.Feed
	lastFetchError map[string]string
}

var _ database.FeedRepository = (*MockFeedRepository)(nil)

func NewMockFeedRepository() *MockFeedRepository {
	return &MockFeedRepository{
		feeds:          make(map[string]database.Feed),
		lastFetchError: make(map[string]string),
	}
}

func (m *MockFeedRepository) Create(name, url, category string) (string, error) {
	id := name
	m.feeds[id] = database.Feed{ID: id, Name: name, URL: url, Category: category, Enabled: true}
	return id, nil
}

func (m *MockFeedRepository) Get(id string) (*database.Feed, error) {
	if feed, ok := m.feeds[id]; ok {
		return &feed, nil
	}
	return nil, nil
}

func (m *MockFeedRepository) GetByURL(url string) (*database.Feed, error) {
	for _, feed := range m.feeds {
		if feed.URL == url {
			return &feed, nil
		}
	}
	return nil, nil
}

func (m *MockFeedRepository) GetAll() ([]database.Feed, error) {
	feeds := make([]database.Feed, 0, len(m.feeds))
	for _, feed := range m.feeds {
		feeds = append(feeds, feed)
	}
	return feeds, nil
}

func (m *MockFeedRepository) GetDueForRefresh(limit int) ([]database.Feed, error) {
	return nil, nil
}

func (m *MockFeedRepository) SetEnabled(id string, enabled bool) error {
	feed := m.feeds[id]
	feed.Enabled = enabled
	m.feeds[id] = feed
	return nil
}

func (m *MockFeedRepository) MarkFetched(id string, fetchError string, nextFetch time.Time) error {
	feed := m.feeds[id]
	now := time.Now().UTC()
	feed.LastFetchedAt = &now
	feed.NextFetchAt = &nextFetch
	feed.FetchError = fetchError
	m.feeds[id] = feed
	m.lastFetchError[id] = fetchError
	return nil
}

func (m *MockFeedRepository) GetFeedCount() (int, error) {
	return len(m.feeds), nil
}

type MockItemRepository struct {
	items         map[string]database.FeedItem
	forExtraction []database.ItemForExtraction
	extracted     map[string]string
	statuses      map[string]string
}

var _ database.ItemRepository = (*MockItemRepository)(nil)

func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{
		items:     make(map[string]database.FeedItem),
		extracted: make(map[string]string),
		statuses:  make(map[string]string),
	}
}

func (m *MockItemRepository) Exists(link string) (bool, error) {
	_, ok := m.items[link]
	return ok, nil
}

func (m *MockItemRepository) Insert(item database.FeedItem) error {
	m.items[item.Link] = item
	return nil
}

func (m *MockItemRepository) GetRecent(limit int, severity string) ([]database.FeedItem, error) {
	items := make([]database.FeedItem, 0, len(m.items))
	for _, item := range m.items {
		if severity == "" || item.Severity == severity {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *MockItemRepository) SetRead(id string, read bool) error {
	return nil
}

func (m *MockItemRepository) SetBookmarked(id string, bookmarked bool) error {
	return nil
}

func (m *MockItemRepository) GetItemCount() (int, error) {
	return len(m.items), nil
}

func (m *MockItemRepository) CountBySeverity() (map[string]int, error) {
	counts := make(map[string]int)
	for _, item := range m.items {
		counts[item.Severity]++
	}
	return counts, nil
}

func (m *MockItemRepository) GetItemsForExtraction(limit int) ([]database.ItemForExtraction, error) {
	if limit > len(m.forExtraction) {
		limit = len(m.forExtraction)
	}
	return m.forExtraction[:limit], nil
}

func (m *MockItemRepository) UpdateExtractionStatus(itemID string, status string, extractedAt *time.Time, errorMsg string) error {
	m.statuses[itemID] = status
	return nil
}

func (m *MockItemRepository) UpdateExtractedContentAndStatus(itemID string, content string, status string, extractedAt *time.Time, errorMsg string) error {
	m.extracted[itemID] = content
	m.statuses[itemID] = status
	return nil
}

func (m *MockItemRepository) DeleteAll() error {
	m.items = make(map[string]database.FeedItem)
	return nil
}
