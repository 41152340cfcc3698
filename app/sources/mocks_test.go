package sources

import (
	"fmt"

	"github.com/secboard/secboard/app/database"
)

// Hand-rolled repository mocks shared by the importer tests.

type MockIngestionLogRepository struct {
	created   int
	finalized map[string]string // log ID -> status
}

func NewMockIngestionLogRepository() *MockIngestionLogRepository {
	return &MockIngestionLogRepository{finalized: make(map[string]string)}
}

func (m *MockIngestionLogRepository) Create(log database.IngestionLog) (string, error) {
	m.created++
	return fmt.Sprintf("log-%d", m.created), nil
}

func (m *MockIngestionLogRepository) Finalize(id string, rowsProcessed int, status string, errorLog string) error {
	m.finalized[id] = status
	return nil
}

func (m *MockIngestionLogRepository) Get(id string) (*database.IngestionLog, error) {
	return nil, nil
}

func (m *MockIngestionLogRepository) List(limit int) ([]database.IngestionLog, error) {
	return nil, nil
}

type MockDetectionRepository struct {
	store map[string]database.Detection
	err   error
}

func NewMockDetectionRepository() *MockDetectionRepository {
	return &MockDetectionRepository{store: make(map[string]database.Detection)}
}

func (m *MockDetectionRepository) Upsert(d database.Detection) error {
	if m.err != nil {
		return m.err
	}
	m.store[d.ExternalID] = d
	return nil
}

func (m *MockDetectionRepository) UpdateStatus(externalID, status string) error { return nil }
func (m *MockDetectionRepository) CountBySeverity() (map[string]int, error) { return nil, nil }
func (m *MockDetectionRepository) DeleteAll() error { return nil }

type MockFindingRepository struct {
	store map[string]database.Finding
}

func NewMockFindingRepository() *MockFindingRepository {
	return &MockFindingRepository{store: make(map[string]database.Finding)}
}

func (m *MockFindingRepository) Upsert(f database.Finding) error {
	m.store[f.ExternalID] = f
	return nil
}

func (m *MockFindingRepository) UpdateStatus(externalID, status string) error { return nil }
func (m *MockFindingRepository) CountBySeverity() (map[string]int, error) { return nil, nil }
func (m *MockFindingRepository) DeleteAll() error { return nil }

type MockAdvisoryRepository struct {
	store map[string]database.Advisory
}

func NewMockAdvisoryRepository() *MockAdvisoryRepository {
	return &MockAdvisoryRepository{store: make(map[string]database.Advisory)}
}

func (m *MockAdvisoryRepository) Upsert(a database.Advisory) error {
	m.store[a.ExternalID] = a
	return nil
}

func (m *MockAdvisoryRepository) UpdateStatus(externalID, status string) error { return nil }
func (m *MockAdvisoryRepository) CountBySeverity() (map[string]int, error) { return nil, nil }
func (m *MockAdvisoryRepository) DeleteAll() error { return nil }

type MockScorecardRepository struct {
	issues  map[string]database.ScorecardIssue
	ratings map[string]database.ScorecardRating
}

func NewMockScorecardRepository() *MockScorecardRepository {
	return &MockScorecardRepository{
		issues:  make(map[string]database.ScorecardIssue),
		ratings: make(map[string]database.ScorecardRating),
	}
}

func (m *MockScorecardRepository) UpsertIssue(i database.ScorecardIssue) error {
	m.issues[i.ExternalID] = i
	return nil
}

func (m *MockScorecardRepository) UpsertRating(r database.ScorecardRating) error {
	m.ratings[r.ExternalID] = r
	return nil
}

func (m *MockScorecardRepository) CountIssuesBySeverity() (map[string]int, error) { return nil, nil }
func (m *MockScorecardRepository) DeleteAllIssues() error { return nil }
func (m *MockScorecardRepository) DeleteAllRatings() error { return nil }
