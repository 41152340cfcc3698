package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ FeedRepository = (*FeedRepo)(nil)

// FeedRepo handles database operations for threat feeds
type FeedRepo struct {
	db *DB
}

func NewFeedRepository(db *DB) *FeedRepo {
	return &FeedRepo{db: db}
}

// Create registers a new feed. The URL is unique; re-registering an existing
// URL updates its name and category instead of failing.
func (r *FeedRepo) Create(name, url, category string) (string, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO feeds (name, url, category)
		VALUES ($1, $2, $3)
		ON CONFLICT (url) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			updated_at = NOW()
		RETURNING id
	`, name, url, category).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to create feed: %w", err)
	}

	return id, nil
}

func (r *FeedRepo) Get(id string) (*Feed, error) {
	feed, err := r.scanFeed(r.db.QueryRow(feedSelect+" WHERE id = $1", id))
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}
	return feed, nil
}

func (r *FeedRepo) GetByURL(url string) (*Feed, error) {
	feed, err := r.scanFeed(r.db.QueryRow(feedSelect+" WHERE url = $1", url))
	if err != nil {
		return nil, fmt.Errorf("failed to get feed by URL: %w", err)
	}
	return feed, nil
}

func (r *FeedRepo) GetAll() ([]Feed, error) {
	rows, err := r.db.Query(feedSelect + " ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get feeds: %w", err)
	}
	defer rows.Close()

	return r.collectFeeds(rows)
}

// GetDueForRefresh returns enabled feeds whose next fetch time has passed.
func (r *FeedRepo) GetDueForRefresh(limit int) ([]Feed, error) {
	rows, err := r.db.Query(feedSelect+`
		WHERE enabled = true
		  AND (next_fetch_at IS NULL OR next_fetch_at <= NOW())
		ORDER BY COALESCE(next_fetch_at, '1970-01-01'::timestamptz)
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get feeds due for refresh: %w", err)
	}
	defer rows.Close()

	return r.collectFeeds(rows)
}

func (r *FeedRepo) SetEnabled(id string, enabled bool) error {
	_, err := r.db.Exec(`
		UPDATE feeds
		SET enabled = $2, updated_at = NOW()
		WHERE id = $1
	`, id, enabled)

	if err != nil {
		return fmt.Errorf("failed to set feed enabled status: %w", err)
	}

	return nil
}

// MarkFetched records the outcome of a fetch attempt. A successful fetch
// passes an empty fetchError, clearing any previous one.
func (r *FeedRepo) MarkFetched(id string, fetchError string, nextFetch time.Time) error {
	_, err := r.db.Exec(`
		UPDATE feeds
		SET last_fetched_at = NOW(), fetch_error = $2, next_fetch_at = $3, updated_at = NOW()
		WHERE id = $1
	`, id, fetchError, nextFetch)

	if err != nil {
		return fmt.Errorf("failed to mark feed fetched: %w", err)
	}

	return nil
}

func (r *FeedRepo) GetFeedCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM feeds").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get feed count: %w", err)
	}
	return count, nil
}

const feedSelect = `
	SELECT id, name, url, COALESCE(category, ''), enabled,
	       last_fetched_at, next_fetch_at, COALESCE(fetch_error, ''),
	       created_at, updated_at
	FROM feeds`

func (r *FeedRepo) scanFeed(row *sql.Row) (*Feed, error) {
	var feed Feed
	err := row.Scan(
		&feed.ID, &feed.Name, &feed.URL, &feed.Category, &feed.Enabled,
		&feed.LastFetchedAt, &feed.NextFetchAt, &feed.FetchError,
		&feed.CreatedAt, &feed.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &feed, nil
}

func (r *FeedRepo) collectFeeds(rows *sql.Rows) ([]Feed, error) {
	var feeds []Feed
	for rows.Next() {
		var feed Feed
		err := rows.Scan(
			&feed.ID, &feed.Name, &feed.URL, &feed.Category, &feed.Enabled,
			&feed.LastFetchedAt, &feed.NextFetchAt, &feed.FetchError,
			&feed.CreatedAt, &feed.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed row: %w", err)
		}
		feeds = append(feeds, feed)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed rows: %w", err)
	}

	return feeds, nil
}
