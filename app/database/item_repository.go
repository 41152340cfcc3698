package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

var _ ItemRepository = (*ItemRepo)(nil)

// ItemRepo handles database operations for feed items
type ItemRepo struct {
	db *DB
}

func NewItemRepository(db *DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// Exists reports whether an item with the given link is already stored.
// The link is the natural dedup key across all feeds.
func (r *ItemRepo) Exists(link string) (bool, error) {
	var id string
	err := r.db.QueryRow("SELECT id FROM feed_items WHERE link = $1 LIMIT 1", link).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check item existence: %w", err)
	}

	return true, nil
}

func (r *ItemRepo) Insert(item FeedItem) error {
	_, err := r.db.Exec(`
		INSERT INTO feed_items (
			feed_id, guid, link, title, description, content, published_at,
			severity, tags, cves, products, cvss_score, content_extraction_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (link) DO NOTHING
	`, item.FeedID, item.GUID, item.Link, item.Title, item.Description,
		item.Content, item.PublishedAt, item.Severity, pq.Array(item.Tags),
		pq.Array(item.CVEs), pq.Array(item.Products), item.CVSSScore,
		item.ContentExtractionStatus)

	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	return nil
}

// GetRecent returns the newest items, optionally restricted to one severity.
func (r *ItemRepo) GetRecent(limit int, severity string) ([]FeedItem, error) {
	query := itemSelect
	args := []interface{}{limit}
	if severity != "" {
		query += " WHERE severity = $2"
		args = append(args, severity)
	}
	query += " ORDER BY published_at DESC LIMIT $1"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent items: %w", err)
	}
	defer rows.Close()

	return r.collectItems(rows)
}

func (r *ItemRepo) SetRead(id string, read bool) error {
	_, err := r.db.Exec("UPDATE feed_items SET is_read = $2 WHERE id = $1", id, read)
	if err != nil {
		return fmt.Errorf("failed to set item read flag: %w", err)
	}
	return nil
}

func (r *ItemRepo) SetBookmarked(id string, bookmarked bool) error {
	_, err := r.db.Exec("UPDATE feed_items SET is_bookmarked = $2 WHERE id = $1", id, bookmarked)
	if err != nil {
		return fmt.Errorf("failed to set item bookmarked flag: %w", err)
	}
	return nil
}

func (r *ItemRepo) GetItemCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM feed_items").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get item count: %w", err)
	}
	return count, nil
}

func (r *ItemRepo) CountBySeverity() (map[string]int, error) {
	return countBySeverity(r.db, "feed_items")
}

// GetItemsForExtraction returns items still pending article content extraction.
func (r *ItemRepo) GetItemsForExtraction(limit int) ([]ItemForExtraction, error) {
	rows, err := r.db.Query(`
		SELECT id, link
		FROM feed_items
		WHERE content_extraction_status = 'pending'
		  AND link != ''
		ORDER BY published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get items for extraction: %w", err)
	}
	defer rows.Close()

	var items []ItemForExtraction
	for rows.Next() {
		var item ItemForExtraction
		if err := rows.Scan(&item.ID, &item.Link); err != nil {
			return nil, fmt.Errorf("failed to scan extraction item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating extraction item rows: %w", err)
	}

	return items, nil
}

func (r *ItemRepo) UpdateExtractionStatus(itemID string, status string, extractedAt *time.Time, errorMsg string) error {
	_, err := r.db.Exec(`
		UPDATE feed_items
		SET content_extraction_status = $2, content_extracted_at = $3, content_extraction_error = $4
		WHERE id = $1
	`, itemID, status, extractedAt, errorMsg)

	if err != nil {
		return fmt.Errorf("failed to update extraction status: %w", err)
	}

	return nil
}

func (r *ItemRepo) UpdateExtractedContentAndStatus(itemID string, content string, status string, extractedAt *time.Time, errorMsg string) error {
	_, err := r.db.Exec(`
		UPDATE feed_items
		SET content = $2, content_extraction_status = $3, content_extracted_at = $4, content_extraction_error = $5
		WHERE id = $1
	`, itemID, content, status, extractedAt, errorMsg)

	if err != nil {
		return fmt.Errorf("failed to update extracted content: %w", err)
	}

	return nil
}

func (r *ItemRepo) DeleteAll() error {
	if _, err := r.db.Exec("DELETE FROM feed_items"); err != nil {
		return fmt.Errorf("failed to delete feed items: %w", err)
	}
	return nil
}

const itemSelect = `
	SELECT id, feed_id, COALESCE(guid, ''), link, COALESCE(title, ''),
	       COALESCE(description, ''), COALESCE(content, ''), published_at,
	       severity, COALESCE(tags, '{}'), COALESCE(cves, '{}'),
	       COALESCE(products, '{}'), cvss_score, is_read, is_bookmarked,
	       content_extracted_at, content_extraction_status,
	       COALESCE(content_extraction_error, ''), created_at
	FROM feed_items`

func (r *ItemRepo) collectItems(rows *sql.Rows) ([]FeedItem, error) {
	var items []FeedItem
	for rows.Next() {
		var item FeedItem
		err := rows.Scan(
			&item.ID, &item.FeedID, &item.GUID, &item.Link, &item.Title,
			&item.Description, &item.Content, &item.PublishedAt,
			&item.Severity, pq.Array(&item.Tags), pq.Array(&item.CVEs),
			pq.Array(&item.Products), &item.CVSSScore, &item.IsRead,
			&item.IsBookmarked, &item.ContentExtractedAt,
			&item.ContentExtractionStatus, &item.ContentExtractionError,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}
