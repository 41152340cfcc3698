package database

import (
	"fmt"

	"github.com/lib/pq"
)

var _ AdvisoryRepository = (*AdvisoryRepo)(nil)

// AdvisoryRepo handles database operations for threat advisories
type AdvisoryRepo struct {
	db *DB
}

func NewAdvisoryRepository(db *DB) *AdvisoryRepo {
	return &AdvisoryRepo{db: db}
}

// Upsert inserts or updates an advisory keyed on its external ID.
func (r *AdvisoryRepo) Upsert(a Advisory) error {
	_, err := r.db.Exec(`
		INSERT INTO advisories (
			external_id, title, source, severity, status,
			url, description, cves, published_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (external_id) DO UPDATE SET
			title = EXCLUDED.title,
			source = EXCLUDED.source,
			severity = EXCLUDED.severity,
			status = EXCLUDED.status,
			url = EXCLUDED.url,
			description = EXCLUDED.description,
			cves = EXCLUDED.cves,
			published_on = EXCLUDED.published_on,
			updated_at = NOW()
	`, a.ExternalID, a.Title, a.Source, a.Severity, a.Status,
		a.URL, a.Description, pq.Array(a.CVEs), a.PublishedOn)

	if err != nil {
		return fmt.Errorf("failed to upsert advisory: %w", err)
	}

	return nil
}

func (r *AdvisoryRepo) UpdateStatus(externalID, status string) error {
	_, err := r.db.Exec(`
		UPDATE advisories
		SET status = $2, updated_at = NOW()
		WHERE external_id = $1
	`, externalID, status)

	if err != nil {
		return fmt.Errorf("failed to update advisory status: %w", err)
	}

	return nil
}

func (r *AdvisoryRepo) CountBySeverity() (map[string]int, error) {
	return countBySeverity(r.db, "advisories")
}

func (r *AdvisoryRepo) DeleteAll() error {
	if _, err := r.db.Exec("DELETE FROM advisories"); err != nil {
		return fmt.Errorf("failed to delete advisories: %w", err)
	}
	return nil
}
