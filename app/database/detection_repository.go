package database

import (
	"fmt"
)

var _ DetectionRepository = (*DetectionRepo)(nil)

// DetectionRepo handles database operations for endpoint detections
type DetectionRepo struct {
	db *DB
}

func NewDetectionRepository(db *DB) *DetectionRepo {
	return &DetectionRepo{db: db}
}

// Upsert inserts or updates a detection keyed on its external ID.
func (r *DetectionRepo) Upsert(d Detection) error {
	_, err := r.db.Exec(`
		INSERT INTO detections (
			external_id, hostname, username, tactic, technique,
			severity, status, description, detected_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (external_id) DO UPDATE SET
			hostname = EXCLUDED.hostname,
			username = EXCLUDED.username,
			tactic = EXCLUDED.tactic,
			technique = EXCLUDED.technique,
			severity = EXCLUDED.severity,
			status = EXCLUDED.status,
			description = EXCLUDED.description,
			detected_at = EXCLUDED.detected_at,
			updated_at = NOW()
	`, d.ExternalID, d.Hostname, d.Username, d.Tactic, d.Technique,
		d.Severity, d.Status, d.Description, d.DetectedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert detection: %w", err)
	}

	return nil
}

func (r *DetectionRepo) UpdateStatus(externalID, status string) error {
	_, err := r.db.Exec(`
		UPDATE detections
		SET status = $2, updated_at = NOW()
		WHERE external_id = $1
	`, externalID, status)

	if err != nil {
		return fmt.Errorf("failed to update detection status: %w", err)
	}

	return nil
}

func (r *DetectionRepo) CountBySeverity() (map[string]int, error) {
	return countBySeverity(r.db, "detections")
}

func (r *DetectionRepo) DeleteAll() error {
	if _, err := r.db.Exec("DELETE FROM detections"); err != nil {
		return fmt.Errorf("failed to delete detections: %w", err)
	}
	return nil
}

// countBySeverity is shared by the security record repositories.
func countBySeverity(db *DB, table string) (map[string]int, error) {
	rows, err := db.Query("SELECT severity, COUNT(*) FROM " + table + " GROUP BY severity")
	if err != nil {
		return nil, fmt.Errorf("failed to count %s by severity: %w", table, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var severity string
		var count int
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, fmt.Errorf("failed to scan severity count row: %w", err)
		}
		counts[severity] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating severity count rows: %w", err)
	}

	return counts, nil
}
