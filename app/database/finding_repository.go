package database

import (
	"fmt"
)

var _ FindingRepository = (*FindingRepo)(nil)

// FindingRepo handles database operations for cloud posture findings
type FindingRepo struct {
	db *DB
}

func NewFindingRepository(db *DB) *FindingRepo {
	return &FindingRepo{db: db}
}

// Upsert inserts or updates a finding keyed on its external ID.
func (r *FindingRepo) Upsert(f Finding) error {
	_, err := r.db.Exec(`
		INSERT INTO findings (
			external_id, title, severity, status, resource_type,
			resource_id, region, account_id, compliance_status, description
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (external_id) DO UPDATE SET
			title = EXCLUDED.title,
			severity = EXCLUDED.severity,
			status = EXCLUDED.status,
			resource_type = EXCLUDED.resource_type,
			resource_id = EXCLUDED.resource_id,
			region = EXCLUDED.region,
			account_id = EXCLUDED.account_id,
			compliance_status = EXCLUDED.compliance_status,
			description = EXCLUDED.description,
			updated_at = NOW()
	`, f.ExternalID, f.Title, f.Severity, f.Status, f.ResourceType,
		f.ResourceID, f.Region, f.AccountID, f.ComplianceStatus, f.Description)

	if err != nil {
		return fmt.Errorf("failed to upsert finding: %w", err)
	}

	return nil
}

func (r *FindingRepo) UpdateStatus(externalID, status string) error {
	_, err := r.db.Exec(`
		UPDATE findings
		SET status = $2, updated_at = NOW()
		WHERE external_id = $1
	`, externalID, status)

	if err != nil {
		return fmt.Errorf("failed to update finding status: %w", err)
	}

	return nil
}

func (r *FindingRepo) CountBySeverity() (map[string]int, error) {
	return countBySeverity(r.db, "findings")
}

func (r *FindingRepo) DeleteAll() error {
	if _, err := r.db.Exec("DELETE FROM findings"); err != nil {
		return fmt.Errorf("failed to delete findings: %w", err)
	}
	return nil
}
