package database

import (
	"fmt"
)

var _ ScorecardRepository = (*ScorecardRepo)(nil)

// ScorecardRepo handles database operations for scorecard issues and ratings
type ScorecardRepo struct {
	db *DB
}

func NewScorecardRepository(db *DB) *ScorecardRepo {
	return &ScorecardRepo{db: db}
}

// UpsertIssue inserts or updates a scorecard issue keyed on its external ID.
func (r *ScorecardRepo) UpsertIssue(i ScorecardIssue) error {
	_, err := r.db.Exec(`
		INSERT INTO scorecard_issues (
			external_id, factor, issue_type, severity, status, count
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (external_id) DO UPDATE SET
			factor = EXCLUDED.factor,
			issue_type = EXCLUDED.issue_type,
			severity = EXCLUDED.severity,
			status = EXCLUDED.status,
			count = EXCLUDED.count,
			updated_at = NOW()
	`, i.ExternalID, i.Factor, i.IssueType, i.Severity, i.Status, i.Count)

	if err != nil {
		return fmt.Errorf("failed to upsert scorecard issue: %w", err)
	}

	return nil
}

// UpsertRating inserts or updates a factor rating keyed on its external ID.
func (r *ScorecardRepo) UpsertRating(rating ScorecardRating) error {
	_, err := r.db.Exec(`
		INSERT INTO scorecard_ratings (
			external_id, factor, grade, score, reported_on
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (external_id) DO UPDATE SET
			factor = EXCLUDED.factor,
			grade = EXCLUDED.grade,
			score = EXCLUDED.score,
			reported_on = EXCLUDED.reported_on,
			updated_at = NOW()
	`, rating.ExternalID, rating.Factor, rating.Grade, rating.Score, rating.ReportedOn)

	if err != nil {
		return fmt.Errorf("failed to upsert scorecard rating: %w", err)
	}

	return nil
}

func (r *ScorecardRepo) CountIssuesBySeverity() (map[string]int, error) {
	return countBySeverity(r.db, "scorecard_issues")
}

func (r *ScorecardRepo) DeleteAllIssues() error {
	if _, err := r.db.Exec("DELETE FROM scorecard_issues"); err != nil {
		return fmt.Errorf("failed to delete scorecard issues: %w", err)
	}
	return nil
}

func (r *ScorecardRepo) DeleteAllRatings() error {
	if _, err := r.db.Exec("DELETE FROM scorecard_ratings"); err != nil {
		return fmt.Errorf("failed to delete scorecard ratings: %w", err)
	}
	return nil
}
