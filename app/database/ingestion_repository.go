package database

import (
	"database/sql"
	"fmt"
)

var _ IngestionLogRepository = (*IngestionLogRepo)(nil)

// IngestionLogRepo handles database operations for ingestion logs
type IngestionLogRepo struct {
	db *DB
}

func NewIngestionLogRepository(db *DB) *IngestionLogRepo {
	return &IngestionLogRepo{db: db}
}

// Create inserts a new ingestion log in PENDING state and returns its ID.
func (r *IngestionLogRepo) Create(log IngestionLog) (string, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO ingestion_logs (filename, checksum, source, rows_processed, report_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, log.Filename, log.Checksum, log.Source, log.RowsProcessed, log.ReportDate, IngestionStatusPending).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to create ingestion log: %w", err)
	}

	return id, nil
}

// Finalize records the outcome of an import run.
func (r *IngestionLogRepo) Finalize(id string, rowsProcessed int, status string, errorLog string) error {
	_, err := r.db.Exec(`
		UPDATE ingestion_logs
		SET rows_processed = $2, status = $3, error_log = $4, updated_at = NOW()
		WHERE id = $1
	`, id, rowsProcessed, status, errorLog)

	if err != nil {
		return fmt.Errorf("failed to finalize ingestion log: %w", err)
	}

	return nil
}

func (r *IngestionLogRepo) Get(id string) (*IngestionLog, error) {
	var log IngestionLog
	err := r.db.QueryRow(`
		SELECT id, filename, checksum, source, rows_processed, report_date,
		       status, COALESCE(error_log, ''), created_at, updated_at
		FROM ingestion_logs
		WHERE id = $1
	`, id).Scan(
		&log.ID, &log.Filename, &log.Checksum, &log.Source, &log.RowsProcessed,
		&log.ReportDate, &log.Status, &log.ErrorLog, &log.CreatedAt, &log.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingestion log: %w", err)
	}

	return &log, nil
}

func (r *IngestionLogRepo) List(limit int) ([]IngestionLog, error) {
	rows, err := r.db.Query(`
		SELECT id, filename, checksum, source, rows_processed, report_date,
		       status, COALESCE(error_log, ''), created_at, updated_at
		FROM ingestion_logs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingestion logs: %w", err)
	}
	defer rows.Close()

	var logs []IngestionLog
	for rows.Next() {
		var log IngestionLog
		err := rows.Scan(
			&log.ID, &log.Filename, &log.Checksum, &log.Source, &log.RowsProcessed,
			&log.ReportDate, &log.Status, &log.ErrorLog, &log.CreatedAt, &log.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingestion log row: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingestion log rows: %w", err)
	}

	return logs, nil
}
