package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ RunRepository = (*SQLRunRepository)(nil)

// SQLRunRepository handles database operations for migration runs
type SQLRunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *SQLRunRepository {
	return &SQLRunRepository{db: db}
}

// RecordRun stores a completed run together with its exported rows in a
// single transaction and returns the run ID. Exported is taken from
// len(tasks); CompletedAt defaults to now.
func (r *SQLRunRepository) RecordRun(run Run, tasks []ExportedTask) (string, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.NewString()
	completedAt := time.Now().UTC()
	if run.CompletedAt != nil {
		completedAt = run.CompletedAt.UTC()
	}

	_, err = tx.Exec(`
		INSERT INTO runs (id, source, started_at, completed_at, total, retained, exported)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, run.Source, run.StartedAt.UTC(), completedAt, run.Total, run.Retained, len(tasks))
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}

	for i, task := range tasks {
		createdAt := completedAt
		if !task.CreatedAt.IsZero() {
			createdAt = task.CreatedAt.UTC()
		}

		_, err := tx.Exec(`
			INSERT INTO exported_tasks (id, run_id, content_hash, content, date_string, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), runID, task.ContentHash, task.Content, task.DateString, createdAt)
		if err != nil {
			return "", fmt.Errorf("failed to insert task %d (%q): %w", i, task.Content, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// GetRun retrieves a run by ID
func (r *SQLRunRepository) GetRun(runID string) (*Run, error) {
	var run Run
	err := r.db.QueryRow(`
		SELECT id, source, started_at, completed_at, total, retained, exported
		FROM runs
		WHERE id = ?
	`, runID).Scan(
		&run.ID, &run.Source, &run.StartedAt, &run.CompletedAt,
		&run.Total, &run.Retained, &run.Exported,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return &run, nil
}

// GetRecentRuns returns the latest runs, newest first
func (r *SQLRunRepository) GetRecentRuns(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT id, source, started_at, completed_at, total, retained, exported
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		err := rows.Scan(
			&run.ID, &run.Source, &run.StartedAt, &run.CompletedAt,
			&run.Total, &run.Retained, &run.Exported,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	return runs, nil
}

// GetRunCount returns the total number of runs
func (r *SQLRunRepository) GetRunCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get run count: %w", err)
	}
	return count, nil
}
