package database

import (
	"database/sql"
	"errors"
	"fmt"
)

var _ TaskRepository = (*SQLTaskRepository)(nil)

// SQLTaskRepository handles database operations for exported task rows
type SQLTaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB) *SQLTaskRepository {
	return &SQLTaskRepository{db: db}
}

// CheckDuplicate checks if a row with the given content hash was already exported
func (r *SQLTaskRepository) CheckDuplicate(contentHash string) (bool, *string, error) {
	var duplicateID string
	err := r.db.QueryRow(`SELECT id FROM exported_tasks WHERE content_hash = ? LIMIT 1`, contentHash).Scan(&duplicateID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("failed to check duplicate: %w", err)
	}

	return true, &duplicateID, nil
}

// GetRunTasks returns the rows exported by a run in insertion order
func (r *SQLTaskRepository) GetRunTasks(runID string) ([]ExportedTask, error) {
	rows, err := r.db.Query(`
		SELECT id, run_id, content_hash, content, date_string, created_at
		FROM exported_tasks
		WHERE run_id = ?
		ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run tasks: %w", err)
	}
	defer rows.Close()

	var tasks []ExportedTask
	for rows.Next() {
		var task ExportedTask
		err := rows.Scan(&task.ID, &task.RunID, &task.ContentHash, &task.Content, &task.DateString, &task.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// GetTaskCount returns the total number of exported rows
func (r *SQLTaskRepository) GetTaskCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM exported_tasks").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get task count: %w", err)
	}
	return count, nil
}
