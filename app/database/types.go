package database

import (
	"time"
)

type Run struct {
	ID          string // Database UUID
	Source      string // Export file name or "upload"
	StartedAt   time.Time
	CompletedAt *time.Time
	Total       int // Records found in the export
	Retained    int // Records that passed the task filter
	Exported    int // Rows written after deduplication
}

type ExportedTask struct {
	ID          string
	RunID       string
	ContentHash string // sha256 of content and date phrase
	Content     string
	DateString  string
	CreatedAt   time.Time
}
