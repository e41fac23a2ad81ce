package api

import (
	"github.com/lysyi3m/reminders-comb/app/database"
	"github.com/lysyi3m/reminders-comb/app/export"
	"github.com/lysyi3m/reminders-comb/app/migration"
)

// maxUploadSize bounds the export document accepted by the preview endpoint.
const maxUploadSize = 10 << 20

type Handler struct {
	migrator *migration.Migrator
	runRepo  database.RunRepository
	taskRepo database.TaskRepository
}

type PreviewResponse struct {
	Source   string           `json:"source"`
	Total    int              `json:"total"`
	Retained int              `json:"retained"`
	Rows     []export.Row     `json:"rows"`
	Skipped  []migration.Skip `json:"skipped"`
}

type RunResponse struct {
	ID          string  `json:"id"`
	Source      string  `json:"source"`
	StartedAt   string  `json:"started_at"`
	CompletedAt *string `json:"completed_at,omitempty"`
	Total       int     `json:"total"`
	Retained    int     `json:"retained"`
	Exported    int     `json:"exported"`
}
