package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/reminders-comb/app/database"
	"github.com/lysyi3m/reminders-comb/app/migration"
	"github.com/lysyi3m/reminders-comb/app/reminder"
)

func NewHandler(migrator *migration.Migrator, runRepo database.RunRepository,
	taskRepo database.TaskRepository) *Handler {
	return &Handler{
		migrator: migrator,
		runRepo:  runRepo,
		taskRepo: taskRepo,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	runCount, err := h.runRepo.GetRunCount()
	if err != nil {
		slog.Error("Database error", "operation", "get_run_count", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	stats["runs"] = runCount

	taskCount, err := h.taskRepo.GetTaskCount()
	if err != nil {
		slog.Error("Database error", "operation", "get_task_count", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	stats["exported_tasks"] = taskCount

	c.JSON(http.StatusOK, stats)
}

// APIPreview converts the uploaded export without touching the ledger.
func (h *Handler) APIPreview(c *gin.Context) {
	now := time.Now()
	if raw := c.Query("now"); raw != "" {
		parsed, err := dateparse.ParseLocal(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid now parameter", "message": err.Error()})
			return
		}
		now = parsed
	}

	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Failed to read request body", "message": err.Error()})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty request body"})
		return
	}

	result, err := h.migrator.Run(c.Request.Context(), "upload", data, now)
	if err != nil {
		if isDocumentError(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Export could not be converted", "message": err.Error()})
			return
		}
		slog.Error("Preview failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Preview failed"})
		return
	}

	skipped := result.Skipped
	if skipped == nil {
		skipped = []migration.Skip{}
	}

	c.JSON(http.StatusOK, PreviewResponse{
		Source:   result.Source,
		Total:    result.Total,
		Retained: result.Retained,
		Rows:     result.Rows(),
		Skipped:  skipped,
	})
}

func (h *Handler) APIListRuns(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	runs, err := h.runRepo.GetRecentRuns(limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_recent_runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	response := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		response = append(response, toRunResponse(run))
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"runs":  response,
		"total": len(response),
	})
}

func (h *Handler) APIGetRunDetails(c *gin.Context) {
	id := c.Param("id")

	run, err := h.runRepo.GetRun(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_run", "run", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Run not found"})
		return
	}

	tasks, err := h.taskRepo.GetRunTasks(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_run_tasks", "run", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	items := make([]map[string]interface{}, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, map[string]interface{}{
			"content":      task.Content,
			"date":         task.DateString,
			"content_hash": task.ContentHash,
			"created_at":   task.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"run":   toRunResponse(*run),
		"tasks": items,
	})
}

func toRunResponse(run database.Run) RunResponse {
	response := RunResponse{
		ID:        run.ID,
		Source:    run.Source,
		StartedAt: run.StartedAt.Format(time.RFC3339),
		Total:     run.Total,
		Retained:  run.Retained,
		Exported:  run.Exported,
	}
	if run.CompletedAt != nil {
		completed := run.CompletedAt.Format(time.RFC3339)
		response.CompletedAt = &completed
	}
	return response
}

func isDocumentError(err error) bool {
	return errors.Is(err, reminder.ErrStructuralDefect) ||
		errors.Is(err, reminder.ErrFormat) ||
		errors.Is(err, reminder.ErrMissingField) ||
		errors.Is(err, reminder.ErrUnsupportedRecurrence)
}
