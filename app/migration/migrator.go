package migration

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/reminders-comb/app/config"
	"github.com/lysyi3m/reminders-comb/app/database"
	"github.com/lysyi3m/reminders-comb/app/export"
	"github.com/lysyi3m/reminders-comb/app/reminder"
)

type Migrator struct {
	settings        *config.Settings
	runRepo         database.RunRepository
	taskRepo        database.TaskRepository
	walker          *reminder.Walker
	builder         *reminder.Builder
	filterer        *reminder.Filterer
	renderer        *reminder.Renderer
	contentFilterer *ContentFilterer
}

// NewMigrator wires the conversion pipeline. The repositories may be nil, in
// which case deduplication and Commit are unavailable.
func NewMigrator(settings *config.Settings, runRepo database.RunRepository, taskRepo database.TaskRepository) *Migrator {
	return &Migrator{
		settings:        settings,
		runRepo:         runRepo,
		taskRepo:        taskRepo,
		walker:          reminder.NewWalker(),
		builder:         reminder.NewBuilder(),
		filterer:        reminder.NewFilterer(),
		renderer:        reminder.NewRenderer(),
		contentFilterer: NewContentFilterer(),
	}
}

// Run converts an export document into task rows without side effects. The
// first structural, format or recurrence error aborts the whole run.
func (m *Migrator) Run(ctx context.Context, source string, data []byte, now time.Time) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	records, err := m.walker.Run(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}

	tasks := make([]reminder.Task, 0, len(records))
	for i, fields := range records {
		task, err := m.builder.Run(fields)
		if err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, fields[reminder.LabelTitle].Text, err)
		}
		tasks = append(tasks, task)
	}

	kept := m.filterer.Run(tasks, now)

	result := &Result{
		Source:   source,
		Total:    len(tasks),
		Retained: len(kept),
	}

	seen := make(map[string]bool)
	for _, task := range kept {
		phrase, err := m.renderer.Run(task)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", task.Title, err)
		}

		if isFiltered, reason := m.contentFilterer.Run(task, phrase, m.settings.Filters); isFiltered {
			slog.Debug("Task filtered", "title", task.Title, "reason", reason)
			result.Skipped = append(result.Skipped, Skip{Content: task.Title, Reason: reason})
			continue
		}

		row := m.newRow(task, phrase)
		hash := m.generateContentHash(row)

		if m.settings.Options.Deduplication {
			isDuplicate, err := m.isDuplicate(hash, seen)
			if err != nil {
				return nil, err
			}
			if isDuplicate {
				slog.Debug("Duplicate task skipped", "title", task.Title, "date", phrase)
				result.Skipped = append(result.Skipped, Skip{Content: task.Title, Reason: "Already exported"})
				continue
			}
		}
		seen[hash] = true

		result.Entries = append(result.Entries, Entry{
			Row:         row,
			Due:         task.Due,
			Recurring:   task.Recurrence != nil,
			ContentHash: hash,
		})
	}

	slog.Info("Export converted",
		"source", source,
		"records", result.Total,
		"retained", result.Retained,
		"rows", len(result.Entries),
		"skipped", len(result.Skipped))

	return result, nil
}

// Commit records the result in the ledger so later runs can skip its rows.
// The run and its rows are written atomically.
func (m *Migrator) Commit(ctx context.Context, result *Result, startedAt time.Time) error {
	if m.runRepo == nil {
		return fmt.Errorf("ledger is not configured")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	tasks := make([]database.ExportedTask, 0, len(result.Entries))
	for _, entry := range result.Entries {
		tasks = append(tasks, database.ExportedTask{
			ContentHash: entry.ContentHash,
			Content:     entry.Row.Content,
			DateString:  entry.Row.Date,
		})
	}

	runID, err := m.runRepo.RecordRun(database.Run{
		Source:    result.Source,
		StartedAt: startedAt,
		Total:     result.Total,
		Retained:  result.Retained,
	}, tasks)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	result.RunID = runID
	slog.Info("Run recorded", "run", runID, "rows", len(result.Entries))
	return nil
}

func (m *Migrator) isDuplicate(hash string, seen map[string]bool) (bool, error) {
	if seen[hash] {
		return true, nil
	}
	if m.taskRepo == nil {
		return false, nil
	}

	isDuplicate, _, err := m.taskRepo.CheckDuplicate(hash)
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate: %w", err)
	}
	return isDuplicate, nil
}

func (m *Migrator) newRow(task reminder.Task, phrase string) export.Row {
	out := m.settings.Output
	return export.Row{
		Type:     out.Type,
		Content:  task.Title,
		Priority: out.Priority,
		Indent:   out.Indent,
		Date:     phrase,
		DateLang: out.DateLang,
		Timezone: out.Timezone,
	}
}

func (m *Migrator) generateContentHash(row export.Row) string {
	content := fmt.Sprintf("%s|%s",
		row.Content,
		row.Date)

	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
