package database

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	version, dirty, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	if version != 1 || dirty {
		t.Fatalf("Expected clean schema version 1, got %d (dirty: %v)", version, dirty)
	}

	return db
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	version, dirty, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("Expected second migration run to succeed, got: %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("Expected clean schema version 1, got %d (dirty: %v)", version, dirty)
	}
}

func TestRecordRun(t *testing.T) {
	db := newTestDB(t)
	runs := NewRunRepository(db)
	tasks := NewTaskRepository(db)

	startedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	runID, err := runs.RecordRun(Run{
		Source:    "Reminders.html",
		StartedAt: startedAt,
		Total:     10,
		Retained:  4,
	}, []ExportedTask{
		{ContentHash: "hash-1", Content: "Pay rent", DateString: "every 1 month at 9am starting on the 1st"},
		{ContentHash: "hash-2", Content: "Dentist", DateString: "2030-05-17 14:45"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if runID == "" {
		t.Fatal("Expected run ID")
	}

	run, err := runs.GetRun(runID)
	if err != nil {
		t.Fatal(err)
	}
	if run == nil {
		t.Fatal("Expected run to exist")
	}
	if run.Source != "Reminders.html" {
		t.Errorf("Expected source 'Reminders.html', got '%s'", run.Source)
	}
	if !run.StartedAt.Equal(startedAt) {
		t.Errorf("Expected started at %v, got %v", startedAt, run.StartedAt)
	}
	if run.CompletedAt == nil {
		t.Error("Expected completed at to be set")
	}
	if run.Total != 10 || run.Retained != 4 || run.Exported != 2 {
		t.Errorf("Expected counters 10/4/2, got %d/%d/%d", run.Total, run.Retained, run.Exported)
	}

	stored, err := tasks.GetRunTasks(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 {
		t.Fatalf("Expected 2 stored tasks, got %d", len(stored))
	}
	if stored[0].Content != "Pay rent" || stored[0].RunID != runID {
		t.Errorf("Unexpected stored task: %+v", stored[0])
	}
	if stored[0].CreatedAt.IsZero() {
		t.Error("Expected created at to be set")
	}

	missing, err := runs.GetRun("missing")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Error("Expected nil for unknown run")
	}
}

func TestRecordRunRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	runs := NewRunRepository(db)
	tasks := NewTaskRepository(db)

	_, err := runs.RecordRun(Run{Source: "export.html", StartedAt: time.Now()}, []ExportedTask{
		{ContentHash: "hash-1", Content: "first"},
		{ContentHash: "", Content: "rejected by schema"},
	})
	if err == nil {
		t.Fatal("Expected error for task without content hash")
	}

	runCount, err := runs.GetRunCount()
	if err != nil {
		t.Fatal(err)
	}
	if runCount != 0 {
		t.Errorf("Expected no runs after rollback, got %d", runCount)
	}

	taskCount, err := tasks.GetTaskCount()
	if err != nil {
		t.Fatal(err)
	}
	if taskCount != 0 {
		t.Errorf("Expected no tasks after rollback, got %d", taskCount)
	}
}

func TestRecordRunAllowsRepeatedHashes(t *testing.T) {
	db := newTestDB(t)
	runs := NewRunRepository(db)
	tasks := NewTaskRepository(db)

	rows := []ExportedTask{
		{ContentHash: "hash-1", Content: "Water plants"},
		{ContentHash: "hash-1", Content: "Water plants"},
	}

	for i := 0; i < 2; i++ {
		if _, err := runs.RecordRun(Run{Source: "export.html", StartedAt: time.Now()}, rows); err != nil {
			t.Fatalf("Run %d: expected repeated hashes to be recorded, got: %v", i, err)
		}
	}

	count, err := tasks.GetTaskCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Errorf("Expected 4 tasks, got %d", count)
	}
}

func TestGetRecentRunsOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewRunRepository(db)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		id, err := repo.RecordRun(Run{Source: "export.html", StartedAt: base.Add(time.Duration(i) * time.Hour)}, nil)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	runs, err := repo.GetRecentRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Errorf("Expected newest runs first, got %s, %s", runs[0].ID, runs[1].ID)
	}

	count, err := repo.GetRunCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("Expected 3 runs, got %d", count)
	}
}

func TestCheckDuplicate(t *testing.T) {
	db := newTestDB(t)
	runs := NewRunRepository(db)
	tasks := NewTaskRepository(db)

	isDuplicate, _, err := tasks.CheckDuplicate("hash-1")
	if err != nil {
		t.Fatal(err)
	}
	if isDuplicate {
		t.Error("Expected no duplicate in empty ledger")
	}

	runID, err := runs.RecordRun(Run{Source: "export.html", StartedAt: time.Now()}, []ExportedTask{
		{ContentHash: "hash-1", Content: "Pay rent"},
	})
	if err != nil {
		t.Fatal(err)
	}

	stored, err := tasks.GetRunTasks(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 {
		t.Fatalf("Expected 1 stored task, got %d", len(stored))
	}

	isDuplicate, duplicateID, err := tasks.CheckDuplicate("hash-1")
	if err != nil {
		t.Fatal(err)
	}
	if !isDuplicate || duplicateID == nil || *duplicateID != stored[0].ID {
		t.Errorf("Expected duplicate %s, got %v (%v)", stored[0].ID, isDuplicate, duplicateID)
	}

	count, err := tasks.GetTaskCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 task, got %d", count)
	}
}
