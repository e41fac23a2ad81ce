package database

type RunRepository interface {
	RecordRun(run Run, tasks []ExportedTask) (string, error)
	GetRun(runID string) (*Run, error)
	GetRecentRuns(limit int) ([]Run, error)
	GetRunCount() (int, error)
}

type TaskRepository interface {
	CheckDuplicate(contentHash string) (bool, *string, error)
	GetRunTasks(runID string) ([]ExportedTask, error)
	GetTaskCount() (int, error)
}
