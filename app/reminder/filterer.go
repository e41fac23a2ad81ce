package reminder

import (
	"time"
)

// Filterer selects the tasks to migrate.
type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run keeps the tasks worth migrating: not archived, and either recurring or
// due strictly after now. Input order is preserved.
func (f *Filterer) Run(tasks []Task, now time.Time) []Task {
	kept := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Keep(task, now) {
			kept = append(kept, task)
		}
	}
	return kept
}

func (f *Filterer) Keep(task Task, now time.Time) bool {
	if task.State == StateArchived {
		return false
	}
	if task.Recurrence != nil {
		return true
	}
	return task.Due != nil && task.Due.After(now)
}
