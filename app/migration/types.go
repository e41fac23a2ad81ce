package migration

import (
	"time"

	"github.com/lysyi3m/reminders-comb/app/export"
)

type Entry struct {
	Row         export.Row
	Due         *time.Time
	Recurring   bool
	ContentHash string
}

type Skip struct {
	Content string `json:"content"`
	Reason  string `json:"reason"`
}

type Result struct {
	Source   string
	RunID    string // Set once the result is committed to the ledger
	Total    int    // Records found in the document
	Retained int    // Tasks kept by the state/due filter
	Entries  []Entry
	Skipped  []Skip // Retained tasks dropped by content filters or deduplication
}

func (r *Result) Rows() []export.Row {
	rows := make([]export.Row, 0, len(r.Entries))
	for _, e := range r.Entries {
		rows = append(rows, e.Row)
	}
	return rows
}
