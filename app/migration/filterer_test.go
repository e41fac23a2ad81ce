package migration

import (
	"strings"
	"testing"

	"github.com/lysyi3m/reminders-comb/app/config"
	"github.com/lysyi3m/reminders-comb/app/reminder"
)

func TestContentFilterer_NoFilters(t *testing.T) {
	filterer := NewContentFilterer()

	isFiltered, reason := filterer.Run(reminder.Task{Title: "Pay rent"}, "every 1 month at 9am starting on the 1st", nil)

	if isFiltered {
		t.Errorf("Task should not be filtered when no filters are configured")
	}
	if reason != "" {
		t.Errorf("Expected empty filter reason, got: %s", reason)
	}
}

func TestContentFilterer_TitleInclude(t *testing.T) {
	filterer := NewContentFilterer()

	filters := []config.Filter{
		{Field: "title", Includes: []string{"rent", "bills"}},
	}

	tests := []struct {
		title    string
		filtered bool
	}{
		{"Pay RENT", false},
		{"Bills due", false},
		{"Call mum", true},
	}

	for _, tt := range tests {
		isFiltered, reason := filterer.Run(reminder.Task{Title: tt.title}, "", filters)
		if isFiltered != tt.filtered {
			t.Errorf("Title %q: expected filtered=%v, got %v (%s)", tt.title, tt.filtered, isFiltered, reason)
		}
		if isFiltered && !strings.Contains(reason, "does not contain any of") {
			t.Errorf("Unexpected reason for %q: %s", tt.title, reason)
		}
	}
}

func TestContentFilterer_ExcludeWinsOverInclude(t *testing.T) {
	filterer := NewContentFilterer()

	filters := []config.Filter{
		{Field: "title", Includes: []string{"pay"}, Excludes: []string{"test"}},
	}

	isFiltered, reason := filterer.Run(reminder.Task{Title: "Pay test invoice"}, "", filters)
	if !isFiltered {
		t.Fatalf("Expected task to be filtered")
	}
	if reason != "Excluded by title filter: contains 'test'" {
		t.Errorf("Unexpected reason: %s", reason)
	}
}

func TestContentFilterer_DateAndState(t *testing.T) {
	filterer := NewContentFilterer()

	dateFilters := []config.Filter{{Field: "date", Excludes: []string{"every"}}}
	if isFiltered, _ := filterer.Run(reminder.Task{Title: "a"}, "every 1 days at 9am", dateFilters); !isFiltered {
		t.Errorf("Expected recurring phrase to be excluded by date filter")
	}
	if isFiltered, _ := filterer.Run(reminder.Task{Title: "a"}, "2030-01-01 09:00", dateFilters); isFiltered {
		t.Errorf("Expected one-off date to pass date filter")
	}

	stateFilters := []config.Filter{{Field: "state", Includes: []string{"upcoming"}}}
	if isFiltered, _ := filterer.Run(reminder.Task{Title: "a", State: reminder.StateActive}, "", stateFilters); !isFiltered {
		t.Errorf("Expected active task to be excluded by state filter")
	}
	if isFiltered, _ := filterer.Run(reminder.Task{Title: "a", State: reminder.StateUpcoming}, "", stateFilters); isFiltered {
		t.Errorf("Expected upcoming task to pass state filter")
	}
}
