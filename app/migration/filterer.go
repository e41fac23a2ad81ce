package migration

import (
	"fmt"
	"strings"

	"github.com/lysyi3m/reminders-comb/app/config"
	"github.com/lysyi3m/reminders-comb/app/reminder"
)

// ContentFilterer applies the include/exclude rules from the settings file.
type ContentFilterer struct{}

func NewContentFilterer() *ContentFilterer {
	return &ContentFilterer{}
}

func (f *ContentFilterer) Run(task reminder.Task, phrase string, filters []config.Filter) (bool, string) {
	for _, filter := range filters {
		value := f.getFieldValue(task, phrase, filter.Field)

		for _, exclude := range filter.Excludes {
			if f.matchesFilter(value, exclude) {
				return true, fmt.Sprintf("Excluded by %s filter: contains '%s'", filter.Field, exclude)
			}
		}

		if len(filter.Includes) > 0 {
			matched := false
			for _, include := range filter.Includes {
				if f.matchesFilter(value, include) {
					matched = true
					break
				}
			}
			if !matched {
				return true, fmt.Sprintf("Excluded by %s filter: does not contain any of %v", filter.Field, filter.Includes)
			}
		}
	}

	return false, ""
}

func (f *ContentFilterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func (f *ContentFilterer) getFieldValue(task reminder.Task, phrase, field string) string {
	switch field {
	case "title":
		return task.Title
	case "date":
		return phrase
	case "state":
		return string(task.State)
	default:
		return ""
	}
}
