package reminder

import (
	"slices"
)

// SurveyMaxDistinct drops labels that look free-form (titles, timestamps).
const SurveyMaxDistinct = 30

// Survey lists, per section, the distinct values seen for each label.
type Survey struct {
	Task       map[string][]string `yaml:"task"`
	Recurrence map[string][]string `yaml:"recurrence"`
	Location   map[string][]string `yaml:"location"`
}

func NewSurvey(records []Fields) Survey {
	task := make(map[string]map[string]struct{})
	recurrence := make(map[string]map[string]struct{})
	location := make(map[string]map[string]struct{})

	for _, fields := range records {
		for key, v := range fields {
			switch {
			case key == LabelRecurrence && v.IsNested():
				collect(recurrence, v.Sub)
			case key == LabelLocation && v.IsNested():
				collect(location, v.Sub)
			case !v.IsNested():
				add(task, key, v.Text)
			}
		}
	}

	return Survey{
		Task:       chop(task),
		Recurrence: chop(recurrence),
		Location:   chop(location),
	}
}

func collect(dst map[string]map[string]struct{}, fields Fields) {
	for key, v := range fields {
		if !v.IsNested() {
			add(dst, key, v.Text)
		}
	}
}

func add(dst map[string]map[string]struct{}, key, value string) {
	if dst[key] == nil {
		dst[key] = make(map[string]struct{})
	}
	dst[key][value] = struct{}{}
}

func chop(src map[string]map[string]struct{}) map[string][]string {
	out := make(map[string][]string, len(src))
	for key, values := range src {
		if len(values) >= SurveyMaxDistinct {
			continue
		}
		list := make([]string, 0, len(values))
		for v := range values {
			list = append(list, v)
		}
		slices.Sort(list)
		out[key] = list
	}
	return out
}
