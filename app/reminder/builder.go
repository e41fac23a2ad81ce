package reminder

import (
	"fmt"
	"time"
)

// Field labels used by the export.
const (
	LabelTitle       = "Title"
	LabelCreated     = "Created time"
	LabelState       = "State"
	LabelDue         = "Due date"
	LabelRecurrence  = "Recurrence info"
	LabelLocation    = "Location"
	LabelFrequency   = "Frequency"
	LabelStart       = "Start"
	LabelEnd         = "End"
	LabelHour        = "Hour of day to fire"
	LabelEvery       = "Every"
	LabelWeekdayNum  = "Weekday number"
	LabelDayOfMonth  = "Day number of month"
	LabelDayOfWeek   = "Day of week"
	LabelMonthOfYear = "Month of year"
)

// Builder turns a walked record into a Task.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Run assembles a Task from one record. Cross-field consistency of the
// recurrence is left to Recurrence.Rule.
func (b *Builder) Run(fields Fields) (Task, error) {
	title, err := requireText(fields, LabelTitle)
	if err != nil {
		return Task{}, err
	}

	rawCreated, err := requireText(fields, LabelCreated)
	if err != nil {
		return Task{}, err
	}
	created, err := requireTimestamp(LabelCreated, rawCreated)
	if err != nil {
		return Task{}, err
	}

	rawState, err := requireText(fields, LabelState)
	if err != nil {
		return Task{}, err
	}
	state, err := ParseState(LabelState, rawState)
	if err != nil {
		return Task{}, err
	}

	task := Task{
		Title:   title,
		Created: created,
		State:   state,
	}

	if raw, ok, err := optionalText(fields, LabelDue); err != nil {
		return Task{}, err
	} else if ok {
		if task.Due, err = DecodeTimestamp(LabelDue, raw); err != nil {
			return Task{}, err
		}
	}

	if v, ok := fields[LabelRecurrence]; ok {
		if !v.IsNested() {
			return Task{}, fmt.Errorf("%w: %q is not a sub-record", ErrStructuralDefect, LabelRecurrence)
		}
		rec, err := b.buildRecurrence(v.Sub)
		if err != nil {
			return Task{}, fmt.Errorf("%s: %w", LabelRecurrence, err)
		}
		task.Recurrence = rec
	}

	return task, nil
}

func (b *Builder) buildRecurrence(fields Fields) (*Recurrence, error) {
	rawFreq, err := requireText(fields, LabelFrequency)
	if err != nil {
		return nil, err
	}
	freq, err := ParseFrequency(LabelFrequency, rawFreq)
	if err != nil {
		return nil, err
	}

	rawStart, err := requireText(fields, LabelStart)
	if err != nil {
		return nil, err
	}
	start, err := requireTimestamp(LabelStart, rawStart)
	if err != nil {
		return nil, err
	}

	rawEnd, err := requireText(fields, LabelEnd)
	if err != nil {
		return nil, err
	}
	end, err := requireTimestamp(LabelEnd, rawEnd)
	if err != nil {
		return nil, err
	}

	rawHour, err := requireText(fields, LabelHour)
	if err != nil {
		return nil, err
	}
	hour, err := DecodeInt(LabelHour, rawHour)
	if err != nil {
		return nil, err
	}
	if hour < 0 || hour > 23 {
		return nil, formatError(LabelHour, rawHour, fmt.Errorf("hour out of range 0-23"))
	}

	rec := &Recurrence{
		Frequency: freq,
		Start:     start,
		End:       end,
		Every:     1,
		Hour:      hour,
	}

	if raw, ok, err := optionalText(fields, LabelEvery); err != nil {
		return nil, err
	} else if ok {
		if rec.Every, err = DecodeInt(LabelEvery, raw); err != nil {
			return nil, err
		}
		if rec.Every < 1 {
			return nil, formatError(LabelEvery, raw, fmt.Errorf("interval must be positive"))
		}
	}

	if raw, ok, err := optionalText(fields, LabelWeekdayNum); err != nil {
		return nil, err
	} else if ok {
		n, err := DecodeInt(LabelWeekdayNum, raw)
		if err != nil {
			return nil, err
		}
		rec.WeekdayNum = &n
	}

	if raw, ok, err := optionalText(fields, LabelDayOfMonth); err != nil {
		return nil, err
	} else if ok {
		if rec.DayOfMonth, err = DecodeOrdinal(LabelDayOfMonth, raw); err != nil {
			return nil, err
		}
		if d := rec.DayOfMonth; d != nil && (*d < 1 || *d > 31) {
			return nil, formatError(LabelDayOfMonth, raw, fmt.Errorf("day out of range 1-31"))
		}
	}

	if raw, ok, err := optionalText(fields, LabelDayOfWeek); err != nil {
		return nil, err
	} else if ok {
		d, err := ParseWeekday(LabelDayOfWeek, raw)
		if err != nil {
			return nil, err
		}
		rec.DayOfWeek = &d
	}

	if raw, ok, err := optionalText(fields, LabelMonthOfYear); err != nil {
		return nil, err
	} else if ok {
		m, err := ParseMonth(LabelMonthOfYear, raw)
		if err != nil {
			return nil, err
		}
		rec.Month = &m
	}

	return rec, nil
}

func requireText(fields Fields, label string) (string, error) {
	raw, ok, err := optionalText(fields, label)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", missingField(label)
	}
	return raw, nil
}

func optionalText(fields Fields, label string) (string, bool, error) {
	v, ok := fields[label]
	if !ok {
		return "", false, nil
	}
	if v.IsNested() {
		return "", false, fmt.Errorf("%w: %q holds a sub-record, want text", ErrStructuralDefect, label)
	}
	return v.Text, true, nil
}

func requireTimestamp(label, raw string) (time.Time, error) {
	t, err := DecodeTimestamp(label, raw)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, missingField(label)
	}
	return *t, nil
}
