package reminder

import (
	"fmt"
	"strconv"
)

// DueLayout is the phrase layout for tasks with a plain due date.
const DueLayout = "2006-01-02 15:04"

// Renderer produces the date phrase for a Task.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Run returns the date phrase for a task. Recurring tasks render their rule,
// tasks with a due date render it at minute precision, and tasks with
// neither render an empty phrase.
func (r *Renderer) Run(task Task) (string, error) {
	if task.Recurrence != nil {
		rule, err := task.Recurrence.Rule()
		if err != nil {
			return "", err
		}
		return rule.phrase(), nil
	}

	if task.Due != nil {
		return task.Due.Local().Format(DueLayout), nil
	}

	return "", nil
}

// Rule classifies the recurrence into exactly one supported shape.
func (rec Recurrence) Rule() (Rule, error) {
	switch rec.Frequency {
	case FrequencyDaily:
		return Daily{Every: rec.Every, Hour: rec.Hour}, nil

	case FrequencyWeekly:
		if rec.Every != 1 {
			return nil, unsupported(rec, "weekly recurrence every %d weeks", rec.Every)
		}
		if rec.DayOfWeek == nil {
			return nil, unsupported(rec, "weekly recurrence without a day of week")
		}
		return Weekly{Day: *rec.DayOfWeek, Hour: rec.Hour}, nil

	case FrequencyMonthly:
		switch {
		case rec.DayOfWeek != nil && rec.DayOfMonth != nil:
			return nil, unsupported(rec, "monthly recurrence with both day of week and day of month")
		case rec.DayOfWeek != nil:
			if rec.Every != 1 {
				return nil, unsupported(rec, "monthly recurrence by weekday every %d months", rec.Every)
			}
			if rec.WeekdayNum == nil {
				return nil, unsupported(rec, "monthly recurrence by weekday without a weekday number")
			}
			if n := *rec.WeekdayNum; n != -1 && n < 1 {
				return nil, unsupported(rec, "weekday number %d", n)
			}
			return MonthlyByWeekday{Nth: *rec.WeekdayNum, Day: *rec.DayOfWeek, Hour: rec.Hour}, nil
		case rec.DayOfMonth != nil:
			return MonthlyByDay{Every: rec.Every, Day: *rec.DayOfMonth, Hour: rec.Hour}, nil
		default:
			return nil, unsupported(rec, "monthly recurrence without day of week or day of month")
		}

	case FrequencyYearly:
		if rec.Every != 1 {
			return nil, unsupported(rec, "yearly recurrence every %d years", rec.Every)
		}
		if rec.Month == nil || rec.DayOfMonth == nil {
			return nil, unsupported(rec, "yearly recurrence without month and day")
		}
		return Yearly{Month: *rec.Month, Day: *rec.DayOfMonth, Hour: rec.Hour}, nil
	}

	return nil, unsupported(rec, "frequency %q", rec.Frequency)
}

func (d Daily) phrase() string {
	return fmt.Sprintf("every %d days at %s", d.Every, FormatHour(d.Hour))
}

func (w Weekly) phrase() string {
	return fmt.Sprintf("every %s at %s", w.Day, FormatHour(w.Hour))
}

func (m MonthlyByWeekday) phrase() string {
	which := "last"
	if m.Nth != -1 {
		which = Ordinal(m.Nth)
	}
	return fmt.Sprintf("every %s %s at %s", which, m.Day, FormatHour(m.Hour))
}

func (m MonthlyByDay) phrase() string {
	return fmt.Sprintf("every %d month at %s starting on the %s", m.Every, FormatHour(m.Hour), Ordinal(m.Day))
}

func (y Yearly) phrase() string {
	return fmt.Sprintf("every %d/%d at %s", int(y.Month), y.Day, FormatHour(y.Hour))
}

// FormatHour renders a 0-23 hour on the informal 12-hour clock: 0 is 12am,
// 12 is 12pm.
func FormatHour(hour int) string {
	switch {
	case hour == 0:
		return "12am"
	case hour < 12:
		return strconv.Itoa(hour) + "am"
	case hour == 12:
		return "12pm"
	default:
		return strconv.Itoa(hour-12) + "pm"
	}
}

// Ordinal renders 1st, 2nd and 3rd; everything else takes "th" (21th).
func Ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	}
	return strconv.Itoa(n) + "th"
}

func unsupported(rec Recurrence, format string, args ...any) error {
	return fmt.Errorf("%w: %s (frequency %s)", ErrUnsupportedRecurrence, fmt.Sprintf(format, args...), rec.Frequency)
}
