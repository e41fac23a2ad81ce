package reminder

import (
	"time"
)

// Record types

// Value is a field value: either plain text or a nested sub-record.
type Value struct {
	Text string
	Sub  Fields
}

func (v Value) IsNested() bool {
	return v.Sub != nil
}

// Fields maps a record's labels to their values.
type Fields map[string]Value

// Enumerations

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

type State string

const (
	StateActive   State = "active"
	StateUpcoming State = "upcoming"
	StateArchived State = "archived"
)

// Task types

// Task is one reminder record in typed form.
type Task struct {
	Title      string
	Created    time.Time
	State      State
	Due        *time.Time
	Recurrence *Recurrence
}

// Recurrence mirrors the loosely-typed "Recurrence info" sub-record.
// Monthly recurrences are expected to carry exactly one of DayOfWeek and
// DayOfMonth; Rule enforces that.
type Recurrence struct {
	Frequency  Frequency
	Start      time.Time
	End        time.Time
	Every      int
	Hour       int
	DayOfMonth *int
	DayOfWeek  *time.Weekday
	Month      *time.Month
	WeekdayNum *int // 1 for first, -1 for last
}

// Rule is one supported recurrence shape; Recurrence.Rule selects it.
type Rule interface {
	Frequency() Frequency
	phrase() string
}

// Daily repeats every Every days at Hour.
type Daily struct {
	Every int
	Hour  int
}

// Weekly repeats each week on Day at Hour.
type Weekly struct {
	Day  time.Weekday
	Hour int
}

// MonthlyByWeekday repeats on the Nth Day of each month; Nth -1 is the last.
type MonthlyByWeekday struct {
	Nth  int
	Day  time.Weekday
	Hour int
}

// MonthlyByDay repeats every Every months on day Day.
type MonthlyByDay struct {
	Every int
	Day   int
	Hour  int
}

// Yearly repeats each year on Month/Day.
type Yearly struct {
	Month time.Month
	Day   int
	Hour  int
}

func (Daily) Frequency() Frequency            { return FrequencyDaily }
func (Weekly) Frequency() Frequency           { return FrequencyWeekly }
func (MonthlyByWeekday) Frequency() Frequency { return FrequencyMonthly }
func (MonthlyByDay) Frequency() Frequency     { return FrequencyMonthly }
func (Yearly) Frequency() Frequency           { return FrequencyYearly }
