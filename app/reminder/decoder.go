package reminder

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const unspecified = "unspecified"

var ordinalPattern = regexp.MustCompile(`^\[(\d+)\]$`)

var weekdays = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
}

var months = map[string]time.Month{
	"January":   time.January,
	"February":  time.February,
	"March":     time.March,
	"April":     time.April,
	"May":       time.May,
	"June":      time.June,
	"July":      time.July,
	"August":    time.August,
	"September": time.September,
	"October":   time.October,
	"November":  time.November,
	"December":  time.December,
}

// DecodeTimestamp converts a millisecond epoch string into a local time,
// truncated to whole seconds. "unspecified" yields nil.
func DecodeTimestamp(field, raw string) (*time.Time, error) {
	if raw == unspecified {
		return nil, nil
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, formatError(field, raw, err)
	}

	t := time.Unix(ms/1000, 0).In(time.Local)
	return &t, nil
}

// EncodeTimestamp is the inverse of DecodeTimestamp at second resolution.
func EncodeTimestamp(t time.Time) string {
	return strconv.FormatInt(t.Unix()*1000, 10)
}

// DecodeOrdinal parses the bracketed form used for day numbers: "[]" yields
// nil, "[5]" yields 5.
func DecodeOrdinal(field, raw string) (*int, error) {
	if raw == "[]" {
		return nil, nil
	}

	m := ordinalPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, formatError(field, raw, fmt.Errorf("expected [<digits>]"))
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, formatError(field, raw, err)
	}
	return &n, nil
}

func DecodeInt(field, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, formatError(field, raw, err)
	}
	return n, nil
}

func ParseFrequency(field, raw string) (Frequency, error) {
	switch f := Frequency(raw); f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return f, nil
	}
	return "", formatError(field, raw, fmt.Errorf("unknown frequency"))
}

func ParseState(field, raw string) (State, error) {
	switch s := State(raw); s {
	case StateActive, StateUpcoming, StateArchived:
		return s, nil
	}
	return "", formatError(field, raw, fmt.Errorf("unknown state"))
}

func ParseWeekday(field, raw string) (time.Weekday, error) {
	d, ok := weekdays[raw]
	if !ok {
		return 0, formatError(field, raw, fmt.Errorf("unknown weekday"))
	}
	return d, nil
}

func ParseMonth(field, raw string) (time.Month, error) {
	m, ok := months[raw]
	if !ok {
		return 0, formatError(field, raw, fmt.Errorf("unknown month"))
	}
	return m, nil
}
