package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the wire format for calendar dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ClockLayout is the wire format for time-of-day values (HH:MM).
const ClockLayout = "15:04"

// clockTimeRegex matches time-of-day strings in HH:MM format.
var clockTimeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into a midnight-UTC time.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// ValidClockTime reports whether a string is a well-formed HH:MM value.
func ValidClockTime(value string) bool {
	return clockTimeRegex.MatchString(value)
}

// ClockTimeBefore reports whether HH:MM value a is strictly earlier than b.
// Both arguments must be well-formed; malformed input returns false.
func ClockTimeBefore(a, b string) bool {
	ta, errA := time.Parse(ClockLayout, a)
	tb, errB := time.Parse(ClockLayout, b)
	if errA != nil || errB != nil {
		return false
	}
	return ta.Before(tb)
}
