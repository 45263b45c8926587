package schema

import "time"

// DateFormat is the calendar date representation used across inputs and outputs.
const DateFormat = "2006-01-02"

// NormalizeDate truncates a timestamp to midnight UTC. All purchase dates are
// calendar dates with no timezone ambiguity, so day arithmetic stays exact.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Ratio returns n/d as a pointer, or nil when d is zero. The nil return is
// the explicit "undefined rate" sentinel used in comparison rows.
func Ratio(n, d int) *float64 {
	if d == 0 {
		return nil
	}
	v := float64(n) / float64(d)
	return &v
}

// DaysBetween returns the whole number of days from a to b, assuming both are
// normalized calendar dates.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
