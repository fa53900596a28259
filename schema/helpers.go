package schema

import "time"

// DateFormat is the ISO date representation used throughout.
const DateFormat = "2006-01-02"

// DateOnly truncates a timestamp to date precision in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a UTC date from its components.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole days from a to b at date precision.
// Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// ParseDate parses an ISO date string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// FormatDate renders a date in ISO form.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// DatePtr returns a pointer to the given date. Test and loader convenience.
func DatePtr(t time.Time) *time.Time {
	d := DateOnly(t)
	return &d
}
