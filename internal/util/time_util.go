package util

import (
	"fmt"
	"time"
)

const layout = "2006-01-02"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO 8601 calendar date (YYYY-MM-DD)
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected date as YYYY-MM-DD, got %q", s)
	}
	return d, nil
}

func FormatDate(t time.Time) string {
	return t.Format(layout)
}

// Today returns the current calendar date in UTC
func Today(now time.Time) time.Time {
	now = now.UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}
