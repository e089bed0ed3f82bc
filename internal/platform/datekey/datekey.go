package datekey

import (
	"fmt"
	"regexp"
	"time"
)

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Day returns the calendar-day key (local timezone) for t, e.g. "2026-03-10".
func Day(t time.Time) string {
	return t.Format("2006-01-02")
}

// Week returns the ISO-8601 week identifier for t, e.g. "2026-W11".
func Week(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// WeekOfDay derives the ISO week identifier from a day key.
func WeekOfDay(day string) (string, error) {
	t, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		return "", fmt.Errorf("parse day key %q: %w", day, err)
	}
	return Week(t), nil
}

// ValidDay reports whether s is a well-formed day key.
func ValidDay(s string) bool {
	if !dayPattern.MatchString(s) {
		return false
	}
	_, err := time.ParseInLocation("2006-01-02", s, time.Local)
	return err == nil
}
