package datekey_test

import (
	"testing"
	"time"

	"bioq/internal/platform/datekey"
)

func TestDayAndWeekKeys(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local)
	if got := datekey.Day(at); got != "2026-03-10" {
		t.Fatalf("day key: got %s", got)
	}
	if got := datekey.Week(at); got != "2026-W11" {
		t.Fatalf("week key: got %s", got)
	}
}

func TestWeekUsesISOYearAtBoundaries(t *testing.T) {
	t.Parallel()
	// 2025-12-29 is a Monday that ISO-8601 assigns to week 1 of 2026.
	if got := datekey.Week(time.Date(2025, 12, 29, 12, 0, 0, 0, time.Local)); got != "2026-W01" {
		t.Fatalf("ISO year boundary: got %s", got)
	}
}

func TestWeekOfDay(t *testing.T) {
	t.Parallel()
	week, err := datekey.WeekOfDay("2026-03-10")
	if err != nil {
		t.Fatalf("week of day: %v", err)
	}
	if week != "2026-W11" {
		t.Fatalf("week of day: got %s", week)
	}
	if _, err := datekey.WeekOfDay("10/03/2026"); err == nil {
		t.Fatalf("malformed day key must fail")
	}
}

func TestValidDay(t *testing.T) {
	t.Parallel()
	cases := map[string]bool{
		"2026-03-10": true,
		"2026-3-10":  false,
		"2026-13-01": false,
		"not-a-day":  false,
		"":           false,
	}
	for input, want := range cases {
		if got := datekey.ValidDay(input); got != want {
			t.Fatalf("ValidDay(%q) = %t, want %t", input, got, want)
		}
	}
}
