// Package datetime holds day-granularity date math used by the rental rules.
//
// All day differences work on civil dates: the year/month/day a time.Time
// carries in its own location, reinterpreted as UTC midnight. Time of day and
// zone offsets never leak into a day count.
package datetime

import (
	"fmt"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// AddDays shifts t by n calendar days keeping its wall clock and location.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// SubtractDays shifts t back by n calendar days.
func SubtractDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, -n)
}

// DaysBetween returns the signed number of calendar days from b to a, exact
// for spans longer than time.Duration can hold.
func DaysBetween(a, b time.Time) int {
	return int((civil(a).Unix() - civil(b).Unix()) / secondsPerDay)
}

// RemainingDays is DaysBetween(target, now): positive while target is ahead,
// zero on the day itself, negative once it has passed.
func RemainingDays(target, now time.Time) int {
	return DaysBetween(target, now)
}

// IsSameCalendarDay reports whether a and b format to the same YYYY-MM-DD.
func IsSameCalendarDay(a, b time.Time) bool {
	return FormatDateISO(a) == FormatDateISO(b)
}

// FormatDateISO formats t as zero padded YYYY-MM-DD using its own components.
func FormatDateISO(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// ParseDate accepts YYYY-MM-DD (interpreted in loc) or RFC 3339.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t.In(loc), nil
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
