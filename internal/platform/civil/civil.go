// Package civil handles calendar dates in the YYYY-MM-DD form used by every
// persisted record. Dates are interpreted in UTC so day arithmetic never
// crosses a daylight-saving boundary.
package civil

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

const day = 24 * time.Hour

func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// AddDays shifts date by n days (n may be negative).
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// DaysBetween returns the number of whole days from a to b (b - a).
func DaysBetween(a, b string) (int, error) {
	ta, err := Parse(a)
	if err != nil {
		return 0, err
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta) / day), nil
}

// Midpoint returns the date halfway between start and end, rounded down.
func Midpoint(start, end string) (string, error) {
	n, err := DaysBetween(start, end)
	if err != nil {
		return "", err
	}
	half := n / 2
	if n < 0 && n%2 != 0 {
		half--
	}
	return AddDays(start, half)
}

// WeekStart returns the Sunday on or before date.
func WeekStart(date string) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, -int(t.Weekday()))), nil
}

// Display renders date as "Mar 11, 2024". Unparseable input is returned as is.
func Display(date string) string {
	t, err := Parse(date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}
