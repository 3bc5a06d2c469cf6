package civil_test

import (
	"testing"

	"aria/internal/platform/civil"
)

func TestDaysBetweenAndAddDays(t *testing.T) {
	t.Parallel()
	n, err := civil.DaysBetween("2024-01-01", "2024-01-29")
	if err != nil {
		t.Fatalf("days between: %v", err)
	}
	if n != 28 {
		t.Fatalf("expected 28 days, got %d", n)
	}
	next, err := civil.AddDays("2024-01-29", 28)
	if err != nil {
		t.Fatalf("add days: %v", err)
	}
	if next != "2024-02-26" {
		t.Fatalf("expected 2024-02-26, got %s", next)
	}
	back, _ := civil.DaysBetween("2024-03-10", "2024-03-01")
	if back != -9 {
		t.Fatalf("expected -9, got %d", back)
	}
}

func TestMidpointRoundsDown(t *testing.T) {
	t.Parallel()
	cases := []struct {
		start, end, want string
	}{
		{"2024-01-01", "2024-01-11", "2024-01-06"},
		{"2024-01-01", "2024-01-04", "2024-01-02"},
		{"2024-01-05", "2024-01-05", "2024-01-05"},
		{"2024-01-10", "2024-01-07", "2024-01-08"},
	}
	for _, tc := range cases {
		got, err := civil.Midpoint(tc.start, tc.end)
		if err != nil {
			t.Fatalf("midpoint %s..%s: %v", tc.start, tc.end, err)
		}
		if got != tc.want {
			t.Fatalf("midpoint %s..%s: expected %s, got %s", tc.start, tc.end, tc.want, got)
		}
	}
}

func TestWeekStartAndValidation(t *testing.T) {
	t.Parallel()
	got, err := civil.WeekStart("2024-01-03")
	if err != nil {
		t.Fatalf("week start: %v", err)
	}
	if got != "2023-12-31" {
		t.Fatalf("expected Sunday 2023-12-31, got %s", got)
	}
	if civil.Valid("2024-13-01") || civil.Valid("") {
		t.Fatalf("expected malformed dates to be rejected")
	}
	if _, err := civil.AddDays("yesterday", 1); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()
	if got := civil.Display("2024-03-09"); got != "Mar 9, 2024" {
		t.Fatalf("display = %q", got)
	}
	if got := civil.Display("soon"); got != "soon" {
		t.Fatalf("display passthrough = %q", got)
	}
}
