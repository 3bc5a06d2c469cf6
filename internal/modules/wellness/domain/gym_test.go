package domain_test

import (
	"testing"

	"aria/internal/modules/wellness/domain"
)

func TestCurrentStreakStopsAtExplicitSkip(t *testing.T) {
	t.Parallel()
	log := []domain.GymEntry{
		{Date: "2024-01-01", DidGo: true},
		{Date: "2024-01-02", DidGo: true},
		{Date: "2024-01-03", DidGo: false},
	}
	if got := domain.ComputeGymStats(log, "2024-01-03").CurrentStreak; got != 0 {
		t.Fatalf("today skipped: streak = %d", got)
	}
	if got := domain.ComputeGymStats(log, "2024-01-02").CurrentStreak; got != 2 {
		t.Fatalf("today 2024-01-02: streak = %d", got)
	}
}

func TestMissingDayBreaksBothStreaks(t *testing.T) {
	t.Parallel()
	log := []domain.GymEntry{
		{Date: "2024-01-01", DidGo: true},
		{Date: "2024-01-02", DidGo: true},
		{Date: "2024-01-04", DidGo: true},
		{Date: "2024-01-05", DidGo: true},
		{Date: "2024-01-06", DidGo: true},
	}
	stats := domain.ComputeGymStats(log, "2024-01-06")
	if stats.CurrentStreak != 3 {
		t.Fatalf("current = %d", stats.CurrentStreak)
	}
	if stats.BestStreak != 3 {
		t.Fatalf("best = %d, a gap must reset the run", stats.BestStreak)
	}
	if got := domain.ComputeGymStats(log, "2024-01-07").CurrentStreak; got != 0 {
		t.Fatalf("no entry today: streak = %d", got)
	}
}

func TestCurrentStreakIsBounded(t *testing.T) {
	t.Parallel()
	log := []domain.GymEntry{}
	day := "2024-01-01"
	for i := 0; i < 90; i++ {
		log = append(log, domain.GymEntry{Date: day, DidGo: true})
		day = nextDay(t, day)
	}
	stats := domain.ComputeGymStats(log, "2024-03-30")
	if stats.CurrentStreak != 60 {
		t.Fatalf("current = %d", stats.CurrentStreak)
	}
	if stats.BestStreak != 90 {
		t.Fatalf("best = %d", stats.BestStreak)
	}
}

func TestThisWeekCountsFromSunday(t *testing.T) {
	t.Parallel()
	log := []domain.GymEntry{
		{Date: "2023-12-30", DidGo: true},
		{Date: "2023-12-31", DidGo: true},
		{Date: "2024-01-01", DidGo: false},
		{Date: "2024-01-02", DidGo: true},
	}
	if got := domain.ComputeGymStats(log, "2024-01-03").ThisWeek; got != 2 {
		t.Fatalf("this week = %d", got)
	}
}

func TestUpsertGymOverwritesSameDate(t *testing.T) {
	t.Parallel()
	log := domain.UpsertGym(nil, domain.GymEntry{Date: "2024-01-01", DidGo: false})
	log = domain.UpsertGym(log, domain.GymEntry{Date: "2024-01-01", DidGo: true})
	log = domain.UpsertGym(log, domain.GymEntry{Date: "2024-01-02", DidGo: true})
	if len(log) != 2 || !log[0].DidGo {
		t.Fatalf("log = %+v", log)
	}
}

func nextDay(t *testing.T, day string) string {
	t.Helper()
	d, err := addDay(day)
	if err != nil {
		t.Fatalf("add day: %v", err)
	}
	return d
}
