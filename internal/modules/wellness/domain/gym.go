package domain

import (
	"sort"

	"aria/internal/platform/civil"
)

// streakLookback bounds how far back the current streak is walked.
const streakLookback = 60

type GymEntry struct {
	Date  string `json:"date"`
	DidGo bool   `json:"didGo"`
}

type GymStats struct {
	CurrentStreak int `json:"currentStreak"`
	BestStreak    int `json:"bestStreak"`
	ThisWeek      int `json:"thisWeek"`
}

// UpsertGym keeps one entry per date; a later log for the same date wins.
func UpsertGym(log []GymEntry, entry GymEntry) []GymEntry {
	out := append([]GymEntry{}, log...)
	for i := range out {
		if out[i].Date == entry.Date {
			out[i] = entry
			return out
		}
	}
	return append(out, entry)
}

// ComputeGymStats derives streaks from the log. A day without an entry breaks
// a streak exactly like an explicit skip, for both the current and the best
// streak.
func ComputeGymStats(log []GymEntry, today string) GymStats {
	byDate := make(map[string]bool, len(log))
	for _, e := range log {
		if civil.Valid(e.Date) {
			byDate[e.Date] = e.DidGo
		}
	}
	return GymStats{
		CurrentStreak: currentStreak(byDate, today),
		BestStreak:    bestStreak(byDate),
		ThisWeek:      thisWeek(byDate, today),
	}
}

func currentStreak(byDate map[string]bool, today string) int {
	streak := 0
	day := today
	for i := 0; i < streakLookback; i++ {
		didGo, ok := byDate[day]
		if !ok || !didGo {
			break
		}
		streak++
		prev, err := civil.AddDays(day, -1)
		if err != nil {
			break
		}
		day = prev
	}
	return streak
}

func bestStreak(byDate map[string]bool) int {
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	best, run, prev := 0, 0, ""
	for _, date := range dates {
		if !byDate[date] {
			run, prev = 0, date
			continue
		}
		if run > 0 && consecutive(prev, date) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
		prev = date
	}
	return best
}

func thisWeek(byDate map[string]bool, today string) int {
	start, err := civil.WeekStart(today)
	if err != nil {
		return 0
	}
	count := 0
	for date, didGo := range byDate {
		if didGo && date >= start {
			count++
		}
	}
	return count
}

func consecutive(a, b string) bool {
	n, err := civil.DaysBetween(a, b)
	return err == nil && n == 1
}
