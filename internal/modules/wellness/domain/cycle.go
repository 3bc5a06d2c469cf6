package domain

import (
	"encoding/json"
	"math"
	"sort"

	"aria/internal/platform/civil"
)

const (
	DefaultCycleLength = 28
	// gaps outside (minGap, maxGap) are treated as missed logs, not cycles.
	minGap      = 10
	maxGap      = 60
	gapsToAvg   = 3
	pmsFromDays = -2
	pmsToDays   = 7
	periodDays  = 5
)

type PeriodEntry struct {
	ID        string `json:"id"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
}

func (p PeriodEntry) Open() bool {
	return p.EndDate == ""
}

type Phase string

const (
	PhaseMenstruation Phase = "Menstruation"
	PhaseFollicular   Phase = "Follicular"
	PhaseOvulation    Phase = "Ovulation"
	PhaseLuteal       Phase = "Luteal"
	PhasePMS          Phase = "PMS Week"
)

// CycleContext is the prediction derived from the period log. An unknown
// context (no entries) serializes as {}.
type CycleContext struct {
	Known         bool
	LastStart     string
	NextPredicted string
	DaysUntilNext int
	AvgCycle      int
	IsPMS         bool
	Phase         Phase
}

type cycleJSON struct {
	LastStart     string `json:"lastStart"`
	NextPredicted string `json:"nextPredicted"`
	DaysUntilNext int    `json:"daysUntilNext"`
	AvgCycle      int    `json:"avgCycle"`
	IsPMS         bool   `json:"isPMS"`
	Phase         Phase  `json:"phase,omitempty"`
}

func (c CycleContext) MarshalJSON() ([]byte, error) {
	if !c.Known {
		return []byte("{}"), nil
	}
	return json.Marshal(cycleJSON{
		LastStart:     c.LastStart,
		NextPredicted: c.NextPredicted,
		DaysUntilNext: c.DaysUntilNext,
		AvgCycle:      c.AvgCycle,
		IsPMS:         c.IsPMS,
		Phase:         c.Phase,
	})
}

func (c *CycleContext) UnmarshalJSON(raw []byte) error {
	var v cycleJSON
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*c = CycleContext{
		Known:         v.LastStart != "",
		LastStart:     v.LastStart,
		NextPredicted: v.NextPredicted,
		DaysUntilNext: v.DaysUntilNext,
		AvgCycle:      v.AvgCycle,
		IsPMS:         v.IsPMS,
		Phase:         v.Phase,
	}
	return nil
}

// PredictCycle averages up to three of the most recent inter-start gaps.
func PredictCycle(log []PeriodEntry, today string) CycleContext {
	starts := startsNewestFirst(log)
	if len(starts) == 0 {
		return CycleContext{}
	}
	avg := DefaultCycleLength
	sum, n := 0, 0
	for i := 0; i < len(starts)-1 && i < gapsToAvg; i++ {
		gap, err := civil.DaysBetween(starts[i+1], starts[i])
		if err != nil || gap <= minGap || gap >= maxGap {
			continue
		}
		sum += gap
		n++
	}
	if n > 0 {
		avg = int(math.Round(float64(sum) / float64(n)))
	}

	last := starts[0]
	next, err := civil.AddDays(last, avg)
	if err != nil {
		return CycleContext{}
	}
	daysUntil, err := civil.DaysBetween(today, next)
	if err != nil {
		return CycleContext{}
	}
	return CycleContext{
		Known:         true,
		LastStart:     last,
		NextPredicted: next,
		DaysUntilNext: daysUntil,
		AvgCycle:      avg,
		IsPMS:         daysUntil >= pmsFromDays && daysUntil <= pmsToDays,
		Phase:         phaseOn(last, avg, today),
	}
}

func phaseOn(lastStart string, cycle int, today string) Phase {
	elapsed, err := civil.DaysBetween(lastStart, today)
	if err != nil || cycle <= 0 {
		return ""
	}
	day := elapsed % cycle
	if day < 0 {
		day += cycle
	}
	switch {
	case day < periodDays:
		return PhaseMenstruation
	case day < 14:
		return PhaseFollicular
	case day < 16:
		return PhaseOvulation
	case day < 22:
		return PhaseLuteal
	default:
		return PhasePMS
	}
}

func startsNewestFirst(log []PeriodEntry) []string {
	starts := make([]string, 0, len(log))
	for _, e := range log {
		if civil.Valid(e.StartDate) {
			starts = append(starts, e.StartDate)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(starts)))
	return starts
}

func hasStart(log []PeriodEntry, date string) bool {
	for _, e := range log {
		if e.StartDate == date {
			return true
		}
	}
	return false
}

// StartPeriod prepends a new open entry unless one already starts on date.
func StartPeriod(log []PeriodEntry, entry PeriodEntry) ([]PeriodEntry, bool) {
	if hasStart(log, entry.StartDate) {
		return log, false
	}
	out := make([]PeriodEntry, 0, len(log)+1)
	out = append(out, entry)
	return append(out, log...), true
}

// AddHistorical appends a past entry unless its start date is already logged.
func AddHistorical(log []PeriodEntry, entry PeriodEntry) ([]PeriodEntry, bool) {
	if hasStart(log, entry.StartDate) {
		return log, false
	}
	return append(append([]PeriodEntry{}, log...), entry), true
}

// EndPeriod closes the most recent entry (latest start date) if it is still
// open. Older open entries are never touched.
func EndPeriod(log []PeriodEntry, endDate string) ([]PeriodEntry, *PeriodEntry) {
	latest := -1
	for i, e := range log {
		if latest < 0 || e.StartDate > log[latest].StartDate {
			latest = i
		}
	}
	if latest < 0 || !log[latest].Open() {
		return log, nil
	}
	out := append([]PeriodEntry{}, log...)
	out[latest].EndDate = endDate
	closed := out[latest]
	return out, &closed
}
