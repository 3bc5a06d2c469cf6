package domain_test

import (
	"encoding/json"
	"testing"

	"aria/internal/modules/wellness/domain"
	"aria/internal/platform/civil"
)

func addDay(day string) (string, error) {
	return civil.AddDays(day, 1)
}

func TestPredictCycleTwoStarts(t *testing.T) {
	t.Parallel()
	log := []domain.PeriodEntry{{ID: "a", StartDate: "2024-01-01"}, {ID: "b", StartDate: "2024-01-29"}}
	got := domain.PredictCycle(log, "2024-02-20")
	if !got.Known || got.NextPredicted != "2024-02-26" || got.AvgCycle != 28 {
		t.Fatalf("prediction = %+v", got)
	}
	if got.LastStart != "2024-01-29" || got.DaysUntilNext != 6 || !got.IsPMS {
		t.Fatalf("prediction = %+v", got)
	}
}

func TestPredictCycleFiltersImplausibleGaps(t *testing.T) {
	t.Parallel()
	log := []domain.PeriodEntry{
		{StartDate: "2024-04-20"},
		{StartDate: "2024-04-15"}, // 5-day gap, ignored
		{StartDate: "2024-03-16"}, // 30
		{StartDate: "2024-01-01"}, // 75, ignored
	}
	got := domain.PredictCycle(log, "2024-04-21")
	if got.AvgCycle != 30 {
		t.Fatalf("avg = %d", got.AvgCycle)
	}
	if got.NextPredicted != "2024-05-20" {
		t.Fatalf("next = %s", got.NextPredicted)
	}
}

func TestPredictCycleUsesThreeMostRecentGapsAndRounds(t *testing.T) {
	t.Parallel()
	log := []domain.PeriodEntry{
		{StartDate: "2024-01-01"}, // 50 days to the next start, beyond the last three gaps
		{StartDate: "2024-02-20"}, // 26
		{StartDate: "2024-03-17"}, // 26
		{StartDate: "2024-04-12"}, // 27
		{StartDate: "2024-05-09"},
	}
	if got := domain.PredictCycle(log, "2024-05-10").AvgCycle; got != 26 {
		t.Fatalf("avg = %d", got)
	}
}

func TestPredictCycleDefaults(t *testing.T) {
	t.Parallel()
	single := domain.PredictCycle([]domain.PeriodEntry{{StartDate: "2024-01-01"}}, "2024-01-05")
	if single.AvgCycle != domain.DefaultCycleLength || single.NextPredicted != "2024-01-29" {
		t.Fatalf("single = %+v", single)
	}
	if single.IsPMS {
		t.Fatalf("24 days out is not PMS")
	}
	empty := domain.PredictCycle(nil, "2024-01-05")
	raw, err := json.Marshal(empty)
	if err != nil || string(raw) != "{}" {
		t.Fatalf("unknown context = %s %v", raw, err)
	}
}

func TestPMSWindowBounds(t *testing.T) {
	t.Parallel()
	log := []domain.PeriodEntry{{StartDate: "2024-01-01"}}
	// predicted 2024-01-29
	cases := map[string]bool{
		"2024-01-21": false, // 8 days before
		"2024-01-22": true,  // 7 days before
		"2024-01-31": true,  // 2 days late
		"2024-02-01": false, // 3 days late
	}
	for today, want := range cases {
		if got := domain.PredictCycle(log, today).IsPMS; got != want {
			t.Fatalf("today %s: isPMS = %v", today, got)
		}
	}
}

func TestPeriodLogTransitions(t *testing.T) {
	t.Parallel()
	log, ok := domain.StartPeriod(nil, domain.PeriodEntry{ID: "1", StartDate: "2024-01-01"})
	if !ok {
		t.Fatalf("first start should be added")
	}
	if _, ok := domain.StartPeriod(log, domain.PeriodEntry{ID: "2", StartDate: "2024-01-01"}); ok {
		t.Fatalf("duplicate start should be ignored")
	}
	log, closed := domain.EndPeriod(log, "2024-01-05")
	if closed == nil || closed.EndDate != "2024-01-05" {
		t.Fatalf("closed = %+v", closed)
	}
	if _, again := domain.EndPeriod(log, "2024-01-06"); again != nil {
		t.Fatalf("closed entry must not be closed twice")
	}

	log, ok = domain.AddHistorical(log, domain.PeriodEntry{ID: "0", StartDate: "2023-12-04"})
	if !ok || log[len(log)-1].ID != "0" {
		t.Fatalf("historical entry should be appended: %+v", log)
	}
	log, _ = domain.StartPeriod(log, domain.PeriodEntry{ID: "3", StartDate: "2024-01-29"})
	log, closed = domain.EndPeriod(log, "2024-02-02")
	if closed == nil || closed.ID != "3" || log[0].EndDate != "2024-02-02" {
		t.Fatalf("most recent entry should close: %+v", log)
	}
	if log[len(log)-1].EndDate != "" {
		t.Fatalf("older open entry must stay open: %+v", log)
	}
}

func TestCycleContextJSONRoundTrip(t *testing.T) {
	t.Parallel()
	in := domain.PredictCycle([]domain.PeriodEntry{{StartDate: "2024-01-01"}}, "2024-01-10")
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out domain.CycleContext
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("round trip: %+v != %+v", out, in)
	}
}
