package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	plannerout "aria/internal/modules/planner/adapter/out"
	plannerdto "aria/internal/modules/planner/dto"
	plannerservice "aria/internal/modules/planner/service"
	plannerusecase "aria/internal/modules/planner/usecase"
	wellnessout "aria/internal/modules/wellness/adapter/out"
	"aria/internal/modules/wellness/domain"
	"aria/internal/modules/wellness/dto"
	wellnessin "aria/internal/modules/wellness/port/in"
	"aria/internal/modules/wellness/service"
	"aria/internal/modules/wellness/usecase"
	"aria/internal/platform/clock"
	"aria/internal/platform/id"
	"aria/internal/platform/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingMirror struct {
	mu     sync.Mutex
	starts []domain.MirrorStart
	ends   []domain.MirrorEnd
	err    error
}

func (m *recordingMirror) LogStart(_ context.Context, start domain.MirrorStart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starts = append(m.starts, start)
	return m.err
}

func (m *recordingMirror) LogEnd(_ context.Context, end domain.MirrorEnd) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ends = append(m.ends, end)
	return m.err
}

func newWellness(t *testing.T, today string, mirror *recordingMirror, userName string) wellnessin.Usecase {
	t.Helper()
	st := store.NewMemory()
	clk := clock.FixedDate(today)
	planner := plannerusecase.NewInteractor(
		plannerservice.NewPlannerService(clk, id.NewSequence("p"), plannerout.NewKVRepository(st, zap.NewNop())),
		plannerout.NewVaultExporter(),
	)
	if userName != "" {
		if _, err := planner.Onboard(context.Background(), plannerdto.OnboardInput{Name: userName}); err != nil {
			t.Fatalf("onboard: %v", err)
		}
	}
	svc := service.NewWellnessService(clk, id.NewSequence("w"), wellnessout.NewKVRepository(st, zap.NewNop()))
	uc := usecase.NewInteractor(svc, planner, mirror, zap.NewNop(), time.Second)
	t.Cleanup(func() { _ = uc.Close() })
	return uc
}

func TestLogGymReportsStreak(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newWellness(t, "2024-01-02", &recordingMirror{}, "")

	if _, err := uc.LogGym(ctx, dto.LogGymInput{Date: "2024-01-01", DidGo: true}); err != nil {
		t.Fatalf("log gym: %v", err)
	}
	out, err := uc.LogGym(ctx, dto.LogGymInput{DidGo: true})
	if err != nil {
		t.Fatalf("log gym: %v", err)
	}
	if out.Entry.Date != "2024-01-02" || out.Stats.CurrentStreak != 2 {
		t.Fatalf("out = %+v", out)
	}
	out, err = uc.LogGym(ctx, dto.LogGymInput{DidGo: false})
	if err != nil {
		t.Fatalf("log gym: %v", err)
	}
	if out.Stats.CurrentStreak != 0 || out.Stats.BestStreak != 1 {
		t.Fatalf("overwrite of today should reset streak: %+v", out.Stats)
	}
	log, err := uc.GymLog(ctx)
	if err != nil || len(log) != 2 {
		t.Fatalf("log = %+v err=%v", log, err)
	}
}

func TestPeriodStartMirrorsOnceAndEndCloses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mirror := &recordingMirror{}
	uc := newWellness(t, "2024-01-29", mirror, "Riya")

	if _, err := uc.AddHistoricalPeriod(ctx, "2024-01-01"); err != nil {
		t.Fatalf("historical: %v", err)
	}
	first, err := uc.StartPeriod(ctx, "")
	if err != nil || !first.Added {
		t.Fatalf("start: %+v %v", first, err)
	}
	dup, err := uc.StartPeriod(ctx, "2024-01-29")
	if err != nil || dup.Added {
		t.Fatalf("duplicate start should be ignored: %+v %v", dup, err)
	}
	end, err := uc.EndPeriod(ctx, "")
	if err != nil || end.Closed == nil || end.Closed.StartDate != "2024-01-29" || end.EndDate != "2024-01-29" {
		t.Fatalf("end: %+v %v", end, err)
	}
	if err := uc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	mirror.mu.Lock()
	defer mirror.mu.Unlock()
	if len(mirror.starts) != 2 {
		t.Fatalf("starts = %+v", mirror.starts)
	}
	for _, s := range mirror.starts {
		if s.UserID != "Riya" {
			t.Fatalf("user id = %q", s.UserID)
		}
	}
	if len(mirror.ends) != 1 || mirror.ends[0].StartDate != "2024-01-29" {
		t.Fatalf("ends = %+v", mirror.ends)
	}

	cycle, err := uc.Cycle(ctx)
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if cycle.NextPredicted != "2024-02-26" || cycle.AvgCycle != 28 {
		t.Fatalf("cycle = %+v", cycle)
	}
}

func TestMirrorFailureIsSwallowed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mirror := &recordingMirror{err: errors.New("offline")}
	uc := newWellness(t, "2024-01-29", mirror, "")

	out, err := uc.StartPeriod(ctx, "2024-01-29")
	if err != nil || !out.Added {
		t.Fatalf("local write must succeed despite mirror failure: %+v %v", out, err)
	}
	_ = uc.Close()
	mirror.mu.Lock()
	defer mirror.mu.Unlock()
	if len(mirror.starts) != 1 || mirror.starts[0].UserID != "default_user" {
		t.Fatalf("starts = %+v", mirror.starts)
	}
}

func TestEndWithoutOpenEntryDoesNotMirror(t *testing.T) {
	t.Parallel()
	mirror := &recordingMirror{}
	uc := newWellness(t, "2024-01-29", mirror, "")
	out, err := uc.EndPeriod(context.Background(), "2024-01-30")
	if err != nil || out.Closed != nil {
		t.Fatalf("out = %+v err = %v", out, err)
	}
	_ = uc.Close()
	if len(mirror.ends) != 0 {
		t.Fatalf("no mirror call expected")
	}
}

func TestUnknownCycleIsEmptyObject(t *testing.T) {
	t.Parallel()
	uc := newWellness(t, "2024-01-29", &recordingMirror{}, "")
	c, err := uc.Cycle(context.Background())
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	raw, _ := c.MarshalJSON()
	if string(raw) != "{}" {
		t.Fatalf("raw = %s", raw)
	}
}
