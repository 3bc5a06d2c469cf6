package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	plannerin "aria/internal/modules/planner/port/in"
	"aria/internal/modules/wellness/domain"
	"aria/internal/modules/wellness/dto"
	wellnessin "aria/internal/modules/wellness/port/in"
	wellnessout "aria/internal/modules/wellness/port/out"
	"aria/internal/modules/wellness/service"
)

const (
	defaultMirrorTimeout = 10 * time.Second
	fallbackUserID       = "default_user"
)

type Interactor struct {
	svc           *service.WellnessService
	planner       plannerin.Usecase
	mirror        wellnessout.CycleMirror
	logger        *zap.Logger
	mirrorTimeout time.Duration
	inflight      sync.WaitGroup
}

func NewInteractor(svc *service.WellnessService, planner plannerin.Usecase, mirror wellnessout.CycleMirror, logger *zap.Logger, mirrorTimeout time.Duration) wellnessin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mirrorTimeout <= 0 {
		mirrorTimeout = defaultMirrorTimeout
	}
	return &Interactor{svc: svc, planner: planner, mirror: mirror, logger: logger, mirrorTimeout: mirrorTimeout}
}

func (i *Interactor) LogGym(ctx context.Context, input dto.LogGymInput) (dto.LogGymOutput, error) {
	entry, stats, err := i.svc.LogGym(ctx, input.Date, input.DidGo)
	if err != nil {
		return dto.LogGymOutput{}, err
	}
	return dto.LogGymOutput{Entry: dto.GymEntry(entry), Stats: dto.GymStats(stats)}, nil
}

func (i *Interactor) GymStats(ctx context.Context) (dto.GymStats, error) {
	stats, err := i.svc.GymStats(ctx)
	if err != nil {
		return dto.GymStats{}, err
	}
	return dto.GymStats(stats), nil
}

func (i *Interactor) GymLog(ctx context.Context) ([]dto.GymEntry, error) {
	log, err := i.svc.GymLog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GymEntry, 0, len(log))
	for _, e := range log {
		out = append(out, dto.GymEntry(e))
	}
	return out, nil
}

func (i *Interactor) StartPeriod(ctx context.Context, date string) (dto.StartPeriodOutput, error) {
	entry, added, err := i.svc.StartPeriod(ctx, date)
	if err != nil {
		return dto.StartPeriodOutput{}, err
	}
	if added {
		i.mirrorStart(ctx, entry.StartDate, domain.NoteStarted)
	}
	return dto.StartPeriodOutput{Entry: dto.PeriodEntry(entry), Added: added}, nil
}

func (i *Interactor) AddHistoricalPeriod(ctx context.Context, date string) (dto.StartPeriodOutput, error) {
	entry, added, err := i.svc.AddHistorical(ctx, date)
	if err != nil {
		return dto.StartPeriodOutput{}, err
	}
	if added {
		i.mirrorStart(ctx, entry.StartDate, domain.NoteHistorical)
	}
	return dto.StartPeriodOutput{Entry: dto.PeriodEntry(entry), Added: added}, nil
}

func (i *Interactor) EndPeriod(ctx context.Context, endDate string) (dto.EndPeriodOutput, error) {
	closed, endDate, err := i.svc.EndPeriod(ctx, endDate)
	if err != nil {
		return dto.EndPeriodOutput{}, err
	}
	out := dto.EndPeriodOutput{EndDate: endDate}
	if closed == nil {
		return out, nil
	}
	entry := dto.PeriodEntry(*closed)
	out.Closed = &entry
	userID := i.userID(ctx)
	i.fireAndForget(ctx, "log-end", func(ctx context.Context) error {
		return i.mirror.LogEnd(ctx, domain.MirrorEnd{UserID: userID, StartDate: closed.StartDate, EndDate: endDate})
	})
	return out, nil
}

func (i *Interactor) Cycle(ctx context.Context) (dto.CycleContext, error) {
	c, err := i.svc.Cycle(ctx)
	if err != nil {
		return dto.CycleContext{}, err
	}
	return dto.CycleContext{
		Known:         c.Known,
		LastStart:     c.LastStart,
		NextPredicted: c.NextPredicted,
		DaysUntilNext: c.DaysUntilNext,
		AvgCycle:      c.AvgCycle,
		IsPMS:         c.IsPMS,
		Phase:         string(c.Phase),
	}, nil
}

func (i *Interactor) PeriodLog(ctx context.Context) ([]dto.PeriodEntry, error) {
	log, err := i.svc.PeriodLog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PeriodEntry, 0, len(log))
	for _, e := range log {
		out = append(out, dto.PeriodEntry(e))
	}
	return out, nil
}

func (i *Interactor) Close() error {
	i.inflight.Wait()
	return nil
}

func (i *Interactor) mirrorStart(ctx context.Context, date, notes string) {
	userID := i.userID(ctx)
	i.fireAndForget(ctx, "log-start", func(ctx context.Context) error {
		return i.mirror.LogStart(ctx, domain.MirrorStart{UserID: userID, Date: date, Notes: notes})
	})
}

func (i *Interactor) userID(ctx context.Context) string {
	if i.planner == nil {
		return fallbackUserID
	}
	profile, err := i.planner.Profile(ctx)
	if err != nil || profile.UserID == "" {
		return fallbackUserID
	}
	return profile.UserID
}

// fireAndForget runs a mirror write detached from the caller's cancellation.
// Failures are only logged.
func (i *Interactor) fireAndForget(ctx context.Context, op string, write func(context.Context) error) {
	if i.mirror == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	i.inflight.Add(1)
	go func() {
		defer i.inflight.Done()
		ctx, cancel := context.WithTimeout(detached, i.mirrorTimeout)
		defer cancel()
		if err := write(ctx); err != nil {
			i.logger.Debug("cycle mirror write failed", zap.String("op", op), zap.Error(err))
		}
	}()
}
