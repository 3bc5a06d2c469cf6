package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	plannerdto "aria/internal/modules/planner/dto"
	plannerin "aria/internal/modules/planner/port/in"
	"aria/internal/modules/reminder/domain"
	"aria/internal/modules/reminder/dto"
	reminderin "aria/internal/modules/reminder/port/in"
	reminderout "aria/internal/modules/reminder/port/out"
	"aria/internal/modules/reminder/service"
	wellnessin "aria/internal/modules/wellness/port/in"
	"aria/internal/platform/clock"
)

type Interactor struct {
	svc      *service.ReminderService
	planner  plannerin.Usecase
	wellness wellnessin.Usecase
	clock    clock.Clock
	logger   *zap.Logger
}

func NewInteractor(svc *service.ReminderService, planner plannerin.Usecase, wellness wellnessin.Usecase, clk clock.Clock, logger *zap.Logger) reminderin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, planner: planner, wellness: wellness, clock: clk, logger: logger}
}

func (i *Interactor) Plan(ctx context.Context) ([]dto.Alert, error) {
	in, _, err := i.inputs(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := i.svc.Plan(ctx, in)
	if err != nil {
		return nil, err
	}
	return toAlerts(alerts), nil
}

func (i *Interactor) Run(ctx context.Context) (dto.RunReport, error) {
	in, cfg, err := i.inputs(ctx)
	if err != nil {
		return dto.RunReport{}, err
	}
	report, err := i.svc.Run(ctx, in, cfg)
	if err != nil {
		return dto.RunReport{}, err
	}
	failed := report.Failed
	if failed == nil {
		failed = []string{}
	}
	return dto.RunReport{Delivered: toAlerts(report.Delivered), Failed: failed, Pruned: report.Pruned}, nil
}

func (i *Interactor) RunEvery(ctx context.Context, interval time.Duration) error {
	if _, err := i.Run(ctx); err != nil {
		i.logger.Warn("reminder run failed", zap.Error(err))
	}
	if interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := i.Run(ctx); err != nil {
				i.logger.Warn("reminder run failed", zap.Error(err))
			}
		}
	}
}

func (i *Interactor) inputs(ctx context.Context) (domain.Inputs, reminderout.EmailConfig, error) {
	deadlines, err := i.planner.ListDeadlines(ctx, plannerdto.ListDeadlinesInput{})
	if err != nil {
		return domain.Inputs{}, reminderout.EmailConfig{}, err
	}
	profile, err := i.planner.Profile(ctx)
	if err != nil {
		return domain.Inputs{}, reminderout.EmailConfig{}, err
	}
	cycle, err := i.wellness.Cycle(ctx)
	if err != nil {
		return domain.Inputs{}, reminderout.EmailConfig{}, err
	}

	in := domain.Inputs{
		Today:      clock.Today(i.clock),
		Deadlines:  make([]domain.DeadlineInfo, 0, len(deadlines)),
		Cycle:      domain.CycleInfo{Known: cycle.Known, NextPredicted: cycle.NextPredicted, DaysUntilNext: cycle.DaysUntilNext},
		EmailReady: profile.EmailReady,
	}
	for _, d := range deadlines {
		in.Deadlines = append(in.Deadlines, domain.DeadlineInfo{
			ID:            d.ID,
			Title:         d.Title,
			StartDate:     d.StartDate,
			DueDate:       d.DueDate,
			Done:          d.Status == "done",
			MidwayChecked: d.MidwayChecked,
		})
	}
	cfg := reminderout.EmailConfig{
		PubKey:     profile.Email.PubKey,
		ServiceID:  profile.Email.ServiceID,
		TemplateID: profile.Email.TemplateID,
		ToEmail:    profile.Email.ToEmail,
	}
	return in, cfg, nil
}

func toAlerts(alerts []domain.Alert) []dto.Alert {
	out := make([]dto.Alert, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.Alert{Key: a.Key, Channel: string(a.Channel), Title: a.Title, Body: a.Body})
	}
	return out
}
