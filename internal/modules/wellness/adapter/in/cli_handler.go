package in

import (
	"context"

	wellnessdto "aria/internal/modules/wellness/dto"
	wellnessin "aria/internal/modules/wellness/port/in"
)

type CLIHandler struct {
	usecase wellnessin.Usecase
}

func NewCLIHandler(usecase wellnessin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) GymStats(ctx context.Context) (wellnessdto.GymStats, error) {
	return h.usecase.GymStats(ctx)
}

func (h CLIHandler) Cycle(ctx context.Context) (wellnessdto.CycleContext, error) {
	return h.usecase.Cycle(ctx)
}

func (h CLIHandler) PeriodLog(ctx context.Context) ([]wellnessdto.PeriodEntry, error) {
	return h.usecase.PeriodLog(ctx)
}

func (h CLIHandler) AddHistoricalPeriod(ctx context.Context, date string) (wellnessdto.StartPeriodOutput, error) {
	return h.usecase.AddHistoricalPeriod(ctx, date)
}
