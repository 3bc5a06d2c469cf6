package in

import (
	"context"

	"aria/internal/modules/wellness/dto"
)

type Usecase interface {
	LogGym(ctx context.Context, input dto.LogGymInput) (dto.LogGymOutput, error)
	GymStats(ctx context.Context) (dto.GymStats, error)
	GymLog(ctx context.Context) ([]dto.GymEntry, error)

	StartPeriod(ctx context.Context, date string) (dto.StartPeriodOutput, error)
	EndPeriod(ctx context.Context, endDate string) (dto.EndPeriodOutput, error)
	AddHistoricalPeriod(ctx context.Context, date string) (dto.StartPeriodOutput, error)
	Cycle(ctx context.Context) (dto.CycleContext, error)
	PeriodLog(ctx context.Context) ([]dto.PeriodEntry, error)

	// Close waits for in-flight mirror writes.
	Close() error
}
