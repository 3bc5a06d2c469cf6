package out

import (
	"context"

	"aria/internal/modules/wellness/domain"
)

type Repository interface {
	GymLog(ctx context.Context) ([]domain.GymEntry, error)
	UpdateGymLog(ctx context.Context, fn func([]domain.GymEntry) ([]domain.GymEntry, error)) error
	PeriodLog(ctx context.Context) ([]domain.PeriodEntry, error)
	UpdatePeriodLog(ctx context.Context, fn func([]domain.PeriodEntry) ([]domain.PeriodEntry, error)) error
}

// CycleMirror replicates period events to a remote store. It is advisory:
// the local log stays authoritative.
type CycleMirror interface {
	LogStart(ctx context.Context, start domain.MirrorStart) error
	LogEnd(ctx context.Context, end domain.MirrorEnd) error
}
