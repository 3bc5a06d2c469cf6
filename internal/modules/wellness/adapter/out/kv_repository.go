package out

import (
	"context"

	"go.uber.org/zap"

	"aria/internal/modules/wellness/domain"
	wellnessout "aria/internal/modules/wellness/port/out"
	"aria/internal/platform/store"
)

type KVRepository struct {
	store  store.Store
	logger *zap.Logger
}

func NewKVRepository(st store.Store, logger *zap.Logger) wellnessout.Repository {
	return &KVRepository{store: st, logger: logger}
}

func emptyGym() []domain.GymEntry       { return []domain.GymEntry{} }
func emptyPeriod() []domain.PeriodEntry { return []domain.PeriodEntry{} }

func (r *KVRepository) GymLog(ctx context.Context) ([]domain.GymEntry, error) {
	return store.Read(ctx, r.store, store.KeyGym, emptyGym, r.logger)
}

func (r *KVRepository) UpdateGymLog(ctx context.Context, fn func([]domain.GymEntry) ([]domain.GymEntry, error)) error {
	return store.Modify(ctx, r.store, store.KeyGym, emptyGym, r.logger, fn)
}

func (r *KVRepository) PeriodLog(ctx context.Context) ([]domain.PeriodEntry, error) {
	return store.Read(ctx, r.store, store.KeyPeriod, emptyPeriod, r.logger)
}

func (r *KVRepository) UpdatePeriodLog(ctx context.Context, fn func([]domain.PeriodEntry) ([]domain.PeriodEntry, error)) error {
	return store.Modify(ctx, r.store, store.KeyPeriod, emptyPeriod, r.logger, fn)
}
