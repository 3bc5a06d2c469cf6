package out

import (
	"context"

	"go.uber.org/zap"

	"aria/internal/modules/finance/domain"
	financeout "aria/internal/modules/finance/port/out"
	"aria/internal/platform/store"
)

type KVRepository struct {
	store  store.Store
	logger *zap.Logger
}

func NewKVRepository(st store.Store, logger *zap.Logger) financeout.Repository {
	return &KVRepository{store: st, logger: logger}
}

func (r *KVRepository) State(ctx context.Context) (domain.State, error) {
	st, err := store.Read(ctx, r.store, store.KeyFinance, domain.Empty, r.logger)
	return normalize(st), err
}

func (r *KVRepository) UpdateState(ctx context.Context, fn func(*domain.State) error) error {
	return store.Modify(ctx, r.store, store.KeyFinance, domain.Empty, r.logger, func(st domain.State) (domain.State, error) {
		st = normalize(st)
		if err := fn(&st); err != nil {
			return domain.State{}, err
		}
		return st, nil
	})
}

// normalize fills lists missing from documents written by older clients.
func normalize(st domain.State) domain.State {
	if st.Transactions == nil {
		st.Transactions = []domain.Transaction{}
	}
	if st.Splitwise == nil {
		st.Splitwise = []domain.SplitwiseItem{}
	}
	return st
}
