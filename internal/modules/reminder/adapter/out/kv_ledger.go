package out

import (
	"context"

	"go.uber.org/zap"

	"aria/internal/modules/reminder/domain"
	reminderout "aria/internal/modules/reminder/port/out"
	"aria/internal/platform/store"
)

type KVLedger struct {
	store  store.Store
	logger *zap.Logger
}

func NewKVLedger(st store.Store, logger *zap.Logger) reminderout.LedgerRepository {
	return &KVLedger{store: st, logger: logger}
}

func (r *KVLedger) Ledger(ctx context.Context) (domain.Ledger, error) {
	var ledger domain.Ledger
	err := r.store.View(ctx, func(rd store.Reader) error {
		ledger = r.load(ctx, rd)
		return nil
	})
	return ledger, err
}

func (r *KVLedger) UpdateLedger(ctx context.Context, fn func(*domain.Ledger) error) error {
	return r.store.Update(ctx, func(tx store.Tx) error {
		ledger := r.load(ctx, tx)
		if err := fn(&ledger); err != nil {
			return err
		}
		if err := store.Set(ctx, tx, store.KeyNotified, nonNil(ledger.Notified)); err != nil {
			return err
		}
		return store.Set(ctx, tx, store.KeyEmailed, nonNil(ledger.Emailed))
	})
}

func (r *KVLedger) load(ctx context.Context, rd store.Reader) domain.Ledger {
	return domain.Ledger{
		Notified: store.LoadLogged(ctx, rd, store.KeyNotified, []string{}, r.logger),
		Emailed:  store.LoadLogged(ctx, rd, store.KeyEmailed, []string{}, r.logger),
	}
}

func nonNil(keys []string) []string {
	if keys == nil {
		return []string{}
	}
	return keys
}
