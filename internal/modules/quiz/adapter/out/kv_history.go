package out

import (
	"context"

	"go.uber.org/zap"

	"aria/internal/modules/quiz/domain"
	quizout "aria/internal/modules/quiz/port/out"
	"aria/internal/platform/store"
)

type KVHistory struct {
	store  store.Store
	logger *zap.Logger
}

func NewKVHistory(st store.Store, logger *zap.Logger) quizout.HistoryRepository {
	return &KVHistory{store: st, logger: logger}
}

func emptyHistory() []domain.HistoryEntry { return []domain.HistoryEntry{} }

func (r *KVHistory) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	return store.Read(ctx, r.store, store.KeyQuiz, emptyHistory, r.logger)
}

func (r *KVHistory) Append(ctx context.Context, entry domain.HistoryEntry) error {
	return store.Modify(ctx, r.store, store.KeyQuiz, emptyHistory, r.logger, func(list []domain.HistoryEntry) ([]domain.HistoryEntry, error) {
		return append(list, entry), nil
	})
}
