package out

import (
	"context"

	"go.uber.org/zap"

	"aria/internal/modules/assistant/domain"
	assistantout "aria/internal/modules/assistant/port/out"
	"aria/internal/platform/store"
)

type KVChat struct {
	store  store.Store
	logger *zap.Logger
}

func NewKVChat(st store.Store, logger *zap.Logger) assistantout.ChatStore {
	return &KVChat{store: st, logger: logger}
}

func emptyChat() []domain.ChatMessage { return []domain.ChatMessage{} }

func (c *KVChat) History(ctx context.Context) ([]domain.ChatMessage, error) {
	return store.Read(ctx, c.store, store.KeyChat, emptyChat, c.logger)
}

func (c *KVChat) Append(ctx context.Context, msg domain.ChatMessage) error {
	return store.Modify(ctx, c.store, store.KeyChat, emptyChat, c.logger, func(history []domain.ChatMessage) ([]domain.ChatMessage, error) {
		return domain.AppendChat(history, msg), nil
	})
}
