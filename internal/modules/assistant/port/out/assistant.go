package out

import (
	"context"

	"aria/internal/modules/assistant/domain"
)

type ChatRequest struct {
	Message     string               `json:"message"`
	Context     domain.Snapshot      `json:"context"`
	ChatHistory []domain.ChatMessage `json:"chatHistory"`
}

type ChatReply struct {
	Message string            `json:"message"`
	Action  *domain.RawAction `json:"action"`
}

type Reasoner interface {
	Chat(ctx context.Context, req ChatRequest) (ChatReply, error)
}

type SessionStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
}

type ChatStore interface {
	History(ctx context.Context) ([]domain.ChatMessage, error)
	Append(ctx context.Context, msg domain.ChatMessage) error
}

// ToastSink shows toasts to the user.
type ToastSink interface {
	Toast(ctx context.Context, toast domain.Toast)
}

type KeyEraser interface {
	Delete(ctx context.Context, keys ...string) error
}
