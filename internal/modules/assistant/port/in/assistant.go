package in

import (
	"context"

	"aria/internal/modules/assistant/dto"
)

type Usecase interface {
	// Send runs one conversation turn. It returns apperrors.ErrBusy while
	// another turn is in flight.
	Send(ctx context.Context, text string) (dto.Reply, error)
	Apply(ctx context.Context, action dto.RawAction) (dto.Outcome, error)
	Context(ctx context.Context) (dto.Snapshot, error)
	History(ctx context.Context, limit int) ([]dto.ChatMessage, error)
	Session(ctx context.Context) (dto.Session, error)
	// NextQuestion advances the active quiz.
	NextQuestion(ctx context.Context) (dto.QuizStep, error)
	// Clear erases every stored key and the in-memory session.
	Clear(ctx context.Context) error
	Close() error
}
