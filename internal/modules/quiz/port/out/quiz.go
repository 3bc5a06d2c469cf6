package out

import (
	"context"

	"aria/internal/modules/quiz/domain"
)

// QuestionSource returns raw question text. A *domain.RemoteError means the
// source answered but declined to produce questions.
type QuestionSource interface {
	Generate(ctx context.Context, req domain.Request) (string, error)
}

type HistoryRepository interface {
	History(ctx context.Context) ([]domain.HistoryEntry, error)
	Append(ctx context.Context, entry domain.HistoryEntry) error
}
