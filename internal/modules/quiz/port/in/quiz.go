package in

import (
	"context"

	"aria/internal/modules/quiz/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	// Advance returns apperrors.ErrNoActiveQuiz when session is nil.
	Advance(session *dto.Session) (dto.AdvanceOutput, error)
	Grade(ctx context.Context, input dto.GradeInput) (dto.HistoryEntry, error)
	History(ctx context.Context, limit int) ([]dto.HistoryEntry, error)
}
