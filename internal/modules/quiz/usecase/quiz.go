package usecase

import (
	"context"
	"fmt"

	"aria/internal/modules/quiz/domain"
	"aria/internal/modules/quiz/dto"
	quizin "aria/internal/modules/quiz/port/in"
	"aria/internal/modules/quiz/service"
	apperrors "aria/internal/platform/errors"
)

type Interactor struct {
	svc *service.QuizService
}

func NewInteractor(svc *service.QuizService) quizin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	session, message, ok := i.svc.Start(ctx, domain.Request{
		QuizType: input.QuizType,
		Count:    input.Count,
		Subject:  input.Subject,
		Context:  input.Context,
	})
	if !ok {
		return dto.StartOutput{Message: message}, nil
	}
	return dto.StartOutput{Started: true, Session: dto.Session(session), Message: message}, nil
}

func (i *Interactor) Advance(session *dto.Session) (dto.AdvanceOutput, error) {
	if session == nil {
		return dto.AdvanceOutput{}, fmt.Errorf("advance: %w", apperrors.ErrNoActiveQuiz)
	}
	s := domain.Session(*session)
	next, ok := s.Advance()
	return dto.AdvanceOutput{Session: dto.Session(s), Question: next, Finished: !ok}, nil
}

func (i *Interactor) Grade(ctx context.Context, input dto.GradeInput) (dto.HistoryEntry, error) {
	entry, err := i.svc.Grade(ctx, input.Score, input.Total, input.Subject)
	if err != nil {
		return dto.HistoryEntry{}, err
	}
	return dto.HistoryEntry(entry), nil
}

func (i *Interactor) History(ctx context.Context, limit int) ([]dto.HistoryEntry, error) {
	entries, err := i.svc.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntry(e))
	}
	return out, nil
}
