package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"aria/internal/modules/quiz/domain"
	quizout "aria/internal/modules/quiz/port/out"
	"aria/internal/platform/clock"
	apperrors "aria/internal/platform/errors"
	"aria/internal/platform/id"
)

const fetchFailedMessage = "Couldn't fetch quiz questions. Check your connection and API key!"

type QuizService struct {
	clock   clock.Clock
	idGen   id.Generator
	source  quizout.QuestionSource
	history quizout.HistoryRepository
	logger  *zap.Logger
}

func NewQuizService(clock clock.Clock, idGen id.Generator, source quizout.QuestionSource, history quizout.HistoryRepository, logger *zap.Logger) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{clock: clock, idGen: idGen, source: source, history: history, logger: logger}
}

// Start asks the source for questions. A failed generation is not an error:
// it yields ok=false and a message for the user.
func (s *QuizService) Start(ctx context.Context, req domain.Request) (domain.Session, string, bool) {
	req = req.Normalize()
	raw, err := s.source.Generate(ctx, req)
	if err != nil {
		var remote *domain.RemoteError
		if errors.As(err, &remote) {
			return domain.Session{}, "Couldn't generate quiz: " + remote.Message, false
		}
		s.logger.Debug("quiz generation failed", zap.Error(err))
		return domain.Session{}, fetchFailedMessage, false
	}
	questions := domain.ParseQuestions(raw)
	if len(questions) == 0 {
		return domain.Session{}, "Couldn't generate quiz: no questions returned", false
	}
	session := domain.NewSession(questions, req, s.clock.Now().UnixMilli())
	return session, session.IntroMessage(), true
}

// Grade records a finished quiz. It does not require an active session.
func (s *QuizService) Grade(ctx context.Context, score, total int, subject string) (domain.HistoryEntry, error) {
	if score < 0 || total < 0 {
		return domain.HistoryEntry{}, fmt.Errorf("score %d/%d: %w", score, total, apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(subject) == "" {
		subject = domain.DefaultHistorySubject
	}
	entry := domain.HistoryEntry{
		ID:      s.idGen.New(),
		Date:    clock.Today(s.clock),
		Score:   score,
		Total:   total,
		Subject: subject,
		Pct:     domain.Percent(score, total),
	}
	if err := s.history.Append(ctx, entry); err != nil {
		return domain.HistoryEntry{}, err
	}
	return entry, nil
}

func (s *QuizService) History(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	all, err := s.history.History(ctx)
	if err != nil {
		return nil, err
	}
	return domain.LastN(all, limit), nil
}
