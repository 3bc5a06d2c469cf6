package usecase

import (
	"context"

	"aria/internal/modules/assistant/domain"
	financein "aria/internal/modules/finance/port/in"
	plannerdto "aria/internal/modules/planner/dto"
	plannerin "aria/internal/modules/planner/port/in"
	quizin "aria/internal/modules/quiz/port/in"
	wellnessin "aria/internal/modules/wellness/port/in"
	"aria/internal/platform/clock"
)

// Modules are the usecases the assistant drives.
type Modules struct {
	Planner  plannerin.Usecase
	Wellness wellnessin.Usecase
	Finance  financein.Usecase
	Quiz     quizin.Usecase
}

type ContextBuilder struct {
	mods  Modules
	clock clock.Clock
}

func NewContextBuilder(mods Modules, clk clock.Clock) *ContextBuilder {
	return &ContextBuilder{mods: mods, clock: clk}
}

// Build reads every module once and returns an immutable snapshot.
func (b *ContextBuilder) Build(ctx context.Context, session domain.Session) (domain.Snapshot, error) {
	profile, err := b.mods.Planner.Profile(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	deadlines, err := b.mods.Planner.ListDeadlines(ctx, plannerdto.ListDeadlinesInput{Limit: domain.SnapshotDeadlines})
	if err != nil {
		return domain.Snapshot{}, err
	}
	notes, err := b.mods.Planner.ListNotes(ctx, plannerdto.ListNotesInput{Limit: domain.SnapshotNotes})
	if err != nil {
		return domain.Snapshot{}, err
	}
	topics, err := b.mods.Planner.Topics(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	gym, err := b.mods.Wellness.GymStats(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	cycle, err := b.mods.Wellness.Cycle(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	quizzes, err := b.mods.Quiz.History(ctx, domain.SnapshotQuizzes)
	if err != nil {
		return domain.Snapshot{}, err
	}
	finance, err := b.mods.Finance.State(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	subjects := profile.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	if topics == nil {
		topics = plannerdto.TopicMap{}
	}
	var pending *plannerdto.DeadlineDraft
	if session.PendingDeadline != nil {
		draft := *session.PendingDeadline
		pending = &draft
	}
	return domain.Snapshot{
		UserName:           profile.DisplayName,
		Subjects:           subjects,
		LeetcodeUsername:   profile.LeetcodeUsername,
		Deadlines:          deadlines,
		Topics:             topics,
		Gym:                gym,
		PeriodContext:      cycle,
		Notes:              notes,
		QuizHistory:        quizzes,
		IsPMSWeek:          cycle.Known && cycle.IsPMS,
		InQuiz:             session.InQuiz(),
		PendingDeadline:    pending,
		Today:              clock.Today(b.clock),
		Balance:            finance.Balance,
		SplitwiseReminders: finance.Splitwise,
	}, nil
}
