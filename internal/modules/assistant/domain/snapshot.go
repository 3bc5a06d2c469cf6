package domain

import (
	financedto "aria/internal/modules/finance/dto"
	plannerdto "aria/internal/modules/planner/dto"
	quizdto "aria/internal/modules/quiz/dto"
	wellnessdto "aria/internal/modules/wellness/dto"
)

const (
	SnapshotDeadlines = 20
	SnapshotNotes     = 15
	SnapshotQuizzes   = 10
)

// Snapshot is the context sent with every chat request.
type Snapshot struct {
	UserName           string                     `json:"userName"`
	Subjects           []string                   `json:"subjects"`
	LeetcodeUsername   string                     `json:"leetcodeUsername"`
	Deadlines          []plannerdto.Deadline      `json:"deadlines"`
	Topics             plannerdto.TopicMap        `json:"topics"`
	Gym                wellnessdto.GymStats       `json:"gym"`
	PeriodContext      wellnessdto.CycleContext   `json:"periodContext"`
	Notes              []plannerdto.Note          `json:"notes"`
	QuizHistory        []quizdto.HistoryEntry     `json:"quizHistory"`
	IsPMSWeek          bool                       `json:"isPmsWeek"`
	InQuiz             bool                       `json:"inQuiz"`
	PendingDeadline    *plannerdto.DeadlineDraft  `json:"pendingDeadline"`
	Today              string                     `json:"today"`
	Balance            float64                    `json:"balance"`
	SplitwiseReminders []financedto.SplitwiseItem `json:"splitwiseReminders"`
}
