package domain

import (
	"strings"

	plannerdto "aria/internal/modules/planner/dto"
	quizdto "aria/internal/modules/quiz/dto"
)

// Session is the transient application state: a deadline waiting for its
// start date and the quiz in progress.
type Session struct {
	PendingDeadline *plannerdto.DeadlineDraft `json:"pendingDeadline"`
	Quiz            *quizdto.Session          `json:"quiz"`
}

func (s Session) InQuiz() bool {
	return s.Quiz != nil
}

// CompleteDraft fills blank fields of draft from the pending deadline when
// draft continues it, i.e. has no title or the same title.
func (s Session) CompleteDraft(draft plannerdto.DeadlineDraft) plannerdto.DeadlineDraft {
	p := s.PendingDeadline
	if p == nil {
		return draft
	}
	if draft.Title != "" && !strings.EqualFold(strings.TrimSpace(draft.Title), strings.TrimSpace(p.Title)) {
		return draft
	}
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = src
		}
	}
	fill(&draft.Title, p.Title)
	fill(&draft.Subject, p.Subject)
	fill(&draft.DueDate, p.DueDate)
	fill(&draft.StartDate, p.StartDate)
	fill(&draft.Type, p.Type)
	return draft
}
