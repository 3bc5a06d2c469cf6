package dto

import "aria/internal/modules/assistant/domain"

type (
	RawAction   = domain.RawAction
	Outcome     = domain.Outcome
	Toast       = domain.Toast
	ChatMessage = domain.ChatMessage
	Snapshot    = domain.Snapshot
	Session     = domain.Session
)

// Reply is the result of one conversation turn. Outcome is nil when the
// reasoning service returned no action.
type Reply struct {
	Message string   `json:"message"`
	Outcome *Outcome `json:"outcome,omitempty"`
	// Followup is an extra assistant line produced by the action, such as the
	// first quiz question.
	Followup string `json:"followup,omitempty"`
}

type QuizStep struct {
	Question string `json:"question"`
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Finished bool   `json:"finished"`
}
