package in

import (
	"context"
	"encoding/json"
	"fmt"

	"aria/internal/modules/assistant/dto"
	assistantin "aria/internal/modules/assistant/port/in"
	apperrors "aria/internal/platform/errors"
)

type CLIHandler struct {
	usecase assistantin.Usecase
}

func NewCLIHandler(usecase assistantin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Send(ctx context.Context, text string) (dto.Reply, error) {
	return h.usecase.Send(ctx, text)
}

// ApplyJSON applies an action document of the form {"type": ..., "data": {...}}.
func (h CLIHandler) ApplyJSON(ctx context.Context, raw []byte) (dto.Outcome, error) {
	var action dto.RawAction
	if err := json.Unmarshal(raw, &action); err != nil {
		return dto.Outcome{}, fmt.Errorf("parse action: %v: %w", err, apperrors.ErrInvalidInput)
	}
	return h.usecase.Apply(ctx, action)
}

func (h CLIHandler) Context(ctx context.Context) (dto.Snapshot, error) {
	return h.usecase.Context(ctx)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]dto.ChatMessage, error) {
	return h.usecase.History(ctx, limit)
}

func (h CLIHandler) NextQuestion(ctx context.Context) (dto.QuizStep, error) {
	return h.usecase.NextQuestion(ctx)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}
