package in

import (
	"context"

	"aria/internal/modules/finance/dto"
	financein "aria/internal/modules/finance/port/in"
)

type CLIHandler struct {
	usecase financein.Usecase
}

func NewCLIHandler(usecase financein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Summary(ctx context.Context) (dto.State, error) {
	return h.usecase.State(ctx)
}

func (h CLIHandler) Pending(ctx context.Context) ([]dto.SplitwiseItem, error) {
	return h.usecase.PendingSplitwise(ctx)
}
