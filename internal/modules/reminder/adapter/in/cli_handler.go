package in

import (
	"context"
	"time"

	"aria/internal/modules/reminder/dto"
	reminderin "aria/internal/modules/reminder/port/in"
)

type CLIHandler struct {
	usecase reminderin.Usecase
}

func NewCLIHandler(usecase reminderin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Preview lists the alerts the next run would deliver.
func (h CLIHandler) Preview(ctx context.Context) ([]dto.Alert, error) {
	return h.usecase.Plan(ctx)
}

func (h CLIHandler) RunOnce(ctx context.Context) (dto.RunReport, error) {
	return h.usecase.Run(ctx)
}

func (h CLIHandler) Watch(ctx context.Context, interval time.Duration) error {
	return h.usecase.RunEvery(ctx, interval)
}
