package in

import (
	"context"
	"time"

	"aria/internal/modules/reminder/dto"
)

type Usecase interface {
	// Plan previews what Run would deliver without delivering it.
	Plan(ctx context.Context) ([]dto.Alert, error)
	Run(ctx context.Context) (dto.RunReport, error)
	// RunEvery calls Run immediately and then on every tick until ctx is done.
	RunEvery(ctx context.Context, interval time.Duration) error
}
