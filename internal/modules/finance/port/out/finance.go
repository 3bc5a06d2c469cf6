package out

import (
	"context"

	"aria/internal/modules/finance/domain"
)

type Repository interface {
	State(ctx context.Context) (domain.State, error)
	UpdateState(ctx context.Context, fn func(*domain.State) error) error
}
