package out

import (
	"context"

	"aria/internal/modules/leetcode/domain"
)

type StatsSource interface {
	Fetch(ctx context.Context, username string) (domain.Payload, error)
}
