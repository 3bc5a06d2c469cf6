package in

import (
	"context"

	"aria/internal/modules/leetcode/dto"
)

type Usecase interface {
	// Stats fetches stats for username, or for the profile's username when
	// username is blank.
	Stats(ctx context.Context, username string) (dto.Stats, error)
}
