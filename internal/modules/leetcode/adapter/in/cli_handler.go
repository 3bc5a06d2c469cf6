package in

import (
	"context"

	"aria/internal/modules/leetcode/dto"
	leetcodein "aria/internal/modules/leetcode/port/in"
)

type CLIHandler struct {
	usecase leetcodein.Usecase
}

func NewCLIHandler(usecase leetcodein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Stats(ctx context.Context, username string) (dto.Stats, error) {
	return h.usecase.Stats(ctx, username)
}
