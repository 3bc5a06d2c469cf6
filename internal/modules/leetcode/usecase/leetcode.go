package usecase

import (
	"context"
	"fmt"
	"strings"

	"aria/internal/modules/leetcode/domain"
	"aria/internal/modules/leetcode/dto"
	leetcodein "aria/internal/modules/leetcode/port/in"
	leetcodeout "aria/internal/modules/leetcode/port/out"
	plannerin "aria/internal/modules/planner/port/in"
	apperrors "aria/internal/platform/errors"
)

type Interactor struct {
	source  leetcodeout.StatsSource
	planner plannerin.Usecase
}

func NewInteractor(source leetcodeout.StatsSource, planner plannerin.Usecase) leetcodein.Usecase {
	return &Interactor{source: source, planner: planner}
}

func (i *Interactor) Stats(ctx context.Context, username string) (dto.Stats, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" && i.planner != nil {
		profile, err := i.planner.Profile(ctx)
		if err != nil {
			return dto.Stats{}, err
		}
		username = profile.LeetcodeUsername
	}
	if username == "" {
		return dto.Stats{}, fmt.Errorf("leetcode username is not set: %w", apperrors.ErrInvalidInput)
	}
	payload, err := i.source.Fetch(ctx, username)
	if err != nil {
		return dto.Stats{}, err
	}
	s, err := domain.Extract(username, payload)
	if err != nil {
		return dto.Stats{}, err
	}
	return dto.Stats{
		Username: s.Username,
		Easy:     dto.Tier(s.Easy),
		Medium:   dto.Tier(s.Medium),
		Hard:     dto.Tier(s.Hard),
		Solved:   s.Solved,
		Ranking:  s.Ranking,
		Analysis: domain.Analysis(s),
	}, nil
}
