package service

import (
	"context"
	"fmt"

	"aria/internal/modules/wellness/domain"
	wellnessout "aria/internal/modules/wellness/port/out"
	"aria/internal/platform/civil"
	"aria/internal/platform/clock"
	apperrors "aria/internal/platform/errors"
	"aria/internal/platform/id"
)

type WellnessService struct {
	clock clock.Clock
	idGen id.Generator
	repo  wellnessout.Repository
}

func NewWellnessService(clock clock.Clock, idGen id.Generator, repo wellnessout.Repository) *WellnessService {
	return &WellnessService{clock: clock, idGen: idGen, repo: repo}
}

func (s *WellnessService) Today() string {
	return clock.Today(s.clock)
}

func (s *WellnessService) dateOrToday(date string) (string, error) {
	if date == "" {
		return s.Today(), nil
	}
	if !civil.Valid(date) {
		return "", fmt.Errorf("date %q: %w", date, apperrors.ErrInvalidInput)
	}
	return date, nil
}

func (s *WellnessService) LogGym(ctx context.Context, date string, didGo bool) (domain.GymEntry, domain.GymStats, error) {
	date, err := s.dateOrToday(date)
	if err != nil {
		return domain.GymEntry{}, domain.GymStats{}, err
	}
	entry := domain.GymEntry{Date: date, DidGo: didGo}
	var stats domain.GymStats
	err = s.repo.UpdateGymLog(ctx, func(log []domain.GymEntry) ([]domain.GymEntry, error) {
		next := domain.UpsertGym(log, entry)
		stats = domain.ComputeGymStats(next, s.Today())
		return next, nil
	})
	if err != nil {
		return domain.GymEntry{}, domain.GymStats{}, err
	}
	return entry, stats, nil
}

func (s *WellnessService) GymStats(ctx context.Context) (domain.GymStats, error) {
	log, err := s.repo.GymLog(ctx)
	if err != nil {
		return domain.GymStats{}, err
	}
	return domain.ComputeGymStats(log, s.Today()), nil
}

func (s *WellnessService) GymLog(ctx context.Context) ([]domain.GymEntry, error) {
	return s.repo.GymLog(ctx)
}

func (s *WellnessService) StartPeriod(ctx context.Context, date string) (domain.PeriodEntry, bool, error) {
	return s.insertPeriod(ctx, date, domain.StartPeriod)
}

func (s *WellnessService) AddHistorical(ctx context.Context, date string) (domain.PeriodEntry, bool, error) {
	if date == "" {
		return domain.PeriodEntry{}, false, fmt.Errorf("date is required: %w", apperrors.ErrInvalidInput)
	}
	return s.insertPeriod(ctx, date, domain.AddHistorical)
}

func (s *WellnessService) insertPeriod(ctx context.Context, date string, insert func([]domain.PeriodEntry, domain.PeriodEntry) ([]domain.PeriodEntry, bool)) (domain.PeriodEntry, bool, error) {
	date, err := s.dateOrToday(date)
	if err != nil {
		return domain.PeriodEntry{}, false, err
	}
	entry := domain.PeriodEntry{ID: s.idGen.New(), StartDate: date}
	added := false
	err = s.repo.UpdatePeriodLog(ctx, func(log []domain.PeriodEntry) ([]domain.PeriodEntry, error) {
		var next []domain.PeriodEntry
		next, added = insert(log, entry)
		return next, nil
	})
	if err != nil {
		return domain.PeriodEntry{}, false, err
	}
	return entry, added, nil
}

func (s *WellnessService) EndPeriod(ctx context.Context, endDate string) (*domain.PeriodEntry, string, error) {
	endDate, err := s.dateOrToday(endDate)
	if err != nil {
		return nil, "", err
	}
	var closed *domain.PeriodEntry
	err = s.repo.UpdatePeriodLog(ctx, func(log []domain.PeriodEntry) ([]domain.PeriodEntry, error) {
		var next []domain.PeriodEntry
		next, closed = domain.EndPeriod(log, endDate)
		return next, nil
	})
	if err != nil {
		return nil, "", err
	}
	return closed, endDate, nil
}

func (s *WellnessService) Cycle(ctx context.Context) (domain.CycleContext, error) {
	log, err := s.repo.PeriodLog(ctx)
	if err != nil {
		return domain.CycleContext{}, err
	}
	return domain.PredictCycle(log, s.Today()), nil
}

func (s *WellnessService) PeriodLog(ctx context.Context) ([]domain.PeriodEntry, error) {
	return s.repo.PeriodLog(ctx)
}
