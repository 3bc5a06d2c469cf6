package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"aria/internal/modules/finance/domain"
	financeout "aria/internal/modules/finance/port/out"
	"aria/internal/platform/clock"
	apperrors "aria/internal/platform/errors"
	"aria/internal/platform/id"
)

type FinanceService struct {
	clock clock.Clock
	idGen id.Generator
	repo  financeout.Repository
}

func NewFinanceService(clock clock.Clock, idGen id.Generator, repo financeout.Repository) *FinanceService {
	return &FinanceService{clock: clock, idGen: idGen, repo: repo}
}

func (s *FinanceService) State(ctx context.Context) (domain.State, error) {
	return s.repo.State(ctx)
}

func (s *FinanceService) SetBalance(ctx context.Context, amount float64) (domain.State, error) {
	if err := finite(amount); err != nil {
		return domain.State{}, err
	}
	var out domain.State
	err := s.repo.UpdateState(ctx, func(st *domain.State) error {
		st.Balance = amount
		out = *st
		return nil
	})
	return out, err
}

// AddTransaction updates the balance and the transaction list in one write.
func (s *FinanceService) AddTransaction(ctx context.Context, amount float64, txType, description string) (domain.Transaction, float64, error) {
	if err := finite(amount); err != nil {
		return domain.Transaction{}, 0, err
	}
	var (
		recorded domain.Transaction
		balance  float64
	)
	err := s.repo.UpdateState(ctx, func(st *domain.State) error {
		recorded = st.Record(domain.Transaction{
			ID:          s.idGen.New(),
			Date:        clock.Today(s.clock),
			Amount:      amount,
			Type:        domain.TransactionType(txType),
			Description: description,
		})
		balance = st.Balance
		return nil
	})
	if err != nil {
		return domain.Transaction{}, 0, err
	}
	return recorded, balance, nil
}

func (s *FinanceService) AddSplitwise(ctx context.Context, amount float64, description string) (domain.SplitwiseItem, error) {
	if err := finite(amount); err != nil {
		return domain.SplitwiseItem{}, err
	}
	var added domain.SplitwiseItem
	err := s.repo.UpdateState(ctx, func(st *domain.State) error {
		added = st.AddSplitwise(domain.SplitwiseItem{
			ID:          s.idGen.New(),
			Date:        clock.Today(s.clock),
			Amount:      amount,
			Description: description,
		})
		return nil
	})
	return added, err
}

func (s *FinanceService) CompleteSplitwise(ctx context.Context, id, description string) (domain.SplitwiseItem, bool, error) {
	var (
		item  domain.SplitwiseItem
		found bool
	)
	err := s.repo.UpdateState(ctx, func(st *domain.State) error {
		item, found = st.CompleteSplitwise(id, description)
		if !found {
			return errNoMatch
		}
		return nil
	})
	if errors.Is(err, errNoMatch) {
		return domain.SplitwiseItem{}, false, nil
	}
	return item, found, err
}

var errNoMatch = fmt.Errorf("splitwise item: %w", apperrors.ErrNotFound)

func finite(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("amount %v: %w", amount, apperrors.ErrInvalidInput)
	}
	return nil
}
