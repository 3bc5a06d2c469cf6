package in

import (
	"context"

	"aria/internal/modules/finance/dto"
)

type Usecase interface {
	State(ctx context.Context) (dto.State, error)
	SetBalance(ctx context.Context, amount float64) (dto.State, error)
	AddTransaction(ctx context.Context, input dto.AddTransactionInput) (dto.AddTransactionOutput, error)
	AddSplitwise(ctx context.Context, input dto.AddSplitwiseInput) (dto.SplitwiseItem, error)
	// CompleteSplitwise reports false when no pending item matched.
	CompleteSplitwise(ctx context.Context, input dto.CompleteSplitwiseInput) (dto.SplitwiseItem, bool, error)
	PendingSplitwise(ctx context.Context) ([]dto.SplitwiseItem, error)
}
