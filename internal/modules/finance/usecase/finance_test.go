package usecase_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	financeout "aria/internal/modules/finance/adapter/out"
	"aria/internal/modules/finance/dto"
	financein "aria/internal/modules/finance/port/in"
	"aria/internal/modules/finance/service"
	"aria/internal/modules/finance/usecase"
	"aria/internal/platform/clock"
	apperrors "aria/internal/platform/errors"
	"aria/internal/platform/id"
	"aria/internal/platform/store"
)

func newFinance(st store.Store) financein.Usecase {
	svc := service.NewFinanceService(clock.FixedDate("2024-03-10"), id.NewSequence("f"), financeout.NewKVRepository(st, zap.NewNop()))
	return usecase.NewInteractor(svc)
}

func TestTransactionsMoveBalanceExactly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newFinance(store.NewMemory())

	_, err := uc.SetBalance(ctx, 100)
	require.NoError(t, err)

	out, err := uc.AddTransaction(ctx, dto.AddTransactionInput{Amount: 20, Description: "groceries"})
	require.NoError(t, err)
	assert.Equal(t, 80.0, out.Balance)
	assert.Equal(t, "expense", out.Transaction.Type)
	assert.Equal(t, "2024-03-10", out.Transaction.Date)

	out, err = uc.AddTransaction(ctx, dto.AddTransactionInput{Amount: -50, Type: "income"})
	require.NoError(t, err)
	assert.Equal(t, 130.0, out.Balance)
	assert.Equal(t, 50.0, out.Transaction.Amount)
	assert.Equal(t, "Transaction", out.Transaction.Description)

	st, err := uc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 130.0, st.Balance)
	require.Len(t, st.Transactions, 2)
	assert.Equal(t, "income", st.Transactions[0].Type)
}

func TestTransactionsAreCappedAndConcurrentWritesSerialize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newFinance(store.NewMemory())

	var wg sync.WaitGroup
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.AddTransaction(ctx, dto.AddTransactionInput{Amount: 1, Type: "income"})
		}()
	}
	wg.Wait()

	st, err := uc.State(ctx)
	require.NoError(t, err)
	assert.Len(t, st.Transactions, 50)
	assert.Equal(t, 60.0, st.Balance)
}

func TestRejectsNonFiniteAmounts(t *testing.T) {
	t.Parallel()
	uc := newFinance(store.NewMemory())
	_, err := uc.AddTransaction(context.Background(), dto.AddTransactionInput{Amount: math.Inf(1)})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	_, err = uc.SetBalance(context.Background(), math.NaN())
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestSplitwiseFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newFinance(store.NewMemory())

	item, err := uc.AddSplitwise(ctx, dto.AddSplitwiseInput{Amount: 18, Description: "Pizza night"})
	require.NoError(t, err)
	assert.Equal(t, "pending", item.Status)

	_, found, err := uc.CompleteSplitwise(ctx, dto.CompleteSplitwiseInput{Description: "sushi"})
	require.NoError(t, err)
	assert.False(t, found)

	done, found, err := uc.CompleteSplitwise(ctx, dto.CompleteSplitwiseInput{Description: "PIZZA"})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, item.ID, done.ID)
	assert.Equal(t, "done", done.Status)

	pending, err := uc.PendingSplitwise(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCorruptFinanceFallsBackToEmpty(t *testing.T) {
	t.Parallel()
	mem := store.NewMemory()
	mem.PutRaw(store.KeyFinance, []byte(`{"balance":`))
	uc := newFinance(mem)

	st, err := uc.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, st.Balance)
	assert.NotNil(t, st.Transactions)

	out, err := uc.AddTransaction(context.Background(), dto.AddTransactionInput{Amount: 3, Type: "income"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, out.Balance)
}
