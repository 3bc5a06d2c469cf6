package usecase

import (
	"context"

	"aria/internal/modules/finance/domain"
	"aria/internal/modules/finance/dto"
	financein "aria/internal/modules/finance/port/in"
	"aria/internal/modules/finance/service"
)

type Interactor struct {
	svc *service.FinanceService
}

func NewInteractor(svc *service.FinanceService) financein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) State(ctx context.Context) (dto.State, error) {
	st, err := i.svc.State(ctx)
	if err != nil {
		return dto.State{}, err
	}
	return toState(st), nil
}

func (i *Interactor) SetBalance(ctx context.Context, amount float64) (dto.State, error) {
	st, err := i.svc.SetBalance(ctx, amount)
	if err != nil {
		return dto.State{}, err
	}
	return toState(st), nil
}

func (i *Interactor) AddTransaction(ctx context.Context, input dto.AddTransactionInput) (dto.AddTransactionOutput, error) {
	tx, balance, err := i.svc.AddTransaction(ctx, input.Amount, input.Type, input.Description)
	if err != nil {
		return dto.AddTransactionOutput{}, err
	}
	return dto.AddTransactionOutput{Transaction: toTransaction(tx), Balance: balance}, nil
}

func (i *Interactor) AddSplitwise(ctx context.Context, input dto.AddSplitwiseInput) (dto.SplitwiseItem, error) {
	item, err := i.svc.AddSplitwise(ctx, input.Amount, input.Description)
	if err != nil {
		return dto.SplitwiseItem{}, err
	}
	return toSplitwise(item), nil
}

func (i *Interactor) CompleteSplitwise(ctx context.Context, input dto.CompleteSplitwiseInput) (dto.SplitwiseItem, bool, error) {
	item, found, err := i.svc.CompleteSplitwise(ctx, input.ID, input.Description)
	if err != nil || !found {
		return dto.SplitwiseItem{}, false, err
	}
	return toSplitwise(item), true, nil
}

func (i *Interactor) PendingSplitwise(ctx context.Context) ([]dto.SplitwiseItem, error) {
	st, err := i.svc.State(ctx)
	if err != nil {
		return nil, err
	}
	pending := st.Pending()
	out := make([]dto.SplitwiseItem, 0, len(pending))
	for _, item := range pending {
		out = append(out, toSplitwise(item))
	}
	return out, nil
}

func toState(st domain.State) dto.State {
	out := dto.State{
		Balance:      st.Balance,
		Transactions: make([]dto.Transaction, 0, len(st.Transactions)),
		Splitwise:    make([]dto.SplitwiseItem, 0, len(st.Splitwise)),
	}
	for _, tx := range st.Transactions {
		out.Transactions = append(out.Transactions, toTransaction(tx))
	}
	for _, item := range st.Splitwise {
		out.Splitwise = append(out.Splitwise, toSplitwise(item))
	}
	return out
}

func toTransaction(tx domain.Transaction) dto.Transaction {
	return dto.Transaction{ID: tx.ID, Date: tx.Date, Amount: tx.Amount, Type: string(tx.Type), Description: tx.Description}
}

func toSplitwise(item domain.SplitwiseItem) dto.SplitwiseItem {
	return dto.SplitwiseItem{ID: item.ID, Date: item.Date, Amount: item.Amount, Description: item.Description, Status: string(item.Status)}
}
