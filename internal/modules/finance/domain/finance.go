package domain

import (
	"math"
	"strings"
)

const MaxTransactions = 50

const (
	DefaultTransactionDescription = "Transaction"
	DefaultSplitwiseDescription   = "Splitwise Item"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// ParseTransactionType maps anything other than "income" to an expense.
func ParseTransactionType(s string) TransactionType {
	if s == string(TransactionIncome) {
		return TransactionIncome
	}
	return TransactionExpense
}

type SplitwiseStatus string

const (
	SplitwisePending SplitwiseStatus = "pending"
	SplitwiseDone    SplitwiseStatus = "done"
)

type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
}

type SplitwiseItem struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Status      SplitwiseStatus `json:"status"`
}

type State struct {
	Balance      float64         `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
	Splitwise    []SplitwiseItem `json:"splitwise"`
}

func Empty() State {
	return State{Transactions: []Transaction{}, Splitwise: []SplitwiseItem{}}
}

// Record applies tx to the balance and prepends it, evicting the oldest
// entries beyond MaxTransactions. Amount is stored as an absolute value.
func (s *State) Record(tx Transaction) Transaction {
	tx.Amount = math.Abs(tx.Amount)
	tx.Type = ParseTransactionType(string(tx.Type))
	if strings.TrimSpace(tx.Description) == "" {
		tx.Description = DefaultTransactionDescription
	}
	if tx.Type == TransactionIncome {
		s.Balance += tx.Amount
	} else {
		s.Balance -= tx.Amount
	}
	list := make([]Transaction, 0, len(s.Transactions)+1)
	list = append(list, tx)
	list = append(list, s.Transactions...)
	if len(list) > MaxTransactions {
		list = list[:MaxTransactions]
	}
	s.Transactions = list
	return tx
}

func (s *State) AddSplitwise(item SplitwiseItem) SplitwiseItem {
	if strings.TrimSpace(item.Description) == "" {
		item.Description = DefaultSplitwiseDescription
	}
	item.Status = SplitwisePending
	s.Splitwise = append(s.Splitwise, item)
	return item
}

// CompleteSplitwise marks a pending item done. It matches by id first and
// then by a case-insensitive substring of the description.
func (s *State) CompleteSplitwise(id, description string) (SplitwiseItem, bool) {
	idx := -1
	if id != "" {
		for i, item := range s.Splitwise {
			if item.ID == id && item.Status == SplitwisePending {
				idx = i
				break
			}
		}
	}
	if idx < 0 && description != "" {
		needle := strings.ToLower(description)
		for i, item := range s.Splitwise {
			if item.Status == SplitwisePending && strings.Contains(strings.ToLower(item.Description), needle) {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return SplitwiseItem{}, false
	}
	s.Splitwise[idx].Status = SplitwiseDone
	return s.Splitwise[idx], true
}

func (s State) Pending() []SplitwiseItem {
	out := []SplitwiseItem{}
	for _, item := range s.Splitwise {
		if item.Status == SplitwisePending {
			out = append(out, item)
		}
	}
	return out
}
