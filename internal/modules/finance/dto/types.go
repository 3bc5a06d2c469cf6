package dto

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Amount decodes from a JSON number or a numeric string. Anything else is 0.
type Amount float64

func (a *Amount) UnmarshalJSON(raw []byte) error {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		*a = Amount(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*a = Amount(ParseAmount(s))
		return nil
	}
	*a = 0
	return nil
}

// ParseAmount reads the longest numeric prefix of s, ignoring a leading
// currency sign.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	end := 0
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || ((r == '-' || r == '+') && i == 0) {
			end = i + 1
			continue
		}
		break
	}
	for end > 0 {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return f
		}
		end--
	}
	return 0
}

type Transaction struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

type SplitwiseItem struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

type State struct {
	Balance      float64         `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
	Splitwise    []SplitwiseItem `json:"splitwise"`
}

type AddTransactionInput struct {
	Amount      float64
	Type        string
	Description string
}

type AddTransactionOutput struct {
	Transaction Transaction
	Balance     float64
}

type AddSplitwiseInput struct {
	Amount      float64
	Description string
}

type CompleteSplitwiseInput struct {
	ID          string
	Description string
}
