package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerview/internal/domain"
)

// TransactionResponse represents one reconciled transaction in API responses.
// Amount is omitted when the ledger never reported it.
type TransactionResponse struct {
	ID     string  `json:"id"`
	FromID string  `json:"from_id,omitempty"`
	ToID   string  `json:"to_id,omitempty"`
	Amount *string `json:"amount,omitempty"`
	Status string  `json:"status"`
	Origin string  `json:"origin"`
}

// TransactionFromDomain converts a domain record to a response.
func TransactionFromDomain(rec domain.TransactionRecord) TransactionResponse {
	resp := TransactionResponse{
		ID:     rec.ID,
		FromID: rec.FromID,
		ToID:   rec.ToID,
		Status: string(rec.Status),
		Origin: string(rec.Origin),
	}

	if rec.AmountKnown {
		amount := rec.Amount.String()
		resp.Amount = &amount
	}

	return resp
}

// AccountResponse represents the bound account in API responses.
type AccountResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// AccountFromDomain converts a domain account view to a response.
func AccountFromDomain(view domain.AccountView) AccountResponse {
	return AccountResponse{
		AccountID: view.AccountID,
		Balance:   view.Balance,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
