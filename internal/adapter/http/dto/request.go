package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerview/internal/usecase"
)

// SubmitTransferRequest represents a transfer submission request.
type SubmitTransferRequest struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
	Amount string `json:"amount"`
}

// ToUseCaseInput converts the request to use case input.
func (r SubmitTransferRequest) ToUseCaseInput() (usecase.SubmitInput, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return usecase.SubmitInput{}, err
	}

	return usecase.SubmitInput{
		FromID: r.FromID,
		ToID:   r.ToID,
		Amount: amount,
	}, nil
}
