package ledgerapi

import (
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerview/internal/domain"
)

// transferRequest is the write endpoint's body. The idempotency key travels
// in the X-Idempotency-Key header, not the body.
type transferRequest struct {
	FromID string          `json:"fromId"`
	ToID   string          `json:"toId"`
	Amount decimal.Decimal `json:"amount"`
}

// historyRecord is one row of the query endpoint's response. Older ledger
// revisions key rows by idempotencyKey, newer ones by id; amount and the
// account ids may be absent on rows persisted before the schema grew them.
type historyRecord struct {
	IdempotencyKey string           `json:"idempotencyKey"`
	ID             string           `json:"id"`
	StatusCode     int              `json:"statusCode"`
	Amount         *decimal.Decimal `json:"amount"`
	FromID         string           `json:"fromId"`
	ToID           string           `json:"toId"`
}

// toDomain translates a wire row into the canonical record.
func (r historyRecord) toDomain() domain.TransactionRecord {
	id := r.IdempotencyKey
	if id == "" {
		id = r.ID
	}

	rec := domain.TransactionRecord{
		ID:     id,
		FromID: r.FromID,
		ToID:   r.ToID,
		Status: domain.StatusFromCode(r.StatusCode),
		Origin: domain.OriginConfirmed,
	}

	if r.Amount != nil {
		rec.Amount = *r.Amount
		rec.AmountKnown = true
	}

	return rec
}

// errorResponse is the ledger's error body shape.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}
