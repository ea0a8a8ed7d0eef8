package domain

import "github.com/shopspring/decimal"

// Event types carried on the per-account update channel.
const (
	EventTypeTransactionUpdate = "TRANSACTION_UPDATE"
	EventTypeBalanceUpdate     = "BALANCE_UPDATE"
)

// UpdateEvent is a decoded push message: a partial view of one transaction
// plus, optionally, the account balance after it settled. Any field may be
// absent; delivery is at-least-once and unordered, so consumers must merge
// idempotently.
type UpdateEvent struct {
	Type       string
	ID         string
	Status     *Status
	Amount     *decimal.Decimal
	FromID     *string
	ToID       *string
	NewBalance *decimal.Decimal
}

// HasRecord reports whether the event references a transaction at all.
// The ledger also emits balance-only updates with no transaction id; those
// must never create a record.
func (e UpdateEvent) HasRecord() bool {
	return e.ID != ""
}
