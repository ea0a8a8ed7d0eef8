package domain

import (
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a transaction record.
type Status string

const (
	StatusQueued  Status = "QUEUED"
	StatusSuccess Status = "SUCCESS"
	StatusFraud   Status = "FRAUD"
	StatusError   Status = "ERROR"
)

// Terminal reports whether the status can no longer change.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusFraud, StatusError:
		return true
	}
	return false
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusQueued, StatusSuccess, StatusFraud, StatusError:
		return true
	}
	return false
}

// StatusFromCode maps the ledger's numeric result code to a status.
func StatusFromCode(code int) Status {
	switch code {
	case 200:
		return StatusSuccess
	case 403:
		return StatusFraud
	default:
		return StatusError
	}
}

// Origin records which side of the system a record came from.
type Origin string

const (
	// OriginOptimistic marks a locally created, unconfirmed record.
	OriginOptimistic Origin = "OPTIMISTIC"
	// OriginConfirmed marks a record sourced from a fetch or push.
	OriginConfirmed Origin = "CONFIRMED"
)

// TransactionRecord is one displayed entry of the reconciled transaction list.
// ID is the idempotency key for optimistic entries and the server record ID
// for confirmed ones; both are the same value end-to-end, which is what lets
// an optimistic entry and its later confirmation merge into one record.
type TransactionRecord struct {
	ID     string
	FromID string
	ToID   string
	// Amount is only meaningful when AmountKnown is true. A partial update
	// that omits the amount leaves it explicitly unknown rather than zero.
	Amount      decimal.Decimal
	AmountKnown bool
	Status      Status
	Origin      Origin
}
