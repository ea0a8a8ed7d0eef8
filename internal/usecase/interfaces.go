package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerview/internal/domain"
	"github.com/iho/ledgerview/internal/reconcile"
)

// HistoryClient fetches the authoritative transaction history for an account.
type HistoryClient interface {
	History(ctx context.Context, accountID string) ([]domain.TransactionRecord, error)
}

// WriteClient submits a transfer to the ledger's write endpoint. The server
// treats repeated delivery of the same idempotency key as a no-op beyond the
// first acceptance.
type WriteClient interface {
	SubmitTransfer(ctx context.Context, idempotencyKey, fromID, toID string, amount decimal.Decimal) error
}

// SessionResolver resolves the current account identity.
type SessionResolver interface {
	Resolve(ctx context.Context) (*domain.Session, error)
}

// KeyGenerator produces idempotency keys for submitted transfers.
type KeyGenerator interface {
	NewKey() string
}

// EventSink consumes decoded push updates. HandleUpdate reports the merge
// outcome so the caller can account for it; HandleReconnect fires after the
// subscription is re-established, when missed messages may need a refresh.
type EventSink interface {
	HandleUpdate(ev domain.UpdateEvent) reconcile.MergeOutcome
	HandleReconnect()
}

// UpdateListener maintains the per-account push subscription. Run blocks
// until ctx is cancelled; cancelling releases the subscription.
type UpdateListener interface {
	Run(ctx context.Context, accountID string, sink EventSink) error
}
