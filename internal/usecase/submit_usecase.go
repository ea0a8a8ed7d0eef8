package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerview/internal/domain"
	"github.com/iho/ledgerview/internal/reconcile"
)

// SubmitUseCase handles transfer submission: validate, send the write with a
// fresh idempotency key, and only then insert the optimistic entry. A
// rejected or unreachable write leaves the store untouched; the UI must never
// show a transaction the server never accepted.
type SubmitUseCase struct {
	store  *reconcile.Store
	writer WriteClient
	keys   KeyGenerator
	logger *slog.Logger
}

// NewSubmitUseCase creates a new SubmitUseCase.
func NewSubmitUseCase(store *reconcile.Store, writer WriteClient, keys KeyGenerator, logger *slog.Logger) *SubmitUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &SubmitUseCase{
		store:  store,
		writer: writer,
		keys:   keys,
		logger: logger,
	}
}

// SubmitInput represents a transfer submission.
type SubmitInput struct {
	FromID string
	ToID   string
	Amount decimal.Decimal
}

// Submit validates the input, posts the write and inserts the QUEUED
// optimistic record keyed by the generated idempotency key. The terminal
// status arrives later via push or a history refresh.
func (uc *SubmitUseCase) Submit(ctx context.Context, input SubmitInput) (domain.TransactionRecord, error) {
	fromID, toID, err := domain.ValidateTransferInput(input.FromID, input.ToID, input.Amount)
	if err != nil {
		return domain.TransactionRecord{}, err
	}

	key := uc.keys.NewKey()

	if err := uc.writer.SubmitTransfer(ctx, key, fromID, toID, input.Amount); err != nil {
		uc.logger.WarnContext(ctx, "transfer submission failed",
			slog.String("idempotency_key", key),
			slog.String("error", err.Error()))

		return domain.TransactionRecord{}, err
	}

	rec := domain.TransactionRecord{
		ID:          key,
		FromID:      fromID,
		ToID:        toID,
		Amount:      input.Amount,
		AmountKnown: true,
	}

	if err := uc.store.InsertOptimistic(rec); err != nil {
		// A collision here means the key generator misbehaved. The write
		// already went out; report the defect instead of merging.
		uc.logger.ErrorContext(ctx, "idempotency key collision",
			slog.String("idempotency_key", key))

		return domain.TransactionRecord{}, err
	}

	rec, _ = uc.store.Get(key)

	uc.logger.InfoContext(ctx, "transfer queued",
		slog.String("idempotency_key", key),
		slog.String("from", fromID),
		slog.String("to", toID),
		slog.String("amount", input.Amount.String()))

	return rec, nil
}
