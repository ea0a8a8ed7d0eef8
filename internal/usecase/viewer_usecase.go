package usecase

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"github.com/iho/ledgerview/internal/domain"
	"github.com/iho/ledgerview/internal/infrastructure/metrics"
	"github.com/iho/ledgerview/internal/reconcile"
)

// Viewer binds the engine to an account and owns its lifecycle: resolve the
// session, load history into the store, keep exactly one push subscription
// open for the bound account, and reconcile everything that arrives. It is
// the EventSink for the push listener.
type Viewer struct {
	store    *reconcile.Store
	history  HistoryClient
	submit   *SubmitUseCase
	sessions SessionResolver
	listener UpdateListener
	logger   *slog.Logger
	metrics  *metrics.Metrics

	refreshOnReconnect bool

	mu      sync.Mutex
	bound   string
	balance domain.AccountView
	cancel  context.CancelFunc
	done    chan struct{}
}

// ViewerConfig holds dependencies for a Viewer.
type ViewerConfig struct {
	Store    *reconcile.Store
	History  HistoryClient
	Submit   *SubmitUseCase
	Sessions SessionResolver
	Listener UpdateListener
	Logger   *slog.Logger
	Metrics  *metrics.Metrics

	// RefreshOnReconnect triggers a history refresh whenever the push
	// subscription is re-established, restoring correctness after message
	// loss. The push channel is best-effort; the fetch is authoritative.
	RefreshOnReconnect bool
}

// NewViewer creates a new Viewer.
func NewViewer(cfg ViewerConfig) *Viewer {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Viewer{
		store:              cfg.Store,
		history:            cfg.History,
		submit:             cfg.Submit,
		sessions:           cfg.Sessions,
		listener:           cfg.Listener,
		logger:             cfg.Logger,
		metrics:            cfg.Metrics,
		refreshOnReconnect: cfg.RefreshOnReconnect,
	}
}

// Bind resolves the session and binds the engine to its account: on an
// account change the previous subscription is released and fully drained
// before the store is replaced, so an update already in flight for the old
// account can never land in the new account's view. History load happens
// before the subscription opens; anything pushed in between is reconciled by
// the merge rules. The listener runs until ctx is cancelled or Close is
// called.
func (v *Viewer) Bind(ctx context.Context) error {
	session, err := v.sessions.Resolve(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	previous := v.bound
	sameAccount := previous == session.AccountID
	if sameAccount && v.cancel != nil {
		v.mu.Unlock()
		return v.Refresh(ctx)
	}

	cancel := v.cancel
	done := v.done
	v.cancel = nil
	v.done = nil
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	v.mu.Lock()
	v.bound = session.AccountID
	v.balance = domain.AccountView{AccountID: session.AccountID, Balance: session.Balance}
	if !sameAccount {
		// Only now, with the old subscription drained, is it safe to drop
		// the previous account's records.
		v.store.Reset()
	}
	v.mu.Unlock()

	v.logger.InfoContext(ctx, "account bound",
		slog.String("account_id", session.AccountID),
		slog.String("previous", previous))

	if err := v.Refresh(ctx); err != nil {
		// Stale-but-present beats empty: keep going with the push channel
		// and whatever the store holds.
		v.logger.WarnContext(ctx, "initial history load failed",
			slog.String("account_id", session.AccountID),
			slog.String("error", err.Error()))
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	listenerDone := make(chan struct{})

	v.mu.Lock()
	v.cancel = cancel
	v.done = listenerDone
	v.mu.Unlock()

	go func() {
		defer close(listenerDone)
		if err := v.listener.Run(runCtx, session.AccountID, v); err != nil && runCtx.Err() == nil {
			v.logger.Error("push listener stopped",
				slog.String("account_id", session.AccountID),
				slog.String("error", err.Error()))
		}
	}()

	return nil
}

// Refresh fetches the authoritative history and applies it as a snapshot.
// A fetch failure leaves the store untouched. A fetch that completes after
// the account was rebound is discarded rather than applied.
func (v *Viewer) Refresh(ctx context.Context) error {
	v.mu.Lock()
	accountID := v.bound
	v.mu.Unlock()

	if accountID == "" {
		return domain.ErrNoSession
	}

	records, err := v.history.History(ctx, accountID)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.bound != accountID {
		v.logger.Debug("discarding stale history fetch",
			slog.String("fetched_for", accountID),
			slog.String("bound", v.bound))

		return nil
	}

	preserved := v.store.ApplySnapshot(records)

	if v.metrics != nil {
		v.metrics.SnapshotsApplied.Inc()
		v.metrics.OptimisticPreserved.Add(float64(preserved))
		v.metrics.RecordCount.Set(float64(v.store.Len()))
	}

	v.logger.InfoContext(ctx, "history snapshot applied",
		slog.String("account_id", accountID),
		slog.Int("records", len(records)),
		slog.Int("optimistic_preserved", preserved))

	return nil
}

// Submit submits a transfer through the bound session's engine.
func (v *Viewer) Submit(ctx context.Context, input SubmitInput) (domain.TransactionRecord, error) {
	return v.submit.Submit(ctx, input)
}

// Transactions returns the reconciled view, newest first.
func (v *Viewer) Transactions() iter.Seq[domain.TransactionRecord] {
	return v.store.All()
}

// Account returns the bound account and its last observed balance.
func (v *Viewer) Account() (domain.AccountView, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.bound == "" {
		return domain.AccountView{}, domain.ErrNoSession
	}

	return v.balance, nil
}

// HandleUpdate implements EventSink: merge the event and track the balance
// observation if the event carries one.
func (v *Viewer) HandleUpdate(ev domain.UpdateEvent) reconcile.MergeOutcome {
	outcome := v.store.ApplyUpdate(ev)

	if v.metrics != nil {
		v.metrics.ReconcileMerges.WithLabelValues(outcomeMetricLabel(outcome)).Inc()
		v.metrics.RecordCount.Set(float64(v.store.Len()))
	}

	if ev.NewBalance != nil {
		v.mu.Lock()
		v.balance.Balance = *ev.NewBalance
		v.mu.Unlock()
	}

	return outcome
}

// HandleReconnect implements EventSink. The subscription replays nothing, so
// missed messages are only recovered by the next authoritative fetch.
func (v *Viewer) HandleReconnect() {
	if !v.refreshOnReconnect {
		return
	}

	if err := v.Refresh(context.Background()); err != nil {
		v.logger.Warn("refresh after reconnect failed", slog.String("error", err.Error()))
	}
}

func outcomeMetricLabel(outcome reconcile.MergeOutcome) string {
	switch outcome {
	case reconcile.MergeInserted:
		return metrics.OutcomeInserted
	case reconcile.MergeUpdated:
		return metrics.OutcomeUpdated
	case reconcile.MergeStaleDropped:
		return metrics.OutcomeStaleDropped
	default:
		return metrics.OutcomeNoop
	}
}

// Close releases the push subscription.
func (v *Viewer) Close() {
	v.mu.Lock()
	cancel := v.cancel
	done := v.done
	v.cancel = nil
	v.done = nil
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}
