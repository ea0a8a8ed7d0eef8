package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/ledgerview/internal/domain"
	"github.com/iho/ledgerview/internal/reconcile"
	"github.com/iho/ledgerview/internal/usecase"
	"github.com/iho/ledgerview/internal/usecase/mocks"
)

func statusPtr(s domain.Status) *domain.Status { return &s }

func session(accountID string) *domain.Session {
	return &domain.Session{AccountID: accountID, Balance: decimal.NewFromInt(1000)}
}

// blockingListener blocks Run until its context is cancelled and signals
// each start, matching the real listener's shape.
type blockingListener struct {
	started chan string
}

func newBlockingListener() *blockingListener {
	return &blockingListener{started: make(chan string, 4)}
}

func (l *blockingListener) Run(ctx context.Context, accountID string, sink usecase.EventSink) error {
	l.started <- accountID
	<-ctx.Done()
	return ctx.Err()
}

func waitStarted(t *testing.T, l *blockingListener) string {
	t.Helper()
	select {
	case acc := <-l.started:
		return acc
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not start")
		return ""
	}
}

func newViewer(t *testing.T, ctrl *gomock.Controller) (*usecase.Viewer, *reconcile.Store, *mocks.MockHistoryClient, *mocks.MockSessionResolver, *blockingListener) {
	t.Helper()

	store := reconcile.New()
	history := mocks.NewMockHistoryClient(ctrl)
	sessions := mocks.NewMockSessionResolver(ctrl)
	listener := newBlockingListener()

	viewer := usecase.NewViewer(usecase.ViewerConfig{
		Store:    store,
		History:  history,
		Sessions: sessions,
		Listener: listener,
	})

	return viewer, store, history, sessions, listener
}

func TestViewer_Bind_LoadsHistoryAndSubscribes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	viewer, store, history, sessions, listener := newViewer(t, ctrl)
	defer viewer.Close()

	sessions.EXPECT().Resolve(gomock.Any()).Return(session("acc-1"), nil)
	history.EXPECT().History(gomock.Any(), "acc-1").Return([]domain.TransactionRecord{
		{ID: "h1", Status: domain.StatusSuccess},
	}, nil)

	if err := viewer.Bind(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if acc := waitStarted(t, listener); acc != "acc-1" {
		t.Errorf("listener bound to %s", acc)
	}

	if store.Len() != 1 {
		t.Errorf("expected history in store, got %d records", store.Len())
	}

	account, err := viewer.Account()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.AccountID != "acc-1" || !account.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("unexpected account view: %+v", account)
	}
}

func TestViewer_Bind_NoSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	viewer, _, _, sessions, _ := newViewer(t, ctrl)

	sessions.EXPECT().Resolve(gomock.Any()).Return(nil, domain.ErrNoSession)

	err := viewer.Bind(context.Background())
	if !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestViewer_Bind_SurvivesInitialFetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	viewer, _, history, sessions, listener := newViewer(t, ctrl)
	defer viewer.Close()

	sessions.EXPECT().Resolve(gomock.Any()).Return(session("acc-1"), nil)
	history.EXPECT().History(gomock.Any(), "acc-1").Return(nil, errors.New("boom"))

	// Bind keeps going: push may still deliver, and a later refresh recovers.
	if err := viewer.Bind(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if acc := waitStarted(t, listener); acc != "acc-1" {
		t.Errorf("listener bound to %s", acc)
	}
}

func TestViewer_Refresh_FailurePreservesStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	viewer, store, history, sessions, listener := newViewer(t, ctrl)
	defer viewer.Close()

	sessions.EXPECT().Resolve(gomock.Any()).Return(session("acc-1"), nil)
	history.EXPECT().History(gomock.Any(), "acc-1").Return([]domain.TransactionRecord{
		{ID: "h1", Status: domain.StatusSuccess},
	}, nil)

	if err := viewer.Bind(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitStarted(t, listener)

	history.EXPECT().History(gomock.Any(), "acc-1").Return(nil, errors.New("gateway timeout"))

	err := viewer.Refresh(context.Background())
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}

	// Stale-but-present beats empty.
	if store.Len() != 1 {
		t.Errorf("fetch failure cleared the store: %d records", store.Len())
	}
}

func TestViewer_Refresh_Unbound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	viewer, _, _, _, _ := newViewer(t, ctrl)

	if err := viewer.Refresh(context.Background()); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestViewer_Rebind_DiscardsStaleFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	viewer, store, history, sessions, listener := newViewer(t, ctrl)
	defer viewer.Close()

	sessions.EXPECT().Resolve(gomock.Any()).Return(session("acc-1"), nil)
	history.EXPECT().History(gomock.Any(), "acc-1").Return(nil, nil)

	if err := viewer.Bind(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitStarted(t, listener)

	// A slow fetch for acc-1 completes only after acc-2 is bound.
	release := make(chan struct{})
	fetchDone := make(chan error, 1)
	history.EXPECT().History(gomock.Any(), "acc-1").DoAndReturn(
		func(ctx context.Context, accountID string) ([]domain.TransactionRecord, error) {
			<-release
			return []domain.TransactionRecord{{ID: "stale", Status: domain.StatusSuccess}}, nil
		})

	go func() { fetchDone <- viewer.Refresh(context.Background()) }()

	sessions.EXPECT().Resolve(gomock.Any()).Return(session("acc-2"), nil)
	history.EXPECT().History(gomock.Any(), "acc-2").Return([]domain.TransactionRecord{
		{ID: "fresh", Status: domain.StatusSuccess},
	}, nil)

	if err := viewer.Bind(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitStarted(t, listener)

	close(release)
	if err := <-fetchDone; err != nil {
		t.Fatalf("stale refresh returned error: %v", err)
	}

	if _, ok := store.Get("stale"); ok {
		t.Error("stale fetch was applied after rebinding")
	}
	if _, ok := store.Get("fresh"); !ok {
		t.Error("fresh snapshot missing after rebinding")
	}
}

func TestViewer_Rebind_ReleasesPreviousSubscription(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	viewer, store, history, sessions, listener := newViewer(t, ctrl)
	defer viewer.Close()

	sessions.EXPECT().Resolve(gomock.Any()).Return(session("acc-1"), nil)
	history.EXPECT().History(gomock.Any(), "acc-1").Return(nil, nil)

	if err := viewer.Bind(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitStarted(t, listener)

	if err := store.InsertOptimistic(domain.TransactionRecord{ID: "mine"}); err != nil {
		t.Fatal(err)
	}

	sessions.EXPECT().Resolve(gomock.Any()).Return(session("acc-2"), nil)
	history.EXPECT().History(gomock.Any(), "acc-2").Return(nil, nil)

	if err := viewer.Bind(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Old subscription released, new one opened for acc-2.
	if acc := waitStarted(t, listener); acc != "acc-2" {
		t.Errorf("expected resubscription for acc-2, got %s", acc)
	}

	// Previous account's optimistic entries must not survive the rebind.
	if _, ok := store.Get("mine"); ok {
		t.Error("previous account's record survived rebinding")
	}
}

// partingListener delivers one last update after its context is cancelled,
// modelling a message already in flight inside the pump when the
// subscription is released.
type partingListener struct {
	started chan string
	parting domain.UpdateEvent
}

func (l *partingListener) Run(ctx context.Context, accountID string, sink usecase.EventSink) error {
	l.started <- accountID
	<-ctx.Done()
	sink.HandleUpdate(l.parting)
	return ctx.Err()
}

func TestViewer_Rebind_DrainsInFlightUpdates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := reconcile.New()
	history := mocks.NewMockHistoryClient(ctrl)
	sessions := mocks.NewMockSessionResolver(ctrl)
	listener := &partingListener{
		started: make(chan string, 4),
		parting: domain.UpdateEvent{
			ID:     "old-acc1-tx",
			Status: statusPtr(domain.StatusSuccess),
		},
	}

	viewer := usecase.NewViewer(usecase.ViewerConfig{
		Store:    store,
		History:  history,
		Sessions: sessions,
		Listener: listener,
	})
	defer viewer.Close()

	sessions.EXPECT().Resolve(gomock.Any()).Return(session("acc-1"), nil)
	history.EXPECT().History(gomock.Any(), "acc-1").Return(nil, nil)

	if err := viewer.Bind(context.Background()); err != nil {
		t.Fatal(err)
	}
	<-listener.started

	// Rebind while acc-1's last update is still in flight; the new account's
	// initial load fails, so nothing overwrites the store afterwards.
	sessions.EXPECT().Resolve(gomock.Any()).Return(session("acc-2"), nil)
	history.EXPECT().History(gomock.Any(), "acc-2").Return(nil, errors.New("boom"))

	if err := viewer.Bind(context.Background()); err != nil {
		t.Fatal(err)
	}
	<-listener.started

	if _, ok := store.Get("old-acc1-tx"); ok {
		t.Error("previous account's in-flight update leaked into the new account's store")
	}
}

func TestViewer_Bind_AfterCloseRestartsSubscription(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	viewer, store, history, sessions, listener := newViewer(t, ctrl)
	defer viewer.Close()

	sessions.EXPECT().Resolve(gomock.Any()).Return(session("acc-1"), nil).Times(2)
	history.EXPECT().History(gomock.Any(), "acc-1").Return(nil, nil).Times(2)

	if err := viewer.Bind(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitStarted(t, listener)

	viewer.Close()

	if err := store.InsertOptimistic(domain.TransactionRecord{ID: "mine"}); err != nil {
		t.Fatal(err)
	}

	// Rebinding the same account must reopen the released subscription
	// without discarding that account's records.
	if err := viewer.Bind(context.Background()); err != nil {
		t.Fatal(err)
	}

	if acc := waitStarted(t, listener); acc != "acc-1" {
		t.Errorf("expected resubscription for acc-1, got %s", acc)
	}
	if _, ok := store.Get("mine"); !ok {
		t.Error("same-account rebind must not drop the account's records")
	}
}

func TestViewer_HandleUpdate_TracksBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	viewer, store, history, sessions, listener := newViewer(t, ctrl)
	defer viewer.Close()

	sessions.EXPECT().Resolve(gomock.Any()).Return(session("acc-1"), nil)
	history.EXPECT().History(gomock.Any(), "acc-1").Return(nil, nil)

	if err := viewer.Bind(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitStarted(t, listener)

	balance := decimal.NewFromInt(950)
	outcome := viewer.HandleUpdate(domain.UpdateEvent{
		ID:         "tx-1",
		Status:     statusPtr(domain.StatusSuccess),
		NewBalance: &balance,
	})

	if outcome != reconcile.MergeInserted {
		t.Errorf("expected MergeInserted, got %d", outcome)
	}
	if store.Len() != 1 {
		t.Errorf("expected record in store")
	}

	account, err := viewer.Account()
	if err != nil {
		t.Fatal(err)
	}
	if !account.Balance.Equal(balance) {
		t.Errorf("balance not tracked: %s", account.Balance)
	}
}

func TestViewer_HandleReconnect_RefreshesHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := reconcile.New()
	history := mocks.NewMockHistoryClient(ctrl)
	sessions := mocks.NewMockSessionResolver(ctrl)
	listener := newBlockingListener()

	viewer := usecase.NewViewer(usecase.ViewerConfig{
		Store:              store,
		History:            history,
		Sessions:           sessions,
		Listener:           listener,
		RefreshOnReconnect: true,
	})
	defer viewer.Close()

	sessions.EXPECT().Resolve(gomock.Any()).Return(session("acc-1"), nil)
	history.EXPECT().History(gomock.Any(), "acc-1").Return(nil, nil)

	if err := viewer.Bind(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitStarted(t, listener)

	// Push replays nothing after a gap; the fetch restores correctness.
	history.EXPECT().History(gomock.Any(), "acc-1").Return([]domain.TransactionRecord{
		{ID: "missed", Status: domain.StatusSuccess},
	}, nil)

	viewer.HandleReconnect()

	if _, ok := store.Get("missed"); !ok {
		t.Error("reconnect did not trigger a history refresh")
	}
}
