package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/ledgerview/internal/domain"
	"github.com/iho/ledgerview/internal/reconcile"
	"github.com/iho/ledgerview/internal/usecase"
	"github.com/iho/ledgerview/internal/usecase/mocks"
)

type staticKeys struct {
	keys []string
	next int
}

func (s *staticKeys) NewKey() string {
	key := s.keys[s.next%len(s.keys)]
	s.next++
	return key
}

func TestSubmitUseCase_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := reconcile.New()
	writer := mocks.NewMockWriteClient(ctrl)
	keys := &staticKeys{keys: []string{"key-1"}}

	var sentKey string
	writer.EXPECT().
		SubmitTransfer(gomock.Any(), "key-1", "A", "B", gomock.Any()).
		DoAndReturn(func(ctx context.Context, key, from, to string, amount decimal.Decimal) error {
			sentKey = key
			return nil
		})

	uc := usecase.NewSubmitUseCase(store, writer, keys, nil)

	rec, err := uc.Submit(context.Background(), usecase.SubmitInput{
		FromID: " A ",
		ToID:   "B",
		Amount: decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.ID != sentKey {
		t.Errorf("record id %q does not match submitted idempotency key %q", rec.ID, sentKey)
	}
	if rec.Status != domain.StatusQueued || rec.Origin != domain.OriginOptimistic {
		t.Errorf("expected QUEUED/OPTIMISTIC, got %s/%s", rec.Status, rec.Origin)
	}
	if store.Len() != 1 {
		t.Errorf("expected one record in store, got %d", store.Len())
	}
}

func TestSubmitUseCase_Submit_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.SubmitInput
	}{
		{
			name:  "blank from",
			input: usecase.SubmitInput{FromID: " ", ToID: "B", Amount: decimal.NewFromInt(10)},
		},
		{
			name:  "blank to",
			input: usecase.SubmitInput{FromID: "A", ToID: "", Amount: decimal.NewFromInt(10)},
		},
		{
			name:  "zero amount",
			input: usecase.SubmitInput{FromID: "A", ToID: "B", Amount: decimal.Zero},
		},
		{
			name:  "negative amount",
			input: usecase.SubmitInput{FromID: "A", ToID: "B", Amount: decimal.NewFromInt(-1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := reconcile.New()
			// No EXPECT: any network call before validation is a failure.
			writer := mocks.NewMockWriteClient(ctrl)

			uc := usecase.NewSubmitUseCase(store, writer, &staticKeys{keys: []string{"key-1"}}, nil)

			_, err := uc.Submit(context.Background(), tt.input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if store.Len() != 0 {
				t.Errorf("store mutated on validation failure: %d records", store.Len())
			}
		})
	}
}

func TestSubmitUseCase_Submit_WriteRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := reconcile.New()
	writer := mocks.NewMockWriteClient(ctrl)

	writer.EXPECT().
		SubmitTransfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: ledger unreachable", domain.ErrSubmission))

	uc := usecase.NewSubmitUseCase(store, writer, &staticKeys{keys: []string{"key-1"}}, nil)

	_, err := uc.Submit(context.Background(), usecase.SubmitInput{
		FromID: "A",
		ToID:   "B",
		Amount: decimal.NewFromInt(10),
	})
	if !errors.Is(err, domain.ErrSubmission) {
		t.Fatalf("expected ErrSubmission, got %v", err)
	}

	if store.Len() != 0 {
		t.Errorf("rejected submission inserted a record")
	}
}

func TestSubmitUseCase_Submit_DuplicateKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := reconcile.New()
	writer := mocks.NewMockWriteClient(ctrl)
	writer.EXPECT().
		SubmitTransfer(gomock.Any(), "key-1", gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)

	// A generator stuck on one key simulates the collision defect.
	uc := usecase.NewSubmitUseCase(store, writer, &staticKeys{keys: []string{"key-1"}}, nil)

	input := usecase.SubmitInput{FromID: "A", ToID: "B", Amount: decimal.NewFromInt(10)}

	if _, err := uc.Submit(context.Background(), input); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	_, err := uc.Submit(context.Background(), input)
	if !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	if store.Len() != 1 {
		t.Errorf("expected exactly one record for the colliding key, got %d", store.Len())
	}
}
