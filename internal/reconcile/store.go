// Package reconcile holds the in-memory transaction view that merges three
// partially ordered sources: optimistic local writes, authoritative history
// snapshots, and best-effort push updates. All convergence guarantees live
// here; callers apply events in arrival order and the merge rules do the rest.
package reconcile

import (
	"fmt"
	"iter"
	"sync"

	"github.com/iho/ledgerview/internal/domain"
)

// MergeOutcome describes what ApplyUpdate did with an event.
type MergeOutcome int

const (
	// MergeNoop means the event carried nothing applicable.
	MergeNoop MergeOutcome = iota
	// MergeInserted means a new confirmed record was created.
	MergeInserted
	// MergeUpdated means an existing record changed.
	MergeUpdated
	// MergeStaleDropped means the event only carried a status regression
	// and was ignored under the monotonicity rule.
	MergeStaleDropped
)

// Store is the single shared mutable structure of the engine. Mutations are
// serialized by one mutex; readers receive point-in-time copies. Display
// order is insertion order, newest first; a record moves to the front only
// when it is created, never on update.
type Store struct {
	mu      sync.Mutex
	order   []string
	records map[string]*domain.TransactionRecord
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		records: make(map[string]*domain.TransactionRecord),
	}
}

// InsertOptimistic inserts a locally submitted transfer at the front as
// QUEUED/OPTIMISTIC. An existing record with the same ID means the key
// generator collided; the insert is rejected, never merged over.
func (s *Store) InsertOptimistic(rec domain.TransactionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, rec.ID)
	}

	rec.Status = domain.StatusQueued
	rec.Origin = domain.OriginOptimistic
	s.records[rec.ID] = &rec
	s.order = append([]string{rec.ID}, s.order...)

	return nil
}

// ApplySnapshot replaces the collection with an authoritative history,
// mapped to CONFIRMED. Optimistic records the snapshot does not know about
// yet are re-merged at the front in their previous relative order, so a
// transfer submitted moments before a refresh is not lost. It returns how
// many optimistic records were preserved.
func (s *Store) ApplySnapshot(recs []domain.TransactionRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]*domain.TransactionRecord, len(recs))
	nextOrder := make([]string, 0, len(recs))

	for i := range recs {
		rec := recs[i]
		rec.Origin = domain.OriginConfirmed
		if _, ok := next[rec.ID]; ok {
			continue
		}
		next[rec.ID] = &rec
		nextOrder = append(nextOrder, rec.ID)
	}

	var preserved []string
	for _, id := range s.order {
		rec := s.records[id]
		if rec.Origin != domain.OriginOptimistic {
			continue
		}
		if _, ok := next[id]; ok {
			continue
		}
		next[id] = rec
		preserved = append(preserved, id)
	}

	s.records = next
	s.order = append(preserved, nextOrder...)

	return len(preserved)
}

// ApplyUpdate merges a partial update event. Unknown IDs are inserted at the
// front as CONFIRMED (push beat the first fetch); known IDs are merged
// field-by-field, with QUEUED dropped once the record is terminal. Any touch
// by a confirmed source flips the origin to CONFIRMED. Events without a
// transaction ID are a no-op here; balance observations are the caller's
// concern.
func (s *Store) ApplyUpdate(ev domain.UpdateEvent) MergeOutcome {
	if !ev.HasRecord() {
		return MergeNoop
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[ev.ID]
	if !ok {
		rec = &domain.TransactionRecord{
			ID:     ev.ID,
			Status: domain.StatusQueued,
			Origin: domain.OriginConfirmed,
		}
		applyFields(rec, ev)
		s.records[ev.ID] = rec
		s.order = append([]string{ev.ID}, s.order...)

		return MergeInserted
	}

	statusDropped := ev.Status != nil && *ev.Status == domain.StatusQueued && rec.Status.Terminal()
	changed := applyFields(rec, ev)

	if rec.Origin != domain.OriginConfirmed {
		rec.Origin = domain.OriginConfirmed
		changed = true
	}

	if !changed && statusDropped {
		return MergeStaleDropped
	}
	if !changed {
		return MergeNoop
	}

	return MergeUpdated
}

// applyFields merges the present fields of ev into rec and reports whether
// anything changed. Status regressions to QUEUED are skipped.
func applyFields(rec *domain.TransactionRecord, ev domain.UpdateEvent) bool {
	changed := false

	if ev.Status != nil && ev.Status.Valid() {
		regression := *ev.Status == domain.StatusQueued && rec.Status.Terminal()
		if !regression && rec.Status != *ev.Status {
			rec.Status = *ev.Status
			changed = true
		}
	}

	if ev.Amount != nil && (!rec.AmountKnown || !rec.Amount.Equal(*ev.Amount)) {
		rec.Amount = *ev.Amount
		rec.AmountKnown = true
		changed = true
	}

	if ev.FromID != nil && rec.FromID != *ev.FromID {
		rec.FromID = *ev.FromID
		changed = true
	}

	if ev.ToID != nil && rec.ToID != *ev.ToID {
		rec.ToID = *ev.ToID
		changed = true
	}

	return changed
}

// Get returns a copy of the record with the given ID.
func (s *Store) Get(id string) (domain.TransactionRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return domain.TransactionRecord{}, false
	}

	return *rec, true
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// All returns a lazy, restartable sequence over a point-in-time copy of the
// collection, newest first. It is not a live view; re-query after mutations.
func (s *Store) All() iter.Seq[domain.TransactionRecord] {
	s.mu.Lock()
	snapshot := make([]domain.TransactionRecord, 0, len(s.order))
	for _, id := range s.order {
		snapshot = append(snapshot, *s.records[id])
	}
	s.mu.Unlock()

	return func(yield func(domain.TransactionRecord) bool) {
		for _, rec := range snapshot {
			if !yield(rec) {
				return
			}
		}
	}
}

// Reset drops everything. Only used when rebinding to a different account,
// where optimistic entries from the previous account must not survive.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	s.records = make(map[string]*domain.TransactionRecord)
}
