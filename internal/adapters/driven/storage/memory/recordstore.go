package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/ports/driven"
	"github.com/custodia-labs/grimoire/internal/index"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// snapshot is one published catalog. It is never modified after Replace.
type snapshot struct {
	records []domain.Record
	byID    map[string]int
	index   *index.Index
}

// RecordStore is an in-memory implementation of driven.RecordStore.
// Replace builds a complete snapshot before swapping it in under the
// write lock, so readers never see a partial catalog.
type RecordStore struct {
	mu   sync.RWMutex
	snap *snapshot
}

// NewRecordStore creates a new, unloaded record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// Replace publishes a complete collection atomically.
func (s *RecordStore) Replace(_ context.Context, records []domain.Record) error {
	next := &snapshot{
		records: append([]domain.Record(nil), records...),
		byID:    make(map[string]int, len(records)),
	}
	for i, r := range next.records {
		if r.MainType == "" {
			return fmt.Errorf("%w: record %q has no main type", domain.ErrInvalidInput, r.Name)
		}
		if _, dup := next.byID[r.ID]; dup {
			return fmt.Errorf("%w: duplicate record id %s", domain.ErrInvalidInput, r.ID)
		}
		next.byID[r.ID] = i
	}
	next.index = index.Build(next.records)

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()
	return nil
}

func (s *RecordStore) current() (*snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, domain.ErrNotLoaded
	}
	return s.snap, nil
}

// Loaded reports whether a collection has been published.
func (s *RecordStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil
}

// All returns the collection in store order.
func (s *RecordStore) All(_ context.Context) ([]domain.Record, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return append([]domain.Record(nil), snap.records...), nil
}

// Get retrieves a record by ID.
func (s *RecordStore) Get(_ context.Context, id string) (*domain.Record, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	i, ok := snap.byID[id]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	r := snap.records[i]
	return &r, nil
}

// Select returns the records in scope carrying trait, in store order.
func (s *RecordStore) Select(_ context.Context, scope domain.Scope, trait string) ([]domain.Record, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	positions := snap.index.Select(scope, trait)
	out := make([]domain.Record, len(positions))
	for i, p := range positions {
		out[i] = snap.records[p]
	}
	return out, nil
}

// TraitsFor returns the sorted distinct traits of the records in scope.
func (s *RecordStore) TraitsFor(_ context.Context, scope domain.Scope) ([]string, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return snap.index.TraitsFor(scope), nil
}

// SubTypesFor returns "All" followed by the sorted distinct sub types.
func (s *RecordStore) SubTypesFor(_ context.Context, mainType domain.MainType) ([]string, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return snap.index.SubTypesFor(mainType), nil
}
