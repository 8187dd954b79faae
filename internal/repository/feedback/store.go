// Package feedback holds the record store the search engine reads from.
package feedback

import (
	"context"
	"fmt"
	"sync"

	"github.com/kailas-cloud/feedlens/internal/domain"
	domfb "github.com/kailas-cloud/feedlens/internal/domain/feedback"
)

// Store is an append-only in-memory record collection.
// Readers get snapshots that later appends never mutate.
type Store struct {
	mu      sync.RWMutex
	records []domfb.Record
	ids     map[int64]struct{}
}

// NewStore creates a store seeded with records.
func NewStore(records ...domfb.Record) (*Store, error) {
	s := &Store{ids: make(map[int64]struct{}, len(records))}
	if err := s.Append(context.Background(), records...); err != nil {
		return nil, err
	}
	return s, nil
}

// Append adds records in order. A duplicate ID rejects the whole batch.
func (s *Store) Append(_ context.Context, records ...domfb.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make(map[int64]struct{}, len(records))
	for _, r := range records {
		if _, ok := s.ids[r.ID()]; ok {
			return fmt.Errorf("%w: record %d already exists", domain.ErrInvalidInput, r.ID())
		}
		if _, ok := batch[r.ID()]; ok {
			return fmt.Errorf("%w: record %d appears twice", domain.ErrInvalidInput, r.ID())
		}
		batch[r.ID()] = struct{}{}
	}

	for id := range batch {
		s.ids[id] = struct{}{}
	}
	s.records = append(s.records, records...)
	return nil
}

// Snapshot returns the records in store order. The capacity is capped so a
// caller's append can never write into the store's backing array.
func (s *Store) Snapshot(_ context.Context) ([]domfb.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[:len(s.records):len(s.records)], nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
