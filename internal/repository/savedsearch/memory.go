package savedsearch

import (
	"context"
	"sync"

	"github.com/kailas-cloud/feedlens/internal/domain"
	domsaved "github.com/kailas-cloud/feedlens/internal/domain/search/savedsearch"
)

// Memory is a process-local saved-search repository.
type Memory struct {
	mu    sync.RWMutex
	seq   int64
	items []domsaved.SavedSearch
	byID  map[int64]int
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{byID: make(map[int64]int)}
}

// NextID returns the next counter value.
func (m *Memory) NextID(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return m.seq, nil
}

// Put stores or replaces a saved search.
func (m *Memory) Put(_ context.Context, s domsaved.SavedSearch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.byID[s.ID()]; ok {
		m.items[i] = s
		return nil
	}
	// Concurrent savers may Put out of ID order; keep items sorted.
	pos := len(m.items)
	for pos > 0 && m.items[pos-1].ID() > s.ID() {
		pos--
	}
	m.items = append(m.items, domsaved.SavedSearch{})
	copy(m.items[pos+1:], m.items[pos:])
	m.items[pos] = s
	for i := pos; i < len(m.items); i++ {
		m.byID[m.items[i].ID()] = i
	}
	return nil
}

// Get returns the saved search with the given ID.
func (m *Memory) Get(_ context.Context, id int64) (domsaved.SavedSearch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.byID[id]
	if !ok {
		return domsaved.SavedSearch{}, domain.ErrNotFound
	}
	return m.items[i], nil
}

// List returns a copy of all entries in creation order.
func (m *Memory) List(_ context.Context) ([]domsaved.SavedSearch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domsaved.SavedSearch, len(m.items))
	copy(out, m.items)
	return out, nil
}
