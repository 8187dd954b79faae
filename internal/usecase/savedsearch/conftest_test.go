package savedsearch

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/kailas-cloud/feedlens/internal/domain"
	"github.com/kailas-cloud/feedlens/internal/domain/search/filter"
	domsaved "github.com/kailas-cloud/feedlens/internal/domain/search/savedsearch"
)

// mockRepo is an in-memory Repository with injectable failures.
type mockRepo struct {
	seq     int64
	items   map[int64]domsaved.SavedSearch
	nextErr error
	putErr  error
	listErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[int64]domsaved.SavedSearch)}
}

func (m *mockRepo) NextID(_ context.Context) (int64, error) {
	if m.nextErr != nil {
		return 0, m.nextErr
	}
	m.seq++
	return m.seq, nil
}

func (m *mockRepo) Put(_ context.Context, s domsaved.SavedSearch) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.items[s.ID()] = s
	return nil
}

func (m *mockRepo) Get(_ context.Context, id int64) (domsaved.SavedSearch, error) {
	s, ok := m.items[id]
	if !ok {
		return domsaved.SavedSearch{}, domain.ErrNotFound
	}
	return s, nil
}

func (m *mockRepo) List(_ context.Context) ([]domsaved.SavedSearch, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domsaved.SavedSearch, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b domsaved.SavedSearch) int { return int(a.ID() - b.ID()) })
	return out, nil
}

var fixedNow = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mockRepo) {
	t.Helper()
	repo := newMockRepo()
	svc := New(repo)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func mustFilters(t *testing.T, sel filter.Selection) filter.State {
	t.Helper()
	fs, err := filter.New(sel)
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}
	return fs
}
