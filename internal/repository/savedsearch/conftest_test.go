package savedsearch

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/feedlens/internal/domain/search/filter"
	domsaved "github.com/kailas-cloud/feedlens/internal/domain/search/savedsearch"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	incrFn         func(ctx context.Context, key string) (int64, error)
	hsetFn         func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) Incr(ctx context.Context, key string) (int64, error) {
	if m.incrFn != nil {
		return m.incrFn(ctx, key)
	}
	return 1, nil
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

var testCreatedAt = time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC)

func makeSaved(t *testing.T, id int64, name, query string, sel filter.Selection) domsaved.SavedSearch {
	t.Helper()
	fs, err := filter.New(sel)
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}
	s, err := domsaved.New(id, name, query, fs, testCreatedAt)
	if err != nil {
		t.Fatalf("savedsearch.New: %v", err)
	}
	return s
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}
