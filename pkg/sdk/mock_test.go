package feedlens

import (
	"context"
	"time"

	"github.com/kailas-cloud/feedlens/internal/db"
	"github.com/kailas-cloud/feedlens/internal/domain/search/filter"
	"github.com/kailas-cloud/feedlens/internal/domain/search/request"
	"github.com/kailas-cloud/feedlens/internal/domain/search/result"
	domsaved "github.com/kailas-cloud/feedlens/internal/domain/search/savedsearch"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) (result.Page, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	return m.searchFn(ctx, req)
}

// --- savedUseCase mock ---

type mockSavedUC struct {
	saveFn func(ctx context.Context, name, query string, filters filter.State) (domsaved.SavedSearch, error)
	loadFn func(ctx context.Context, id int64) (string, filter.State, error)
	listFn func(ctx context.Context) ([]domsaved.SavedSearch, error)
}

func (m *mockSavedUC) Save(
	ctx context.Context, name, query string, filters filter.State,
) (domsaved.SavedSearch, error) {
	return m.saveFn(ctx, name, query, filters)
}

func (m *mockSavedUC) Load(ctx context.Context, id int64) (string, filter.State, error) {
	return m.loadFn(ctx, id)
}

func (m *mockSavedUC) List(ctx context.Context) ([]domsaved.SavedSearch, error) {
	return m.listFn(ctx)
}

// --- Embedder mock ---

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}

// --- db.Store mock (KV only) ---

type mockKVStore struct {
	db.Store
	data map[string][]byte
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{data: map[string][]byte{}}
}

func (m *mockKVStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKVStore) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}
