package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
	fbrepo "github.com/kailas-cloud/feedlens/internal/repository/feedback"
	savedrepo "github.com/kailas-cloud/feedlens/internal/repository/savedsearch"
	healthuc "github.com/kailas-cloud/feedlens/internal/usecase/health"
	saveduc "github.com/kailas-cloud/feedlens/internal/usecase/savedsearch"
	searchuc "github.com/kailas-cloud/feedlens/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/feedlens/internal/usecase/suggest"
)

// failingSource is a RecordSource whose snapshot always fails.
type failingSource struct{}

func (failingSource) Snapshot(context.Context) ([]feedback.Record, error) {
	return nil, errors.New("store unavailable")
}

type testEnv struct {
	handler http.Handler
	saved   *saveduc.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithSource(t, nil)
}

func newTestEnvWithSource(t *testing.T, source searchuc.RecordSource) *testEnv {
	t.Helper()

	records, err := fbrepo.DefaultRecords()
	if err != nil {
		t.Fatalf("default records: %v", err)
	}
	store, err := fbrepo.NewStore(records...)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if source == nil {
		source = store
	}

	saved := saveduc.New(savedrepo.NewMemory())
	srv := NewServer(
		searchuc.New(source, nil),
		suggestuc.New(func(int) int { return 0 }),
		saved,
		healthuc.New(store, nil, nil),
		Limits{DefaultPageSize: 10, MaxPageSize: 50},
		zap.NewNop(),
	)
	return &testEnv{handler: NewRouter(srv, zap.NewNop()), saved: saved}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v (body %s)", v, err, rec.Body.String())
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func itemIDs(items []FeedbackItem) []int64 {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
