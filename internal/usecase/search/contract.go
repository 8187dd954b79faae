package search

import (
	"context"

	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
	"github.com/kailas-cloud/feedlens/internal/usecase/similarity"
)

// RecordSource hands out a point-in-time snapshot of the record store.
type RecordSource interface {
	Snapshot(ctx context.Context) ([]feedback.Record, error)
}

// Similarity builds the approximate-match signal for one query.
type Similarity interface {
	ForQuery(ctx context.Context, query string) (similarity.Func, error)
}
