package similarity

import (
	"context"
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/feedlens/internal/domain"
	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
	"github.com/kailas-cloud/feedlens/internal/metrics"
)

// DefaultRecordCacheSize is the default number of record embeddings kept in memory.
const DefaultRecordCacheSize = 4096

const recordCacheName = "record"

// Embedding scores records by cosine similarity between the query embedding
// and the record-text embedding, mapped to [0, MaxContribution).
// Record embeddings are memoized by record ID since records never change.
type Embedding struct {
	query   domain.Embedder
	record  domain.Embedder
	records *lru.Cache[int64, []float32]
	logger  *zap.Logger
}

// NewEmbedding creates an embedding-backed Signal. Queries and record texts go
// through separate embedders so each side gets its own instruction and cache.
// A nil record embedder falls back to the query embedder.
func NewEmbedding(query, record domain.Embedder, recordCacheSize int, logger *zap.Logger) (*Embedding, error) {
	if query == nil {
		return nil, fmt.Errorf("query embedder is required")
	}
	if record == nil {
		record = query
	}
	if recordCacheSize <= 0 {
		recordCacheSize = DefaultRecordCacheSize
	}
	cache, err := lru.New[int64, []float32](recordCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create record embedding cache: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Embedding{query: query, record: record, records: cache, logger: logger}, nil
}

// ForQuery embeds the query once and returns a Func bound to ctx.
// A record that fails to embed contributes 0 and is logged.
func (e *Embedding) ForQuery(ctx context.Context, query string) (Func, error) {
	if query == "" {
		return Zero, nil
	}
	res, err := e.query.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	domain.UsageFromContext(ctx).AddTokens(res.TotalTokens)
	qv := res.Embedding

	return func(rec feedback.Record) float64 {
		rv, err := e.recordVector(ctx, rec)
		if err != nil {
			e.logger.Warn("Record embedding failed", zap.Int64("record_id", rec.ID()), zap.Error(err))
			return 0
		}
		return clamp(MaxContribution * cosine(qv, rv))
	}, nil
}

func (e *Embedding) recordVector(ctx context.Context, rec feedback.Record) ([]float32, error) {
	if v, ok := e.records.Get(rec.ID()); ok {
		metrics.EmbeddingCacheTotal.WithLabelValues(recordCacheName, "hit").Inc()
		return v, nil
	}
	metrics.EmbeddingCacheTotal.WithLabelValues(recordCacheName, "miss").Inc()
	res, err := e.record.Embed(ctx, rec.Text())
	if err != nil {
		return nil, fmt.Errorf("embed record: %w", err)
	}
	e.records.Add(rec.ID(), res.Embedding)
	return res.Embedding, nil
}

// cosine returns the cosine similarity of a and b, or 0 when undefined.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
