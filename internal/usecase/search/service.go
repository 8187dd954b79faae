package search

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/feedlens/internal/domain/search/request"
	"github.com/kailas-cloud/feedlens/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/feedlens/internal/logger"
	"github.com/kailas-cloud/feedlens/internal/metrics"
	"github.com/kailas-cloud/feedlens/internal/usecase/similarity"
)

// Service runs the filter -> score -> order -> paginate pipeline.
type Service struct {
	records    RecordSource
	similarity Similarity
}

// New creates a search service. A nil similarity disables the approximate-match signal.
func New(records RecordSource, sim Similarity) *Service {
	if sim == nil {
		sim = similarity.None{}
	}
	return &Service{records: records, similarity: sim}
}

// Search executes one request against a fresh snapshot of the record store.
// A page past the last one fails with domain.ErrOutOfRange.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	start := time.Now()
	logger := logpkg.FromContext(ctx)

	records, err := s.records.Snapshot(ctx)
	if err != nil {
		return result.Page{}, fmt.Errorf("snapshot records: %w", err)
	}

	candidates := Filter(records, req.Query(), req.Filters())

	simFn := similarity.Zero
	if req.Mode().UsesSimilarity() && req.Query() != "" {
		fn, err := s.similarity.ForQuery(ctx, req.Query())
		if err != nil {
			// The similarity signal is advisory; exact-match scoring still works.
			logger.Warn("Similarity signal unavailable", zap.String("query", req.Query()), zap.Error(err))
			metrics.SimilarityDegradedTotal.Inc()
		} else {
			simFn = fn
		}
	}

	scored := make([]result.Scored, len(candidates))
	for i, rec := range candidates {
		scored[i] = result.New(rec, Score(rec, req.Query(), simFn(rec)))
	}
	Order(scored, req.Sort())

	items, totalPages, err := Paginate(scored, req.Page(), req.PageSize())
	if err != nil {
		return result.Page{}, fmt.Errorf("paginate: %w", err)
	}

	metrics.SearchRequestsTotal.WithLabelValues(string(req.Sort()), string(req.Mode())).Inc()
	metrics.SearchMatches.Observe(float64(len(scored)))
	logger.Debug("Search completed",
		zap.Int("records", len(records)),
		zap.Int("matches", len(scored)),
		zap.String("page", strconv.Itoa(req.Page())+"/"+strconv.Itoa(totalPages)),
		zap.Duration("duration", time.Since(start)),
	)

	return result.Page{
		Items:        items,
		TotalMatches: len(scored),
		TotalPages:   totalPages,
		Page:         req.Page(),
	}, nil
}
