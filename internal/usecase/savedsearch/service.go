package savedsearch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/feedlens/internal/domain/search/filter"
	domsaved "github.com/kailas-cloud/feedlens/internal/domain/search/savedsearch"
	logpkg "github.com/kailas-cloud/feedlens/internal/logger"
	"github.com/kailas-cloud/feedlens/internal/metrics"
)

// Service is the saved-search registry.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a saved-search service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Save stores a named snapshot of query and filters.
// An empty (after trim) name fails with domain.ErrInvalidInput and leaves the registry untouched.
func (s *Service) Save(ctx context.Context, name, query string, filters filter.State) (domsaved.SavedSearch, error) {
	name, err := domsaved.ValidateName(name)
	if err != nil {
		metrics.SavedSearchesTotal.WithLabelValues("save", "invalid").Inc()
		return domsaved.SavedSearch{}, fmt.Errorf("validate saved search: %w", err)
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		metrics.SavedSearchesTotal.WithLabelValues("save", "error").Inc()
		return domsaved.SavedSearch{}, fmt.Errorf("allocate saved search id: %w", err)
	}

	saved, err := domsaved.New(id, name, query, filters, s.now())
	if err != nil {
		return domsaved.SavedSearch{}, fmt.Errorf("build saved search: %w", err)
	}
	if err := s.repo.Put(ctx, saved); err != nil {
		metrics.SavedSearchesTotal.WithLabelValues("save", "error").Inc()
		return domsaved.SavedSearch{}, fmt.Errorf("store saved search %d: %w", id, err)
	}

	metrics.SavedSearchesTotal.WithLabelValues("save", "ok").Inc()
	logpkg.FromContext(ctx).Info("Saved search created", zap.Int64("id", id), zap.String("name", name))
	return saved, nil
}

// Load returns the stored query and filters. It never mutates the entry.
func (s *Service) Load(ctx context.Context, id int64) (string, filter.State, error) {
	saved, err := s.Get(ctx, id)
	if err != nil {
		return "", filter.State{}, err
	}
	metrics.SavedSearchesTotal.WithLabelValues("load", "ok").Inc()
	return saved.Query(), saved.Filters(), nil
}

// Get returns the full saved search by ID.
func (s *Service) Get(ctx context.Context, id int64) (domsaved.SavedSearch, error) {
	saved, err := s.repo.Get(ctx, id)
	if err != nil {
		return domsaved.SavedSearch{}, fmt.Errorf("get saved search %d: %w", id, err)
	}
	return saved, nil
}

// List returns all saved searches in creation order.
func (s *Service) List(ctx context.Context) ([]domsaved.SavedSearch, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	return list, nil
}
