package feedlens

import (
	"context"
	"fmt"
	"time"
)

// SavedSearches returns the saved-search registry.
func (c *Client) SavedSearches() *SavedSearchService {
	return &SavedSearchService{svc: c.savedSvc, obs: c.obs}
}

// SavedSearchService manages named query and filter sets.
type SavedSearchService struct {
	svc savedUseCase
	obs *observer
}

// Save stores a named search. An empty or blank name fails with ErrInvalidInput
// and leaves the registry unchanged. IDs increase monotonically and are never reused.
func (s *SavedSearchService) Save(
	ctx context.Context, name, query string, filters Filters,
) (_ SavedSearch, err error) {
	start := time.Now()
	defer func() { s.obs.observe("saved_search.save", start, err) }()

	fs, err := toInternalFilters(filters)
	if err != nil {
		return SavedSearch{}, fmt.Errorf("save search: %w", err)
	}
	saved, err := s.svc.Save(ctx, name, query, fs)
	if err != nil {
		return SavedSearch{}, fmt.Errorf("save search: %w", err)
	}
	return fromInternalSaved(saved), nil
}

// Load returns the query and filters of a saved search without removing it.
func (s *SavedSearchService) Load(ctx context.Context, id int64) (_ string, _ Filters, err error) {
	start := time.Now()
	defer func() { s.obs.observe("saved_search.load", start, err) }()

	query, fs, err := s.svc.Load(ctx, id)
	if err != nil {
		return "", Filters{}, fmt.Errorf("load search %d: %w", id, err)
	}
	return query, fromInternalFilters(fs), nil
}

// List returns every saved search in creation order.
func (s *SavedSearchService) List(ctx context.Context) (_ []SavedSearch, err error) {
	start := time.Now()
	defer func() { s.obs.observe("saved_search.list", start, err) }()

	list, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	out := make([]SavedSearch, len(list))
	for i, ss := range list {
		out[i] = fromInternalSaved(ss)
	}
	return out, nil
}
