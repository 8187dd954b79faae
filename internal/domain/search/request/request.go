package request

import (
	"fmt"

	"github.com/kailas-cloud/feedlens/internal/domain"
	"github.com/kailas-cloud/feedlens/internal/domain/search/filter"
	"github.com/kailas-cloud/feedlens/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in bytes.
	MaxQueryLength  = 1024
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Sort is the ordering key applied after scoring.
type Sort string

// Sort keys.
const (
	SortRelevance         Sort = "relevance"
	SortDateNewest        Sort = "date-newest"
	SortSentimentNegative Sort = "sentiment-negative"
	SortSentimentPositive Sort = "sentiment-positive"
)

// Sorts lists every supported sort key.
func Sorts() []Sort {
	return []Sort{SortRelevance, SortDateNewest, SortSentimentNegative, SortSentimentPositive}
}

// IsValid checks if the sort key is supported.
func (s Sort) IsValid() bool {
	for _, known := range Sorts() {
		if s == known {
			return true
		}
	}
	return false
}

// Request is a validated search request.
type Request struct {
	query      string
	filters    filter.State
	sort       Sort
	searchMode mode.Mode
	page       int
	pageSize   int
}

// New validates and normalizes search parameters.
// Defaults: sort=relevance, mode=hybrid, page=1, pageSize=DefaultPageSize.
// An explicit page below 1 or page size outside [1, MaxPageSize] is rejected.
func New(
	query string,
	filters filter.State,
	s Sort,
	m mode.Mode,
	page, pageSize int,
) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidInput, MaxQueryLength)
	}
	if s == "" {
		s = SortRelevance
	}
	if !s.IsValid() {
		return Request{}, fmt.Errorf("%w: invalid sort key: %q", domain.ErrInvalidInput, s)
	}
	if m == "" {
		m = mode.Hybrid
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("%w: invalid search mode: %q", domain.ErrInvalidInput, m)
	}
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return Request{}, fmt.Errorf("%w: page must be >= 1, got %d", domain.ErrInvalidInput, page)
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return Request{}, fmt.Errorf("%w: page_size must be between 1 and %d", domain.ErrInvalidInput, MaxPageSize)
	}

	return Request{
		query:      query,
		filters:    filters,
		sort:       s,
		searchMode: m,
		page:       page,
		pageSize:   pageSize,
	}, nil
}

// Query returns the free-text query (may be empty).
func (r *Request) Query() string { return r.query }

// Filters returns the facet selection.
func (r *Request) Filters() filter.State { return r.filters }

// Sort returns the ordering key.
func (r *Request) Sort() Sort { return r.sort }

// Mode returns the search strategy.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PageSize returns the number of items per page.
func (r *Request) PageSize() int { return r.pageSize }

// WithPageSize returns a copy with a new page size and the page reset to 1.
func (r *Request) WithPageSize(pageSize int) (Request, error) {
	return New(r.query, r.filters, r.sort, r.searchMode, 1, pageSize)
}

// WithPage returns a copy pointing at another page.
func (r *Request) WithPage(page int) (Request, error) {
	return New(r.query, r.filters, r.sort, r.searchMode, page, r.pageSize)
}
