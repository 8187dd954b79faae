package savedsearch

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/feedlens/internal/domain"
	"github.com/kailas-cloud/feedlens/internal/domain/search/filter"
)

// MaxNameLength is the maximum allowed display name length.
const MaxNameLength = 200

// SavedSearch is a named snapshot of a query and facet selection.
type SavedSearch struct {
	id        int64
	name      string
	query     string
	filters   filter.State
	createdAt time.Time
}

// ValidateName trims and checks a display name. Returns domain.ErrInvalidInput on failure.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: saved search name is required", domain.ErrInvalidInput)
	}
	if len(name) > MaxNameLength {
		return "", fmt.Errorf("%w: saved search name too long (max %d chars)", domain.ErrInvalidInput, MaxNameLength)
	}
	return name, nil
}

// New creates a SavedSearch. The name is trimmed.
func New(id int64, name, query string, filters filter.State, createdAt time.Time) (SavedSearch, error) {
	if id <= 0 {
		return SavedSearch{}, fmt.Errorf("%w: saved search id must be positive", domain.ErrInvalidInput)
	}
	name, err := ValidateName(name)
	if err != nil {
		return SavedSearch{}, err
	}
	return SavedSearch{
		id:        id,
		name:      name,
		query:     query,
		filters:   filters,
		createdAt: createdAt.UTC(),
	}, nil
}

// ID returns the monotonic identifier.
func (s SavedSearch) ID() int64 { return s.id }

// Name returns the trimmed display name.
func (s SavedSearch) Name() string { return s.name }

// Query returns the query snapshot.
func (s SavedSearch) Query() string { return s.query }

// Filters returns the facet snapshot.
func (s SavedSearch) Filters() filter.State { return s.filters }

// CreatedAt returns the creation time (UTC).
func (s SavedSearch) CreatedAt() time.Time { return s.createdAt }
