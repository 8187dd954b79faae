// Package share encodes the active search state as a flat query string so it
// can be bookmarked or sent to another user.
//
// Multi-valued facets use the OpenAPI form style without explode
// (components=a,b), which means facet values themselves must not contain commas.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/feedlens/internal/domain"
	"github.com/kailas-cloud/feedlens/internal/domain/search/filter"
	"github.com/kailas-cloud/feedlens/internal/domain/search/request"
)

// Query-string keys, in emission order.
const (
	KeyQuery      = "q"
	KeyComponents = "components"
	KeyVehicles   = "vehicles"
	KeySentiment  = "sentiment"
	KeySources    = "sources"
	KeyCluster    = "cluster"
	KeySort       = "sort"
)

// State is the shareable part of a search: query, facets and ordering.
// Date range, mode and pagination are deliberately left out.
type State struct {
	Query   string
	Filters filter.State
	Sort    request.Sort
}

// Encode renders the state. Empty query and empty facets are omitted;
// sort is always present (relevance when unset).
func Encode(s State) (string, error) {
	sel := s.Filters.Selection()
	sortKey := s.Sort
	if sortKey == "" {
		sortKey = request.SortRelevance
	}

	parts := make([]string, 0, 7)
	add := func(key string, value any) error {
		p, err := runtime.StyleParamWithLocation("form", false, key, runtime.ParamLocationQuery, value)
		if err != nil {
			return fmt.Errorf("style %s: %w", key, err)
		}
		parts = append(parts, p)
		return nil
	}

	if s.Query != "" {
		if err := add(KeyQuery, s.Query); err != nil {
			return "", err
		}
	}
	lists := []struct {
		key    string
		values []string
	}{
		{KeyComponents, sel.Components},
		{KeyVehicles, sel.Vehicles},
		{KeySentiment, sel.Sentiment},
		{KeySources, sel.Sources},
	}
	for _, l := range lists {
		if len(l.values) == 0 {
			continue
		}
		if err := add(l.key, l.values); err != nil {
			return "", err
		}
	}
	if sel.Cluster != "" {
		if err := add(KeyCluster, sel.Cluster); err != nil {
			return "", err
		}
	}
	if err := add(KeySort, string(sortKey)); err != nil {
		return "", err
	}
	return strings.Join(parts, "&"), nil
}

// Decode parses a query string produced by Encode.
func Decode(raw string) (State, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return State{}, fmt.Errorf("%w: parse query string: %w", domain.ErrInvalidInput, err)
	}
	return FromValues(values, filter.DateRange{})
}

// FromValues reads the shared keys from already-parsed query values.
// Unknown keys are ignored. The date range is supplied by the caller because
// it is not part of the shared form.
func FromValues(values url.Values, dates filter.DateRange) (State, error) {
	var sel filter.Selection
	lists := []struct {
		key  string
		dest *[]string
	}{
		{KeyComponents, &sel.Components},
		{KeyVehicles, &sel.Vehicles},
		{KeySentiment, &sel.Sentiment},
		{KeySources, &sel.Sources},
	}
	for _, l := range lists {
		if err := runtime.BindQueryParameter("form", false, false, l.key, values, l.dest); err != nil {
			return State{}, fmt.Errorf("%w: bind %s: %w", domain.ErrInvalidInput, l.key, err)
		}
	}
	sel.Cluster = values.Get(KeyCluster)
	sel.Dates = dates

	fs, err := filter.New(sel)
	if err != nil {
		return State{}, fmt.Errorf("filters: %w", err)
	}

	sortKey := request.Sort(values.Get(KeySort))
	if sortKey == "" {
		sortKey = request.SortRelevance
	}
	if !sortKey.IsValid() {
		return State{}, fmt.Errorf("%w: invalid sort key: %q", domain.ErrInvalidInput, sortKey)
	}

	return State{Query: values.Get(KeyQuery), Filters: fs, Sort: sortKey}, nil
}
