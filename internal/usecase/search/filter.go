package search

import (
	"slices"
	"strings"

	"github.com/kailas-cloud/feedlens/internal/domain/catalog"
	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
	"github.com/kailas-cloud/feedlens/internal/domain/search/filter"
)

// Filter returns the records that pass the text stage and every non-empty
// facet, in store order. Facets combine with AND; values within a facet with OR.
func Filter(records []feedback.Record, query string, fs filter.State) []feedback.Record {
	q := strings.ToLower(query)
	m := newMatcher(fs)

	out := make([]feedback.Record, 0, len(records))
	for _, rec := range records {
		if q != "" && !matchesText(rec, q) {
			continue
		}
		if !m.matches(rec) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// matchesText reports whether lowered query q is a substring of text,
// component, issue or vehicle.
func matchesText(rec feedback.Record, q string) bool {
	return strings.Contains(strings.ToLower(rec.Text()), q) ||
		strings.Contains(strings.ToLower(rec.Component()), q) ||
		strings.Contains(strings.ToLower(rec.Issue()), q) ||
		strings.Contains(strings.ToLower(rec.Vehicle()), q)
}

// matcher precomputes lowered facet values once per request.
type matcher struct {
	components []string
	vehicles   []string
	sentiment  []feedback.Bucket
	sources    []feedback.Source
	dates      filter.DateRange
	cluster    *catalog.Cluster
}

func newMatcher(fs filter.State) matcher {
	m := matcher{
		vehicles:  fs.Vehicles(),
		sentiment: fs.Sentiment(),
		sources:   fs.Sources(),
		dates:     fs.Dates(),
	}
	for _, c := range fs.Components() {
		m.components = append(m.components, strings.ToLower(c))
	}
	if id := fs.Cluster(); id != "" {
		if c, ok := catalog.ClusterByID(id); ok {
			m.cluster = &c
		}
	}
	return m
}

func (m matcher) matches(rec feedback.Record) bool {
	if len(m.components) > 0 {
		comp := strings.ToLower(rec.Component())
		if !slices.ContainsFunc(m.components, func(c string) bool { return strings.Contains(comp, c) }) {
			return false
		}
	}
	if len(m.vehicles) > 0 && !slices.Contains(m.vehicles, rec.Vehicle()) {
		return false
	}
	if len(m.sentiment) > 0 && !slices.Contains(m.sentiment, rec.Bucket()) {
		return false
	}
	if len(m.sources) > 0 && !slices.Contains(m.sources, rec.Source()) {
		return false
	}
	if !m.dates.Contains(rec.Date()) {
		return false
	}
	if m.cluster != nil && !m.cluster.Contains(rec) {
		return false
	}
	return true
}
