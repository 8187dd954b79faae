package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/feedlens/internal/domain"
	"github.com/kailas-cloud/feedlens/internal/domain/catalog"
	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
)

// MaxValuesPerFacet is the maximum number of selected values per facet.
const MaxValuesPerFacet = 32

// DateRange is an inclusive calendar-day range; either bound may be unset.
type DateRange struct {
	from time.Time
	to   time.Time
}

// NewDateRange validates and creates a DateRange. Zero times mean "unbounded".
func NewDateRange(from, to time.Time) (DateRange, error) {
	from, to = day(from), day(to)
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return DateRange{}, fmt.Errorf("%w: date range end %s is before start %s",
			domain.ErrInvalidInput, to.Format(feedback.DateLayout), from.Format(feedback.DateLayout))
	}
	return DateRange{from: from, to: to}, nil
}

// From returns the start bound and whether it is set.
func (d DateRange) From() (time.Time, bool) { return d.from, !d.from.IsZero() }

// To returns the end bound and whether it is set.
func (d DateRange) To() (time.Time, bool) { return d.to, !d.to.IsZero() }

// IsEmpty reports whether neither bound is set.
func (d DateRange) IsEmpty() bool { return d.from.IsZero() && d.to.IsZero() }

// Contains reports whether t falls inside the range at day granularity.
func (d DateRange) Contains(t time.Time) bool {
	t = day(t)
	if !d.from.IsZero() && t.Before(d.from) {
		return false
	}
	if !d.to.IsZero() && t.After(d.to) {
		return false
	}
	return true
}

func day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, dd := t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// State is the set of active facet selections. An empty selection for a facet
// means no restriction on that facet.
type State struct {
	components []string
	vehicles   []string
	sentiment  []feedback.Bucket
	sources    []feedback.Source
	dates      DateRange
	cluster    string
}

// Selection carries raw facet values for New.
type Selection struct {
	Components []string
	Vehicles   []string
	Sentiment  []string
	Sources    []string
	Dates      DateRange
	Cluster    string
}

// New validates and normalizes a facet selection. Blank values are dropped and
// duplicates collapsed, keeping first-seen order.
func New(sel Selection) (State, error) {
	components := normalize(sel.Components)
	vehicles := normalize(sel.Vehicles)
	rawSentiment := normalize(sel.Sentiment)
	rawSources := normalize(sel.Sources)

	counts := []struct {
		name string
		n    int
	}{
		{"components", len(components)},
		{"vehicles", len(vehicles)},
		{"sentiment", len(rawSentiment)},
		{"sources", len(rawSources)},
	}
	for _, c := range counts {
		if c.n > MaxValuesPerFacet {
			return State{}, fmt.Errorf("%w: too many %s values (max %d)", domain.ErrInvalidInput, c.name, MaxValuesPerFacet)
		}
	}

	// Buckets are case-insensitive, so duplicates collapse after lowercasing.
	var sentiment []feedback.Bucket
	seenBuckets := make(map[feedback.Bucket]struct{}, len(rawSentiment))
	for _, s := range rawSentiment {
		b := feedback.Bucket(strings.ToLower(s))
		if !b.IsValid() {
			return State{}, fmt.Errorf("%w: invalid sentiment bucket %q", domain.ErrInvalidInput, s)
		}
		if _, dup := seenBuckets[b]; dup {
			continue
		}
		seenBuckets[b] = struct{}{}
		sentiment = append(sentiment, b)
	}

	var sources []feedback.Source
	for _, s := range rawSources {
		src := feedback.Source(s)
		if !src.IsValid() {
			return State{}, fmt.Errorf("%w: unknown source %q", domain.ErrInvalidInput, s)
		}
		sources = append(sources, src)
	}

	cluster := strings.TrimSpace(sel.Cluster)
	if cluster != "" {
		if _, ok := catalog.ClusterByID(cluster); !ok {
			return State{}, fmt.Errorf("%w: unknown cluster %q", domain.ErrInvalidInput, cluster)
		}
	}

	return State{
		components: components,
		vehicles:   vehicles,
		sentiment:  sentiment,
		sources:    sources,
		dates:      sel.Dates,
		cluster:    cluster,
	}, nil
}

func normalize(values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Components returns the selected component terms.
func (s State) Components() []string { return append([]string(nil), s.components...) }

// Vehicles returns the selected vehicle models.
func (s State) Vehicles() []string { return append([]string(nil), s.vehicles...) }

// Sentiment returns the selected sentiment buckets.
func (s State) Sentiment() []feedback.Bucket { return append([]feedback.Bucket(nil), s.sentiment...) }

// Sources returns the selected sources.
func (s State) Sources() []feedback.Source { return append([]feedback.Source(nil), s.sources...) }

// Dates returns the date range restriction.
func (s State) Dates() DateRange { return s.dates }

// Cluster returns the selected cluster ID, empty when unset.
func (s State) Cluster() string { return s.cluster }

// Selection converts the state back into raw values.
func (s State) Selection() Selection {
	sel := Selection{
		Components: s.Components(),
		Vehicles:   s.Vehicles(),
		Dates:      s.dates,
		Cluster:    s.cluster,
	}
	for _, b := range s.sentiment {
		sel.Sentiment = append(sel.Sentiment, string(b))
	}
	for _, src := range s.sources {
		sel.Sources = append(sel.Sources, string(src))
	}
	return sel
}

// IsEmpty reports whether no facet restricts the candidate set.
func (s State) IsEmpty() bool {
	return len(s.components) == 0 && len(s.vehicles) == 0 && len(s.sentiment) == 0 &&
		len(s.sources) == 0 && s.dates.IsEmpty() && s.cluster == ""
}
