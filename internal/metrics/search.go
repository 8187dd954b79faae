package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "feedlens"

// Search engine Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total number of executed searches",
		},
		[]string{"sort", "mode"},
	)

	SearchMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_matches",
			Help:      "Number of records passing the filter stage per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
	)

	SimilarityDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "similarity_degraded_total",
			Help:      "Searches scored without the similarity signal because it failed",
		},
	)

	SuggestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestions_total",
			Help:      "Suggestion lookups by outcome",
		},
		[]string{"result"}, // "empty" / "served"
	)

	SavedSearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saved_searches_total",
			Help:      "Saved-search operations by kind and status",
		},
		[]string{"op", "status"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers the search engine metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchMatches)
	prometheus.MustRegister(SimilarityDegradedTotal)
	prometheus.MustRegister(SuggestionsTotal)
	prometheus.MustRegister(SavedSearchesTotal)
	searchMetricsRegistered = true
}
