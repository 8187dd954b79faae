package search

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/feedlens/internal/domain/search/request"
	"github.com/kailas-cloud/feedlens/internal/domain/search/result"
)

// Order sorts items in place by the given key and returns them.
// The sort is stable for every key, so ties keep encounter order.
func Order(items []result.Scored, key request.Sort) []result.Scored {
	var cmpFn func(a, b result.Scored) int
	switch key {
	case request.SortDateNewest:
		cmpFn = func(a, b result.Scored) int {
			return b.Record().Date().Compare(a.Record().Date())
		}
	case request.SortSentimentNegative:
		cmpFn = func(a, b result.Scored) int {
			return cmp.Compare(a.Record().Sentiment(), b.Record().Sentiment())
		}
	case request.SortSentimentPositive:
		cmpFn = func(a, b result.Scored) int {
			return cmp.Compare(b.Record().Sentiment(), a.Record().Sentiment())
		}
	default:
		cmpFn = func(a, b result.Scored) int {
			return cmp.Compare(b.Score(), a.Score())
		}
	}
	slices.SortStableFunc(items, cmpFn)
	return items
}
