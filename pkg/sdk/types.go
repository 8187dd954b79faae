package feedlens

import "time"

// Sort is the ordering applied to search results.
type Sort string

// Sort keys.
const (
	SortRelevance         Sort = "relevance"
	SortDateNewest        Sort = "date-newest"
	SortSentimentNegative Sort = "sentiment-negative"
	SortSentimentPositive Sort = "sentiment-positive"
)

// SearchMode controls whether the similarity signal contributes to scores.
type SearchMode string

// Search mode constants.
const (
	ModeHybrid   SearchMode = "hybrid"
	ModeSemantic SearchMode = "semantic"
	ModeKeyword  SearchMode = "keyword"
)

// Record is one piece of customer feedback.
type Record struct {
	ID        int64
	Source    string // "Customer Survey", "Service Log", "Social Media", "Dealer Report", "Call Center"
	Date      time.Time
	Vehicle   string
	Component string
	Issue     string
	Sentiment float64 // in [-1, 1]
	Text      string
}

// Filters is a facet selection. Facets combine with AND, values within a facet with OR.
// An empty facet does not restrict.
type Filters struct {
	Components []string
	Vehicles   []string
	Sentiment  []string // positive, neutral, negative
	Sources    []string
	Cluster    string // catalog cluster ID
	From       time.Time
	To         time.Time
}

// SearchRequest is one search. Zero values pick the defaults:
// relevance sort, hybrid mode, page 1, 10 items per page.
type SearchRequest struct {
	Query    string
	Filters  Filters
	Sort     Sort
	Mode     SearchMode
	Page     int
	PageSize int
}

// SearchResult is a scored record.
type SearchResult struct {
	Record
	Score float64 // in [0, 10]
}

// Page is one page of search results.
type Page struct {
	Items        []SearchResult
	TotalMatches int
	TotalPages   int
	Page         int
	// EmbeddingTokens is the number of tokens the similarity signal consumed.
	EmbeddingTokens int
}

// SavedSearch is a named query and filter set.
type SavedSearch struct {
	ID        int64
	Name      string
	Query     string
	Filters   Filters
	CreatedAt time.Time
}
