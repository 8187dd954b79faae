package chi

import "time"

// ErrorResponseCode is the machine-readable error code in ErrorResponse.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeNotFound         ErrorResponseCode = "not_found"
	ErrorResponseCodePageOutOfRange   ErrorResponseCode = "page_out_of_range"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// PageOutOfRangeResponse carries the computed page count so clients can clamp.
type PageOutOfRangeResponse struct {
	Code          ErrorResponseCode `json:"code"`
	Message       string            `json:"message"`
	RequestedPage int               `json:"requested_page"`
	TotalPages    int               `json:"total_pages"`
}

// SearchParams are the query parameters of GET /api/v1/search.
type SearchParams struct {
	Q          *string   `json:"q,omitempty"`
	Components *[]string `json:"components,omitempty"`
	Vehicles   *[]string `json:"vehicles,omitempty"`
	Sentiment  *[]string `json:"sentiment,omitempty"`
	Sources    *[]string `json:"sources,omitempty"`
	Cluster    *string   `json:"cluster,omitempty"`
	Sort       *string   `json:"sort,omitempty"`
	Mode       *string   `json:"mode,omitempty"`
	From       *string   `json:"from,omitempty"`
	To         *string   `json:"to,omitempty"`
	Page       *int      `json:"page,omitempty"`
	PageSize   *int      `json:"page_size,omitempty"`
}

// FeedbackItem is one scored record in a search response.
type FeedbackItem struct {
	ID        int64   `json:"id"`
	Source    string  `json:"source"`
	Date      string  `json:"date"`
	Vehicle   string  `json:"vehicle"`
	Component string  `json:"component"`
	Issue     string  `json:"issue"`
	Sentiment float64 `json:"sentiment"`
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
}

// SearchResponse is the body of GET /api/v1/search.
type SearchResponse struct {
	Items        []FeedbackItem `json:"items"`
	TotalMatches int            `json:"total_matches"`
	TotalPages   int            `json:"total_pages"`
	Page         int            `json:"page"`
	PageSize     int            `json:"page_size"`
	ShareQuery   string         `json:"share_query"`
}

// SuggestionsResponse is the body of GET /api/v1/suggestions.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Filters is the JSON form of a facet selection.
type Filters struct {
	Components []string `json:"components,omitempty"`
	Vehicles   []string `json:"vehicles,omitempty"`
	Sentiment  []string `json:"sentiment,omitempty"`
	Sources    []string `json:"sources,omitempty"`
	Cluster    string   `json:"cluster,omitempty"`
	From       string   `json:"from,omitempty"`
	To         string   `json:"to,omitempty"`
}

// SaveSearchRequest is the body of POST /api/v1/saved-searches.
type SaveSearchRequest struct {
	Name    string   `json:"name"`
	Query   string   `json:"query"`
	Filters *Filters `json:"filters,omitempty"`
}

// SavedSearch is a saved-search entry.
type SavedSearch struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Query     string    `json:"query"`
	Filters   Filters   `json:"filters"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedSearchListResponse is the body of GET /api/v1/saved-searches.
type SavedSearchListResponse struct {
	Items []SavedSearch `json:"items"`
}

// LoadedSearchResponse is the body of GET /api/v1/saved-searches/{id}.
type LoadedSearchResponse struct {
	Query      string  `json:"query"`
	Filters    Filters `json:"filters"`
	ShareQuery string  `json:"share_query"`
}

// Cluster is a catalog cluster in FacetsResponse.
type Cluster struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Components []string `json:"components"`
	Polarity   string   `json:"polarity,omitempty"`
}

// FacetsResponse is the body of GET /api/v1/facets.
type FacetsResponse struct {
	Models     []string  `json:"models"`
	Components []string  `json:"components"`
	Sources    []string  `json:"sources"`
	Sentiment  []string  `json:"sentiment"`
	Clusters   []Cluster `json:"clusters"`
	Sorts      []string  `json:"sorts"`
	Modes      []string  `json:"modes"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Records int               `json:"records"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}
