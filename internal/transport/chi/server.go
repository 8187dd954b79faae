package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	gochi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/feedlens/internal/domain"
	"github.com/kailas-cloud/feedlens/internal/domain/catalog"
	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
	"github.com/kailas-cloud/feedlens/internal/domain/search/filter"
	"github.com/kailas-cloud/feedlens/internal/domain/search/mode"
	"github.com/kailas-cloud/feedlens/internal/domain/search/request"
	"github.com/kailas-cloud/feedlens/internal/domain/search/result"
	domsaved "github.com/kailas-cloud/feedlens/internal/domain/search/savedsearch"
	"github.com/kailas-cloud/feedlens/internal/domain/search/share"
	logpkg "github.com/kailas-cloud/feedlens/internal/logger"
	"github.com/kailas-cloud/feedlens/internal/metrics"
	healthuc "github.com/kailas-cloud/feedlens/internal/usecase/health"
	saveduc "github.com/kailas-cloud/feedlens/internal/usecase/savedsearch"
	searchuc "github.com/kailas-cloud/feedlens/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/feedlens/internal/usecase/suggest"
	"github.com/kailas-cloud/feedlens/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Limits are the request defaults and bounds applied before the domain validates.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
	DefaultMode     mode.Mode
}

// Server serves the feedback search HTTP API.
type Server struct {
	search        *searchuc.Service
	suggest       *suggestuc.Generator
	saved         *saveduc.Service
	health        *healthuc.Service
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	suggest *suggestuc.Generator,
	saved *saveduc.Service,
	health *healthuc.Service,
	limits Limits,
	logger *zap.Logger,
) *Server {
	if limits.DefaultPageSize <= 0 {
		limits.DefaultPageSize = request.DefaultPageSize
	}
	if limits.MaxPageSize <= 0 || limits.MaxPageSize > request.MaxPageSize {
		limits.MaxPageSize = request.MaxPageSize
	}
	if limits.DefaultMode == "" {
		limits.DefaultMode = mode.Hybrid
	}
	s := &Server{
		search:  search,
		suggest: suggest,
		saved:   saved,
		health:  health,
		limits:  limits,
		logger:  logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	// Order matters: ErrOutOfRange must be matched before the generic handlers.
	s.errorHandlers = []errorHandler{
		outOfRangeHandler,
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r gochi.Router) {
		r.Get("/search", s.Search)
		r.Get("/suggestions", s.Suggestions)
		r.Get("/facets", s.Facets)
		r.Get("/saved-searches", s.ListSavedSearches)
		r.Post("/saved-searches", s.SaveSearch)
		r.Get("/saved-searches/{id}", s.LoadSavedSearch)
	})
}

// Search handles GET /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		return
	}

	req, err := s.searchRequestFromParams(params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	page, err := s.search.Search(ctx, &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	shareQuery, err := share.Encode(share.State{Query: req.Query(), Filters: req.Filters(), Sort: req.Sort()})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]FeedbackItem, len(page.Items))
	for i, it := range page.Items {
		items[i] = feedbackItemToAPI(it)
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, SearchResponse{
		Items:        items,
		TotalMatches: page.TotalMatches,
		TotalPages:   page.TotalPages,
		Page:         page.Page,
		PageSize:     req.PageSize(),
		ShareQuery:   shareQuery,
	})
}

// Suggestions handles GET /api/v1/suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions := slices.Collect(s.suggest.Suggest(r.URL.Query().Get("q")))
	if suggestions == nil {
		suggestions = []string{}
		metrics.SuggestionsTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.SuggestionsTotal.WithLabelValues("served").Inc()
	}
	writeJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

// Facets handles GET /api/v1/facets.
func (s *Server) Facets(w http.ResponseWriter, _ *http.Request) {
	resp := FacetsResponse{
		Models:     catalog.Models(),
		Components: catalog.Components(),
		Sentiment:  []string{string(feedback.Positive), string(feedback.Neutral), string(feedback.Negative)},
	}
	for _, src := range feedback.Sources() {
		resp.Sources = append(resp.Sources, string(src))
	}
	for _, c := range catalog.Clusters() {
		resp.Clusters = append(resp.Clusters, Cluster{
			ID:         c.ID,
			Name:       c.Name,
			Components: c.Components,
			Polarity:   string(c.Polarity),
		})
	}
	for _, k := range request.Sorts() {
		resp.Sorts = append(resp.Sorts, string(k))
	}
	for _, m := range mode.All() {
		resp.Modes = append(resp.Modes, string(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

// SaveSearch handles POST /api/v1/saved-searches.
func (s *Server) SaveSearch(w http.ResponseWriter, r *http.Request) {
	var req SaveSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	filters, err := filtersFromAPI(req.Filters)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	saved, err := s.saved.Save(r.Context(), req.Name, req.Query, filters)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/saved-searches/%d", saved.ID()))
	writeJSON(w, http.StatusCreated, savedSearchToAPI(saved))
}

// ListSavedSearches handles GET /api/v1/saved-searches.
func (s *Server) ListSavedSearches(w http.ResponseWriter, r *http.Request) {
	list, err := s.saved.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]SavedSearch, len(list))
	for i, ss := range list {
		items[i] = savedSearchToAPI(ss)
	}
	writeJSON(w, http.StatusOK, SavedSearchListResponse{Items: items})
}

// LoadSavedSearch handles GET /api/v1/saved-searches/{id}.
func (s *Server) LoadSavedSearch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(gochi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, "id must be a positive integer")
		return
	}

	query, filters, err := s.saved.Load(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	shareQuery, err := share.Encode(share.State{Query: query, Filters: filters})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LoadedSearchResponse{
		Query:      query,
		Filters:    filtersToAPI(filters),
		ShareQuery: shareQuery,
	})
}

// HealthCheck handles GET /health.
// Degraded still answers 200: search keeps working without the similarity signal or saved searches.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Records: report.Records,
		Checks:  checks,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// bindSearchParams binds query parameters the way oapi-codegen generated wrappers do:
// scalars exploded, lists in form style without explode (components=a,b).
func bindSearchParams(r *http.Request) (SearchParams, error) {
	var params SearchParams
	query := r.URL.Query()

	scalars := []struct {
		name string
		dest any
	}{
		{"q", &params.Q},
		{"cluster", &params.Cluster},
		{"sort", &params.Sort},
		{"mode", &params.Mode},
		{"from", &params.From},
		{"to", &params.To},
		{"page", &params.Page},
		{"page_size", &params.PageSize},
	}
	for _, p := range scalars {
		if err := runtime.BindQueryParameter("form", true, false, p.name, query, p.dest); err != nil {
			return SearchParams{}, fmt.Errorf("invalid format for parameter %s: %w", p.name, err)
		}
	}

	lists := []struct {
		name string
		dest **[]string
	}{
		{"components", &params.Components},
		{"vehicles", &params.Vehicles},
		{"sentiment", &params.Sentiment},
		{"sources", &params.Sources},
	}
	for _, p := range lists {
		if err := runtime.BindQueryParameter("form", false, false, p.name, query, p.dest); err != nil {
			return SearchParams{}, fmt.Errorf("invalid format for parameter %s: %w", p.name, err)
		}
	}

	return params, nil
}

func (s *Server) searchRequestFromParams(p SearchParams) (request.Request, error) {
	dates, err := dateRangeFromAPI(deref(p.From), deref(p.To))
	if err != nil {
		return request.Request{}, err
	}

	filters, err := filter.New(filter.Selection{
		Components: derefSlice(p.Components),
		Vehicles:   derefSlice(p.Vehicles),
		Sentiment:  derefSlice(p.Sentiment),
		Sources:    derefSlice(p.Sources),
		Cluster:    deref(p.Cluster),
		Dates:      dates,
	})
	if err != nil {
		return request.Request{}, fmt.Errorf("parse filters: %w", err)
	}

	m := mode.Mode(deref(p.Mode))
	if m == "" {
		m = s.limits.DefaultMode
	}

	pageSize := s.limits.DefaultPageSize
	if p.PageSize != nil {
		pageSize = *p.PageSize
		if pageSize < 1 || pageSize > s.limits.MaxPageSize {
			return request.Request{}, fmt.Errorf("%w: page_size must be between 1 and %d",
				domain.ErrInvalidInput, s.limits.MaxPageSize)
		}
	}

	page := 1
	if p.Page != nil {
		page = *p.Page
		if page < 1 {
			return request.Request{}, fmt.Errorf("%w: page must be >= 1", domain.ErrInvalidInput)
		}
	}

	req, err := request.New(deref(p.Q), filters, request.Sort(deref(p.Sort)), m, page, pageSize)
	if err != nil {
		return request.Request{}, fmt.Errorf("build search request: %w", err)
	}
	return req, nil
}

func dateRangeFromAPI(from, to string) (filter.DateRange, error) {
	var f, t time.Time
	var err error
	if from != "" {
		if f, err = time.Parse(feedback.DateLayout, from); err != nil {
			return filter.DateRange{}, fmt.Errorf("%w: from must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	if to != "" {
		if t, err = time.Parse(feedback.DateLayout, to); err != nil {
			return filter.DateRange{}, fmt.Errorf("%w: to must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	dr, err := filter.NewDateRange(f, t)
	if err != nil {
		return filter.DateRange{}, fmt.Errorf("date range: %w", err)
	}
	return dr, nil
}

func filtersFromAPI(f *Filters) (filter.State, error) {
	if f == nil {
		return filter.State{}, nil
	}
	dates, err := dateRangeFromAPI(f.From, f.To)
	if err != nil {
		return filter.State{}, err
	}
	fs, err := filter.New(filter.Selection{
		Components: f.Components,
		Vehicles:   f.Vehicles,
		Sentiment:  f.Sentiment,
		Sources:    f.Sources,
		Cluster:    f.Cluster,
		Dates:      dates,
	})
	if err != nil {
		return filter.State{}, fmt.Errorf("parse filters: %w", err)
	}
	return fs, nil
}

func filtersToAPI(fs filter.State) Filters {
	sel := fs.Selection()
	out := Filters{
		Components: sel.Components,
		Vehicles:   sel.Vehicles,
		Sentiment:  sel.Sentiment,
		Sources:    sel.Sources,
		Cluster:    sel.Cluster,
	}
	if from, ok := sel.Dates.From(); ok {
		out.From = from.Format(feedback.DateLayout)
	}
	if to, ok := sel.Dates.To(); ok {
		out.To = to.Format(feedback.DateLayout)
	}
	return out
}

func feedbackItemToAPI(s result.Scored) FeedbackItem {
	rec := s.Record()
	return FeedbackItem{
		ID:        rec.ID(),
		Source:    string(rec.Source()),
		Date:      rec.Date().Format(feedback.DateLayout),
		Vehicle:   rec.Vehicle(),
		Component: rec.Component(),
		Issue:     rec.Issue(),
		Sentiment: rec.Sentiment(),
		Text:      rec.Text(),
		Score:     s.Score(),
	}
}

func savedSearchToAPI(ss domsaved.SavedSearch) SavedSearch {
	return SavedSearch{
		ID:        ss.ID(),
		Name:      ss.Name(),
		Query:     ss.Query(),
		Filters:   filtersToAPI(ss.Filters()),
		CreatedAt: ss.CreatedAt(),
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefSlice(p *[]string) []string {
	if p == nil {
		return nil
	}
	return *p
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage.Embedded() {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.Tokens()))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message: the full chain for
// validation errors (they only describe the caller's input), the bare
// sentinel text for everything else.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return err.Error()
	}
	for _, s := range []error{domain.ErrOutOfRange, domain.ErrNotFound} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// outOfRangeHandler answers 416 with the computed page count.
func outOfRangeHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrOutOfRange) {
		return false
	}
	resp := PageOutOfRangeResponse{Code: ErrorResponseCodePageOutOfRange, Message: msg}
	var oor *domain.OutOfRangeError
	if errors.As(err, &oor) {
		resp.RequestedPage = oor.Requested
		resp.TotalPages = oor.TotalPages
	}
	writeJSON(w, http.StatusRequestedRangeNotSatisfiable, resp)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			logpkg.FromContext(r.Context()).Debug("request rejected", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error",
		zap.String("request_id", chimw.GetReqID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}
