package feedlens

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/kailas-cloud/feedlens/internal/db"
	dbRedis "github.com/kailas-cloud/feedlens/internal/db/redis"
	"github.com/kailas-cloud/feedlens/internal/domain"
	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
	"github.com/kailas-cloud/feedlens/internal/domain/search/filter"
	"github.com/kailas-cloud/feedlens/internal/domain/search/request"
	"github.com/kailas-cloud/feedlens/internal/domain/search/result"
	domsaved "github.com/kailas-cloud/feedlens/internal/domain/search/savedsearch"
	"github.com/kailas-cloud/feedlens/internal/domain/search/share"
	"github.com/kailas-cloud/feedlens/internal/domain/suggestion"
	"github.com/kailas-cloud/feedlens/internal/repository/embcache"
	feedbackrepo "github.com/kailas-cloud/feedlens/internal/repository/feedback"
	savedrepo "github.com/kailas-cloud/feedlens/internal/repository/savedsearch"
	healthuc "github.com/kailas-cloud/feedlens/internal/usecase/health"
	saveduc "github.com/kailas-cloud/feedlens/internal/usecase/savedsearch"
	searchuc "github.com/kailas-cloud/feedlens/internal/usecase/search"
	"github.com/kailas-cloud/feedlens/internal/usecase/similarity"
	suggestuc "github.com/kailas-cloud/feedlens/internal/usecase/suggest"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for mocks in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (result.Page, error)
}

type savedUseCase interface {
	Save(ctx context.Context, name, query string, filters filter.State) (domsaved.SavedSearch, error)
	Load(ctx context.Context, id int64) (string, filter.State, error)
	List(ctx context.Context) ([]domsaved.SavedSearch, error)
}

type suggester interface {
	Suggest(partial string) iter.Seq[string]
}

// Client is the feedlens SDK entry point.
type Client struct {
	store     db.Store // nil when saved searches live in memory
	records   *feedbackrepo.Store
	searchSvc searchUseCase
	savedSvc  savedUseCase
	suggest   suggester
	healthSvc healthUseCase
	obs       *observer
}

// New creates a feedlens Client. When Valkey or Redis is configured the
// provided context bounds the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: domain.KeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	records, err := loadRecords(cfg)
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if cfg.driver != "" {
		store, err = createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("feedlens: storage not ready: %w", err)
		}
	}

	return wireClient(cfg, records, store, obs)
}

func loadRecords(cfg *clientConfig) ([]feedback.Record, error) {
	switch {
	case len(cfg.records) > 0:
		recs, err := toInternalRecords(cfg.records)
		if err != nil {
			return nil, fmt.Errorf("feedlens: %w", err)
		}
		return recs, nil
	case cfg.datasetFile != "":
		recs, err := feedbackrepo.LoadFile(cfg.datasetFile)
		if err != nil {
			return nil, fmt.Errorf("feedlens: %w", err)
		}
		return recs, nil
	default:
		recs, err := feedbackrepo.DefaultRecords()
		if err != nil {
			return nil, fmt.Errorf("feedlens: %w", err)
		}
		return recs, nil
	}
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		// Valkey speaks the Redis protocol; both go through rueidis.
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("feedlens: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("feedlens: unknown driver %q", cfg.driver)
	}
}

func wireClient(cfg *clientConfig, records []feedback.Record, store db.Store, obs *observer) (*Client, error) {
	recordStore, err := feedbackrepo.NewStore(records...)
	if err != nil {
		return nil, fmt.Errorf("feedlens: %w", err)
	}

	sim, err := buildSimilarity(cfg, store)
	if err != nil {
		return nil, err
	}

	var pick suggestuc.Picker
	if cfg.seedSet {
		rng := rand.New(rand.NewPCG(cfg.randSeed, cfg.randSeed^0x9e3779b97f4a7c15))
		pick = rng.IntN
	}

	var repo saveduc.Repository = savedrepo.NewMemory()
	var pinger healthuc.StoragePinger
	if store != nil {
		repo = savedrepo.New(store, cfg.keyPrefix)
		pinger = store
	}

	return &Client{
		store:     store,
		records:   recordStore,
		searchSvc: searchuc.New(recordStore, sim),
		savedSvc:  saveduc.New(repo),
		suggest:   suggestuc.New(pick),
		healthSvc: healthuc.New(recordStore, pinger, nil),
		obs:       obs,
	}, nil
}

// buildSimilarity picks the signal. With a store configured, query
// embeddings are cached there under the client's key prefix and model name.
// Record embeddings stay in the in-process cache.
func buildSimilarity(cfg *clientConfig, store db.Store) (searchuc.Similarity, error) {
	switch cfg.similarity {
	case similarityNone:
		return similarity.None{}, nil
	case similarityEmbedding:
		record := &embedderAdapter{inner: cfg.embedder}
		var query domain.Embedder = record
		if store != nil {
			query = embcache.New(record, store, embcache.Config{
				KeyPrefix: cfg.keyPrefix,
				Model:     cfg.embeddingModel,
			}, nil)
		}
		sig, err := similarity.NewEmbedding(query, record, cfg.recordCacheSize, nil)
		if err != nil {
			return nil, fmt.Errorf("feedlens: %w", err)
		}
		return sig, nil
	default:
		var src rand.Source
		if cfg.seedSet {
			src = rand.NewPCG(cfg.randSeed, cfg.randSeed)
		}
		return similarity.NewRandom(src), nil
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Append adds feedback records to the searchable set. IDs must be unique.
func (c *Client) Append(ctx context.Context, records ...Record) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("records.append", start, err) }()

	recs, err := toInternalRecords(records)
	if err != nil {
		return fmt.Errorf("append records: %w", err)
	}
	if err = c.records.Append(ctx, recs...); err != nil {
		return fmt.Errorf("append records: %w", err)
	}
	return nil
}

// Search runs one search. A page past the last one fails with ErrOutOfRange;
// use errors.As with *OutOfRangeError to read the page count.
func (c *Client) Search(ctx context.Context, req SearchRequest) (_ Page, err error) {
	start := time.Now()
	defer func() {
		c.obs.observe("search", start, err, slog.String("query", req.Query), slog.Int("page", req.Page))
	}()

	r, err := toInternalRequest(req)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}

	ctx, usage := domain.NewContextWithUsage(ctx)
	p, err := c.searchSvc.Search(ctx, &r)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}

	out := fromInternalPage(p)
	out.EmbeddingTokens = usage.Tokens()
	c.obs.tokens(out.EmbeddingTokens)
	return out, nil
}

// Suggest returns query completions for partial. The sequence is empty for
// inputs of two bytes or fewer and may be ranged over more than once.
func (c *Client) Suggest(partial string) iter.Seq[string] {
	return c.suggest.Suggest(partial)
}

// SuggestionCursor is the keyboard selection over a shown suggestion list.
type SuggestionCursor = suggestion.Cursor

// OpenSuggestions materializes Suggest(partial) behind a cursor with nothing
// selected. Accepting an item closes the list.
func (c *Client) OpenSuggestions(partial string) *SuggestionCursor {
	var items []string
	for s := range c.suggest.Suggest(partial) {
		items = append(items, s)
	}
	return suggestion.NewCursor(items)
}

// ShareQuery encodes the shareable part of req (query, facets, sort) as a
// query string. Date range, mode and pagination are not included.
func ShareQuery(req SearchRequest) (string, error) {
	fs, err := toInternalFilters(Filters{
		Components: req.Filters.Components,
		Vehicles:   req.Filters.Vehicles,
		Sentiment:  req.Filters.Sentiment,
		Sources:    req.Filters.Sources,
		Cluster:    req.Filters.Cluster,
	})
	if err != nil {
		return "", fmt.Errorf("share query: %w", err)
	}
	q, err := share.Encode(share.State{Query: req.Query, Filters: fs, Sort: request.Sort(req.Sort)})
	if err != nil {
		return "", fmt.Errorf("share query: %w", err)
	}
	return q, nil
}

// ParseShareQuery decodes a query string produced by ShareQuery.
func ParseShareQuery(raw string) (SearchRequest, error) {
	st, err := share.Decode(raw)
	if err != nil {
		return SearchRequest{}, fmt.Errorf("parse share query: %w", err)
	}
	return SearchRequest{
		Query:   st.Query,
		Filters: fromInternalFilters(st.Filters),
		Sort:    Sort(st.Sort),
	}, nil
}
