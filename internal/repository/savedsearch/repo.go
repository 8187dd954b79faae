package savedsearch

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/kailas-cloud/feedlens/internal/domain"
	domsaved "github.com/kailas-cloud/feedlens/internal/domain/search/savedsearch"
)

// store is the consumer interface for saved searches (ISP).
type store interface {
	Incr(ctx context.Context, key string) (int64, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/savedsearch.Repository on Redis/Valkey hashes.
// Key patterns: {prefix}saved_search:{id}, {prefix}saved_search_seq.
type Repo struct {
	store  store
	prefix string
}

// New creates a saved-search repository. An empty prefix falls back to domain.KeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// NextID allocates an identifier with INCR; it is never reused.
func (r *Repo) NextID(ctx context.Context) (int64, error) {
	id, err := r.store.Incr(ctx, r.seqKey())
	if err != nil {
		return 0, fmt.Errorf("incr saved search seq: %w", err)
	}
	return id, nil
}

// Put stores a saved search.
func (r *Repo) Put(ctx context.Context, s domsaved.SavedSearch) error {
	fields, err := savedToHash(s)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, r.itemKey(strconv.FormatInt(s.ID(), 10)), fields); err != nil {
		return fmt.Errorf("hset saved search %d: %w", s.ID(), err)
	}
	return nil
}

// Get retrieves a saved search by ID.
func (r *Repo) Get(ctx context.Context, id int64) (domsaved.SavedSearch, error) {
	m, err := r.store.HGetAll(ctx, r.itemKey(strconv.FormatInt(id, 10)))
	if err != nil {
		return domsaved.SavedSearch{}, fmt.Errorf("hgetall saved search %d: %w", id, err)
	}
	if len(m) == 0 {
		return domsaved.SavedSearch{}, domain.ErrNotFound
	}
	return savedFromHash(m)
}

// List returns all saved searches sorted by ID.
func (r *Repo) List(ctx context.Context) ([]domsaved.SavedSearch, error) {
	keys, err := r.store.Scan(ctx, r.itemKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan saved searches: %w", err)
	}
	if len(keys) == 0 {
		return []domsaved.SavedSearch{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi saved searches: %w", err)
	}

	out := make([]domsaved.SavedSearch, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		s, err := savedFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse saved search %s: %w", keys[i], err)
		}
		out = append(out, s)
	}

	slices.SortFunc(out, func(a, b domsaved.SavedSearch) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *Repo) itemKey(id string) string {
	return r.prefix + "saved_search:" + id
}

func (r *Repo) seqKey() string {
	return r.prefix + "saved_search_seq"
}
