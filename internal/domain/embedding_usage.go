package domain

import (
	"context"
	"sync/atomic"
)

type embeddingUsageKey struct{}

// EmbeddingUsage counts embedding tokens spent on one search. The caller
// attaches it to the context, the similarity signal adds to it and the
// caller reads the total once the search returns.
type EmbeddingUsage struct {
	tokens   atomic.Int64
	embedded atomic.Bool
}

// NewContextWithUsage returns ctx carrying a fresh usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *EmbeddingUsage) {
	u := &EmbeddingUsage{}
	return context.WithValue(ctx, embeddingUsageKey{}, u), u
}

// UsageFromContext returns the collector in ctx, or nil.
func UsageFromContext(ctx context.Context) *EmbeddingUsage {
	u, _ := ctx.Value(embeddingUsageKey{}).(*EmbeddingUsage)
	return u
}

// AddTokens records n consumed tokens and marks the query as embedded, even
// when n is 0 (cache hit). Safe on a nil receiver.
func (u *EmbeddingUsage) AddTokens(n int) {
	if u == nil {
		return
	}
	u.tokens.Add(int64(n))
	u.embedded.Store(true)
}

// Tokens returns the total recorded so far. Safe on a nil receiver.
func (u *EmbeddingUsage) Tokens() int {
	if u == nil {
		return 0
	}
	return int(u.tokens.Load())
}

// Embedded reports whether the query went through an embedder.
func (u *EmbeddingUsage) Embedded() bool {
	return u != nil && u.embedded.Load()
}
