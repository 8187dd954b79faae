// Package similarity provides the approximate-match signal of the relevance
// score. Every implementation contributes a value in [0, MaxContribution).
package similarity

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
)

// MaxContribution is the exclusive upper bound of a similarity contribution.
const MaxContribution = 5.0

// Func scores one record against the query the Func was built for.
type Func = func(rec feedback.Record) float64

// Signal builds a per-query scoring function.
type Signal interface {
	ForQuery(ctx context.Context, query string) (Func, error)
}

// Zero contributes nothing.
func Zero(feedback.Record) float64 { return 0 }

// None is a Signal that always contributes 0.
type None struct{}

// ForQuery implements Signal.
func (None) ForQuery(context.Context, string) (Func, error) { return Zero, nil }

// Random is the placeholder signal: a uniform draw in [0, MaxContribution)
// per record for non-empty queries.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a Random signal over src. A nil src seeds from the runtime.
func NewRandom(src rand.Source) *Random {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Random{rng: rand.New(src)}
}

// ForQuery implements Signal.
func (r *Random) ForQuery(_ context.Context, query string) (Func, error) {
	if query == "" {
		return Zero, nil
	}
	return func(feedback.Record) float64 {
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.rng.Float64() * MaxContribution
	}, nil
}

// clamp maps any value into [0, MaxContribution).
func clamp(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= MaxContribution {
		return math.Nextafter(MaxContribution, 0)
	}
	return v
}
