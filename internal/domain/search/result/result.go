package result

import "github.com/kailas-cloud/feedlens/internal/domain/feedback"

// MaxScore is the upper bound of a relevance score.
const MaxScore = 10.0

// Scored is a feedback record with its per-query relevance score.
type Scored struct {
	record feedback.Record
	score  float64
}

// New creates a scored record.
func New(rec feedback.Record, score float64) Scored {
	return Scored{record: rec, score: score}
}

// Record returns the underlying feedback record.
func (s Scored) Record() feedback.Record { return s.record }

// Score returns the relevance score in [0, MaxScore].
func (s Scored) Score() float64 { return s.score }

// Page is one slice of an ordered result set.
type Page struct {
	Items        []Scored
	TotalMatches int
	TotalPages   int
	Page         int
}
