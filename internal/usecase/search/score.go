package search

import (
	"math"
	"strings"

	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
	"github.com/kailas-cloud/feedlens/internal/domain/search/result"
)

// Signal weights. The sum is clamped to result.MaxScore.
const (
	textMatchWeight      = 5.0
	componentMatchWeight = 8.0
	issueMatchWeight     = 7.0
	strongSentimentBoost = 2.0
	// strongSentiment is the magnitude above which the sentiment boost applies.
	strongSentiment = 0.7
)

// Score combines the exact-match signals, the similarity contribution and the
// sentiment-magnitude boost into a value in [0, result.MaxScore].
func Score(rec feedback.Record, query string, similarity float64) float64 {
	var score float64
	if q := strings.ToLower(query); q != "" {
		if strings.Contains(strings.ToLower(rec.Text()), q) {
			score += textMatchWeight
		}
		if strings.Contains(strings.ToLower(rec.Component()), q) {
			score += componentMatchWeight
		}
		if strings.Contains(strings.ToLower(rec.Issue()), q) {
			score += issueMatchWeight
		}
	}
	if similarity > 0 && !math.IsNaN(similarity) {
		score += similarity
	}
	if math.Abs(rec.Sentiment()) > strongSentiment {
		score += strongSentimentBoost
	}
	return math.Min(score, result.MaxScore)
}
