package savedsearch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
	"github.com/kailas-cloud/feedlens/internal/domain/search/filter"
	logpkg "github.com/kailas-cloud/feedlens/internal/logger"
)

// Default is a saved search installed into an empty registry.
type Default struct {
	Name      string
	Query     string
	Sentiment feedback.Bucket
}

// Defaults returns the stock saved searches shown to first-time users.
func Defaults() []Default {
	return []Default{
		{Name: "Recent Infotainment Issues", Query: "infotainment system problems", Sentiment: feedback.Negative},
		{Name: "Positive Safety Feedback", Query: "safety features", Sentiment: feedback.Positive},
	}
}

// SeedDefaults saves the given defaults when the registry is empty.
// It returns the number of entries created.
func (s *Service) SeedDefaults(ctx context.Context, defaults []Default) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list saved searches: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, d := range defaults {
		var sel filter.Selection
		if d.Sentiment != "" {
			sel.Sentiment = []string{string(d.Sentiment)}
		}
		fs, err := filter.New(sel)
		if err != nil {
			return i, fmt.Errorf("default %q: %w", d.Name, err)
		}
		if _, err := s.Save(ctx, d.Name, d.Query, fs); err != nil {
			return i, fmt.Errorf("seed %q: %w", d.Name, err)
		}
	}

	logpkg.FromContext(ctx).Info("Seeded default saved searches", zap.Int("count", len(defaults)))
	return len(defaults), nil
}
