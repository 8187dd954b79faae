package savedsearch

import (
	"context"

	domsaved "github.com/kailas-cloud/feedlens/internal/domain/search/savedsearch"
)

// Repository defines the storage contract for saved searches.
// NextID must never hand out the same identifier twice.
type Repository interface {
	NextID(ctx context.Context) (int64, error)
	Put(ctx context.Context, s domsaved.SavedSearch) error
	Get(ctx context.Context, id int64) (domsaved.SavedSearch, error)
	List(ctx context.Context) ([]domsaved.SavedSearch, error)
}
