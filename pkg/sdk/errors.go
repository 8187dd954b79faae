package feedlens

import "github.com/kailas-cloud/feedlens/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput           = domain.ErrInvalidInput
	ErrOutOfRange             = domain.ErrOutOfRange
	ErrNotFound               = domain.ErrNotFound
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
)

// OutOfRangeError carries the page counts of an ErrOutOfRange failure.
// Use errors.As() to extract it.
type OutOfRangeError = domain.OutOfRangeError
