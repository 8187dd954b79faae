package search

import (
	"fmt"

	"github.com/kailas-cloud/feedlens/internal/domain"
)

// TotalPages returns ceil(n/pageSize), never less than 1.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns the requested 1-based page and the total page count.
// It does not clamp: a page past the last fails with domain.ErrOutOfRange.
// Page 1 of an empty sequence is an empty slice.
func Paginate[T any](items []T, page, pageSize int) ([]T, int, error) {
	if pageSize < 1 {
		return nil, 0, fmt.Errorf("%w: page size must be positive, got %d", domain.ErrInvalidInput, pageSize)
	}
	if page < 1 {
		return nil, 0, fmt.Errorf("%w: page must be >= 1, got %d", domain.ErrInvalidInput, page)
	}
	total := TotalPages(len(items), pageSize)
	if page > total {
		return nil, total, domain.NewOutOfRange(page, total)
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	return items[start:end], total, nil
}
