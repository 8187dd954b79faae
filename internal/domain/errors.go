package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a request the caller must correct (empty save name, bad page size).
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutOfRange signals a page number beyond the computed page count.
	ErrOutOfRange = errors.New("page out of range")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)

// OutOfRangeError wraps ErrOutOfRange with the page counts the caller needs to clamp.
type OutOfRangeError struct {
	Requested  int
	TotalPages int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: requested page %d of %d", ErrOutOfRange.Error(), e.Requested, e.TotalPages)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// NewOutOfRange creates an out-of-range error.
func NewOutOfRange(requested, totalPages int) error {
	return &OutOfRangeError{Requested: requested, TotalPages: totalPages}
}
