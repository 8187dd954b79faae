package health

import "context"

// StoragePinger checks saved-search storage availability.
type StoragePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// RecordCounter reports the size of the loaded feedback dataset.
type RecordCounter interface {
	Len() int
}
