package domain

// KeyPrefix is the default namespace for every key written to Redis/Valkey.
const KeyPrefix = "feedlens:"

// Default embedding settings for the similarity signal.
const (
	DefaultEmbeddingModel      = "text-embedding-3-small"
	DefaultEmbeddingDimensions = 256
)
