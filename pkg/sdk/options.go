package feedlens

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type similarityKind int

const (
	similarityRandom similarityKind = iota
	similarityEmbedding
	similarityNone
)

type clientConfig struct {
	driver    string // "", "valkey" or "redis"; empty keeps saved searches in memory
	addrs     []string
	password  string
	keyPrefix string

	records     []Record
	datasetFile string

	similarity      similarityKind
	embedder        Embedder
	embeddingModel  string
	recordCacheSize int
	randSeed        uint64
	seedSet         bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRecords sets the feedback records to search. Takes precedence over WithDatasetFile.
// Without either option the bundled sample dataset is used.
func WithRecords(records ...Record) Option {
	return optionFunc(func(c *clientConfig) {
		c.records = append(c.records, records...)
	})
}

// WithDatasetFile loads feedback records from a YAML dataset file.
func WithDatasetFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.datasetFile = path
	})
}

// WithValkey stores saved searches in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis stores saved searches in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix overrides the key prefix used in Valkey/Redis. Default: "feedlens:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithSimilarity scores approximate matches by embedding cosine similarity.
// Pass nil to turn the similarity signal off entirely.
// Without this option a random placeholder signal is used.
func WithSimilarity(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		if e == nil {
			c.similarity = similarityNone
			c.embedder = nil
			return
		}
		c.similarity = similarityEmbedding
		c.embedder = e
	})
}

// WithEmbeddingModel names the model behind the WithSimilarity embedder.
// The name is part of every cached query embedding key, so set it whenever a
// store is configured and the embedder may change between deployments.
func WithEmbeddingModel(model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.embeddingModel = model
	})
}

// WithRecordCacheSize bounds the number of record embeddings kept in memory.
func WithRecordCacheSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.recordCacheSize = n
	})
}

// WithRandSeed makes the random similarity signal and the suggestion model
// choice deterministic.
func WithRandSeed(seed uint64) Option {
	return optionFunc(func(c *clientConfig) {
		c.randSeed = seed
		c.seedSet = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
