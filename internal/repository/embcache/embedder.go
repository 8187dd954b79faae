// Package embcache memoizes query embeddings in Redis/Valkey so repeated
// searches skip the provider round trip.
package embcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/feedlens/internal/db"
	"github.com/kailas-cloud/feedlens/internal/domain"
)

// CacheName is the "cache" label value reported on the cache counter.
const CacheName = "query"

// entryVersion prefixes every stored vector; bump it when the layout changes.
const entryVersion byte = 1

// store is the consumer interface for the embedding cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Config controls key layout and expiry.
type Config struct {
	KeyPrefix  string        // defaults to domain.KeyPrefix
	Model      string        // part of the key: switching models never serves stale vectors
	TTL        time.Duration // <= 0 keeps entries forever
	CacheTotal *prometheus.CounterVec
}

// Embedder is a caching decorator over another domain.Embedder.
type Embedder struct {
	inner      domain.Embedder
	store      store
	keyPrefix  string
	model      string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New wraps inner. Store failures are logged and treated as misses.
func New(inner domain.Embedder, s store, cfg Config, logger *zap.Logger) *Embedder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = domain.KeyPrefix
	}
	return &Embedder{
		inner:      inner,
		store:      s,
		keyPrefix:  cfg.KeyPrefix + "emb:",
		model:      cfg.Model,
		ttl:        cfg.TTL,
		cacheTotal: cfg.CacheTotal,
		logger:     logger,
	}
}

// Embed serves the vector from the cache or asks the inner embedder and stores
// the answer. Hits report zero tokens since nothing was billed.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	key := e.key(text)

	if vec, ok := e.lookup(ctx, key); ok {
		e.count("hit")
		return domain.EmbeddingResult{Embedding: vec}, nil
	}
	e.count("miss")

	res, err := e.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed text: %w", err)
	}

	if err := e.store.SetWithTTL(ctx, key, encodeVector(res.Embedding), e.ttl); err != nil {
		e.logger.Warn("Failed to cache query embedding", zap.String("key", key), zap.Error(err))
	}
	return res, nil
}

// HealthCheck forwards to the inner embedder when it supports it.
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if hc, ok := e.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

func (e *Embedder) key(text string) string {
	h := sha256.New()
	h.Write([]byte(e.model))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return e.keyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (e *Embedder) lookup(ctx context.Context, key string) ([]float32, bool) {
	data, err := e.store.Get(ctx, key)
	switch {
	case errors.Is(err, db.ErrKeyNotFound):
		return nil, false
	case err != nil:
		e.logger.Warn("Failed to read cached embedding", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	vec, err := decodeVector(data)
	if err != nil {
		e.logger.Warn("Discarding unreadable cached embedding", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return vec, true
}

func (e *Embedder) count(result string) {
	if e.cacheTotal != nil {
		e.cacheTotal.WithLabelValues(CacheName, result).Inc()
	}
}

// encodeVector lays out a version byte followed by little-endian float32s.
func encodeVector(v []float32) []byte {
	buf := make([]byte, 1+len(v)*4)
	buf[0] = entryVersion
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[1+i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(data []byte) ([]float32, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("cache entry too short: %d bytes", len(data))
	}
	if data[0] != entryVersion {
		return nil, fmt.Errorf("cache entry version %d, want %d", data[0], entryVersion)
	}
	body := data[1:]
	if len(body)%4 != 0 {
		return nil, fmt.Errorf("cache entry length %d is not a multiple of 4", len(body))
	}
	vec := make([]float32, len(body)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(body[i*4:]))
	}
	return vec, nil
}
