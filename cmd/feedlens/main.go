package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/feedlens/internal/config"
	"github.com/kailas-cloud/feedlens/internal/db"
	dbRedis "github.com/kailas-cloud/feedlens/internal/db/redis"
	"github.com/kailas-cloud/feedlens/internal/domain"
	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
	"github.com/kailas-cloud/feedlens/internal/domain/search/mode"
	logpkg "github.com/kailas-cloud/feedlens/internal/logger"
	"github.com/kailas-cloud/feedlens/internal/metrics"
	"github.com/kailas-cloud/feedlens/internal/repository/embcache"
	feedbackrepo "github.com/kailas-cloud/feedlens/internal/repository/feedback"
	savedrepo "github.com/kailas-cloud/feedlens/internal/repository/savedsearch"
	chiTransport "github.com/kailas-cloud/feedlens/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/feedlens/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/feedlens/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/feedlens/internal/usecase/health"
	saveduc "github.com/kailas-cloud/feedlens/internal/usecase/savedsearch"
	searchuc "github.com/kailas-cloud/feedlens/internal/usecase/search"
	"github.com/kailas-cloud/feedlens/internal/usecase/similarity"
	suggestuc "github.com/kailas-cloud/feedlens/internal/usecase/suggest"
	"github.com/kailas-cloud/feedlens/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting feedlens API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("similarity_provider", cfg.Similarity.Provider),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterSearchMetrics()
	metrics.RegisterEmbeddingMetrics()

	ctx := logpkg.ContextWithLogger(context.Background(), logger)

	// Feedback records
	records, err := loadRecords(cfg.Dataset.Path)
	if err != nil {
		logger.Fatal("Failed to load feedback dataset", zap.String("path", cfg.Dataset.Path), zap.Error(err))
	}
	recordStore, err := feedbackrepo.NewStore(records...)
	if err != nil {
		logger.Fatal("Failed to build record store", zap.Error(err))
	}
	logger.Info("Feedback dataset loaded", zap.Int("records", recordStore.Len()))

	// Storage: saved searches and the query-embedding cache
	var store db.Store
	var savedRepo saveduc.Repository = savedrepo.NewMemory()
	switch cfg.Storage.Driver {
	case config.DriverRedis, config.DriverValkey:
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Storage.Addrs,
			Password: cfg.Storage.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create storage client", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Storage.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Storage not ready", zap.Error(err))
		}
		logger.Info("Connected to storage", zap.Strings("addrs", cfg.Storage.Addrs))
		savedRepo = savedrepo.New(store, cfg.Storage.KeyPrefix)
	}

	// Similarity signal
	sim, embHealth := buildSimilarity(cfg.Similarity, store, cfg.Storage.KeyPrefix, logger)

	// Use case services
	searchSvc := searchuc.New(recordStore, sim)
	suggestSvc := suggestuc.New(nil)
	savedSvc := saveduc.New(savedRepo)

	if cfg.SavedSearches.SeedDefaults {
		if _, err := savedSvc.SeedDefaults(ctx, saveduc.Defaults()); err != nil {
			logger.Fatal("Failed to seed default saved searches", zap.Error(err))
		}
	}

	// Pass nil interface (not typed nil pointer) when storage is in-memory.
	var storagePinger healthuc.StoragePinger
	if store != nil {
		storagePinger = store
	}
	healthSvc := healthuc.New(recordStore, storagePinger, embHealth)

	server := chiTransport.NewServer(searchSvc, suggestSvc, savedSvc, healthSvc, chiTransport.Limits{
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
		DefaultMode:     mode.Mode(cfg.Search.DefaultMode),
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// loadRecords reads the dataset file, or the bundled sample when path is empty.
func loadRecords(path string) ([]feedback.Record, error) {
	if path == "" {
		return feedbackrepo.DefaultRecords()
	}
	return feedbackrepo.LoadFile(path)
}

// buildSimilarity selects the similarity signal. The returned checker is nil
// unless the signal calls an embedding provider.
func buildSimilarity(
	cfg config.SimilarityConfig,
	store db.Store,
	keyPrefix string,
	logger *zap.Logger,
) (searchuc.Similarity, healthuc.EmbeddingChecker) {
	switch cfg.Provider {
	case config.ProviderNone:
		return similarity.None{}, nil
	case config.ProviderOpenAI:
		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			Provider:   config.ProviderOpenAI,
			Timeout:    time.Duration(cfg.TimeoutSec) * time.Second,
			Logger:     logger,
		})
		// Record vectors are memoized in process, so only queries use the shared cache.
		queryEmbedder := buildEmbedder(base, cfg, cfg.QueryInstruction, store, keyPrefix, logger)
		recordEmbedder := buildEmbedder(base, cfg, cfg.RecordInstruction, nil, "", logger)
		sig, err := similarity.NewEmbedding(queryEmbedder, recordEmbedder, cfg.RecordCacheSize, logger)
		if err != nil {
			logger.Fatal("Failed to create embedding similarity", zap.Error(err))
		}
		logger.Info("Embedding similarity enabled",
			zap.String("model", cfg.Model),
			zap.Int("dimensions", cfg.Dimensions),
			zap.Int("record_cache_size", cfg.RecordCacheSize),
		)
		return sig, queryEmbedder
	default:
		var src rand.Source
		if cfg.Seed != 0 {
			src = rand.NewPCG(cfg.Seed, cfg.Seed)
		}
		return similarity.NewRandom(src), nil
	}
}

// instructedEmbedder is an Embedder that still answers health checks.
type instructedEmbedder struct {
	domain.Embedder
	health domain.HealthChecker
}

func (e instructedEmbedder) HealthCheck(ctx context.Context) error {
	if err := e.health.HealthCheck(ctx); err != nil {
		return fmt.Errorf("embedding health check: %w", err)
	}
	return nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented -> Instruction.
// A nil store leaves the cache out.
func buildEmbedder(
	base *openaiEmb.Embedder,
	cfg config.SimilarityConfig,
	instruction string,
	store db.Store,
	keyPrefix string,
	logger *zap.Logger,
) instructedEmbedder {
	var embedder domain.Embedder = base
	if store != nil {
		embedder = embcache.New(base, store, embcache.Config{
			KeyPrefix:  keyPrefix,
			Model:      cfg.Model,
			TTL:        time.Duration(cfg.QueryCacheTTLSec) * time.Second,
			CacheTotal: metrics.EmbeddingCacheTotal,
		}, logger)
	}

	instrumented := embeddinguc.NewInstrumentedEmbedder(embedder, config.ProviderOpenAI, cfg.Model, logger)

	// Instruction prefix is outermost so cache keys include it.
	out := instructedEmbedder{Embedder: instrumented, health: instrumented}
	if instruction != "" {
		out.Embedder = domain.NewInstructionEmbedder(instrumented, instruction)
	}
	return out
}
