package feedlens

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "feedlens"

// sdkMetrics holds the prometheus collectors registered by WithPrometheus.
type sdkMetrics struct {
	operations      *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	embeddingTokens prometheus.Counter
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "SDK operations by name and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation latency in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),
		embeddingTokens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sdk",
			Name:      "embedding_tokens_total",
			Help:      "Tokens spent embedding search queries.",
		}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.embeddingTokens); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or swaps in the collector already registered
// under the same descriptor so several clients can share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("feedlens: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("feedlens: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer logs and counts SDK operations. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) observe(op string, start time.Time, err error, attrs ...slog.Attr) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	attrs = append(attrs, slog.String("op", op), slog.Duration("duration", dur))
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
		o.logger.LogAttrs(context.Background(), slog.LevelWarn, "operation failed", attrs...)
		return
	}
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "operation completed", attrs...)
}

// tokens records embedding tokens spent by one search.
func (o *observer) tokens(n int) {
	if o == nil || o.metrics == nil || n <= 0 {
		return
	}
	o.metrics.embeddingTokens.Add(float64(n))
}
