// Package metrics exposes Prometheus counters for the bot.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "surah_reader"

// Metrics holds the bot's collectors on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	fragmentLoads *prometheus.CounterVec
	chapterViews  *prometheus.CounterVec
	staleResults  prometheus.Counter
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fragmentLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fragment_loads_total",
			Help:      "Fragment asset load attempts by source and outcome.",
		}, []string{"source", "outcome"}),
		chapterViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chapter_views_total",
			Help:      "Chapter detail views by result.",
		}, []string{"result"}),
		staleResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_results_total",
			Help:      "Verse loads discarded because the user navigated away.",
		}),
	}

	m.registry.MustRegister(m.fragmentLoads, m.chapterViews, m.staleResults)

	return m
}

// ObserveLoad counts one fragment load attempt.
func (m *Metrics) ObserveLoad(source, outcome string) {
	m.fragmentLoads.WithLabelValues(source, outcome).Inc()
}

// ObserveChapterView counts one opened chapter ("verses", "empty" or "error").
func (m *Metrics) ObserveChapterView(result string) {
	m.chapterViews.WithLabelValues(result).Inc()
}

// ObserveStaleResult counts one discarded load.
func (m *Metrics) ObserveStaleResult() {
	m.staleResults.Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics server started", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
