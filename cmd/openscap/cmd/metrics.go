package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/berise/openscap/internal/domain/result"
	"github.com/berise/openscap/internal/observability"
)

var (
	metricsRegistry = prometheus.NewRegistry()
	metrics         = observability.NewMetrics(metricsRegistry)
)

// recordVerdictMetrics updates the per-verdict counter for one completed
// evaluation run.
func recordVerdictMetrics(results []result.RuleResult) {
	for _, rr := range results {
		metrics.RulesEvaluatedTotal.WithLabelValues(rr.Verdict.String()).Inc()
	}
}

// serveMetrics starts a background HTTP server exposing the Prometheus
// registry at /metrics, returning a shutdown func. Mirrors the teacher's
// pattern of a standalone metrics listener independent of the main
// request-serving path.
func serveMetrics(addr string, log *slog.Logger) func(context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server failed", "error", err)
		}
	}()

	return func(ctx context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
