package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics recorded around policy evaluation.
// Pass the same instance to every component that records one of these.
type Metrics struct {
	RulesEvaluatedTotal *prometheus.CounterVec
	EvaluationDuration  prometheus.Histogram
	ScoreGauge          *prometheus.GaugeVec
	SessionCacheSize    prometheus.Gauge
}

// NewMetrics creates and registers all metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RulesEvaluatedTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "openscap",
				Name:      "rules_evaluated_total",
				Help:      "Total rule evaluations by verdict",
			},
			[]string{"verdict"},
		),
		EvaluationDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "openscap",
				Name:      "evaluation_duration_seconds",
				Help:      "Wall-clock duration of one full policy evaluation",
				Buckets:   prometheus.DefBuckets,
			},
		),
		ScoreGauge: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "openscap",
				Name:      "score",
				Help:      "Most recent computed score by scoring system",
			},
			[]string{"system"},
		),
		SessionCacheSize: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "openscap",
				Name:      "applicability_session_cache_size",
				Help:      "Number of memoized applicability engine sessions",
			},
		),
	}
}
