package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	companiesProcessed *prometheus.CounterVec
	cacheLookups       *prometheus.CounterVec
	qualityScore       *prometheus.GaugeVec
	errorsTotal        *prometheus.CounterVec
	latency            *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		companiesProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fingrade_companies_processed_total",
				Help: "Total number of companies run through the pipeline",
			},
			[]string{"sector", "status"},
		),
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fingrade_cache_lookups_total",
				Help: "Result cache lookups by outcome",
			},
			[]string{"outcome"},
		),
		qualityScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fingrade_last_quality_score",
				Help: "Last computed data quality score per sector",
			},
			[]string{"sector"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fingrade_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fingrade_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordCompanyProcessed records one pipeline run by sector and outcome.
func (r *Recorder) RecordCompanyProcessed(sector string, success bool) {
	status := "ok"
	if !success {
		status = "error"
	}
	r.companiesProcessed.WithLabelValues(sector, status).Inc()
}

// RecordCacheLookup records a result cache hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cacheLookups.WithLabelValues(outcome).Inc()
}

// RecordQualityScore records the last quality score for a sector.
func (r *Recorder) RecordQualityScore(sector string, score float64) {
	r.qualityScore.WithLabelValues(sector).Set(score)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
