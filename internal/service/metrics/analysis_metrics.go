package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	AnalysisLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fingrade",
			Subsystem: "analysis",
			Name:      "latency_seconds",
			Help:      "Latency of analysis endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	AnalysisErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fingrade",
			Subsystem: "analysis",
			Name:      "errors_total",
			Help:      "Errors by analysis endpoint",
		},
		[]string{"endpoint"},
	)

	BatchCompanies = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fingrade",
			Subsystem: "analysis",
			Name:      "batch_companies",
			Help:      "Companies per batch request",
			Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000},
		},
		[]string{"policy"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(AnalysisLatency, AnalysisErrors, BatchCompanies)
	})
}
