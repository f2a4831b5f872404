package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Store and cache metrics. Registered explicitly from main via RegisterStoreMetrics.
var (
	StoreOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Document store operation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation", "outcome"},
	)

	CacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cache_requests_total",
			Help:      "Response cache lookups by cache and result",
		},
		[]string{"cache", "result"}, // result: hit / miss / error
	)
)

var registerOnce sync.Once

// RegisterStoreMetrics registers store and cache metrics with the default registry.
func RegisterStoreMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(StoreOperationDuration)
		prometheus.MustRegister(CacheRequestsTotal)
	})
}

// ObserveStore records the duration of a store operation started at start.
func ObserveStore(operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StoreOperationDuration.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
}
