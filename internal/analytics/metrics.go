package analytics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes the analytics core's operational counters. A nil
// *Metrics disables instrumentation throughout the package.
type Metrics struct {
	Analyses      *prometheus.CounterVec
	Duration      *prometheus.HistogramVec
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
	Supersessions prometheus.Counter
}

// NewMetrics registers the analytics metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ymcli",
			Subsystem: "analytics",
			Name:      "analyses_total",
			Help:      "Completed analyses by outcome.",
		}, []string{"outcome"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ymcli",
			Subsystem: "analytics",
			Name:      "component_duration_seconds",
			Help:      "Duration of component computations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"component"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ymcli",
			Subsystem: "analytics",
			Name:      "weights_cache_hits_total",
			Help:      "Weights cache hits.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ymcli",
			Subsystem: "analytics",
			Name:      "weights_cache_misses_total",
			Help:      "Weights cache misses.",
		}),
		Supersessions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ymcli",
			Subsystem: "analytics",
			Name:      "supersessions_total",
			Help:      "Monte Carlo computations cancelled by newer requests.",
		}),
	}
}
