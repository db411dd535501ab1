package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CompositionsTotal tracks composition attempts by outcome
	CompositionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loresmith_compositions_total",
			Help: "Total number of composition attempts",
		},
		[]string{"outcome"},
	)

	// RetriesScheduled tracks events re-enqueued through the fallback queue
	RetriesScheduled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loresmith_retries_scheduled_total",
			Help: "Total number of retries scheduled",
		},
	)

	// WalkLength tracks tokens per composed sentence
	WalkLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loresmith_walk_length_tokens",
			Help:    "Number of tokens per composed sentence",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	// PublishLatency tracks feed publish latency
	PublishLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loresmith_publish_latency_seconds",
			Help:    "Feed publish latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// QueueDepth tracks the number of pending composition events
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "loresmith_queue_depth",
			Help: "Number of composition events waiting in the queue",
		},
	)
)
