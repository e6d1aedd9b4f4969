package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rides"

var (
	RidesCreated       = promauto.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "created_total", Help: "Total number of rides created"})
	ValidationFailures = promauto.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "validation_failures_total", Help: "Total number of rejected ride inputs"})
	FeedConnections    = promauto.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "feed_connections", Help: "Number of connected live feed clients"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
