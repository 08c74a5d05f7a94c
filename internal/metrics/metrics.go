// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resto_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resto_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// StoreRetriesTotal counts backoff waits taken by the mutation gateway.
	StoreRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resto_store_retries_total",
		Help: "Retries of store mutations after transient connectivity failures.",
	}, []string{"operation"})

	StoreUnavailableTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resto_store_unavailable_total",
		Help: "Store mutations abandoned after exhausting retries.",
	}, []string{"operation"})

	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resto_cache_lookups_total",
		Help: "Analytics cache lookups by result (hit, miss, error).",
	}, []string{"result"})

	RealtimeClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "resto_realtime_clients",
		Help: "Connected table status websocket clients.",
	})
)
