package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess     = "success"
	OutcomeNotFound    = "not_found"
	OutcomeError       = "error"
	OutcomeUnsupported = "unsupported"
)

var (
	// Upstream metrics
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nft_upstream_requests_total",
			Help: "Upstream NFT API calls by upstream, operation and outcome",
		}, []string{"upstream", "operation", "outcome"})
	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nft_upstream_request_duration_seconds",
			Help:    "Time spent in one upstream NFT API call",
			Buckets: prometheus.DefBuckets,
		}, []string{"upstream", "operation"})

	// Aggregator metrics
	AggregatorResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nft_aggregator_responses_total",
			Help: "Aggregator answers by operation, answering source and degraded flag",
		}, []string{"operation", "source", "degraded"})

	// Cache metrics
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nft_response_cache_lookups_total",
			Help: "Response cache lookups by result",
		}, []string{"result"})
)

var registerOnce sync.Once

// MustRegisterMetrics registers all collectors with the default registry once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			UpstreamRequests,
			UpstreamLatency,
			AggregatorResponses,
			CacheLookups,
		)
	})
}

// ObserveUpstream records one upstream attempt.
func ObserveUpstream(upstream, operation, outcome string, started time.Time) {
	UpstreamRequests.WithLabelValues(upstream, operation, outcome).Inc()
	UpstreamLatency.WithLabelValues(upstream, operation).Observe(time.Since(started).Seconds())
}

// ObserveResponse records one aggregator answer.
func ObserveResponse(operation, source string, degraded bool) {
	AggregatorResponses.WithLabelValues(operation, source, strconv.FormatBool(degraded)).Inc()
}

// ObserveCache records a cache hit or miss.
func ObserveCache(hit bool) {
	if hit {
		CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	CacheLookups.WithLabelValues("miss").Inc()
}
