// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

// Package metrics holds the Prometheus collectors exported on /metrics.
//
// Collectors are registered with the default registry through promauto at
// package init. Callers use the Record* helpers rather than touching the
// vectors directly so label sets stay consistent.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedrank_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedrank_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feedrank_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Ranking metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedrank_recommendations_total",
			Help: "Recommendation responses by ranking path",
		},
		[]string{"path"}, // "personalized", "viral_only"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feedrank_recommendation_duration_seconds",
			Help:    "Time spent ranking a single feed",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	CandidatePoolSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedrank_candidate_pool_size",
			Help:    "Number of candidates produced per pool before merging",
			Buckets: []float64{0, 1, 5, 10, 25, 50},
		},
		[]string{"pool"}, // "interest", "viral"
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feedrank_recommend_cache_hits_total",
			Help: "Feed responses served from the response cache",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feedrank_recommend_cache_misses_total",
			Help: "Feed responses computed because no cached entry existed",
		},
	)

	// Dataset metrics
	SnapshotLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedrank_snapshot_loads_total",
			Help: "Dataset snapshot load attempts by result",
		},
		[]string{"result"}, // "success", "error"
	)

	SnapshotLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feedrank_snapshot_load_duration_seconds",
			Help:    "Time to load and index a dataset snapshot",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	SnapshotRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "feedrank_snapshot_rows",
			Help: "Rows per table in the active snapshot",
		},
		[]string{"table"},
	)

	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feedrank_snapshot_version",
			Help: "Version number of the active snapshot",
		},
	)

	SnapshotLoadedTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feedrank_snapshot_loaded_timestamp_seconds",
			Help: "Unix time the active snapshot was loaded",
		},
	)

	ReloadRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedrank_reload_requests_total",
			Help: "Snapshot reload requests by trigger and outcome",
		},
		[]string{"trigger", "outcome"}, // trigger: interval, api, watch, nats; outcome: accepted, throttled
	)

	NotifyMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedrank_notify_messages_total",
			Help: "Dataset-updated messages received over NATS by outcome",
		},
		[]string{"outcome"}, // "reload", "throttled", "malformed"
	)

	RemoteFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedrank_remote_fetch_duration_seconds",
			Help:    "Duration of remote dataset downloads",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "feedrank_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedrank_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedrank_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordAPIRequest records one served API request.
func RecordAPIRequest(method, endpoint, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

// RecordRecommendation records one ranked feed.
func RecordRecommendation(personalized bool, interestPool, viralPool int, duration time.Duration) {
	path := "viral_only"
	if personalized {
		path = "personalized"
	}
	RecommendationsTotal.WithLabelValues(path).Inc()
	RecommendationDuration.Observe(duration.Seconds())
	CandidatePoolSize.WithLabelValues("interest").Observe(float64(interestPool))
	CandidatePoolSize.WithLabelValues("viral").Observe(float64(viralPool))
}

// RecordCacheLookup records a response cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
		return
	}
	RecommendCacheMisses.Inc()
}

// RecordSnapshotLoad records a snapshot load attempt.
func RecordSnapshotLoad(duration time.Duration, err error) {
	SnapshotLoadDuration.Observe(duration.Seconds())
	if err != nil {
		SnapshotLoadsTotal.WithLabelValues("error").Inc()
		return
	}
	SnapshotLoadsTotal.WithLabelValues("success").Inc()
}

// RecordActiveSnapshot publishes the gauges describing the active snapshot.
func RecordActiveSnapshot(version uint64, loadedAt time.Time, rows map[string]int) {
	SnapshotVersion.Set(float64(version))
	SnapshotLoadedTimestamp.Set(float64(loadedAt.Unix()))
	for table, n := range rows {
		SnapshotRows.WithLabelValues(table).Set(float64(n))
	}
}

// RecordReloadRequest records a reload trigger and whether it was accepted.
func RecordReloadRequest(trigger string, accepted bool) {
	outcome := "throttled"
	if accepted {
		outcome = "accepted"
	}
	ReloadRequestsTotal.WithLabelValues(trigger, outcome).Inc()
}
