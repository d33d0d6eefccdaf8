// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

/*
Package metrics provides Prometheus metrics for Feedrank.

All collectors are registered on the default registry with promauto and
exposed at /metrics by the API router:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP:
  - feedrank_api_requests_total{method, endpoint, status}
  - feedrank_api_request_duration_seconds{method, endpoint}
  - feedrank_api_active_requests

Endpoint labels are chi route patterns, so user IDs never become label
values.

Recommendations:
  - feedrank_recommendations_total{path}: personalized or viral_only
  - feedrank_recommendation_duration_seconds
  - feedrank_candidate_pool_size{pool}: interest or viral
  - feedrank_recommend_cache_hits_total, feedrank_recommend_cache_misses_total

Dataset:
  - feedrank_snapshot_loads_total{result}
  - feedrank_snapshot_load_duration_seconds
  - feedrank_snapshot_rows{table}
  - feedrank_snapshot_version
  - feedrank_snapshot_loaded_timestamp_seconds
  - feedrank_reload_requests_total{trigger, outcome}
  - feedrank_notify_messages_total{outcome}
  - feedrank_remote_fetch_duration_seconds{status}

Circuit breaker (around the dataset source):
  - feedrank_circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - feedrank_circuit_breaker_requests_total{name, result}
  - feedrank_circuit_breaker_transitions_total{name, from, to}

# Usage

Prefer the Record* helpers over touching collectors directly:

	metrics.RecordSnapshotLoad(time.Since(start), err)
	metrics.RecordRecommendation(personalized, len(interestPool), len(viralPool), time.Since(start))

# Testing

Collectors are global, so tests compare deltas with
prometheus/testutil.ToFloat64 rather than absolute values.
*/
package metrics
