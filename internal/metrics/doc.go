// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

/*
Package metrics provides Prometheus metrics collection and export.

All collectors are registered on the default registry via promauto at
package load and exposed at the /metrics endpoint in Prometheus text
format.

# Available Metrics

Feedback:
  - mirador_feedback_events_total: feedback events (counter)
    Labels: type (like, dislike), outcome (processed, skipped, duplicate, error)
  - mirador_feedback_processing_duration_seconds: per-event processing latency (histogram)
  - mirador_feedback_batch_size: events per batch submission (histogram)

Scoring:
  - mirador_scoring_duration_seconds: scoring latency (histogram)
    Labels: operation (score, rank)
  - mirador_scoring_items_ranked: items per ranking request (histogram)
  - mirador_preference_entries: attribute preference entries (gauge)

Store:
  - mirador_store_operation_duration_seconds: BadgerDB operation latency (histogram)
    Labels: operation (get, upsert, scan, delete)
  - mirador_store_operation_errors_total: failed store operations (counter)
  - mirador_store_gc_runs_total: value-log GC runs (counter)
    Labels: result (reclaimed, noop, error)

Digest:
  - mirador_digest_builds_total: digest builds (counter)
    Labels: outcome (success, empty, error)
  - mirador_digest_build_duration_seconds: build latency (histogram)
  - mirador_digest_last_success_timestamp: last successful build (gauge)

API:
  - mirador_api_requests_total: HTTP requests (counter)
    Labels: method, endpoint, status_code
  - mirador_api_request_duration_seconds: request latency (histogram)
  - mirador_api_active_requests: in-flight requests (gauge)

# Cardinality

Endpoint labels use the chi route pattern rather than the raw URL path,
so parameterized routes like /api/v1/items/{itemID} contribute a single
series per method and status.

Example PromQL:

	# Feedback throughput by outcome
	sum by (outcome) (rate(mirador_feedback_events_total[5m]))

	# Ranking p95 latency
	histogram_quantile(0.95, rate(mirador_scoring_duration_seconds_bucket{operation="rank"}[5m]))

All recording functions are safe for concurrent use.
*/
package metrics
