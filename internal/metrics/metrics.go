// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Feedback Metrics
	FeedbackEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirador_feedback_events_total",
			Help: "Total number of feedback events received",
		},
		[]string{"type", "outcome"}, // type: "like", "dislike"; outcome: "processed", "skipped", "duplicate", "error"
	)

	FeedbackProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mirador_feedback_processing_duration_seconds",
			Help:    "Duration of feedback event processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	FeedbackBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mirador_feedback_batch_size",
			Help:    "Number of events in batch feedback submissions",
			Buckets: []float64{1, 5, 10, 25, 50, 100},
		},
	)

	// Scoring Metrics
	ScoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mirador_scoring_duration_seconds",
			Help:    "Duration of item scoring operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"operation"}, // "score", "rank"
	)

	ScoringItemsRanked = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mirador_scoring_items_ranked",
			Help:    "Number of items per ranking request",
			Buckets: []float64{1, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	PreferenceEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mirador_preference_entries",
			Help: "Current number of attribute preference entries",
		},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mirador_store_operation_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "get", "upsert", "scan", "delete"
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirador_store_operation_errors_total",
			Help: "Total number of persistence operation errors",
		},
		[]string{"operation"},
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirador_store_gc_runs_total",
			Help: "Total number of value-log garbage collection runs",
		},
		[]string{"result"}, // "reclaimed", "noop", "error"
	)

	// Digest Metrics
	DigestBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirador_digest_builds_total",
			Help: "Total number of digest builds",
		},
		[]string{"outcome"}, // "success", "empty", "error"
	)

	DigestBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mirador_digest_build_duration_seconds",
			Help:    "Duration of digest builds in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	DigestLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mirador_digest_last_success_timestamp",
			Help: "Unix timestamp of the last successful digest build",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirador_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mirador_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mirador_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)
)

// RecordFeedback records a feedback event and its outcome.
func RecordFeedback(eventType, outcome string, duration time.Duration) {
	FeedbackEventsTotal.WithLabelValues(eventType, outcome).Inc()
	FeedbackProcessingDuration.Observe(duration.Seconds())
}

// RecordScoring records a scoring operation.
func RecordScoring(operation string, duration time.Duration) {
	ScoringDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordStoreOp records a persistence operation and any error.
func RecordStoreOp(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}

// RecordDigestBuild records a digest build outcome.
func RecordDigestBuild(outcome string, duration time.Duration) {
	DigestBuilds.WithLabelValues(outcome).Inc()
	DigestBuildDuration.Observe(duration.Seconds())
	if outcome == "success" {
		DigestLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
