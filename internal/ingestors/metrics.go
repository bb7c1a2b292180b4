package ingestors

import (
	"usage-metrics/internal/shared/metrics"
)

const (
	outcomeAccepted = "accepted"
	outcomeFailed   = "failed"
	outcomeDropped  = "dropped"
)

var (
	metricBatchIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "batch_ingested_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricMessageIngestedTotal counts messages by outcome: accepted, failed (handed
	// back for redelivery) or dropped (invalid payload, never retried).
	metricMessageIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "message_ingested_total",
		},
		[]string{"outcome"},
	)

	metricKeyWriteTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "key_write_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricBatchWriteDuration = metrics.NewHistogram(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "batch_write_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
	)
)
