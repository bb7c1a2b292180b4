package aggregators

import (
	"usage-metrics/internal/shared/metrics"
)

// metricMessageAggregatedTotal counts messages seen by the update aggregator.
//
// The error_code label is empty for messages folded into the batch and carries
// the parser error code (e.g. "EVT_1001") for messages that were dropped.
var (
	metricMessageAggregatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "message_aggregated_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricUpdateRequestsPerBatch tracks how many distinct bucket keys one batch
	// collapses into. A batch of N single-workspace events for the same hour yields 2.
	metricUpdateRequestsPerBatch = metrics.NewHistogram(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "update_requests_per_batch",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024},
		},
	)
)
