package queries

import (
	"usage-metrics/internal/shared/metrics"
)

var (
	metricQueryTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubQuery,
			Name:      "count_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricSegmentsPerQuery is 1 to 3 for every valid range.
	metricSegmentsPerQuery = metrics.NewHistogram(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubQuery,
			Name:      "segments_per_query",
			Buckets:   []float64{1, 2, 3},
		},
	)
)
