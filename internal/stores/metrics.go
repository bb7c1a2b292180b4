package stores

import (
	"usage-metrics/internal/shared/metrics"
)

const (
	opIncrement = "increment"
	opRangeSum  = "range_sum"

	outcomeOK    = "ok"
	outcomeError = "error"
)

var (
	// metricOperationDuration times every counter store call by driver, operation and outcome.
	metricOperationDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStore,
			Name:      "operation_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"driver", "operation", "outcome"},
	)

	// metricRangePagesReadTotal counts pages fetched while exhausting range reads.
	metricRangePagesReadTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStore,
			Name:      "range_pages_read_total",
		},
		[]string{"driver"},
	)

	metricDeadLettersTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStore,
			Name:      "dead_letters_total",
		},
		[]string{"operation"},
	)
)
