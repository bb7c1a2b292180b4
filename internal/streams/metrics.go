package streams

import (
	"usage-metrics/internal/shared/metrics"
)

var (
	streamMetricUpdate = "metric_update"

	metricMessagePublishedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "message_published_total",
		},
		[]string{"stream_id"},
	)

	// metricBatchConsumedTotal counts flushed batches; error_code is set when the
	// batch was rejected or the worker panicked.
	metricBatchConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "batch_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)

	metricMessageRedeliveredTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "message_redelivered_total",
		},
		[]string{"stream_id"},
	)

	metricMessageDeadLetteredTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "message_dead_lettered_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)

	metricDeadLetterReplayedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "dead_letter_replayed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)
)
