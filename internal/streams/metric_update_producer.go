package streams

import (
	"context"

	"usage-metrics/internal/models"
)

// MetricUpdateProducer publishes metric update messages to the partitioned queue.
//
// Messages are partitioned by message id, so every delivery of one message lands
// on the same consumer worker and a message is never in two batches at once.
// Counter increments commute, so there is no per-bucket ordering to preserve and
// any partitioning that spreads ids evenly gives full parallelism.
//
//go:generate mockgen -source=metric_update_producer.go -destination=./mocks/metric_update_producer_mock.go -package=mocks
type MetricUpdateProducer interface {
	// Publish enqueues messages as first attempts. It stops at the first message
	// that cannot be enqueued before ctx is done and returns that error.
	Publish(ctx context.Context, messages []models.Message) error
}

type metricUpdateProducer struct {
	queue *PartitionedQueue[MessageEnvelope]
}

func NewMetricUpdateProducer(queue *PartitionedQueue[MessageEnvelope]) MetricUpdateProducer {
	return &metricUpdateProducer{
		queue: queue,
	}
}

func (producer *metricUpdateProducer) Publish(ctx context.Context, messages []models.Message) error {
	for _, msg := range messages {
		envelope := MessageEnvelope{Message: msg, Attempt: 1}
		if err := producer.queue.Publish(ctx, msg.MessageID, envelope); err != nil {
			return errInternalPublishFailed(err)
		}
		metricMessagePublishedTotal.WithLabelValues(streamMetricUpdate).Inc()
	}
	return nil
}
