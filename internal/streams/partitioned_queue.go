package streams

import (
	"context"
	"encoding/binary"
	"hash/fnv"

	"usage-metrics/internal/models"
)

// MessageEnvelope is a message in flight on the queue. Attempt starts at 1 and
// grows by one on every redelivery.
type MessageEnvelope struct {
	Message models.Message
	Attempt int
}

type PartitionedQueue[T any] struct {
	partitions []chan T
}

const (
	defaultNumPartitions = 8
	defaultBuffer        = 1024
)

// NewPartitionedQueue returns a queue of numPartitions buffered lanes. Non-positive
// arguments fall back to the defaults.
func NewPartitionedQueue[T any](numPartitions, buffer int) *PartitionedQueue[T] {
	if numPartitions < 1 {
		numPartitions = defaultNumPartitions
	}
	if buffer < 1 {
		buffer = defaultBuffer
	}
	channels := make([]chan T, numPartitions)
	for i := range channels {
		channels[i] = make(chan T, buffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

// Partition returns the receive side of one lane.
func (queue *PartitionedQueue[T]) Partition(i int) <-chan T { return queue.partitions[i] }

// Publish routes msg to the lane owning partitionKey, blocking while that lane is
// full until ctx is done.
func (queue *PartitionedQueue[T]) Publish(ctx context.Context, partitionKey string, msg T) error {
	idx := partitionIndex(partitionKey, len(queue.partitions))
	select {
	case queue.partitions[idx] <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close closes every lane. Publishing after Close panics.
func (queue *PartitionedQueue[T]) Close() {
	for _, ch := range queue.partitions {
		close(ch)
	}
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.LittleEndian.Uint32(sum)
	return int(v % uint32(n))
}
