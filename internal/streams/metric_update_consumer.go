package streams

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"usage-metrics/internal/ingestors"
	"usage-metrics/internal/models"
	"usage-metrics/internal/shared/loggers"
	"usage-metrics/internal/shared/metrics"
	"usage-metrics/internal/shared/svcerrors"
	"usage-metrics/internal/shared/ulid"
	"usage-metrics/internal/stores"
)

//go:generate mockgen -source=metric_update_consumer.go -destination=./mocks/metric_update_consumer_mock.go -package=mocks
type MetricUpdateConsumer interface {
	Start(ctx context.Context)
	// Stop drains what is buffered, flushes it once and waits for the workers.
	Stop()
}

type ConsumerOptions struct {
	BatchSize     int
	FlushInterval time.Duration
	MaxAttempts   int
}

type metricUpdateConsumer struct {
	queue            *PartitionedQueue[MessageEnvelope]
	ingestionService ingestors.IngestionService
	deadLetterStore  stores.DeadLetterStore
	opts             ConsumerOptions

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	now    func() time.Time
	logger loggers.Logger
}

func NewMetricUpdateConsumer(queue *PartitionedQueue[MessageEnvelope], ingestionService ingestors.IngestionService, deadLetterStore stores.DeadLetterStore, opts ConsumerOptions, logger loggers.Logger) MetricUpdateConsumer {
	if opts.BatchSize < 1 {
		opts.BatchSize = 1
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = time.Second
	}
	return &metricUpdateConsumer{
		queue:            queue,
		ingestionService: ingestionService,
		deadLetterStore:  deadLetterStore,
		opts:             opts,
		stopCh:           make(chan struct{}),
		now:              func() time.Time { return time.Now().UTC() },
		logger:           logger.With().Str(loggers.FieldComponent, "metric_update_consumer").Logger(),
	}
}

// Start spawns 1 worker goroutine per partition. Each worker owns the batch for
// its lane, so a batch never needs locking.
func (consumer *metricUpdateConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		ch := consumer.queue.Partition(partitionIndex)
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

func (consumer *metricUpdateConsumer) Stop() {
	consumer.stopOnce.Do(func() { close(consumer.stopCh) })
	consumer.wg.Wait()
}

func (consumer *metricUpdateConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan MessageEnvelope) {
	logger := consumer.logger.With().Int(loggers.FieldPartition, partitionIndex).Logger()

	ticker := time.NewTicker(consumer.opts.FlushInterval)
	defer ticker.Stop()

	// pending holds new deliveries plus redeliveries carried over from the last flush
	var pending []MessageEnvelope

	for {
		select {
		case <-ctx.Done():
			consumer.shutdown(logger, pending, nil)
			return
		case <-consumer.stopCh:
			consumer.shutdown(logger, pending, ch)
			return
		case envelope, ok := <-ch:
			if !ok {
				consumer.shutdown(logger, pending, nil)
				return
			}
			pending = append(pending, envelope)
			if len(pending) >= consumer.opts.BatchSize {
				pending = consumer.flush(logger, pending)
			}
		case <-ticker.C:
			if len(pending) > 0 {
				pending = consumer.flush(logger, pending)
			}
		}
	}
}

// shutdown drains what is already buffered in ch, flushes once and dead-letters
// whatever is still unapplied, since nothing will redeliver it.
func (consumer *metricUpdateConsumer) shutdown(logger loggers.Logger, pending []MessageEnvelope, ch <-chan MessageEnvelope) {
	if ch != nil {
	drain:
		for {
			select {
			case envelope, ok := <-ch:
				if !ok {
					break drain
				}
				pending = append(pending, envelope)
			default:
				break drain
			}
		}
	}
	if len(pending) == 0 {
		return
	}

	leftover := consumer.flush(logger, pending)
	for _, envelope := range leftover {
		consumer.deadLetter(logger, envelope, codeShutdownUnapplied)
	}
}

// flush ingests one batch and returns the envelopes to redeliver on the next flush.
func (consumer *metricUpdateConsumer) flush(logger loggers.Logger, pending []MessageEnvelope) (retries []MessageEnvelope) {
	// ingestion runs detached so a shutdown signal never aborts a batch midway
	ctx := logger.With().
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Logger().WithContext(context.Background())

	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("consumer panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricBatchConsumedTotal.WithLabelValues(streamMetricUpdate, svcErr.Code).Inc()

			// nothing is known to be applied; treat the whole batch as failed
			retries = consumer.redeliver(ctx, pending, pending)
		}
	}()

	messages := make([]models.Message, len(pending))
	for i, envelope := range pending {
		messages[i] = envelope.Message
	}

	result, err := consumer.ingestionService.Ingest(ctx, messages)
	if err != nil {
		code := metrics.ErrorCode(err)
		metricBatchConsumedTotal.WithLabelValues(streamMetricUpdate, code).Inc()
		loggers.Ctx(ctx).Error().Err(err).Str(loggers.FieldErrorCode, code).Msg("batch rejected")

		// a rejected batch will be rejected again
		for _, envelope := range pending {
			consumer.deadLetter(loggers.Ctx(ctx).With().Logger(), envelope, codeBatchRejected)
		}
		return nil
	}
	metricBatchConsumedTotal.WithLabelValues(streamMetricUpdate, metrics.ValueNoError).Inc()

	if len(result.FailedMessageIDs) == 0 {
		return nil
	}

	failed := make(map[string]struct{}, len(result.FailedMessageIDs))
	for _, id := range result.FailedMessageIDs {
		failed[id] = struct{}{}
	}
	toRetry := make([]MessageEnvelope, 0, len(failed))
	for _, envelope := range pending {
		if _, ok := failed[envelope.Message.MessageID]; ok {
			toRetry = append(toRetry, envelope)
		}
	}
	return consumer.redeliver(ctx, pending, toRetry)
}

// redeliver bumps the attempt of each failed envelope, dead-lettering those that
// reached the maximum. Duplicate deliveries of one id inside a batch collapse
// into one redelivery.
func (consumer *metricUpdateConsumer) redeliver(ctx context.Context, pending, failed []MessageEnvelope) []MessageEnvelope {
	logger := loggers.Ctx(ctx).With().Logger()
	seen := make(map[string]struct{}, len(failed))
	retries := make([]MessageEnvelope, 0, len(failed))
	for _, envelope := range failed {
		if _, dup := seen[envelope.Message.MessageID]; dup {
			continue
		}
		seen[envelope.Message.MessageID] = struct{}{}

		if envelope.Attempt >= consumer.opts.MaxAttempts {
			consumer.deadLetter(logger, envelope, codeMaxAttemptsExceeded)
			continue
		}
		envelope.Attempt++
		retries = append(retries, envelope)
		metricMessageRedeliveredTotal.WithLabelValues(streamMetricUpdate).Inc()
	}

	if len(retries) > 0 {
		logger.Warn().
			Int("batch_size", len(pending)).
			Int("redelivered", len(retries)).
			Msg("scheduled failed messages for redelivery")
	}
	return retries
}

func (consumer *metricUpdateConsumer) deadLetter(logger loggers.Logger, envelope MessageEnvelope, reasonCode string) {
	deadLetter := &models.DeadLetter{
		MessageID:  envelope.Message.MessageID,
		Body:       envelope.Message.Body,
		Attempts:   envelope.Attempt,
		ReasonCode: reasonCode,
		FailedAt:   consumer.now(),
	}

	// the write must survive a cancelled worker context
	err := consumer.deadLetterStore.Put(context.Background(), deadLetter)
	switch {
	case err == nil:
		metricMessageDeadLetteredTotal.WithLabelValues(streamMetricUpdate, metrics.ValueNoError).Inc()
		logger.Error().
			Str(loggers.FieldMessageID, deadLetter.MessageID).
			Int(loggers.FieldAttempt, deadLetter.Attempts).
			Str(loggers.FieldErrorCode, reasonCode).
			Msg("message dead-lettered")
	case errors.Is(err, stores.ErrDeadLetterAlreadyExist):
		metricMessageDeadLetteredTotal.WithLabelValues(streamMetricUpdate, metrics.ValueNoError).Inc()
		logger.Warn().
			Str(loggers.FieldMessageID, deadLetter.MessageID).
			Msg("message already dead-lettered")
	default:
		svcErr := errInternalDeadLetterWriteFailed(err)
		metricMessageDeadLetteredTotal.WithLabelValues(streamMetricUpdate, svcErr.Code).Inc()
		logger.Error().
			Err(svcErr).
			Str(loggers.FieldMessageID, deadLetter.MessageID).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Str("body", deadLetter.Body).
			Msg("failed to dead-letter message")
	}
}
