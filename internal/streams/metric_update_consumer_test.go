package streams_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"usage-metrics/internal/ingestors"
	ingestormocks "usage-metrics/internal/ingestors/mocks"
	"usage-metrics/internal/models"
	"usage-metrics/internal/shared/loggers"
	"usage-metrics/internal/shared/svcerrors"
	"usage-metrics/internal/stores"
	storemocks "usage-metrics/internal/stores/mocks"
	"usage-metrics/internal/streams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const waitTimeout = 2 * time.Second

func message(id string) models.Message {
	return models.Message{
		MessageID: id,
		Body:      `{"workspaceId":"ws-1","metricId":"emails-sent","count":1,"date":"2024-01-15T14"}`,
	}
}

func ids(messages []models.Message) []string {
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = m.MessageID
	}
	return out
}

func ok(received int) *ingestors.IngestResult {
	return &ingestors.IngestResult{FailedMessageIDs: []string{}, Received: received}
}

func newConsumer(t *testing.T, opts streams.ConsumerOptions) (*streams.PartitionedQueue[streams.MessageEnvelope], *ingestormocks.MockIngestionService, *storemocks.MockDeadLetterStore, streams.MetricUpdateConsumer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	queue := streams.NewPartitionedQueue[streams.MessageEnvelope](1, 64)
	ingestionService := ingestormocks.NewMockIngestionService(ctrl)
	deadLetterStore := storemocks.NewMockDeadLetterStore(ctrl)
	consumer := streams.NewMetricUpdateConsumer(queue, ingestionService, deadLetterStore, opts, loggers.Nop())
	return queue, ingestionService, deadLetterStore, consumer
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(waitTimeout):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestConsumer_FlushesWhenBatchIsFull(t *testing.T) {
	t.Parallel()

	queue, ingestionService, _, consumer := newConsumer(t, streams.ConsumerOptions{BatchSize: 2, FlushInterval: time.Hour, MaxAttempts: 3})
	producer := streams.NewMetricUpdateProducer(queue)

	done := make(chan struct{})
	ingestionService.EXPECT().Ingest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []models.Message) (*ingestors.IngestResult, error) {
			assert.Equal(t, []string{"m1", "m2"}, ids(messages))
			close(done)
			return ok(len(messages)), nil
		})

	consumer.Start(context.Background())
	defer consumer.Stop()

	require.NoError(t, producer.Publish(context.Background(), []models.Message{message("m1"), message("m2")}))
	waitFor(t, done, "batch flush")
}

func TestConsumer_FlushesOnInterval(t *testing.T) {
	t.Parallel()

	queue, ingestionService, _, consumer := newConsumer(t, streams.ConsumerOptions{BatchSize: 100, FlushInterval: 10 * time.Millisecond, MaxAttempts: 3})
	producer := streams.NewMetricUpdateProducer(queue)

	done := make(chan struct{})
	ingestionService.EXPECT().Ingest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []models.Message) (*ingestors.IngestResult, error) {
			assert.Equal(t, []string{"m1"}, ids(messages))
			close(done)
			return ok(len(messages)), nil
		})

	consumer.Start(context.Background())
	defer consumer.Stop()

	require.NoError(t, producer.Publish(context.Background(), []models.Message{message("m1")}))
	waitFor(t, done, "interval flush")
}

func TestConsumer_RedeliversUntilMaxAttemptsThenDeadLetters(t *testing.T) {
	t.Parallel()

	queue, ingestionService, deadLetterStore, consumer := newConsumer(t, streams.ConsumerOptions{BatchSize: 1, FlushInterval: 5 * time.Millisecond, MaxAttempts: 3})
	producer := streams.NewMetricUpdateProducer(queue)

	var mu sync.Mutex
	calls := 0
	ingestionService.EXPECT().Ingest(gomock.Any(), []models.Message{message("m1")}).
		DoAndReturn(func(_ context.Context, messages []models.Message) (*ingestors.IngestResult, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			return &ingestors.IngestResult{FailedMessageIDs: []string{"m1"}, Received: 1, KeysFailed: 4}, nil
		}).Times(3)

	done := make(chan struct{})
	deadLetterStore.EXPECT().Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, deadLetter *models.DeadLetter) error {
			assert.Equal(t, "m1", deadLetter.MessageID)
			assert.Equal(t, message("m1").Body, deadLetter.Body)
			assert.Equal(t, 3, deadLetter.Attempts)
			assert.Equal(t, "STR_1000", deadLetter.ReasonCode)
			assert.False(t, deadLetter.FailedAt.IsZero())
			close(done)
			return nil
		})

	consumer.Start(context.Background())

	require.NoError(t, producer.Publish(context.Background(), []models.Message{message("m1")}))
	waitFor(t, done, "dead letter")
	consumer.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, calls)
}

func TestConsumer_RedeliveredMessageSucceeds(t *testing.T) {
	t.Parallel()

	queue, ingestionService, _, consumer := newConsumer(t, streams.ConsumerOptions{BatchSize: 2, FlushInterval: 5 * time.Millisecond, MaxAttempts: 3})
	producer := streams.NewMetricUpdateProducer(queue)

	done := make(chan struct{})
	gomock.InOrder(
		ingestionService.EXPECT().Ingest(gomock.Any(), []models.Message{message("m1"), message("m2")}).
			Return(&ingestors.IngestResult{FailedMessageIDs: []string{"m2"}, Received: 2}, nil),
		ingestionService.EXPECT().Ingest(gomock.Any(), []models.Message{message("m2")}).
			DoAndReturn(func(_ context.Context, messages []models.Message) (*ingestors.IngestResult, error) {
				close(done)
				return ok(1), nil
			}),
	)

	consumer.Start(context.Background())
	defer consumer.Stop()

	require.NoError(t, producer.Publish(context.Background(), []models.Message{message("m1"), message("m2")}))
	waitFor(t, done, "redelivery")
}

func TestConsumer_RejectedBatchIsDeadLettered(t *testing.T) {
	t.Parallel()

	queue, ingestionService, deadLetterStore, consumer := newConsumer(t, streams.ConsumerOptions{BatchSize: 2, FlushInterval: time.Hour, MaxAttempts: 5})
	producer := streams.NewMetricUpdateProducer(queue)

	ingestionService.EXPECT().Ingest(gomock.Any(), gomock.Any()).
		Return(nil, svcerrors.NewInvalidArgumentError("ING_1000", "item at index 1: messageId is required", nil))

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	var deadLettered []string
	deadLetterStore.EXPECT().Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, deadLetter *models.DeadLetter) error {
			mu.Lock()
			deadLettered = append(deadLettered, deadLetter.MessageID)
			mu.Unlock()
			assert.Equal(t, 1, deadLetter.Attempts)
			assert.Equal(t, "STR_1001", deadLetter.ReasonCode)
			wg.Done()
			return nil
		}).Times(2)

	consumer.Start(context.Background())
	defer consumer.Stop()

	require.NoError(t, producer.Publish(context.Background(), []models.Message{message("m1"), message("m2")}))

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	waitFor(t, done, "dead letters")

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"m1", "m2"}, deadLettered)
}

func TestConsumer_RecoversFromPanicAndRedelivers(t *testing.T) {
	t.Parallel()

	queue, ingestionService, _, consumer := newConsumer(t, streams.ConsumerOptions{BatchSize: 1, FlushInterval: 5 * time.Millisecond, MaxAttempts: 3})
	producer := streams.NewMetricUpdateProducer(queue)

	done := make(chan struct{})
	gomock.InOrder(
		ingestionService.EXPECT().Ingest(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, []models.Message) (*ingestors.IngestResult, error) {
				panic("boom")
			}),
		ingestionService.EXPECT().Ingest(gomock.Any(), []models.Message{message("m1")}).
			DoAndReturn(func(context.Context, []models.Message) (*ingestors.IngestResult, error) {
				close(done)
				return ok(1), nil
			}),
	)

	consumer.Start(context.Background())
	defer consumer.Stop()

	require.NoError(t, producer.Publish(context.Background(), []models.Message{message("m1")}))
	waitFor(t, done, "redelivery after panic")
}

func TestConsumer_StopFlushesBufferedAndDeadLettersUnapplied(t *testing.T) {
	t.Parallel()

	queue, ingestionService, deadLetterStore, consumer := newConsumer(t, streams.ConsumerOptions{BatchSize: 100, FlushInterval: time.Hour, MaxAttempts: 5})
	producer := streams.NewMetricUpdateProducer(queue)

	ingestionService.EXPECT().Ingest(gomock.Any(), []models.Message{message("m1"), message("m2"), message("m3")}).
		Return(&ingestors.IngestResult{FailedMessageIDs: []string{"m2"}, Received: 3}, nil)
	deadLetterStore.EXPECT().Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, deadLetter *models.DeadLetter) error {
			assert.Equal(t, "m2", deadLetter.MessageID)
			return nil
		})

	require.NoError(t, producer.Publish(context.Background(), []models.Message{message("m1"), message("m2"), message("m3")}))

	consumer.Start(context.Background())
	consumer.Stop()
}

func TestConsumer_DeadLetterWriteFailureIsLogged(t *testing.T) {
	t.Parallel()

	queue, ingestionService, deadLetterStore, consumer := newConsumer(t, streams.ConsumerOptions{BatchSize: 1, FlushInterval: time.Hour, MaxAttempts: 1})
	producer := streams.NewMetricUpdateProducer(queue)

	ingestionService.EXPECT().Ingest(gomock.Any(), gomock.Any()).
		Return(&ingestors.IngestResult{FailedMessageIDs: []string{"m1"}, Received: 1}, nil)

	done := make(chan struct{})
	deadLetterStore.EXPECT().Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *models.DeadLetter) error {
			close(done)
			return errors.New("disk full")
		})

	consumer.Start(context.Background())
	defer consumer.Stop()

	require.NoError(t, producer.Publish(context.Background(), []models.Message{message("m1")}))
	waitFor(t, done, "dead letter attempt")
}

func TestConsumer_DuplicateDeadLetterIsTolerated(t *testing.T) {
	t.Parallel()

	queue, ingestionService, deadLetterStore, consumer := newConsumer(t, streams.ConsumerOptions{BatchSize: 1, FlushInterval: time.Hour, MaxAttempts: 1})
	producer := streams.NewMetricUpdateProducer(queue)

	ingestionService.EXPECT().Ingest(gomock.Any(), gomock.Any()).
		Return(&ingestors.IngestResult{FailedMessageIDs: []string{"m1"}, Received: 1}, nil)

	done := make(chan struct{})
	deadLetterStore.EXPECT().Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *models.DeadLetter) error {
			close(done)
			return stores.ErrDeadLetterAlreadyExist
		})

	consumer.Start(context.Background())
	defer consumer.Stop()

	require.NoError(t, producer.Publish(context.Background(), []models.Message{message("m1")}))
	waitFor(t, done, "dead letter attempt")
}
