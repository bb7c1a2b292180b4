package ingestors_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"usage-metrics/internal/aggregators"
	aggregatormocks "usage-metrics/internal/aggregators/mocks"
	"usage-metrics/internal/events"
	"usage-metrics/internal/ingestors"
	ingestormocks "usage-metrics/internal/ingestors/mocks"
	"usage-metrics/internal/models"
	"usage-metrics/internal/shared/loggers"
	"usage-metrics/internal/shared/svcerrors"
	"usage-metrics/internal/stores"
	storemocks "usage-metrics/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIngest_ErrValidationFailed_MissingMessageID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregator := aggregatormocks.NewMockUpdateAggregator(ctrl)
	writer := ingestormocks.NewMockBatchWriter(ctrl)
	service := ingestors.NewIngestionService(aggregator, writer)

	messages := []models.Message{
		msg("m1", "ws-1", "2024-01-15T14", 1),
		{MessageID: "", Body: `{}`},
	}
	result, err := service.Ingest(context.Background(), messages)

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ING_1000", svcErr.Code)
	assert.Equal(t, "invalid_argument", svcErr.Category)
	assert.Contains(t, svcErr.Message, "index 1")
	assert.Nil(t, result, "expected nil result on error")
}

func TestIngest_EmptyBatch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregator := aggregatormocks.NewMockUpdateAggregator(ctrl)
	writer := ingestormocks.NewMockBatchWriter(ctrl)
	service := ingestors.NewIngestionService(aggregator, writer)

	result, err := service.Ingest(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, &ingestors.IngestResult{FailedMessageIDs: []string{}}, result)
}

func TestIngest_AllMessagesDropped_SkipsWrite(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregator := aggregatormocks.NewMockUpdateAggregator(ctrl)
	writer := ingestormocks.NewMockBatchWriter(ctrl)
	service := ingestors.NewIngestionService(aggregator, writer)

	messages := []models.Message{{MessageID: "m1", Body: `not json`}}
	agg := models.NewUpdateAggregation()
	agg.Dropped = 1
	aggregator.EXPECT().Aggregate(messages).Return(agg)

	result, err := service.Ingest(context.Background(), messages)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Received)
	assert.Equal(t, 1, result.Dropped)
	assert.Empty(t, result.FailedMessageIDs, "dropped messages are never redelivered")
}

func TestIngest_ReportsWriterFailures(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregator := aggregatormocks.NewMockUpdateAggregator(ctrl)
	writer := ingestormocks.NewMockBatchWriter(ctrl)
	service := ingestors.NewIngestionService(aggregator, writer)

	messages := []models.Message{
		msg("m1", "ws-1", "2024-01-15T14", 1),
		msg("m2", "ws-2", "2024-01-15T14", 1),
		{MessageID: "m3", Body: `{"workspaceId":""}`},
	}
	hourly := key("ws-1", models.GranularityHourly, "2024-01-15T14")
	agg := models.NewUpdateAggregation()
	agg.Requests[hourly] = &models.UpdateRequest{Key: hourly, Amount: 1, MessageIDs: []string{"m1"}}
	agg.MessageIDs = []string{"m1", "m2"}
	agg.Dropped = 1

	aggregator.EXPECT().Aggregate(messages).Return(agg)
	writer.EXPECT().Write(gomock.Any(), agg).Return(&ingestors.WriteResult{
		FailedMessageIDs: []string{"m2"},
		KeysWritten:      3,
		KeysFailed:       1,
	})

	result, err := service.Ingest(context.Background(), messages)

	require.NoError(t, err)
	assert.Equal(t, &ingestors.IngestResult{
		FailedMessageIDs: []string{"m2"},
		Received:         3,
		Dropped:          1,
		KeysWritten:      3,
		KeysFailed:       1,
	}, result)
}

func TestIngest_AppliesBatchToMemoryStore(t *testing.T) {
	t.Parallel()

	store := stores.NewMemoryCounterStore(100)
	aggregator := aggregators.NewUpdateAggregator(events.NewMessageParser(), aggregators.NewBucketKeyMapper(), loggers.Nop())
	writer := ingestors.NewBatchWriter(store, 4, ingestors.RetryAllKeysFailed, loggers.Nop())
	service := ingestors.NewIngestionService(aggregator, writer)

	messages := []models.Message{
		msg("m1", "ws-1", "2024-01-15T14", 3),
		msg("m2", "ws-1", "2024-01-15T14", 7),
		msg("m3", "ws-1", "2024-01-15T20", 5),
	}
	result, err := service.Ingest(context.Background(), messages)
	require.NoError(t, err)
	assert.Empty(t, result.FailedMessageIDs)
	assert.Equal(t, 3, result.KeysWritten)

	series := models.CounterSeries{Scope: models.ScopeWorkspace, ScopeID: "ws-1", MetricID: "emails-sent"}
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	daily, err := store.RangeSum(context.Background(), series, models.RangeSegment{Granularity: models.GranularityDaily, From: day, To: day})
	require.NoError(t, err)
	assert.Equal(t, int64(15), daily)

	hour := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	hourly, err := store.RangeSum(context.Background(), series, models.RangeSegment{Granularity: models.GranularityHourly, From: hour, To: hour})
	require.NoError(t, err)
	assert.Equal(t, int64(10), hourly)
}

func TestIngest_StoreOutageFailsEveryValidMessage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := storemocks.NewMockCounterStore(ctrl)
	store.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused")).Times(4)

	aggregator := aggregators.NewUpdateAggregator(events.NewMessageParser(), aggregators.NewBucketKeyMapper(), loggers.Nop())
	writer := ingestors.NewBatchWriter(store, 4, ingestors.RetryAllKeysFailed, loggers.Nop())
	service := ingestors.NewIngestionService(aggregator, writer)

	messages := []models.Message{
		msg("m1", "ws-1", "2024-01-15T14", 1),
		{MessageID: "m2", Body: `{"workspaceId":"ws-1"}`},
		msg("m3", "ws-2", "2024-01-15T14", 1),
	}
	result, err := service.Ingest(context.Background(), messages)

	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m3"}, result.FailedMessageIDs)
	assert.Equal(t, 1, result.Dropped)
}
