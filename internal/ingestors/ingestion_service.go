package ingestors

import (
	"context"
	"fmt"

	"usage-metrics/internal/aggregators"
	"usage-metrics/internal/models"
	"usage-metrics/internal/shared/loggers"
	"usage-metrics/internal/shared/metrics"
	"usage-metrics/internal/shared/svcerrors"
)

// IngestResult represents the result of ingesting one batch of messages.
// FailedMessageIDs are the messages the delivery system should redeliver.
type IngestResult struct {
	FailedMessageIDs []string `json:"failedMessageIds"`
	Received         int      `json:"received"`
	Dropped          int      `json:"dropped"`
	KeysWritten      int      `json:"keysWritten"`
	KeysFailed       int      `json:"keysFailed"`
}

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// Ingest aggregates a batch and applies it to the counter store. Per-message and
	// per-key failures are reported in the result; an error means the batch itself
	// was rejected and nothing was applied.
	Ingest(ctx context.Context, messages []models.Message) (*IngestResult, error)
}

type ingestionService struct {
	aggregator aggregators.UpdateAggregator
	writer     BatchWriter
}

func NewIngestionService(aggregator aggregators.UpdateAggregator, writer BatchWriter) IngestionService {
	return &ingestionService{
		aggregator: aggregator,
		writer:     writer,
	}
}

func (s *ingestionService) Ingest(ctx context.Context, messages []models.Message) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Int("messages", len(messages)).Msg("started ingesting batch")

	if err := s.validateBatch(messages); err != nil {
		metricBatchIngestedTotal.WithLabelValues(err.Code).Inc()
		return nil, err
	}

	result := &IngestResult{
		FailedMessageIDs: []string{},
		Received:         len(messages),
	}
	if len(messages) == 0 {
		metricBatchIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()
		return result, nil
	}

	agg := s.aggregator.Aggregate(messages)
	result.Dropped = agg.Dropped

	if !agg.IsEmpty() {
		written := s.writer.Write(ctx, agg)
		result.FailedMessageIDs = written.FailedMessageIDs
		result.KeysWritten = written.KeysWritten
		result.KeysFailed = written.KeysFailed
	}

	metricMessageIngestedTotal.WithLabelValues(outcomeDropped).Add(float64(result.Dropped))
	metricMessageIngestedTotal.WithLabelValues(outcomeFailed).Add(float64(len(result.FailedMessageIDs)))
	metricMessageIngestedTotal.WithLabelValues(outcomeAccepted).Add(float64(len(agg.MessageIDs) - len(result.FailedMessageIDs)))
	metricBatchIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()

	logger.Debug().
		Int("received", result.Received).
		Int("dropped", result.Dropped).
		Int("keys_written", result.KeysWritten).
		Int("keys_failed", result.KeysFailed).
		Int("failed_messages", len(result.FailedMessageIDs)).
		Msg("finished ingesting batch")

	return result, nil
}

// validateBatch rejects batches whose failures could not be reported back by id.
func (s *ingestionService) validateBatch(messages []models.Message) *svcerrors.ServiceError {
	for i, msg := range messages {
		if msg.MessageID == "" {
			return errValidationFailed(fmt.Sprintf("item at index %d: messageId is required", i), nil)
		}
	}
	return nil
}
