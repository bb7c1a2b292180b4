package streams

import (
	"context"
	"errors"

	"usage-metrics/internal/models"
	"usage-metrics/internal/shared/loggers"
	"usage-metrics/internal/shared/metrics"
	"usage-metrics/internal/stores"
)

type ReplayResult struct {
	Replayed       []string `json:"replayed"`
	FailedToReplay []string `json:"failedToReplay"`
}

//go:generate mockgen -source=dead_letter_service.go -destination=./mocks/dead_letter_service_mock.go -package=mocks
type DeadLetterService interface {
	List(ctx context.Context) ([]*models.DeadLetter, error)
	// Replay publishes every dead letter back to the stream as a first attempt and
	// removes it once published. A dead letter that could not be published is kept.
	Replay(ctx context.Context) (*ReplayResult, error)
}

type deadLetterService struct {
	deadLetterStore stores.DeadLetterStore
	producer        MetricUpdateProducer
}

func NewDeadLetterService(deadLetterStore stores.DeadLetterStore, producer MetricUpdateProducer) DeadLetterService {
	return &deadLetterService{
		deadLetterStore: deadLetterStore,
		producer:        producer,
	}
}

func (s *deadLetterService) List(ctx context.Context) ([]*models.DeadLetter, error) {
	deadLetters, err := s.deadLetterStore.List(ctx)
	if err != nil {
		return nil, errInternalDeadLetterReadFailed(err)
	}
	return deadLetters, nil
}

func (s *deadLetterService) Replay(ctx context.Context) (*ReplayResult, error) {
	logger := loggers.Ctx(ctx)

	deadLetters, err := s.deadLetterStore.List(ctx)
	if err != nil {
		return nil, errInternalDeadLetterReadFailed(err)
	}

	result := &ReplayResult{Replayed: []string{}, FailedToReplay: []string{}}
	for _, deadLetter := range deadLetters {
		message := models.Message{MessageID: deadLetter.MessageID, Body: deadLetter.Body}
		if err := s.producer.Publish(ctx, []models.Message{message}); err != nil {
			metricDeadLetterReplayedTotal.WithLabelValues(streamMetricUpdate, codeInternalPublishFailed).Inc()
			logger.Error().Err(err).
				Str(loggers.FieldMessageID, deadLetter.MessageID).
				Str(loggers.FieldErrorCode, codeInternalPublishFailed).
				Msg("failed to replay dead letter")
			result.FailedToReplay = append(result.FailedToReplay, deadLetter.MessageID)
			continue
		}

		// the message is back on the stream; a leftover file only risks a double replay
		if err := s.deadLetterStore.Delete(ctx, deadLetter.MessageID); err != nil && !errors.Is(err, stores.ErrDeadLetterNotFound) {
			svcErr := errInternalDeadLetterWriteFailed(err)
			logger.Warn().Err(svcErr).
				Str(loggers.FieldMessageID, deadLetter.MessageID).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Msg("replayed dead letter could not be removed")
		}
		metricDeadLetterReplayedTotal.WithLabelValues(streamMetricUpdate, metrics.ValueNoError).Inc()
		result.Replayed = append(result.Replayed, deadLetter.MessageID)
	}

	logger.Info().
		Int("replayed", len(result.Replayed)).
		Int("failed_to_replay", len(result.FailedToReplay)).
		Msg("replayed dead letters")
	return result, nil
}
