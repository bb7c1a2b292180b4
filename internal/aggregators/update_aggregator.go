package aggregators

import (
	"slices"

	"usage-metrics/internal/events"
	"usage-metrics/internal/models"
	"usage-metrics/internal/shared/loggers"
	"usage-metrics/internal/shared/metrics"
)

//go:generate mockgen -source=update_aggregator.go -destination=./mocks/update_aggregator_mock.go -package=mocks
type UpdateAggregator interface {
	// Aggregate folds a batch into one UpdateRequest per bucket key and records
	// which keys each message touched. Messages that fail to parse are logged
	// and dropped; they are neither counted nor reported as failed.
	Aggregate(messages []models.Message) *models.UpdateAggregation
}

type updateAggregator struct {
	parser    events.MessageParser
	keyMapper BucketKeyMapper
	logger    loggers.Logger
}

func NewUpdateAggregator(parser events.MessageParser, keyMapper BucketKeyMapper, logger loggers.Logger) UpdateAggregator {
	return &updateAggregator{
		parser:    parser,
		keyMapper: keyMapper,
		logger:    logger.With().Str(loggers.FieldComponent, "update_aggregator").Logger(),
	}
}

func (a *updateAggregator) Aggregate(messages []models.Message) *models.UpdateAggregation {
	agg := models.NewUpdateAggregation()

	for _, msg := range messages {
		event, err := a.parser.Parse(msg.Body)
		if err != nil {
			a.drop(msg, err)
			agg.Dropped++
			continue
		}

		if _, seen := agg.MessageKeys[msg.MessageID]; !seen {
			agg.MessageIDs = append(agg.MessageIDs, msg.MessageID)
		}

		for _, key := range a.keyMapper.BucketKeys(event) {
			req, ok := agg.Requests[key]
			if !ok {
				req = &models.UpdateRequest{Key: key}
				agg.Requests[key] = req
			}
			req.Amount += event.Count
			if !slices.Contains(req.MessageIDs, msg.MessageID) {
				req.MessageIDs = append(req.MessageIDs, msg.MessageID)
			}

			touched := agg.MessageKeys[msg.MessageID]
			if !slices.Contains(touched, key) {
				agg.MessageKeys[msg.MessageID] = append(touched, key)
			}
		}
		metricMessageAggregatedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	}

	metricUpdateRequestsPerBatch.Observe(float64(len(agg.Requests)))
	return agg
}

func (a *updateAggregator) drop(msg models.Message, err error) {
	code := metrics.ErrorCode(err)
	metricMessageAggregatedTotal.WithLabelValues(code).Inc()

	a.logger.Warn().
		Err(err).
		Str(loggers.FieldMessageID, msg.MessageID).
		Str(loggers.FieldErrorCode, code).
		Msg("dropping message with invalid payload")
}
