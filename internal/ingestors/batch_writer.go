package ingestors

import (
	"context"
	"fmt"
	"sort"
	"time"

	"usage-metrics/internal/models"
	"usage-metrics/internal/shared/loggers"
	"usage-metrics/internal/shared/metrics"
	"usage-metrics/internal/stores"

	"golang.org/x/sync/errgroup"
)

// RetryPolicy decides which messages are handed back for redelivery after some
// of their bucket increments failed.
type RetryPolicy string

const (
	// RetryAllKeysFailed retries a message only when every key it touched failed.
	// A partly applied message is not retried, so its failed keys stay undercounted
	// instead of the applied keys being counted twice.
	RetryAllKeysFailed RetryPolicy = "all_keys_failed"
	// RetryAnyKeyFailed retries a message when any key it touched failed, accepting
	// overcount of the keys that were already applied.
	RetryAnyKeyFailed RetryPolicy = "any_key_failed"
)

func ParseRetryPolicy(s string) (RetryPolicy, error) {
	switch p := RetryPolicy(s); p {
	case RetryAllKeysFailed, RetryAnyKeyFailed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown retry policy %q", s)
	}
}

// WriteResult reports the outcome of one Write. FailedMessageIDs is sorted.
type WriteResult struct {
	FailedMessageIDs []string
	KeysWritten      int
	KeysFailed       int
}

//go:generate mockgen -source=batch_writer.go -destination=./mocks/batch_writer_mock.go -package=mocks
type BatchWriter interface {
	// Write applies every request of agg with bounded concurrency and attributes
	// failed keys back to messages. It always attempts every request and reports
	// failures as data, never as an error.
	Write(ctx context.Context, agg *models.UpdateAggregation) *WriteResult
}

type batchWriter struct {
	store       stores.CounterStore
	concurrency int
	policy      RetryPolicy
	logger      loggers.Logger
}

// NewBatchWriter returns a writer with at most concurrency increments in flight.
// The limit protects the store's connections and is independent of batch size.
func NewBatchWriter(store stores.CounterStore, concurrency int, policy RetryPolicy, logger loggers.Logger) BatchWriter {
	if concurrency < 1 {
		concurrency = 1
	}
	return &batchWriter{
		store:       store,
		concurrency: concurrency,
		policy:      policy,
		logger:      logger.With().Str(loggers.FieldComponent, "batch_writer").Logger(),
	}
}

func (w *batchWriter) Write(ctx context.Context, agg *models.UpdateAggregation) *WriteResult {
	start := time.Now()
	defer func() { metricBatchWriteDuration.Observe(time.Since(start).Seconds()) }()

	requests := make([]*models.UpdateRequest, 0, len(agg.Requests))
	for _, req := range agg.Requests {
		requests = append(requests, req)
	}

	// one slot per request, written only by the goroutine applying it
	failed := make([]bool, len(requests))

	// an increment that was dispatched runs to completion even if the caller goes away
	applyCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(w.concurrency)
	for i, req := range requests {
		g.Go(func() error {
			if err := w.store.Increment(applyCtx, req.Key, req.Amount); err != nil {
				failed[i] = true
				w.logKeyFailure(req, errInternalCounterStoreWriteFailed(err))
				return nil
			}
			metricKeyWriteTotal.WithLabelValues(metrics.ValueNoError).Inc()
			return nil
		})
	}
	_ = g.Wait()

	result := &WriteResult{FailedMessageIDs: []string{}}
	failedKeys := make(map[models.BucketKey]struct{})
	touchedByFailure := make(map[string]struct{})
	for i, req := range requests {
		if !failed[i] {
			result.KeysWritten++
			continue
		}
		result.KeysFailed++
		failedKeys[req.Key] = struct{}{}
		for _, id := range req.MessageIDs {
			touchedByFailure[id] = struct{}{}
		}
	}

	for id := range touchedByFailure {
		if w.shouldRetry(agg.MessageKeys[id], failedKeys) {
			result.FailedMessageIDs = append(result.FailedMessageIDs, id)
		}
	}
	sort.Strings(result.FailedMessageIDs)

	if result.KeysFailed > 0 {
		w.logger.Warn().
			Int("keys_failed", result.KeysFailed).
			Int("keys_written", result.KeysWritten).
			Strs(loggers.FieldMessageIDs, result.FailedMessageIDs).
			Str("retry_policy", string(w.policy)).
			Msg("batch applied with failed keys")
	}
	return result
}

// shouldRetry applies the retry policy to a message touched by at least one failed key.
func (w *batchWriter) shouldRetry(touched []models.BucketKey, failedKeys map[models.BucketKey]struct{}) bool {
	if w.policy == RetryAnyKeyFailed {
		return true
	}
	for _, key := range touched {
		if _, ok := failedKeys[key]; !ok {
			return false
		}
	}
	return true
}

func (w *batchWriter) logKeyFailure(req *models.UpdateRequest, svcErr error) {
	code := codeInternalCounterStoreWriteFailed
	metricKeyWriteTotal.WithLabelValues(code).Inc()

	w.logger.Error().
		Err(svcErr).
		Str(loggers.FieldErrorCode, code).
		Str(loggers.FieldBucketPK, req.Key.PartitionKey()).
		Str(loggers.FieldBucketSK, req.Key.SortKey()).
		Int64(loggers.FieldAmount, req.Amount).
		Strs(loggers.FieldMessageIDs, req.MessageIDs).
		Msg("failed to apply bucket increment")
}
