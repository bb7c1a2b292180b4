package stores

import (
	"context"
	"time"

	"usage-metrics/internal/models"
)

type instrumentedCounterStore struct {
	next   CounterStore
	driver string
}

// NewInstrumentedCounterStore records latency and outcome of every call to next.
func NewInstrumentedCounterStore(next CounterStore, driver string) CounterStore {
	return &instrumentedCounterStore{next: next, driver: driver}
}

func (s *instrumentedCounterStore) Increment(ctx context.Context, key models.BucketKey, amount int64) error {
	start := time.Now()
	err := s.next.Increment(ctx, key, amount)
	s.observe(opIncrement, start, err)
	return err
}

func (s *instrumentedCounterStore) RangeSum(ctx context.Context, series models.CounterSeries, segment models.RangeSegment) (int64, error) {
	start := time.Now()
	sum, err := s.next.RangeSum(ctx, series, segment)
	s.observe(opRangeSum, start, err)
	return sum, err
}

func (s *instrumentedCounterStore) Close() error {
	return s.next.Close()
}

func (s *instrumentedCounterStore) observe(op string, start time.Time, err error) {
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}
	metricOperationDuration.WithLabelValues(s.driver, op, outcome).Observe(time.Since(start).Seconds())
}
