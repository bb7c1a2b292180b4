package stores

import (
	"context"
	"errors"

	"usage-metrics/internal/models"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

var (
	ErrStoreClosed = errors.New("counter store closed")
)

// CounterStore persists one non-negative counter per bucket key.
//
// Increment is an atomic add that creates the record at zero when absent and is
// safe under any interleaving of callers. RangeSum reads every record of a series
// whose bucket falls inside the segment, following pages until the backend has no
// more, and either returns the full sum or an error, never a partial total.
// Timeouts and transport retries are the backend client's concern.
//
//go:generate mockgen -source=counter_store.go -destination=./mocks/counter_store_mock.go -package=mocks
type CounterStore interface {
	Increment(ctx context.Context, key models.BucketKey, amount int64) error
	RangeSum(ctx context.Context, series models.CounterSeries, segment models.RangeSegment) (int64, error)
	Close() error
}

// rangePageFunc reads the page that starts after cursor. It returns the page sum
// and the cursor of the next page; an empty next cursor ends the read.
type rangePageFunc func(ctx context.Context, cursor string) (sum int64, next string, err error)

// sumPages follows a paginated range read to the end.
func sumPages(ctx context.Context, driver string, fetch rangePageFunc) (int64, error) {
	var total int64
	cursor := ""
	for {
		sum, next, err := fetch(ctx, cursor)
		if err != nil {
			return 0, err
		}
		metricRangePagesReadTotal.WithLabelValues(driver).Inc()
		total += sum
		if next == "" {
			return total, nil
		}
		cursor = next
	}
}
