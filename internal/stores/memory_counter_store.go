package stores

import (
	"context"
	"sort"
	"sync"

	"usage-metrics/internal/models"
)

type memoryCounterStore struct {
	mu       sync.RWMutex
	counters map[string]map[string]int64 // partition key -> sort key -> count
	pageSize int
	closed   bool
}

// NewMemoryCounterStore returns a process-local store. It pages range reads the
// same way the remote backends do.
func NewMemoryCounterStore(pageSize int) CounterStore {
	return &memoryCounterStore{
		counters: make(map[string]map[string]int64),
		pageSize: pageSize,
	}
}

func (s *memoryCounterStore) Increment(ctx context.Context, key models.BucketKey, amount int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	pk := key.PartitionKey()
	partition, ok := s.counters[pk]
	if !ok {
		partition = make(map[string]int64)
		s.counters[pk] = partition
	}
	partition[key.SortKey()] += amount
	return nil
}

func (s *memoryCounterStore) RangeSum(ctx context.Context, series models.CounterSeries, segment models.RangeSegment) (int64, error) {
	pk := series.PartitionKey()
	from, to := segment.FromSortKey(), segment.ToSortKey()

	return sumPages(ctx, DriverMemory, func(ctx context.Context, cursor string) (int64, string, error) {
		if err := ctx.Err(); err != nil {
			return 0, "", err
		}

		s.mu.RLock()
		defer s.mu.RUnlock()

		if s.closed {
			return 0, "", ErrStoreClosed
		}

		sortKeys := make([]string, 0)
		for sk := range s.counters[pk] {
			if sk >= from && sk <= to && sk > cursor {
				sortKeys = append(sortKeys, sk)
			}
		}
		sort.Strings(sortKeys)

		next := ""
		if len(sortKeys) > s.pageSize {
			sortKeys = sortKeys[:s.pageSize]
			next = sortKeys[len(sortKeys)-1]
		}

		var sum int64
		for _, sk := range sortKeys {
			sum += s.counters[pk][sk]
		}
		return sum, next, nil
	})
}

func (s *memoryCounterStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
