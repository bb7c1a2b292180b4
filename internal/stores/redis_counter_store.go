package stores

import (
	"context"
	"fmt"
	"strconv"

	"usage-metrics/internal/models"
	"usage-metrics/internal/shared/configs"

	"github.com/redis/go-redis/v9"
)

// OpenRedis builds a client from cfg and verifies the server is reachable.
func OpenRedis(ctx context.Context, cfg configs.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// redisCounterStore keeps one hash per series: key "<prefix><pk>", field sk, value count.
//
// Example:
//
//	HGETALL usage:WSP#ws-1#MET#emails-sent
//	1) "H#2024-01-15T14"
//	2) "5"
//	3) "D#2024-01-15"
//	4) "5"
type redisCounterStore struct {
	client    *redis.Client
	keyPrefix string
	pageSize  int
}

// NewRedisCounterStore takes ownership of client.
func NewRedisCounterStore(client *redis.Client, keyPrefix string, pageSize int) CounterStore {
	return &redisCounterStore{
		client:    client,
		keyPrefix: keyPrefix,
		pageSize:  pageSize,
	}
}

func (s *redisCounterStore) Increment(ctx context.Context, key models.BucketKey, amount int64) error {
	if err := s.client.HIncrBy(ctx, s.hashKey(key.Series()), key.SortKey(), amount).Err(); err != nil {
		return fmt.Errorf("increment %s: %w", key, err)
	}
	return nil
}

// RangeSum scans the series hash for fields of the segment's granularity.
// HSCAN may return a field more than once, so fields are counted once.
func (s *redisCounterStore) RangeSum(ctx context.Context, series models.CounterSeries, segment models.RangeSegment) (int64, error) {
	hashKey := s.hashKey(series)
	from, to := segment.FromSortKey(), segment.ToSortKey()
	match := segment.Granularity.Prefix() + "#*"
	seen := make(map[string]struct{})

	return sumPages(ctx, DriverRedis, func(ctx context.Context, cursor string) (int64, string, error) {
		var scanCursor uint64
		if cursor != "" {
			c, err := strconv.ParseUint(cursor, 10, 64)
			if err != nil {
				return 0, "", fmt.Errorf("range %s %s: bad cursor %q: %w", hashKey, segment, cursor, err)
			}
			scanCursor = c
		}

		fields, next, err := s.client.HScan(ctx, hashKey, scanCursor, match, int64(s.pageSize)).Result()
		if err != nil {
			return 0, "", fmt.Errorf("range %s %s: %w", hashKey, segment, err)
		}

		var sum int64
		for i := 0; i+1 < len(fields); i += 2 {
			sk := fields[i]
			if sk < from || sk > to {
				continue
			}
			if _, dup := seen[sk]; dup {
				continue
			}
			seen[sk] = struct{}{}

			count, err := strconv.ParseInt(fields[i+1], 10, 64)
			if err != nil {
				return 0, "", fmt.Errorf("range %s %s: field %s: %w", hashKey, segment, sk, err)
			}
			sum += count
		}

		if next == 0 {
			return sum, "", nil
		}
		return sum, strconv.FormatUint(next, 10), nil
	})
}

func (s *redisCounterStore) Close() error {
	return s.client.Close()
}

func (s *redisCounterStore) hashKey(series models.CounterSeries) string {
	return s.keyPrefix + series.PartitionKey()
}
