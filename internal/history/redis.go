package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	redisSeriesPrefix   = "stock:series:"
	redisSmoothedPrefix = "stock:smoothed:"
)

// RedisStore is a write-through Store on a shared Redis instance, for
// deployments where more than one process serves prices. Series are stored as
// JSON strings, smoothed state as plain floats. No TTLs: history only shrinks
// through the series cap.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore parses the URL, connects, and pings once so a bad address
// fails at startup instead of on the first update.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Series(ctx context.Context, playerID string) ([]PricePoint, error) {
	data, err := s.client.Get(ctx, redisSeriesPrefix+playerID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get series: %w", err)
	}
	var series []PricePoint
	if err := json.Unmarshal([]byte(data), &series); err != nil {
		return nil, fmt.Errorf("decode series: %w", err)
	}
	return series, nil
}

func (s *RedisStore) PutSeries(ctx context.Context, playerID string, series []PricePoint) error {
	data, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("encode series: %w", err)
	}
	return s.client.Set(ctx, redisSeriesPrefix+playerID, data, 0).Err()
}

func (s *RedisStore) Smoothed(ctx context.Context, playerID string) (float64, error) {
	data, err := s.client.Get(ctx, redisSmoothedPrefix+playerID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get smoothed: %w", err)
	}
	v, err := strconv.ParseFloat(data, 64)
	if err != nil {
		return 0, fmt.Errorf("decode smoothed: %w", err)
	}
	return v, nil
}

func (s *RedisStore) PutSmoothed(ctx context.Context, playerID string, v float64) error {
	return s.client.Set(ctx, redisSmoothedPrefix+playerID, strconv.FormatFloat(v, 'g', -1, 64), 0).Err()
}

func (s *RedisStore) PlayerIDs(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, redisSeriesPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), redisSeriesPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan series keys: %w", err)
	}
	return ids, nil
}

// Flush is a no-op: every write already went to Redis.
func (s *RedisStore) Flush(context.Context) error { return nil }

func (s *RedisStore) Close() error { return s.client.Close() }
