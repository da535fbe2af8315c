// Package cache holds the read-through cache for computed safety scores.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "safety_score"

// ScoreCache stores computed score reports per tenant, scope and window.
type ScoreCache interface {
	// Get returns the cached report; found is false on a miss.
	Get(ctx context.Context, key string) (report *domain.SafetyScoreReport, found bool, err error)
	// Set stores a report under key.
	Set(ctx context.Context, key string, report domain.SafetyScoreReport) error
	// InvalidateTenant drops every cached report of a tenant.
	InvalidateTenant(ctx context.Context, tenantID string) error
}

// ScoreKey builds the cache key of a report.
func ScoreKey(tenantID string, scope domain.ScoreScope, window domain.ScoreWindow) string {
	return fmt.Sprintf("%s:%s:%s:%d:%d", keyPrefix, tenantID, scope, window.From.Unix(), window.To.Unix())
}

// RedisScoreCache keeps reports as JSON strings with a fixed TTL.
type RedisScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ScoreCache = (*RedisScoreCache)(nil)

// NewRedisScoreCache wraps a connected client.
func NewRedisScoreCache(client *redis.Client, ttl time.Duration) *RedisScoreCache {
	return &RedisScoreCache{client: client, ttl: ttl}
}

func (c *RedisScoreCache) Get(ctx context.Context, key string) (*domain.SafetyScoreReport, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get score report: %w", err)
	}
	report, err := decodeReport(data)
	if err != nil {
		return nil, false, err
	}
	return report, true, nil
}

func (c *RedisScoreCache) Set(ctx context.Context, key string, report domain.SafetyScoreReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal score report: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set score report: %w", err)
	}
	return nil
}

func (c *RedisScoreCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, tenantID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan score keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete score keys: %w", err)
	}
	return nil
}

func decodeReport(data []byte) (*domain.SafetyScoreReport, error) {
	var report domain.SafetyScoreReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal score report: %w", err)
	}
	return &report, nil
}

// Connect parses a redis:// URL and pings the server, retrying a few times.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	const maxRetries = 3
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			lastErr = fmt.Errorf("failed to ping redis: %w", err)
			client.Close()
			if i < maxRetries {
				time.Sleep(time.Second)
			}
			continue
		}
		return client, nil
	}
	return nil, fmt.Errorf("failed to connect to redis after %d retries: %w", maxRetries, lastErr)
}

// NoopScoreCache never stores anything. Used when REDIS_URL is empty.
type NoopScoreCache struct{}

var _ ScoreCache = NoopScoreCache{}

func (NoopScoreCache) Get(context.Context, string) (*domain.SafetyScoreReport, bool, error) {
	return nil, false, nil
}

func (NoopScoreCache) Set(context.Context, string, domain.SafetyScoreReport) error { return nil }

func (NoopScoreCache) InvalidateTenant(context.Context, string) error { return nil }
