package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/types/stats"
)

// RedisCache stores the per-period reports as JSON values with a server-side
// TTL. Useful when several instances of the service share one cache.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func cacheKey(period stats.Period) string {
	return "wc_order_stats_" + string(period)
}

func (c *RedisCache) Get(ctx context.Context, period stats.Period) (*stats.StatsReport, error) {
	data, err := c.client.Get(ctx, cacheKey(period)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var report stats.StatsReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("unmarshal cached report: %w", err)
	}
	return &report, nil
}

func (c *RedisCache) Put(ctx context.Context, period stats.Period, report *stats.StatsReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(period), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
