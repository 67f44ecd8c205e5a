package cache

import (
	"context"
	"errors"
	"time"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/types/stats"
)

// ErrCacheMiss is returned by Get when no live entry exists for a period.
var ErrCacheMiss = errors.New("cache miss")

// Cache holds precomputed stats per period, one slot each, with a TTL.
// Only the preload job writes; request handlers read. Implementations must
// be safe for concurrent use and must never return a partially written
// report.
type Cache interface {
	Get(ctx context.Context, period stats.Period) (*stats.StatsReport, error)
	Put(ctx context.Context, period stats.Period, report *stats.StatsReport, ttl time.Duration) error
}
