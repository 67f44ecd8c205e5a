package cache

import (
	"context"
	"sync"
	"time"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/types/stats"
)

type entry struct {
	report    *stats.StatsReport
	expiresAt time.Time
}

// MemoryCache keeps the per-period slots in a mutex-guarded map. Expiry is
// checked lazily on Get; there is no background eviction, the map never
// holds more than one entry per period.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[stats.Period]entry

	now func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[stats.Period]entry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, period stats.Period) (*stats.StatsReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[period]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, ErrCacheMiss
	}
	return e.report, nil
}

func (c *MemoryCache) Put(_ context.Context, period stats.Period, report *stats.StatsReport, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[period] = entry{
		report:    report,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}
