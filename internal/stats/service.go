package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/cache"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/logger"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/metrics"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/settings"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/types/stats"
)

// cacheTTL exceeds the daily preload cadence by one hour so a single missed
// run does not turn into a cache miss.
const cacheTTL = 25 * time.Hour

type Service struct {
	repo     OrderRepository
	cache    cache.Cache
	settings *settings.Service
	loc      *time.Location

	now func() time.Time
}

func NewService(repo OrderRepository, c cache.Cache, s *settings.Service, loc *time.Location) *Service {
	return &Service{
		repo:     repo,
		cache:    c,
		settings: s,
		loc:      loc,
		now:      time.Now,
	}
}

// GetStats serves the read path. With preloading enabled it returns the
// cached report when one is live; otherwise it computes on demand. On-demand
// results are not written back, the cache is fed only by the preload job.
func (s *Service) GetStats(ctx context.Context, period stats.Period) (*stats.StatsReport, error) {
	if !period.Valid() {
		return nil, ErrInvalidPeriod
	}

	if s.settings.Snapshot().PreloadEnabled {
		if report, err := s.cache.Get(ctx, period); err == nil {
			metrics.CacheHits.WithLabelValues(string(period)).Inc()
			return report, nil
		}
		metrics.CacheMisses.WithLabelValues(string(period)).Inc()
	}

	return s.computeForPeriod(ctx, period)
}

// PreloadAll refreshes every period's cache slot. A failing period is logged
// and skipped so the remaining ones still get fresh entries.
func (s *Service) PreloadAll(ctx context.Context) {
	metrics.PreloadRuns.Inc()
	for _, period := range stats.Periods() {
		report, err := s.computeForPeriod(ctx, period)
		if err != nil {
			metrics.PreloadFailures.WithLabelValues(string(period)).Inc()
			logger.Log.Error("preload period failed",
				zap.String("period", string(period)),
				zap.Error(err),
			)
			continue
		}
		if err := s.cache.Put(ctx, period, report, cacheTTL); err != nil {
			metrics.PreloadFailures.WithLabelValues(string(period)).Inc()
			logger.Log.Error("preload cache write failed",
				zap.String("period", string(period)),
				zap.Error(err),
			)
		}
	}
}

func (s *Service) computeForPeriod(ctx context.Context, period stats.Period) (*stats.StatsReport, error) {
	rng, err := ResolveWindow(period, s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	return s.Aggregate(ctx, period, rng)
}

// Aggregate scans every order created inside rng and reduces it into a
// report. Monetary sums use decimal arithmetic; per-status buckets are
// created on first sight of a status.
func (s *Service) Aggregate(ctx context.Context, period stats.Period, rng stats.DateRange) (*stats.StatsReport, error) {
	ids, err := s.repo.ListOrderIDsCreatedBetween(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("list orders for %s: %w", period, err)
	}

	report := &stats.StatsReport{
		OrdersPerStatus:      make(map[string]int),
		NetValue:             decimal.Zero,
		NetShipping:          decimal.Zero,
		NetValuePerStatus:    make(map[string]decimal.Decimal),
		NetShippingPerStatus: make(map[string]decimal.Decimal),
		Type:                 period,
		DateStart:            rng.Start.Format(stats.DateFormat),
		DateEnd:              rng.End.Format(stats.DateFormat),
	}

	for _, id := range ids {
		o, err := s.repo.FindOrderByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetch order %d: %w", id, err)
		}
		status := string(o.Status)

		report.TotalOrders++
		report.OrdersPerStatus[status]++

		net := o.NetValue()
		report.NetValue = report.NetValue.Add(net)
		report.NetShipping = report.NetShipping.Add(o.ShippingTotal)

		if _, ok := report.NetValuePerStatus[status]; !ok {
			report.NetValuePerStatus[status] = decimal.Zero
			report.NetShippingPerStatus[status] = decimal.Zero
		}
		report.NetValuePerStatus[status] = report.NetValuePerStatus[status].Add(net)
		report.NetShippingPerStatus[status] = report.NetShippingPerStatus[status].Add(o.ShippingTotal)
	}

	return report, nil
}
