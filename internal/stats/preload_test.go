package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/settings"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/types/stats"
)

func TestPreloadAllFillsEveryPeriod(t *testing.T) {
	c := &mockCache{}
	svc := NewService(repoWithOrders(nil), c, newSettings(t, nil), time.UTC)

	svc.PreloadAll(context.Background())

	assert.Equal(t, 3, c.putCount)
	for _, p := range stats.Periods() {
		report, ok := c.reports[p]
		assert.True(t, ok, "period %s missing from cache", p)
		assert.Equal(t, p, report.Type)
	}
}

func TestPreloadAllIsolatesPeriodFailures(t *testing.T) {
	// The yesterday window is the only one shorter than a week; failing it
	// must not stop the other periods from being cached.
	repo := &mockRepo{
		listOrderIDsFn: func(ctx context.Context, start, end time.Time) ([]int64, error) {
			if end.Sub(start) < 7*24*time.Hour {
				return nil, errors.New("order store unreachable")
			}
			return nil, nil
		},
	}
	c := &mockCache{}
	svc := NewService(repo, c, newSettings(t, nil), time.UTC)

	svc.PreloadAll(context.Background())

	assert.Equal(t, 2, c.putCount)
	assert.NotContains(t, c.reports, stats.PeriodYesterday)
	assert.Contains(t, c.reports, stats.PeriodLastWeek)
	assert.Contains(t, c.reports, stats.PeriodLastMonth)
}

func TestNextRun(t *testing.T) {
	now := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

	// Later today.
	next := nextRun(now, 12, 30, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 15, 12, 30, 0, 0, time.UTC), next)

	// Already passed today.
	next = nextRun(now, 9, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 16, 9, 0, 0, 0, time.UTC), next)

	// Exactly now means tomorrow, the trigger must be strictly in the future.
	next = nextRun(now, 10, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 16, 10, 0, 0, 0, time.UTC), next)
}

func TestParseClock(t *testing.T) {
	h, m, err := parseClock("03:30")
	assert.NoError(t, err)
	assert.Equal(t, 3, h)
	assert.Equal(t, 30, m)

	_, _, err = parseClock("25:99")
	assert.Error(t, err)

	_, _, err = parseClock("")
	assert.Error(t, err)
}

func TestSchedulerApply(t *testing.T) {
	sched := NewScheduler(func(context.Context) {}, time.UTC)
	defer sched.CancelDailyJob()

	sched.Apply(settings.Settings{PreloadEnabled: true, PreloadTime: "03:30"})
	sched.mu.Lock()
	assert.NotNil(t, sched.cancel)
	sched.mu.Unlock()

	// Re-applying replaces the trigger instead of stacking a second one.
	sched.Apply(settings.Settings{PreloadEnabled: true, PreloadTime: "04:00"})
	sched.mu.Lock()
	assert.NotNil(t, sched.cancel)
	sched.mu.Unlock()

	sched.Apply(settings.Settings{PreloadEnabled: false})
	sched.mu.Lock()
	assert.Nil(t, sched.cancel)
	sched.mu.Unlock()
}

func TestSchedulerFiresAtConfiguredTime(t *testing.T) {
	fired := make(chan struct{}, 1)
	sched := NewScheduler(func(context.Context) {
		select {
		case fired <- struct{}{}:
		default:
		}
	}, time.UTC)
	defer sched.CancelDailyJob()

	// Freeze "now" just before the trigger so the timer fires immediately.
	base := time.Date(2024, 5, 15, 3, 29, 59, int(950*time.Millisecond), time.UTC)
	start := time.Now()
	sched.now = func() time.Time { return base.Add(time.Since(start)) }

	assert.NoError(t, sched.RegisterDailyJob("03:30"))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled job did not fire")
	}
}
