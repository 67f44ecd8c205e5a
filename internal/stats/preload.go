package stats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/logger"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/settings"
)

// Scheduler runs one job once a day at a configured local wall-clock time.
// Apply re-registers on every settings change: the previous trigger is always
// cancelled first, so duplicate triggers cannot accumulate.
type Scheduler struct {
	job func(context.Context)
	loc *time.Location

	mu     sync.Mutex
	cancel context.CancelFunc

	now func() time.Time
}

func NewScheduler(job func(context.Context), loc *time.Location) *Scheduler {
	return &Scheduler{
		job: job,
		loc: loc,
		now: time.Now,
	}
}

// Apply reconciles the scheduler with a settings snapshot.
func (s *Scheduler) Apply(cfg settings.Settings) {
	s.CancelDailyJob()
	if !cfg.PreloadEnabled {
		return
	}
	if err := s.RegisterDailyJob(cfg.PreloadTime); err != nil {
		logger.Log.Error("register daily preload failed",
			zap.String("preload_time", cfg.PreloadTime),
			zap.Error(err),
		)
	}
}

// RegisterDailyJob starts a trigger firing every day at "HH:MM" local time,
// replacing any existing trigger.
func (s *Scheduler) RegisterDailyJob(at string) error {
	hour, min, err := parseClock(at)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx, hour, min)

	logger.Log.Info("daily preload scheduled", zap.String("at", at))
	return nil
}

// CancelDailyJob stops the trigger if one is registered.
func (s *Scheduler) CancelDailyJob() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Scheduler) loop(ctx context.Context, hour, min int) {
	for {
		next := nextRun(s.now(), hour, min, s.loc)
		timer := time.NewTimer(next.Sub(s.now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.job(ctx)
		}
	}
}

// nextRun returns the first instant at hour:min in loc strictly after now.
func nextRun(now time.Time, hour, min int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, min, 0, 0, loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func parseClock(at string) (hour, min int, err error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return 0, 0, fmt.Errorf("parse preload time %q: %w", at, err)
	}
	return t.Hour(), t.Minute(), nil
}
