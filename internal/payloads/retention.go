package payloads

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// RetentionPolicy controls when the sweeper runs and how long payloads are
// kept after their last save.
type RetentionPolicy struct {
	Cron   string
	MaxAge time.Duration
}

var sweepParser = cron.NewParser(
	cron.Minute |
		cron.Hour |
		cron.Dom |
		cron.Month |
		cron.Dow |
		cron.Descriptor,
)

// Sweeper periodically removes payloads older than the retention window.
type Sweeper struct {
	store    Store
	schedule cron.Schedule
	maxAge   time.Duration
	logger   *slog.Logger
	metrics  *Metrics
	now      func() time.Time

	mu      sync.Mutex
	started bool
	wg      sync.WaitGroup
}

// SweeperOption configures the sweeper.
type SweeperOption func(*Sweeper)

// WithSweeperLogger configures the sweeper logger.
func WithSweeperLogger(logger *slog.Logger) SweeperOption {
	return func(s *Sweeper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSweeperMetrics configures sweep metrics.
func WithSweeperMetrics(metrics *Metrics) SweeperOption {
	return func(s *Sweeper) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithSweeperNow overrides the clock for tests.
func WithSweeperNow(now func() time.Time) SweeperOption {
	return func(s *Sweeper) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSweeper creates a sweeper for the given store and policy. An empty
// schedule defaults to hourly.
func NewSweeper(store Store, policy RetentionPolicy, opts ...SweeperOption) (*Sweeper, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if policy.MaxAge <= 0 {
		return nil, fmt.Errorf("retention max age must be positive")
	}
	expr := strings.TrimSpace(policy.Cron)
	if expr == "" {
		expr = "@hourly"
	}
	schedule, err := sweepParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid retention schedule: %w", err)
	}

	sweeper := &Sweeper{
		store:    store,
		schedule: schedule,
		maxAge:   policy.MaxAge,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(sweeper)
	}
	return sweeper, nil
}

// Start begins sweeping on the schedule until the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		timer := time.NewTimer(s.untilNext())
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				if _, err := s.RunOnce(ctx); err != nil {
					s.logger.WarnContext(ctx, "payload sweep failed", "error", err)
				}
				timer.Reset(s.untilNext())
			}
		}
	}()
	return nil
}

// Stop waits for the sweep loop to exit.
func (s *Sweeper) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce performs a single sweep immediately.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.maxAge)
	removed, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.metrics.RecordSweep(removed)
	if removed > 0 {
		s.logger.InfoContext(ctx, "removed stale chart payloads",
			"count", removed, "cutoff", cutoff)
	}
	return removed, nil
}

func (s *Sweeper) untilNext() time.Duration {
	now := s.now()
	wait := s.schedule.Next(now).Sub(now)
	if wait < time.Second {
		wait = time.Second
	}
	return wait
}
