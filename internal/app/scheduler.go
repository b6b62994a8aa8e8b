// Package app contains the tick scheduler that drives the
// acquire -> interpolate -> present pipeline.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/farmsight/thermalmap/internal/domain"
	"github.com/farmsight/thermalmap/internal/ports"
)

// Defaults for the refresh schedule.
const (
	// DefaultTickInterval is the pause between ticks.
	DefaultTickInterval = 1000 * time.Millisecond

	// DefaultTickBudget bounds the total number of ticks in one run.
	DefaultTickBudget = 500
)

// SchedulerConfig contains configuration for the tick loop.
type SchedulerConfig struct {
	TickInterval time.Duration
	TickBudget   int
}

// SetDefaults fills zero-valued fields with schedule defaults.
func (c *SchedulerConfig) SetDefaults() {
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.TickBudget <= 0 {
		c.TickBudget = DefaultTickBudget
	}
}

// Scheduler drives a bounded sequence of ticks at a fixed interval. Each
// tick acquires one frame, upsamples it, and forwards the pair to the
// Presenter. Any error or panic inside a tick is contained at the tick
// boundary: the tick is logged and skipped and the run continues. A single
// bad tick never terminates the run.
//
// Ticks execute serially on the calling goroutine; exactly one transport
// read is outstanding at a time, so frames are consumed strictly in stream
// order. Cancellation is cooperative and checked between ticks only, since
// every in-tick blocking point is already individually time-bounded.
type Scheduler struct {
	budget    int
	source    ports.FrameSource
	upsampler ports.Upsampler
	presenter ports.Presenter
	logger    ports.Logger

	mu       sync.Mutex
	interval time.Duration
}

// NewScheduler creates a scheduler owning the given pipeline stages.
func NewScheduler(
	cfg SchedulerConfig,
	source ports.FrameSource,
	upsampler ports.Upsampler,
	presenter ports.Presenter,
	logger ports.Logger,
) *Scheduler {
	cfg.SetDefaults()
	return &Scheduler{
		budget:    cfg.TickBudget,
		interval:  cfg.TickInterval,
		source:    source,
		upsampler: upsampler,
		presenter: presenter,
		logger:    logger,
	}
}

// Interval returns the current tick interval.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// SetInterval changes the tick interval; it takes effect from the next tick.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.interval = d
	s.mu.Unlock()
	s.logger.Info("tick interval updated", ports.Duration("interval", d))
}

// Run executes up to the configured tick budget and returns nil when the
// budget completes, or ctx.Err() if canceled between ticks.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler starting",
		ports.Int("tick_budget", s.budget),
		ports.Duration("interval", s.Interval()),
	)

	for tick := 0; tick < s.budget; tick++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.runTick(ctx, tick)

		if tick == s.budget-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.Interval()):
		}
	}

	s.logger.Info("scheduler finished", ports.Int("ticks", s.budget))
	return nil
}

// runTick executes one acquire -> upsample -> render pass. Errors and
// panics stop at this boundary.
func (s *Scheduler) runTick(ctx context.Context, tick int) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("tick panicked",
				ports.Int("tick", tick),
				ports.Any("panic", rec),
			)
		}
	}()

	frame := s.source.NextFrame()

	surface, err := s.upsampler.Upsample(frame)
	if err != nil {
		// Upsample already returned the zero fallback surface.
		s.logger.Warn("interpolation failed, presenting fallback surface",
			ports.Int("tick", tick),
			ports.Err(err),
		)
	}

	result := domain.TickResult{
		Raw:          frame,
		Interpolated: surface,
		Degraded:     frame.Degraded || err != nil,
	}

	if err := s.presenter.Render(ctx, result); err != nil {
		s.logger.Error("presenter update failed",
			ports.Int("tick", tick),
			ports.Err(err),
		)
		return
	}

	s.logger.Debug("tick complete",
		ports.Int("tick", tick),
		ports.Bool("degraded", result.Degraded),
	)
}
