package scheduler

import (
	"context"
	"log/slog"
	"time"
)

const (
	// DefaultTickInterval drives evaluation. Activation is detected on
	// minute boundaries, so this must stay at or below 60 seconds.
	DefaultTickInterval = 30 * time.Second

	// DefaultSweepInterval drives the slower still-missed sweep.
	DefaultSweepInterval = 5 * time.Minute
)

// Runner drives periodic evaluation from a single goroutine, so no two
// evaluations ever run concurrently. Evaluation errors are logged and the
// loop keeps going; nothing here is fatal.
type Runner struct {
	Evaluate func(ctx context.Context) error
	Sweep    func(ctx context.Context) error
	OnTick   func(now time.Time) // optional, e.g. firing due notifications

	TickInterval  time.Duration
	SweepInterval time.Duration
	Logger        *slog.Logger
}

// Run evaluates immediately, then on every tick until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	tickEvery := r.TickInterval
	if tickEvery <= 0 {
		tickEvery = DefaultTickInterval
	}
	sweepEvery := r.SweepInterval
	if sweepEvery <= 0 {
		sweepEvery = DefaultSweepInterval
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tick := time.NewTicker(tickEvery)
	defer tick.Stop()
	sweep := time.NewTicker(sweepEvery)
	defer sweep.Stop()

	r.step(ctx, logger, time.Now())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-tick.C:
			r.step(ctx, logger, now)
		case <-sweep.C:
			if r.Sweep != nil {
				if err := r.Sweep(ctx); err != nil {
					logger.Warn("sweep failed", "error", err)
				}
			}
		}
	}
}

func (r *Runner) step(ctx context.Context, logger *slog.Logger, now time.Time) {
	if r.Evaluate != nil {
		if err := r.Evaluate(ctx); err != nil {
			logger.Warn("evaluation failed", "error", err)
		}
	}
	if r.OnTick != nil {
		r.OnTick(now)
	}
}
