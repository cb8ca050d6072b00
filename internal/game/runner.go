// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package game

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/samber/oops"

	"github.com/holomush/starmap/internal/starmap"
)

type submission struct {
	actor  PlayerID
	action Action
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMaxTicks stops the runner after n ticks. Zero runs until cancelled.
func WithMaxTicks(n uint64) RunnerOption {
	return func(r *Runner) {
		r.maxTicks = n
	}
}

// OnTick registers fn to receive every tick report on the runner goroutine.
func OnTick(fn func(TickReport)) RunnerOption {
	return func(r *Runner) {
		r.onTick = fn
	}
}

// WithRunnerLogger sets the runner's logger.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// Runner is the single writer for a GameState. Submit may be called from
// any goroutine; every mutation happens on the goroutine executing Run.
type Runner struct {
	state    *GameState
	interval time.Duration
	maxTicks uint64
	onTick   func(TickReport)
	logger   *slog.Logger

	submissions chan submission
	done        chan struct{}
	started     atomic.Bool
	running     atomic.Bool
}

// NewRunner creates a runner that ticks state every interval.
func NewRunner(state *GameState, interval time.Duration, opts ...RunnerOption) (*Runner, error) {
	if state == nil {
		return nil, oops.In("game").Errorf("state is required")
	}
	if interval <= 0 {
		return nil, oops.In("game").With("interval", interval.String()).Errorf("tick interval must be positive")
	}
	r := &Runner{
		state:       state,
		interval:    interval,
		submissions: make(chan submission),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r, nil
}

// Submit hands an action to the runner, to be dispatched on the next tick.
// It blocks until the runner accepts it, ctx ends, or the runner stops.
func (r *Runner) Submit(ctx context.Context, actor PlayerID, action Action) error {
	select {
	case r.submissions <- submission{actor: actor, action: action}:
		return nil
	case <-r.done:
		return ErrRunnerStopped
	case <-ctx.Done():
		return oops.In("game").Wrapf(ctx.Err(), "submit action")
	}
}

// Running reports whether Run is ticking a live map. It is false before Run
// starts, once Run returns, and when Run refuses a closed map. Safe to call
// from any goroutine.
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Run drives the game until ctx is cancelled or the tick limit is reached.
// It may be called only once.
func (r *Runner) Run(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return oops.In("game").Errorf("runner already started")
	}
	defer close(r.done)

	if r.state.Closed() {
		return starmap.ErrAlreadyDestroyed("run")
	}
	r.running.Store(true)
	defer r.running.Store(false)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("runner stopped", "reason", ctx.Err().Error(), "ticks", r.state.TickCount())
			return nil
		case sub := <-r.submissions:
			r.state.Enqueue(sub.actor, sub.action)
		case now := <-ticker.C:
			report, err := r.state.Tick(ctx, now.Sub(last))
			if err != nil {
				return oops.In("game").With("tick", r.state.TickCount()).Wrapf(err, "tick failed")
			}
			last = now
			if r.onTick != nil {
				r.onTick(report)
			}
			if r.maxTicks > 0 && report.Tick >= r.maxTicks {
				r.logger.Info("runner reached tick limit", "ticks", report.Tick)
				return nil
			}
		}
	}
}
