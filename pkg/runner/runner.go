package runner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/actiongraph/internal/logging"
)

// Host is anything driven once per frame, typically an *actiongraph.Runtime.
type Host interface {
	Tick(elapsed time.Duration) int
}

// Runner ticks a Host at a fixed rate and serializes every other access to it.
type Runner struct {
	host     Host
	interval time.Duration
	maxStep  time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	frames uint64
}

// New creates a runner for host.
func New(host Host, opts ...Option) *Runner {
	r := &Runner{
		host:     host,
		interval: time.Second / DefaultFPS,
		maxStep:  DefaultMaxStep,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Interval returns the time between frames.
func (r *Runner) Interval() time.Duration { return r.interval }

// Run ticks the host until ctx is done and returns ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Debug("frame loop started", "interval", r.interval, "max_step", r.maxStep)
	last := r.now()
	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("frame loop stopped", "frames", r.Frames(), "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			now := r.now()
			r.Step(now.Sub(last))
			last = now
		}
	}
}

// Step advances one frame by elapsed, capped by the max step, and returns the
// number of nodes the host updated.
func (r *Runner) Step(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	if r.maxStep > 0 && elapsed > r.maxStep {
		r.logger.Debug("frame step capped", "elapsed", elapsed, "max_step", r.maxStep)
		elapsed = r.maxStep
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames++
	return r.host.Tick(elapsed)
}

// Do runs fn between frames. fn must not call Step or Do.
func (r *Runner) Do(fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn()
}

// Frames returns how many frames have been stepped.
func (r *Runner) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}
