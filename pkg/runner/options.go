package runner

import (
	"log/slog"
	"time"
)

// DefaultFPS is the frame rate used when no interval is configured.
const DefaultFPS = 60

// DefaultMaxStep caps the elapsed time of a single frame.
const DefaultMaxStep = 250 * time.Millisecond

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithFPS sets the frame rate. Non-positive values are ignored.
func WithFPS(fps int) Option {
	return func(r *Runner) {
		if fps > 0 {
			r.interval = time.Second / time.Duration(fps)
		}
	}
}

// WithInterval sets the time between frames directly.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithMaxStep caps the elapsed time passed to a single tick, so a stalled
// process does not make every timer fire at once on resume. Zero disables the cap.
func WithMaxStep(d time.Duration) Option {
	return func(r *Runner) {
		r.maxStep = d
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithClock overrides the clock used to measure elapsed time.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}
