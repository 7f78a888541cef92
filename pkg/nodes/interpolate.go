package nodes

import (
	"math"
	"time"

	"github.com/aretw0/actiongraph/pkg/domain"
)

type runState int

const (
	runIdle runState = iota
	runRunning
	runPaused
)

func (s runState) String() string {
	switch s {
	case runRunning:
		return "running"
	case runPaused:
		return "paused"
	}
	return "idle"
}

type interpolatable interface {
	float64 | domain.Vector2
}

// interpolator eases Value from StartValue to EndValue over Duration seconds.
// Inputs are captured on Start; later writes do not affect a run in flight.
type interpolator[T interpolatable] struct {
	domain.Base
	updater
	startValue, endValue *domain.Input[T]
	duration             *domain.Input[float64]
	value                *domain.Output[T]

	interpolating, finished, aborted domain.Signal

	state     runState
	from, to  T
	total     time.Duration
	remaining time.Duration

	lerp func(a, b T, t float64) T
	ease func(t float64) float64
}

func newInterpolator[T interpolatable](kind string, lerp func(a, b T, t float64) T, ease func(float64) float64) Factory {
	return func(id string, env Env) domain.Node {
		var zero T
		n := &interpolator[T]{
			Base:       domain.NewBase(id, kind),
			updater:    updater{scheduler: env.Scheduler},
			startValue: domain.NewInput(zero),
			endValue:   domain.NewInput(zero),
			duration:   domain.NewInput(1.0),
			value:      domain.NewOutput[T](),
			lerp:       lerp,
			ease:       ease,
		}
		s := n.Sockets()
		s.Entry("Start", n.begin)
		s.Entry("Stop", n.abort)
		s.Entry("Pause", n.pause)
		s.Signal("Interpolating", &n.interpolating)
		s.Signal("Finished", &n.finished)
		s.Signal("Aborted", &n.aborted)
		s.In("StartValue", n.startValue)
		s.In("EndValue", n.endValue)
		s.In("Duration", n.duration)
		s.Out("Value", n.value)
		return n
	}
}

func (n *interpolator[T]) Status() string { return n.state.String() }

// begin (re)starts a run with freshly captured inputs.
func (n *interpolator[T]) begin() {
	n.from = n.startValue.Read()
	n.to = n.endValue.Read()
	n.total = seconds(n.duration.Read())
	n.remaining = n.total
	n.state = runRunning
	n.value.Write(n.from)
	n.start(n)
}

func (n *interpolator[T]) abort() {
	if n.state == runIdle {
		return
	}
	n.state = runIdle
	n.stop(n)
	n.aborted.Fire()
}

func (n *interpolator[T]) pause() {
	switch n.state {
	case runRunning:
		n.state = runPaused
		n.stop(n)
	case runPaused:
		n.state = runRunning
		n.start(n)
	}
}

func (n *interpolator[T]) Update(elapsed time.Duration) {
	if n.state != runRunning {
		return
	}
	n.remaining -= elapsed
	if n.remaining < 0 {
		n.value.Write(n.to)
		n.state = runIdle
		n.stop(n)
		n.finished.Fire()
		return
	}
	fraction := 1.0
	if n.total > 0 {
		fraction = 1 - float64(n.remaining)/float64(n.total)
	}
	n.value.Write(n.lerp(n.from, n.to, n.ease(fraction)))
	n.interpolating.Fire()
}

func (n *interpolator[T]) OnUpdateStopped() { n.state = runIdle }

func lerpFloat(a, b, t float64) float64 { return a + (b-a)*t }

func lerpVector2(a, b domain.Vector2, t float64) domain.Vector2 { return a.Lerp(b, t) }

func linear(t float64) float64 { return t }

// smoothstep eases t in [0,1] with 3t²-2t³.
func smoothstep(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}

func registerInterpolate(c *Catalog) {
	c.Register("InterpolateFloat", CategoryInterpolate, newInterpolator("InterpolateFloat", lerpFloat, linear))
	c.Register("InterpolateFloatCubic", CategoryInterpolate, newInterpolator("InterpolateFloatCubic", lerpFloat, smoothstep))
	c.Register("InterpolateVector2", CategoryInterpolate, newInterpolator("InterpolateVector2", lerpVector2, linear))
	c.Register("InterpolateVector2Cubic", CategoryInterpolate, newInterpolator("InterpolateVector2Cubic", lerpVector2, smoothstep))
}
