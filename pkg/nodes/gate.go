package nodes

import (
	"fmt"
	"time"

	"github.com/aretw0/actiongraph/pkg/domain"
)

type gateState int

const (
	gateOpen gateState = iota
	gateClosed
)

func (s gateState) String() string {
	if s == gateOpen {
		return "open"
	}
	return "closed"
}

// GateConfig configures a Gate.
type GateConfig struct {
	StartOpen bool `mapstructure:"start_open"`
	// AutoCloseCount closes the gate after that many passes; 0 never closes it.
	AutoCloseCount int `mapstructure:"auto_close_count"`
}

// gate passes In through to Out while open. It initializes lazily on its first
// entry, so configuration applied after construction still counts.
type gate struct {
	domain.Base
	cfg       GateConfig
	ready     bool
	state     gateState
	countdown int

	out, opened, closed domain.Signal
}

func newGate(id string, _ Env) domain.Node {
	n := &gate{Base: domain.NewBase(id, "Gate")}
	s := n.Sockets()
	s.Entry("In", n.in)
	s.Entry("Open", n.open)
	s.Entry("Close", n.close)
	s.Entry("Toggle", n.toggle)
	s.Signal("Out", &n.out)
	s.Signal("Opened", &n.opened)
	s.Signal("Closed", &n.closed)
	return n
}

func (n *gate) Configure(raw map[string]any) error {
	var cfg GateConfig
	if err := decodeConfig(raw, &cfg); err != nil {
		return err
	}
	if cfg.AutoCloseCount < 0 {
		return fmt.Errorf("auto_close_count must be >= 0, got %d", cfg.AutoCloseCount)
	}
	n.cfg = cfg
	n.ready = false
	return nil
}

func (n *gate) Status() string {
	n.init()
	return n.state.String()
}

func (n *gate) init() {
	if n.ready {
		return
	}
	n.ready = true
	n.state = gateClosed
	if n.cfg.StartOpen {
		n.state = gateOpen
	}
	n.countdown = n.cfg.AutoCloseCount
}

func (n *gate) in() {
	n.init()
	if n.state == gateClosed {
		return
	}
	if n.cfg.AutoCloseCount == 0 {
		n.out.Fire()
		return
	}

	// A spent countdown on an open gate means the final pass is still firing
	// Out; a re-entrant In from downstream is dropped.
	if n.countdown <= 0 {
		return
	}
	n.countdown--
	n.out.Fire()
	if n.countdown <= 0 && n.state == gateOpen {
		n.state = gateClosed
		n.closed.Fire()
	}
}

func (n *gate) open() {
	n.init()
	n.setOpen(true)
}

func (n *gate) close() {
	n.init()
	n.setOpen(false)
}

func (n *gate) toggle() {
	n.init()
	n.setOpen(n.state == gateClosed)
}

// setOpen moves the gate and re-arms the countdown whenever it ends up open.
func (n *gate) setOpen(open bool) {
	was := n.state
	if open {
		n.state = gateOpen
		n.countdown = n.cfg.AutoCloseCount
		if was == gateClosed {
			n.opened.Fire()
		}
		return
	}
	n.state = gateClosed
	if was == gateOpen {
		n.closed.Fire()
	}
}

// timedGate passes one In, then stays closed for Duration seconds of ticks.
type timedGate struct {
	domain.Base
	updater
	duration  *domain.Input[float64]
	state     gateState
	remaining time.Duration

	out, reopened domain.Signal
}

func newTimedGate(id string, env Env) domain.Node {
	n := &timedGate{
		Base:     domain.NewBase(id, "TimedGate"),
		updater:  updater{scheduler: env.Scheduler},
		duration: domain.NewInput(1.0),
	}
	s := n.Sockets()
	s.Entry("In", n.in)
	s.Entry("Reset", n.reset)
	s.Signal("Out", &n.out)
	s.Signal("Reopened", &n.reopened)
	s.In("Duration", n.duration)
	return n
}

func (n *timedGate) Status() string { return n.state.String() }

func (n *timedGate) in() {
	if n.state == gateClosed {
		return
	}
	n.state = gateClosed
	n.remaining = seconds(n.duration.Read())
	n.start(n)
	n.out.Fire()
}

// reset reopens at once without firing Reopened.
func (n *timedGate) reset() {
	if n.state == gateOpen {
		return
	}
	n.reopen()
}

// Update reopens once Duration has fully elapsed, so an In at exactly
// Duration passes again.
func (n *timedGate) Update(elapsed time.Duration) {
	n.remaining -= elapsed
	if n.remaining > 0 {
		return
	}
	n.reopen()
	n.reopened.Fire()
}

func (n *timedGate) OnUpdateStopped() {
	n.state = gateOpen
	n.remaining = 0
}

func (n *timedGate) reopen() {
	n.state = gateOpen
	n.remaining = 0
	n.stop(n)
}

// delay fires Out once Duration seconds of ticks have passed since In.
type delay struct {
	domain.Base
	updater
	duration  *domain.Input[float64]
	waiting   bool
	remaining time.Duration
	out       domain.Signal
}

func newDelay(id string, env Env) domain.Node {
	n := &delay{
		Base:     domain.NewBase(id, "Delay"),
		updater:  updater{scheduler: env.Scheduler},
		duration: domain.NewInput(1.0),
	}
	s := n.Sockets()
	s.Entry("In", n.in)
	s.Entry("Cancel", n.cancel)
	s.Signal("Out", &n.out)
	s.In("Duration", n.duration)
	return n
}

func (n *delay) Status() string {
	if n.waiting {
		return "waiting"
	}
	return "idle"
}

func (n *delay) in() {
	if n.waiting {
		return
	}
	n.waiting = true
	n.remaining = seconds(n.duration.Read())
	n.start(n)
}

func (n *delay) cancel() {
	if !n.waiting {
		return
	}
	n.waiting = false
	n.stop(n)
}

func (n *delay) Update(elapsed time.Duration) {
	n.remaining -= elapsed
	if n.remaining > 0 {
		return
	}
	n.waiting = false
	n.stop(n)
	n.out.Fire()
}

func (n *delay) OnUpdateStopped() { n.waiting = false }

// seconds converts a Duration socket value once, so per-frame subtraction is
// exact in nanoseconds.
func seconds(d float64) time.Duration {
	return time.Duration(d * float64(time.Second))
}

func registerFlow(c *Catalog) {
	c.Register("Gate", CategoryFlow, newGate)
	c.Register("TimedGate", CategoryFlow, newTimedGate)
	c.Register("Delay", CategoryFlow, newDelay)
}
