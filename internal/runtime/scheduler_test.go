package runtime_test

import (
	"testing"
	"time"

	"github.com/aretw0/actiongraph/internal/runtime"
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probe records every callback it receives and runs optional behavior on update.
type probe struct {
	name     string
	log      *[]string
	onUpdate func()
	onStop   func()
	updates  int
	stops    int
}

func newProbe(name string, log *[]string) *probe {
	return &probe{name: name, log: log}
}

func (p *probe) Update(time.Duration) {
	p.updates++
	*p.log = append(*p.log, p.name)
	if p.onUpdate != nil {
		p.onUpdate()
	}
}

func (p *probe) OnUpdateStopped() {
	p.stops++
	if p.onStop != nil {
		p.onStop()
	}
}

func TestScheduler_RegistrationOrder(t *testing.T) {
	var log []string
	s := runtime.NewScheduler()
	a, b, c := newProbe("a", &log), newProbe("b", &log), newProbe("c", &log)

	s.StartUpdating(b)
	s.StartUpdating(a)
	s.StartUpdating(c)
	s.StartUpdating(b)

	assert.Equal(t, 3, s.Len(), "registration is idempotent")
	assert.Equal(t, 3, s.Tick(time.Millisecond))
	assert.Equal(t, []string{"b", "a", "c"}, log)
}

func TestScheduler_EmptyTickIsFree(t *testing.T) {
	s := runtime.NewScheduler()
	assert.Equal(t, 0, s.Tick(time.Second))
}

func TestScheduler_SelfStopSkipsRestOfPass(t *testing.T) {
	var log []string
	s := runtime.NewScheduler()
	a := newProbe("a", &log)
	a.onUpdate = func() { s.StopUpdating(a) }
	s.StartUpdating(a)

	s.Tick(time.Millisecond)
	s.Tick(time.Millisecond)

	assert.Equal(t, 1, a.updates, "a node that stopped itself is not ticked again")
	assert.Zero(t, a.stops, "self stop does not call OnUpdateStopped")
	assert.False(t, s.IsUpdating(a))
}

func TestScheduler_StopOtherDuringPass(t *testing.T) {
	var log []string
	s := runtime.NewScheduler()
	a, b := newProbe("a", &log), newProbe("b", &log)
	a.onUpdate = func() { s.StopUpdating(b) }
	s.StartUpdating(a)
	s.StartUpdating(b)

	s.Tick(time.Millisecond)

	assert.Equal(t, []string{"a"}, log, "b was stopped before its turn")
	assert.Zero(t, b.updates)
}

func TestScheduler_RegisteredDuringPassRunsNextPass(t *testing.T) {
	var log []string
	s := runtime.NewScheduler()
	a, late := newProbe("a", &log), newProbe("late", &log)
	a.onUpdate = func() { s.StartUpdating(late) }
	s.StartUpdating(a)

	assert.Equal(t, 1, s.Tick(time.Millisecond))
	assert.Equal(t, []string{"a"}, log)

	s.Tick(time.Millisecond)
	assert.Equal(t, []string{"a", "a", "late"}, log)
}

func TestScheduler_StopAndRestartDuringPass(t *testing.T) {
	var log []string
	s := runtime.NewScheduler()
	a, b := newProbe("a", &log), newProbe("b", &log)
	a.onUpdate = func() {
		s.StopUpdating(b)
		s.StartUpdating(b)
	}
	s.StartUpdating(a)
	s.StartUpdating(b)

	s.Tick(time.Millisecond)
	assert.Equal(t, []string{"a"}, log, "re-registered node waits for the next pass")

	a.onUpdate = nil
	s.Tick(time.Millisecond)
	assert.Equal(t, []string{"a", "a", "b"}, log)
}

func TestScheduler_InterruptCallsHookOnce(t *testing.T) {
	var log []string
	s := runtime.NewScheduler()
	a := newProbe("a", &log)
	s.StartUpdating(a)

	assert.True(t, s.Interrupt(a))
	assert.False(t, s.Interrupt(a), "second interrupt finds nothing")
	assert.Equal(t, 1, a.stops)
	assert.False(t, s.IsUpdating(a))
}

func TestScheduler_InterruptHookStopsItself(t *testing.T) {
	var log []string
	s := runtime.NewScheduler()
	a, b := newProbe("a", &log), newProbe("b", &log)
	a.onStop = func() { s.StopUpdating(a) }
	s.StartUpdating(a)
	s.StartUpdating(b)

	require.True(t, s.Interrupt(a))
	assert.Equal(t, 1, a.stops)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.IsUpdating(b), "removal is not duplicated onto other nodes")
}

func TestScheduler_InterruptHookReentry(t *testing.T) {
	var log []string
	s := runtime.NewScheduler()
	a := newProbe("a", &log)
	a.onStop = func() { s.Interrupt(a) }
	s.StartUpdating(a)

	s.Interrupt(a)
	assert.Equal(t, 1, a.stops)
}

func TestScheduler_InterruptUnregistered(t *testing.T) {
	var log []string
	s := runtime.NewScheduler()
	a := newProbe("a", &log)

	assert.False(t, s.Interrupt(a))
	s.StopUpdating(a)
	assert.Zero(t, a.stops)
}

func TestScheduler_InterruptWhere(t *testing.T) {
	var log []string
	s := runtime.NewScheduler()
	a, b, c := newProbe("a", &log), newProbe("b", &log), newProbe("c", &log)
	for _, p := range []*probe{a, b, c} {
		s.StartUpdating(p)
	}

	n := s.InterruptWhere(func(u domain.Updatable) bool { return u != b })
	assert.Equal(t, 2, n)
	assert.Equal(t, []domain.Updatable{b}, s.Nodes())

	assert.Equal(t, 1, s.InterruptAll())
	assert.Equal(t, 1, b.stops)
	assert.Zero(t, s.Len())
}

func TestScheduler_InterruptDuringPass(t *testing.T) {
	var log []string
	s := runtime.NewScheduler()
	a, b := newProbe("a", &log), newProbe("b", &log)
	a.onUpdate = func() { s.Interrupt(b) }
	s.StartUpdating(a)
	s.StartUpdating(b)

	s.Tick(time.Millisecond)

	assert.Equal(t, []string{"a"}, log)
	assert.Equal(t, 1, b.stops)
}

func TestScheduler_NestedTickIgnored(t *testing.T) {
	var log []string
	s := runtime.NewScheduler()
	a := newProbe("a", &log)
	nested := -1
	a.onUpdate = func() { nested = s.Tick(time.Millisecond) }
	s.StartUpdating(a)

	s.Tick(time.Millisecond)

	assert.Equal(t, 0, nested)
	assert.Equal(t, 1, a.updates)
}

func TestScheduler_Hooks(t *testing.T) {
	var reasons []domain.UpdateReason
	var ticks []*domain.TickEvent
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := base
	s := runtime.NewScheduler(
		runtime.WithClock(func() time.Time {
			clock = clock.Add(time.Millisecond)
			return clock
		}),
		runtime.WithSchedulerHooks(domain.LifecycleHooks{
			OnUpdate: func(e *domain.UpdateEvent) { reasons = append(reasons, e.Reason) },
			OnTick:   func(e *domain.TickEvent) { ticks = append(ticks, e) },
		}),
	)
	var log []string
	a, b := newProbe("a", &log), newProbe("b", &log)
	s.StartUpdating(a)
	s.StartUpdating(b)
	s.Tick(16 * time.Millisecond)
	s.StopUpdating(a)
	s.Interrupt(b)

	assert.Equal(t, []domain.UpdateReason{
		domain.UpdateStarted, domain.UpdateStarted, domain.UpdateStopped, domain.UpdateInterrupted,
	}, reasons)
	require.Len(t, ticks, 1)
	assert.Equal(t, 2, ticks[0].Updated)
	assert.Equal(t, 16*time.Millisecond, ticks[0].Elapsed)
	assert.Equal(t, time.Millisecond, ticks[0].Took)
}
