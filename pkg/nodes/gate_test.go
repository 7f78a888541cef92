package nodes_test

import (
	"testing"

	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/nodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func count(fired []string, signal string) int {
	n := 0
	for _, f := range fired {
		if f == signal {
			n++
		}
	}
	return n
}

func TestGate_UnlimitedWhileOpen(t *testing.T) {
	h := newHarness(t)
	h.add("Gate", "gate", map[string]any{"start_open": true})

	for range 5 {
		h.invoke("gate", "In")
	}
	assert.Equal(t, 5, count(h.take(), "gate.Out"))
}

func TestGate_AutoCloseFiresFinalPass(t *testing.T) {
	h := newHarness(t)
	g := h.add("Gate", "gate", map[string]any{"start_open": true, "auto_close_count": 3})

	h.invoke("gate", "In")
	h.invoke("gate", "In")
	assert.Equal(t, []string{"gate.Out", "gate.Out"}, h.take())

	h.invoke("gate", "In")
	assert.Equal(t, []string{"gate.Out", "gate.Closed"}, h.take(), "the Nth pass still fires Out")
	assert.Equal(t, "closed", status(g))

	h.invoke("gate", "In")
	assert.Empty(t, h.take())
}

func TestGate_FinalPassFiresWhileOpen(t *testing.T) {
	h := newHarness(t)
	g := h.add("Gate", "gate", map[string]any{"start_open": true, "auto_close_count": 1})

	var seen []string
	loop := &sinkNode{Base: domain.NewBase("loop", "Sink")}
	loop.Sockets().Entry("In", func() {
		seen = append(seen, status(g))
		h.invoke("gate", "In")
	})
	require.NoError(t, h.g.AddNode(loop, ""))
	require.NoError(t, h.g.ConnectSignal("gate", "Out", "loop", "In"))

	h.invoke("gate", "In")

	assert.Equal(t, []string{"open"}, seen, "Out fires before the gate closes and a re-entrant In is dropped")
	assert.Equal(t, "closed", status(g))
	assert.Equal(t, []string{"gate.Closed"}, h.take())
}

func TestGate_StartsClosed(t *testing.T) {
	h := newHarness(t)
	h.add("Gate", "gate", nil)

	h.invoke("gate", "In")
	assert.Empty(t, h.take())

	h.invoke("gate", "Open")
	h.invoke("gate", "In")
	assert.Equal(t, []string{"gate.Opened", "gate.Out"}, h.take())
}

func TestGate_OpenRearmsCountdown(t *testing.T) {
	h := newHarness(t)
	h.add("Gate", "gate", map[string]any{"start_open": true, "auto_close_count": 2})

	h.invoke("gate", "In")
	h.invoke("gate", "Open")
	h.invoke("gate", "In")
	h.invoke("gate", "In")
	h.invoke("gate", "In")

	fired := h.take()
	assert.Equal(t, 3, count(fired, "gate.Out"))
	assert.Zero(t, count(fired, "gate.Opened"), "opening an open gate only re-arms it")
	assert.Equal(t, 1, count(fired, "gate.Closed"))
}

func TestGate_Toggle(t *testing.T) {
	h := newHarness(t)
	g := h.add("Gate", "gate", map[string]any{"auto_close_count": 1})

	h.invoke("gate", "Toggle")
	assert.Equal(t, "open", status(g))
	h.invoke("gate", "In")
	assert.Equal(t, "closed", status(g))

	h.invoke("gate", "Toggle")
	h.invoke("gate", "In")
	h.invoke("gate", "Toggle")
	h.invoke("gate", "Close")

	assert.Equal(t, []string{
		"gate.Opened", "gate.Out", "gate.Closed",
		"gate.Opened", "gate.Out", "gate.Closed",
		"gate.Opened", "gate.Closed",
	}, h.take())
}

func TestGate_Config(t *testing.T) {
	n, err := nodes.Builtin().New("Gate", "gate", nodes.Env{})
	require.NoError(t, err)

	assert.Error(t, nodes.Configure(n, map[string]any{"auto_close_count": -1}))
	assert.Error(t, nodes.Configure(n, map[string]any{"start_closed": true}), "unknown keys are rejected")
	assert.NoError(t, nodes.Configure(n, map[string]any{"auto_close_count": "2"}), "weakly typed input decodes strings")
}

func TestTimedGate(t *testing.T) {
	h := newHarness(t)
	g := h.add("TimedGate", "timed", nil)
	h.literal("timed", "Duration", 1.0)

	h.invoke("timed", "In")
	assert.Equal(t, []string{"timed.Out"}, h.take())
	assert.True(t, h.updating(g))

	h.tick(0.5)
	h.invoke("timed", "In")
	h.tick(0.25)
	h.invoke("timed", "In")
	assert.Empty(t, h.take(), "In within Duration is a no-op")

	h.tick(0.25)
	assert.Equal(t, []string{"timed.Reopened"}, h.take())
	assert.False(t, h.updating(g))

	h.invoke("timed", "In")
	assert.Equal(t, []string{"timed.Out"}, h.take(), "at Duration the gate passes again")
}

func TestTimedGate_FrameStepsReachDuration(t *testing.T) {
	h := newHarness(t)
	h.add("TimedGate", "timed", nil)
	h.literal("timed", "Duration", 1.0)

	h.invoke("timed", "In")
	for range 10 {
		h.tick(0.1)
	}
	assert.Equal(t, []string{"timed.Out", "timed.Reopened"}, h.take())

	h.invoke("timed", "In")
	assert.Equal(t, []string{"timed.Out"}, h.take())
}

func TestTimedGate_InterruptForcesOpen(t *testing.T) {
	h := newHarness(t)
	g := h.add("TimedGate", "timed", nil)
	h.literal("timed", "Duration", 10.0)

	h.invoke("timed", "In")
	require.Equal(t, "closed", status(g))

	h.g.Teardown()

	assert.Equal(t, "open", status(g))
	assert.False(t, h.updating(g))
	h.take()
	h.invoke("timed", "In")
	assert.Equal(t, []string{"timed.Out"}, h.take())
}

func TestTimedGate_Reset(t *testing.T) {
	h := newHarness(t)
	g := h.add("TimedGate", "timed", nil)

	h.invoke("timed", "In")
	h.invoke("timed", "Reset")

	assert.Equal(t, "open", status(g))
	assert.False(t, h.updating(g))
	assert.Equal(t, []string{"timed.Out"}, h.take(), "reset does not fire Reopened")
}

func TestDelay(t *testing.T) {
	h := newHarness(t)
	d := h.add("Delay", "delay", nil)
	h.literal("delay", "Duration", 0.5)

	h.invoke("delay", "In")
	assert.Equal(t, "waiting", status(d))
	h.tick(0.25)
	h.invoke("delay", "In")
	assert.Empty(t, h.take())

	h.tick(0.25)
	assert.Equal(t, []string{"delay.Out"}, h.take())
	assert.False(t, h.updating(d))

	h.invoke("delay", "In")
	h.invoke("delay", "Cancel")
	h.tick(1)
	assert.Empty(t, h.take())
	assert.Equal(t, "idle", status(d))

	h.invoke("delay", "In")
	h.g.Teardown()
	assert.Equal(t, "idle", status(d))
	h.tick(1)
	assert.Empty(t, h.take())
}

func TestDelay_FrameStepsReachDuration(t *testing.T) {
	h := newHarness(t)
	h.add("Delay", "delay", nil)
	h.literal("delay", "Duration", 1.0)

	h.invoke("delay", "In")
	for range 9 {
		h.tick(0.1)
	}
	assert.Empty(t, h.take())

	h.tick(0.1)
	assert.Equal(t, []string{"delay.Out"}, h.take())
}
