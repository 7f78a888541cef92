package nodes_test

import (
	"testing"
	"time"

	"github.com/aretw0/actiongraph/internal/runtime"
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/nodes"
	"github.com/stretchr/testify/require"
)

type sinkNode struct {
	domain.Base
}

// harness runs nodes inside a real graph and records every signal they fire
// as "node.Signal".
type harness struct {
	t     *testing.T
	g     *runtime.Graph
	s     *runtime.Scheduler
	fired []string
}

func newHarness(t *testing.T) *harness {
	s := runtime.NewScheduler()
	return &harness{t: t, s: s, g: runtime.NewGraph("test", s)}
}

func (h *harness) add(kind, id string, config map[string]any) domain.Node {
	h.t.Helper()
	n, err := nodes.Builtin().New(kind, id, nodes.Env{Scheduler: h.s})
	require.NoError(h.t, err)
	require.NoError(h.t, nodes.Configure(n, config))
	require.NoError(h.t, h.g.AddNode(n, ""))

	signals := n.Sockets().Describe(kind, "").Signals
	sink := &sinkNode{Base: domain.NewBase(id+"-sink", "Sink")}
	for _, sig := range signals {
		sink.Sockets().Entry(sig, func() { h.fired = append(h.fired, id+"."+sig) })
	}
	require.NoError(h.t, h.g.AddNode(sink, ""))
	for _, sig := range signals {
		require.NoError(h.t, h.g.ConnectSignal(id, sig, sink.ID(), sig))
	}
	return n
}

func (h *harness) literal(id, input string, values ...any) {
	h.t.Helper()
	require.NoError(h.t, h.g.SetLiteral(id, input, values...))
}

func (h *harness) write(id, input string, value any) {
	h.t.Helper()
	require.NoError(h.t, h.g.Write(id, input, value))
}

func (h *harness) invoke(id, entry string) {
	h.t.Helper()
	require.NoError(h.t, h.g.Invoke(id, entry))
}

func (h *harness) read(id, socket string) any {
	h.t.Helper()
	v, err := h.g.Read(id, socket)
	require.NoError(h.t, err)
	return v
}

func (h *harness) tick(seconds float64) {
	h.s.Tick(time.Duration(seconds * float64(time.Second)))
}

// take returns the signals fired since the last call.
func (h *harness) take() []string {
	out := h.fired
	h.fired = nil
	return out
}

func (h *harness) updating(n domain.Node) bool {
	return h.s.IsUpdating(n.(domain.Updatable))
}

func status(n domain.Node) string {
	return n.(nodes.Stateful).Status()
}
