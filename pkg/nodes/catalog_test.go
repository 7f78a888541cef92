package nodes_test

import (
	"testing"

	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/nodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Describe(t *testing.T) {
	c := nodes.Builtin()

	d, err := c.Describe("AddInt")
	require.NoError(t, err)
	assert.Equal(t, domain.Descriptor{
		Kind:     "AddInt",
		Category: nodes.CategoryMath,
		Entries:  []string{"In"},
		Signals:  []string{"Out"},
		Variables: []domain.SocketDescriptor{
			{Name: "A", Direction: domain.DirectionIn, Type: domain.TypeInt, Array: true},
			{Name: "B", Direction: domain.DirectionIn, Type: domain.TypeInt, Array: true},
			{Name: "Result", Direction: domain.DirectionOut, Type: domain.TypeInt, Array: true},
			{Name: "FloatResult", Direction: domain.DirectionOut, Type: domain.TypeFloat, Array: true},
		},
	}, d)

	d, err = c.Describe("InterpolateVector2")
	require.NoError(t, err)
	assert.Equal(t, []string{"Start", "Stop", "Pause"}, d.Entries)
	assert.Equal(t, []string{"Interpolating", "Finished", "Aborted"}, d.Signals)
	sd, ok := d.Variable("Duration")
	require.True(t, ok)
	assert.Equal(t, domain.TypeFloat, sd.Type)
	assert.False(t, sd.Array)

	_, err = c.Describe("Teleport")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestCatalog_Builtin(t *testing.T) {
	c := nodes.Builtin()
	kinds := c.Kinds()

	assert.Len(t, kinds, 36)
	assert.IsIncreasing(t, kinds)
	assert.Len(t, c.Descriptors(), len(kinds))
	assert.False(t, c.Has("ModuloFloat"))
	assert.Equal(t, nodes.CategoryFlow, c.Category("Sequence"))
	assert.NotSame(t, c, nodes.Builtin(), "each call builds a fresh catalog")
}

func TestCatalog_TickingKindsHandleInterruption(t *testing.T) {
	c := nodes.Builtin()
	ticking := map[string]bool{
		"TimedGate": true, "Delay": true,
		"InterpolateFloat": true, "InterpolateFloatCubic": true,
		"InterpolateVector2": true, "InterpolateVector2Cubic": true,
	}
	for _, kind := range c.Kinds() {
		n, err := c.Prototype(kind, "n")
		require.NoError(t, err)
		_, ok := n.(domain.Updatable)
		assert.Equal(t, ticking[kind], ok, kind)
	}
}

func TestCatalog_NewRequiresSchedulerForTickingKinds(t *testing.T) {
	c := nodes.Builtin()

	_, err := c.New("Delay", "d", nodes.Env{})
	assert.ErrorIs(t, err, nodes.ErrNoScheduler)

	_, err = c.New("AddInt", "add", nodes.Env{})
	assert.NoError(t, err, "stateless kinds build without a scheduler")

	proto, err := c.Prototype("InterpolateFloat", "fade")
	require.NoError(t, err)
	start, ok := proto.Sockets().LookupEntry("Start")
	require.True(t, ok)
	assert.NotPanics(t, start, "prototype updates go nowhere")
}

func TestCatalog_Register(t *testing.T) {
	c := nodes.NewCatalog()
	c.Register("Custom", "custom", func(id string, _ nodes.Env) domain.Node {
		b := domain.NewBase(id, "Custom")
		return &b
	})

	n, err := c.New("Custom", "c1", nodes.Env{})
	require.NoError(t, err)
	assert.Equal(t, "c1", n.ID())
	assert.Equal(t, []string{"Custom"}, c.Kinds())
}
