package nodes_test

import (
	"testing"

	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func vec(x, y float64) map[string]any { return map[string]any{"x": x, "y": y} }

func TestVectorFolds(t *testing.T) {
	h := newHarness(t)
	h.add("AddVector2", "add", nil)
	h.add("SubtractVector2", "sub", nil)
	for _, id := range []string{"add", "sub"} {
		h.literal(id, "A", vec(1, 2), vec(1, 0))
		h.literal(id, "B", vec(0, 1))
		h.invoke(id, "In")
	}

	assert.Equal(t, domain.Vector2{X: 2, Y: 3}, h.read("add", "Result"))
	assert.Equal(t, domain.Vector2{X: 2, Y: 1}, h.read("sub", "Result"))
	assert.Equal(t, []string{"add.Out", "sub.Out"}, h.take())
}

func TestScaleVector2(t *testing.T) {
	h := newHarness(t)
	h.add("ScaleVector2", "scale", nil)
	h.literal("scale", "A", vec(1, 2))
	h.literal("scale", "Factor", 2, 1.5)

	h.invoke("scale", "In")
	assert.Equal(t, domain.Vector2{X: 3, Y: 6}, h.read("scale", "Result"))
}

func TestLengthVector2(t *testing.T) {
	h := newHarness(t)
	h.add("LengthVector2", "len", nil)
	h.literal("len", "A", vec(-3, 4))

	h.invoke("len", "In")
	assert.Equal(t, 5.0, h.read("len", "Result"))
	assert.Equal(t, 5, h.read("len", "IntResult"))
}

func TestMakeAndSplitVector2(t *testing.T) {
	h := newHarness(t)
	h.add("MakeVector2", "make", nil)
	h.add("SplitVector2", "split", nil)
	h.literal("make", "X", 1.5)
	h.literal("make", "Y", -2)
	assert.NoError(t, h.g.ConnectVariable("make", "Result", "split", "A"))
	// Rewire make.Out from its sink into split.In.
	assert.NoError(t, h.g.ConnectSignal("make", "Out", "split", "In"))

	h.invoke("make", "In")

	assert.Equal(t, domain.Vector2{X: 1.5, Y: -2}, h.read("make", "Result"))
	assert.Equal(t, 1.5, h.read("split", "X"))
	assert.Equal(t, -2.0, h.read("split", "Y"))
	assert.Equal(t, []string{"split.Out"}, h.take())
}
