package nodes_test

import (
	"testing"

	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestIntMath(t *testing.T) {
	tests := []struct {
		kind        string
		a, b        []any
		result      int
		floatResult float64
	}{
		{"AddInt", []any{2, 3}, []any{4}, 9, 9},
		{"SubtractInt", []any{10, 2}, []any{3}, 9, 9},
		{"MultiplyInt", []any{2, 3}, []any{4}, 24, 24},
		{"DivideInt", []any{7}, []any{2}, 3, 3.5},
		{"DivideInt", []any{-7}, []any{2}, -3, -3.5},
		{"DivideInt", []any{2, 6}, []any{3}, 4, 4},
		{"DivideInt", []any{6}, []any{0}, 0, 0},
		{"DivideInt", []any{6}, []any{2, 0}, 0, 0},
		{"ModuloInt", []any{7}, []any{3}, 1, 1},
		{"ModuloInt", []any{7}, []any{0}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			h := newHarness(t)
			h.add(tt.kind, "op", nil)
			h.literal("op", "A", tt.a...)
			h.literal("op", "B", tt.b...)

			h.invoke("op", "In")

			assert.Equal(t, tt.result, h.read("op", "Result"))
			assert.Equal(t, tt.floatResult, h.read("op", "FloatResult"))
			assert.Equal(t, []string{"op.Out"}, h.take(), "Out always fires, zero divisor included")
		})
	}
}

func TestIntMath_EmptyOperands(t *testing.T) {
	h := newHarness(t)
	h.add("AddInt", "add", nil)
	h.add("MultiplyInt", "mul", nil)
	h.add("DivideInt", "div", nil)
	h.add("MinInt", "min", nil)

	for _, id := range []string{"add", "mul", "div", "min"} {
		h.invoke(id, "In")
	}

	assert.Equal(t, 0, h.read("add", "Result"))
	assert.Equal(t, 1, h.read("mul", "Result"), "empty product is 1")
	assert.Equal(t, 1, h.read("div", "Result"))
	assert.Equal(t, 0, h.read("min", "Result"))
}

func TestMinMaxInt(t *testing.T) {
	h := newHarness(t)
	h.add("MinInt", "min", nil)
	h.add("MaxInt", "max", nil)
	h.literal("min", "Values", 3, -1, 5)
	h.literal("max", "Values", 3, -1, 5)

	h.invoke("min", "In")
	h.invoke("max", "In")

	assert.Equal(t, -1, h.read("min", "Result"))
	assert.Equal(t, 5, h.read("max", "Result"))
	assert.Equal(t, 5.0, h.read("max", "FloatResult"))
}

func TestIntMath_ReducesFreshOnEveryInvocation(t *testing.T) {
	h := newHarness(t)
	h.add("AddInt", "add", nil)
	h.literal("add", "A", 1, 1)

	h.invoke("add", "In")
	assert.Equal(t, 2, h.read("add", "Result"))

	h.write("add", "A", []any{10, 1})
	h.invoke("add", "In")
	assert.Equal(t, 11, h.read("add", "Result"))
}

func TestDivideInt_ResultsAgreeUnderTruncation(t *testing.T) {
	h := newHarness(t)
	h.add("DivideInt", "div", nil)
	h.literal("div", "A", 0)
	h.literal("div", "B", 1)

	for a := -20; a <= 20; a++ {
		for b := -5; b <= 5; b++ {
			h.write("div", "A", []any{a})
			h.write("div", "B", []any{b})
			h.invoke("div", "In")

			r := h.read("div", "Result").(int)
			f := h.read("div", "FloatResult").(float64)
			assert.Equal(t, r, domain.Truncate(f), "%d / %d", a, b)
		}
	}
}

func TestFloatMath(t *testing.T) {
	tests := []struct {
		kind      string
		a, b      []any
		result    float64
		intResult int
	}{
		{"AddFloat", []any{1.5, 1.0}, []any{0.25}, 2.75, 2},
		{"SubtractFloat", []any{1.0}, []any{3.5}, -2.5, -2},
		{"MultiplyFloat", []any{2.5}, []any{2, 1}, 5, 5},
		{"DivideFloat", []any{7.0}, []any{-2.0}, -3.5, -3},
		{"DivideFloat", []any{1.0}, []any{0.0}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			h := newHarness(t)
			h.add(tt.kind, "op", nil)
			h.literal("op", "A", tt.a...)
			h.literal("op", "B", tt.b...)

			h.invoke("op", "In")

			assert.Equal(t, tt.result, h.read("op", "Result"))
			assert.Equal(t, tt.intResult, h.read("op", "IntResult"))
			assert.Equal(t, []string{"op.Out"}, h.take())
		})
	}
}

func TestMinMaxFloat(t *testing.T) {
	h := newHarness(t)
	h.add("MinFloat", "min", nil)
	h.add("MaxFloat", "max", nil)
	h.literal("min", "Values", 2.5, -0.5)
	h.literal("max", "Values", 2.5, -0.5)

	h.invoke("min", "In")
	h.invoke("max", "In")

	assert.Equal(t, -0.5, h.read("min", "Result"))
	assert.Equal(t, 0, h.read("min", "IntResult"))
	assert.Equal(t, 2.5, h.read("max", "Result"))
	assert.Equal(t, 2, h.read("max", "IntResult"))
}
