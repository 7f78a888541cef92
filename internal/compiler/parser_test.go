package compiler_test

import (
	"testing"

	"github.com/aretw0/actiongraph/internal/compiler"
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doorYAML = `
name: door
initial: closed
states: [closed, opening]
variables:
  - {name: score, type: int, default: 0}
nodes:
  - {id: add, kind: AddInt, inputs: {A: [2, 3], B: [4]}}
  - {id: cmp, kind: CompareInt, inputs: {B: 9}}
  - id: gate
    kind: Gate
    state: closed
    config: {start_open: true, auto_close_count: 2}
links:
  - {from: add.Out, to: cmp.In}
  - {from: add.Result, to: cmp.A}
`

func TestParse_YAML(t *testing.T) {
	g, err := compiler.Parse([]byte(doorYAML))
	require.NoError(t, err)

	assert.Equal(t, "door", g.Name)
	assert.Equal(t, "closed", g.Initial)
	assert.Equal(t, []string{"closed", "opening"}, g.States)
	assert.Equal(t, []schema.VariableDef{{Name: "score", Type: domain.TypeInt, Default: 0}}, g.Variables)
	require.Len(t, g.Nodes, 3)
	assert.Equal(t, []any{2, 3}, g.Nodes[0].Inputs["A"])
	assert.Equal(t, 9, g.Nodes[1].Inputs["B"])
	assert.Equal(t, map[string]any{"start_open": true, "auto_close_count": 2}, g.Nodes[2].Config)
	assert.Equal(t, schema.Link{From: "add.Result", To: "cmp.A"}, g.Links[1])
}

func TestParse_JSON(t *testing.T) {
	raw := `{"name": "j", "nodes": [{"id": "n", "kind": "NotBool", "inputs": {"A": true}}]}`
	g, err := compiler.Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, true, g.Nodes[0].Inputs["A"])
}

func TestParse_Errors(t *testing.T) {
	_, err := compiler.Parse([]byte(""))
	assert.ErrorIs(t, err, compiler.ErrEmptyDefinition)

	_, err = compiler.Parse([]byte("name: x\nnodes: [\n"))
	assert.ErrorContains(t, err, "failed to parse graph")

	_, err = compiler.Parse([]byte("name: x\nnodez: []\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = compiler.Parse([]byte("name: x\nnodes:\n  - {id: a}\n"))
	require.Error(t, err)
	assert.NotEmpty(t, schema.ValidationErrors(err))
}

func TestParser_Lenient(t *testing.T) {
	p := compiler.NewParser(compiler.WithLenientFields())
	g, err := p.Parse([]byte("name: x\nauthor: me\nnodes: []\n"))
	require.NoError(t, err)
	assert.Equal(t, "x", g.Name)
}
