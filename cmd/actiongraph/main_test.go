package main

import (
	"bytes"
	"testing"

	"github.com/aretw0/actiongraph/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	path := testutils.WriteGraph(t, "g.yaml", `
name: toggle
nodes:
  - {id: gate, kind: Gate, config: {start_open: true, auto_close_count: 1}}
  - {id: count, kind: CounterInt}
links:
  - {from: gate.Out, to: count.In}
`)

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, `Graph "toggle" is valid`)

	out, err = execute(t, "run", path, "--fire", "gate.In", "--fire", "gate.In", "--watch", "count.A")
	require.NoError(t, err)
	assert.Contains(t, out, "frame 0: count.A=1", "the gate closes after one pass")

	out, err = execute(t, "graph", path)
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")

	out, err = execute(t, "catalog", "Gate")
	require.NoError(t, err)
	assert.Contains(t, out, "Gate")

	_, err = execute(t, "run", path, "--fire", "gate.Nope")
	assert.Error(t, err)
}
