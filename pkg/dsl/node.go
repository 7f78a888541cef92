package dsl

import (
	"github.com/aretw0/actiongraph/pkg/schema"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    schema.NodeDef
	builder *Builder
}

// In assigns literal values to an input. One value is a scalar; several are
// one producer cell each on an array input.
func (n *NodeBuilder) In(socket string, values ...any) *NodeBuilder {
	if n.node.Inputs == nil {
		n.node.Inputs = make(map[string]any)
	}
	switch len(values) {
	case 0:
		delete(n.node.Inputs, socket)
	case 1:
		n.node.Inputs[socket] = values[0]
	default:
		n.node.Inputs[socket] = append([]any(nil), values...)
	}
	return n
}

// Bind shares an input with a graph variable.
func (n *NodeBuilder) Bind(socket, variable string) *NodeBuilder {
	return n.In(socket, schema.VariablePrefix+variable)
}

// Config sets one config key, decoded into the node's config struct at load.
func (n *NodeBuilder) Config(key string, value any) *NodeBuilder {
	if n.node.Config == nil {
		n.node.Config = make(map[string]any)
	}
	n.node.Config[key] = value
	return n
}

// InState makes the node belong to a state; its entries only run while that
// state is current.
func (n *NodeBuilder) InState(state string) *NodeBuilder {
	n.node.State = state
	return n
}

// On wires this node's signal output to target ("node.Entry").
func (n *NodeBuilder) On(signal, target string) *NodeBuilder {
	n.builder.Link(n.node.ID+"."+signal, target)
	return n
}

// Pipe wires this node's variable output to target ("node.Input").
func (n *NodeBuilder) Pipe(output, target string) *NodeBuilder {
	n.builder.Link(n.node.ID+"."+output, target)
	return n
}

// Build returns the underlying definition.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() schema.NodeDef {
	return n.node
}
