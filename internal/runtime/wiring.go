package runtime

import (
	"fmt"

	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/schema"
)

// DeclareVariable creates a graph variable of type t. def is a literal parsed
// with domain.ParseValue; nil keeps the zero value.
func (g *Graph) DeclareVariable(name string, t domain.ValueType, def any) error {
	if _, exists := g.variables[name]; exists {
		return fmt.Errorf("variable %s declared twice", name)
	}
	cell, err := domain.NewCell(t)
	if err != nil {
		return fmt.Errorf("variable %s: %w", name, err)
	}
	if def != nil {
		v, err := domain.ParseValue(t, def)
		if err != nil {
			return fmt.Errorf("variable %s default: %w", name, err)
		}
		if err := cell.AssignDefault(v); err != nil {
			return fmt.Errorf("variable %s default: %w", name, err)
		}
	}
	g.variables[name] = cell
	g.varOrder = append(g.varOrder, name)
	return nil
}

// Variable returns the cell of a graph variable.
func (g *Graph) Variable(name string) (domain.Cell, error) {
	c, ok := g.variables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrVariableNotFound, name)
	}
	return c, nil
}

// Variables returns the declared variable names in declaration order.
func (g *Graph) Variables() []string { return append([]string(nil), g.varOrder...) }

// BindVariable makes a node input read through a graph variable. For array
// inputs the variable becomes one more producer.
func (g *Graph) BindVariable(name, nodeID, input string) error {
	cell, err := g.Variable(name)
	if err != nil {
		return err
	}
	in, err := g.input(nodeID, input)
	if err != nil {
		return err
	}
	to := schema.Endpoint{Node: nodeID, Socket: input}
	if err := in.Share(cell); err != nil {
		return &domain.WiringError{From: schema.VariablePrefix + name, To: to.String(), Reason: err}
	}
	g.bindings = append(g.bindings, Binding{Variable: name, Input: to})
	return nil
}

// SetLiteral stores literals as input defaults. A single input takes exactly one
// value; an array input grows one producer cell per value.
func (g *Graph) SetLiteral(nodeID, input string, values ...any) error {
	in, err := g.input(nodeID, input)
	if err != nil {
		return err
	}
	ref := nodeID + "." + input
	if !in.IsArray() && len(values) != 1 {
		return fmt.Errorf("%s: single input takes one literal, got %d", ref, len(values))
	}
	for _, raw := range values {
		v, err := domain.ParseValue(in.ValueType(), raw)
		if err != nil {
			return fmt.Errorf("%s: %w", ref, err)
		}
		if err := in.Sink().AssignDefault(v); err != nil {
			return fmt.Errorf("%s: %w", ref, err)
		}
	}
	return nil
}

// Entry returns the gated entry point of a node. Calling it does nothing while
// the node's state is not current; otherwise it reports OnSignal and runs the
// entry synchronously.
func (g *Graph) Entry(nodeID, entry string) (func(), error) {
	m, err := g.member(nodeID)
	if err != nil {
		return nil, err
	}
	fn, ok := m.node.Sockets().LookupEntry(entry)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", nodeID, entry, domain.ErrEntryNotFound)
	}
	return func() {
		if !g.active(m) {
			return
		}
		if g.hooks.OnSignal != nil {
			g.hooks.OnSignal(&domain.SignalEvent{
				Timestamp: g.now(),
				NodeID:    nodeID,
				Kind:      m.node.Kind(),
				Entry:     entry,
			})
		}
		fn()
	}, nil
}

// Invoke runs an entry point as the host. It returns once the whole downstream
// chain has finished. Invoking a node whose state is not current does nothing.
func (g *Graph) Invoke(nodeID, entry string) error {
	fn, err := g.Entry(nodeID, entry)
	if err != nil {
		return err
	}
	if !g.Active(nodeID) {
		g.logger.Debug("entry ignored, state inactive", "node", nodeID, "entry", entry, "state", g.CurrentState())
	}
	fn()
	return nil
}

// ConnectSignal points a signal output at another node's entry point,
// replacing any previous target of that signal.
func (g *Graph) ConnectSignal(fromNode, signal, toNode, entry string) error {
	from := schema.Endpoint{Node: fromNode, Socket: signal}
	to := schema.Endpoint{Node: toNode, Socket: entry}

	m, err := g.member(fromNode)
	if err != nil {
		return &domain.WiringError{From: from.String(), To: to.String(), Reason: err}
	}
	sig, ok := m.node.Sockets().LookupSignal(signal)
	if !ok {
		return &domain.WiringError{From: from.String(), To: to.String(), Reason: domain.ErrSocketNotFound}
	}
	fn, err := g.Entry(toNode, entry)
	if err != nil {
		return &domain.WiringError{From: from.String(), To: to.String(), Reason: err}
	}
	sig.Connect(fn)
	g.links = append(g.links, Link{From: from, To: to, Kind: LinkSignal})
	return nil
}

// ConnectVariable feeds an output into an input of the same element type.
// Array inputs grow one producer cell per link.
func (g *Graph) ConnectVariable(fromNode, output, toNode, input string) error {
	from := schema.Endpoint{Node: fromNode, Socket: output}
	to := schema.Endpoint{Node: toNode, Socket: input}
	wrap := func(err error) error {
		return &domain.WiringError{From: from.String(), To: to.String(), Reason: err}
	}

	out, err := g.output(fromNode, output)
	if err != nil {
		return wrap(err)
	}
	in, err := g.input(toNode, input)
	if err != nil {
		return wrap(err)
	}
	if out.ValueType() != in.ValueType() {
		return wrap(fmt.Errorf("%w: %s output into %s input", domain.ErrTypeMismatch, out.ValueType(), in.ValueType()))
	}
	if err := out.Attach(in.Sink()); err != nil {
		return wrap(err)
	}
	g.links = append(g.links, Link{From: from, To: to, Kind: LinkVariable})
	return nil
}

// Connect wires a "node.Socket" pair, choosing signal or variable wiring from
// the source socket.
func (g *Graph) Connect(fromRef, toRef string) error {
	from, err := schema.ParseEndpoint(fromRef)
	if err != nil {
		return err
	}
	to, err := schema.ParseEndpoint(toRef)
	if err != nil {
		return err
	}
	m, err := g.member(from.Node)
	if err != nil {
		return &domain.WiringError{From: fromRef, To: toRef, Reason: err}
	}
	if _, ok := m.node.Sockets().LookupSignal(from.Socket); ok {
		return g.ConnectSignal(from.Node, from.Socket, to.Node, to.Socket)
	}
	if _, ok := m.node.Sockets().LookupOut(from.Socket); ok {
		return g.ConnectVariable(from.Node, from.Socket, to.Node, to.Socket)
	}
	return &domain.WiringError{From: fromRef, To: toRef, Reason: domain.ErrSocketNotFound}
}

func (g *Graph) input(nodeID, name string) (domain.InPort, error) {
	m, err := g.member(nodeID)
	if err != nil {
		return nil, err
	}
	in, ok := m.node.Sockets().LookupIn(name)
	if !ok {
		return nil, fmt.Errorf("input %s.%s: %w", nodeID, name, domain.ErrSocketNotFound)
	}
	return in, nil
}

func (g *Graph) output(nodeID, name string) (domain.OutPort, error) {
	m, err := g.member(nodeID)
	if err != nil {
		return nil, err
	}
	out, ok := m.node.Sockets().LookupOut(name)
	if !ok {
		return nil, fmt.Errorf("output %s.%s: %w", nodeID, name, domain.ErrSocketNotFound)
	}
	return out, nil
}
