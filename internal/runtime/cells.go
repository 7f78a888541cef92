package runtime

import (
	"errors"
	"fmt"

	"github.com/aretw0/actiongraph/pkg/domain"
)

// Read returns the current value of a socket. Single inputs and outputs yield
// one value; array inputs yield a []any with one value per producer.
func (g *Graph) Read(nodeID, socket string) (any, error) {
	m, err := g.member(nodeID)
	if err != nil {
		return nil, err
	}
	s := m.node.Sockets()
	if in, ok := s.LookupIn(socket); ok {
		cells := in.Cells()
		if !in.IsArray() {
			return cells[0].Value(), nil
		}
		out := make([]any, len(cells))
		for i, c := range cells {
			out[i] = c.Value()
		}
		return out, nil
	}
	if out, ok := s.LookupOut(socket); ok {
		return out.Cells()[0].Value(), nil
	}
	return nil, fmt.Errorf("%s.%s: %w", nodeID, socket, domain.ErrSocketNotFound)
}

// Write assigns an input from the host. raw is parsed into the socket's type;
// array inputs take a list with one value per producer.
func (g *Graph) Write(nodeID, socket string, raw any) error {
	in, err := g.input(nodeID, socket)
	if err != nil {
		if _, outErr := g.output(nodeID, socket); outErr == nil {
			return fmt.Errorf("%s.%s: outputs are written by their node: %w", nodeID, socket, domain.ErrTypeMismatch)
		}
		return err
	}
	cells := in.Cells()
	values := []any{raw}
	if in.IsArray() {
		list, ok := raw.([]any)
		if !ok || len(list) != len(cells) {
			return fmt.Errorf("%s.%s: %w: expected a list of %d values", nodeID, socket, domain.ErrTypeMismatch, len(cells))
		}
		values = list
	}
	parsed := make([]any, len(values))
	for i, v := range values {
		if parsed[i], err = domain.ParseValue(in.ValueType(), v); err != nil {
			return fmt.Errorf("%s.%s: %w", nodeID, socket, err)
		}
	}
	for i, v := range parsed {
		if err := cells[i].Assign(v); err != nil {
			return err
		}
	}
	return nil
}

// ReadVariable returns the value of a graph variable.
func (g *Graph) ReadVariable(name string) (any, error) {
	c, err := g.Variable(name)
	if err != nil {
		return nil, err
	}
	return c.Value(), nil
}

// WriteVariable assigns a graph variable from the host.
func (g *Graph) WriteVariable(name string, raw any) error {
	c, err := g.Variable(name)
	if err != nil {
		return err
	}
	v, err := domain.ParseValue(c.ValueType(), raw)
	if err != nil {
		return fmt.Errorf("variable %s: %w", name, err)
	}
	return c.Assign(v)
}

// Snapshot captures every bound input cell, every output's last value and
// every bound graph variable. Cells shared with a variable are captured once,
// under the variable.
func (g *Graph) Snapshot() *domain.Snapshot {
	snap := &domain.Snapshot{
		Graph:   g.name,
		State:   g.CurrentState(),
		TakenAt: g.now().UTC(),
	}
	for _, name := range g.varOrder {
		c := g.variables[name]
		if c.IsBound() {
			snap.Cells = append(snap.Cells, domain.CellSnapshot{Socket: name, Type: c.ValueType(), Value: c.Value()})
		}
	}
	shared := g.sharedCells()
	g.eachCell(func(nodeID, socket string, index int, c domain.Cell) {
		if c.IsBound() && !shared[c] {
			snap.Cells = append(snap.Cells, domain.CellSnapshot{
				Node: nodeID, Socket: socket, Index: index, Type: c.ValueType(), Value: c.Value(),
			})
		}
	})
	return snap
}

// Restore interrupts every updating node, transitions to the snapshot's state,
// resets every cell and writes the captured values back. Node-internal state
// (gate open, timers) is not part of a snapshot and starts over.
func (g *Graph) Restore(snap *domain.Snapshot) error {
	if len(snap.Sealed) > 0 {
		return domain.ErrSnapshotSealed
	}
	if snap.Graph != g.name {
		return fmt.Errorf("snapshot of graph %q cannot restore graph %q", snap.Graph, g.name)
	}
	g.Teardown()
	if snap.State != "" {
		if err := g.Transition(snap.State); err != nil {
			return err
		}
	}

	for _, c := range g.variables {
		c.Reset()
	}
	g.eachCell(func(_, _ string, _ int, c domain.Cell) { c.Reset() })

	var errs []error
	for _, cs := range snap.Cells {
		c, err := g.locate(cs)
		if err == nil {
			err = assignSnapshot(c, cs)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("restore %s.%s[%d]: %w", cs.Node, cs.Socket, cs.Index, err))
		}
	}
	return errors.Join(errs...)
}

func assignSnapshot(c domain.Cell, cs domain.CellSnapshot) error {
	if c.ValueType() != cs.Type {
		return fmt.Errorf("%w: snapshot holds %s, cell is %s", domain.ErrTypeMismatch, cs.Type, c.ValueType())
	}
	v, err := domain.ParseValue(cs.Type, cs.Value)
	if err != nil {
		return err
	}
	return c.Assign(v)
}

func (g *Graph) locate(cs domain.CellSnapshot) (domain.Cell, error) {
	if cs.Node == "" {
		return g.Variable(cs.Socket)
	}
	m, err := g.member(cs.Node)
	if err != nil {
		return nil, err
	}
	var cells []domain.Cell
	if in, ok := m.node.Sockets().LookupIn(cs.Socket); ok {
		cells = in.Cells()
	} else if out, ok := m.node.Sockets().LookupOut(cs.Socket); ok {
		cells = out.Cells()[:1]
	} else {
		return nil, domain.ErrSocketNotFound
	}
	if cs.Index < 0 || cs.Index >= len(cells) {
		return nil, fmt.Errorf("%w: index %d out of %d cells", domain.ErrSocketNotFound, cs.Index, len(cells))
	}
	return cells[cs.Index], nil
}

// eachCell visits every input cell and every output's own cell in node and
// declaration order.
func (g *Graph) eachCell(fn func(nodeID, socket string, index int, c domain.Cell)) {
	for _, m := range g.nodes {
		id := m.node.ID()
		for _, d := range m.node.Sockets().Describe(m.node.Kind(), "").Variables {
			if d.Direction == domain.DirectionIn {
				in, _ := m.node.Sockets().LookupIn(d.Name)
				for i, c := range in.Cells() {
					fn(id, d.Name, i, c)
				}
				continue
			}
			out, _ := m.node.Sockets().LookupOut(d.Name)
			fn(id, d.Name, 0, out.Cells()[0])
		}
	}
}

func (g *Graph) sharedCells() map[domain.Cell]bool {
	shared := make(map[domain.Cell]bool, len(g.variables))
	for _, c := range g.variables {
		shared[c] = true
	}
	return shared
}
