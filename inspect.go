package actiongraph

import (
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/nodes"
)

// NodeInfo is a read-only view of one node for inspection tools.
type NodeInfo struct {
	ID         string            `json:"id"`
	Kind       string            `json:"kind"`
	State      string            `json:"state,omitempty"`
	Active     bool              `json:"active"`
	Updating   bool              `json:"updating"`
	Status     string            `json:"status,omitempty"`
	Descriptor domain.Descriptor `json:"descriptor"`
}

// LinkInfo is one wired connection. Kind is "signal" or "variable".
type LinkInfo struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind"`
}

// VariableInfo is one graph variable and its current value.
type VariableInfo struct {
	Name  string           `json:"name"`
	Type  domain.ValueType `json:"type"`
	Value any              `json:"value"`
	Bound bool             `json:"bound"`
}

// Inspect returns every node in insertion order.
func (r *Runtime) Inspect() []NodeInfo {
	updating := make(map[string]bool)
	for _, id := range r.graph.Updating() {
		updating[id] = true
	}

	all := r.graph.Nodes()
	infos := make([]NodeInfo, 0, len(all))
	for _, n := range all {
		state, _ := r.graph.NodeState(n.ID())
		info := NodeInfo{
			ID:         n.ID(),
			Kind:       n.Kind(),
			State:      state,
			Active:     r.graph.Active(n.ID()),
			Updating:   updating[n.ID()],
			Descriptor: n.Sockets().Describe(n.Kind(), r.catalog.Category(n.Kind())),
		}
		if s, ok := n.(nodes.Stateful); ok {
			info.Status = s.Status()
		}
		infos = append(infos, info)
	}
	return infos
}

// Links returns the wired connections in wiring order.
func (r *Runtime) Links() []LinkInfo {
	links := r.graph.Links()
	out := make([]LinkInfo, 0, len(links))
	for _, l := range links {
		out = append(out, LinkInfo{From: l.From.String(), To: l.To.String(), Kind: string(l.Kind)})
	}
	return out
}

// Variables returns the declared graph variables in declaration order.
func (r *Runtime) Variables() []VariableInfo {
	names := r.graph.Variables()
	out := make([]VariableInfo, 0, len(names))
	for _, name := range names {
		c, err := r.graph.Variable(name)
		if err != nil {
			continue
		}
		out = append(out, VariableInfo{Name: name, Type: c.ValueType(), Value: c.Value(), Bound: c.IsBound()})
	}
	return out
}
