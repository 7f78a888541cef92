package schema

import (
	"fmt"
	"strings"

	"github.com/aretw0/actiongraph/pkg/domain"
)

// VariablePrefix marks an input literal that binds a graph variable ("$score").
const VariablePrefix = "$"

// Graph is a full graph definition.
type Graph struct {
	Name      string        `json:"name" yaml:"name"`
	Initial   string        `json:"initial,omitempty" yaml:"initial,omitempty"`
	States    []string      `json:"states,omitempty" yaml:"states,omitempty"`
	Variables []VariableDef `json:"variables,omitempty" yaml:"variables,omitempty"`
	Nodes     []NodeDef     `json:"nodes" yaml:"nodes"`
	Links     []Link        `json:"links,omitempty" yaml:"links,omitempty"`
}

// VariableDef declares a graph variable: a named cell nodes can share.
type VariableDef struct {
	Name    string           `json:"name" yaml:"name"`
	Type    domain.ValueType `json:"type" yaml:"type"`
	Default any              `json:"default,omitempty" yaml:"default,omitempty"`
}

// NodeDef declares one node instance.
type NodeDef struct {
	ID    string `json:"id" yaml:"id"`
	Kind  string `json:"kind" yaml:"kind"`
	State string `json:"state,omitempty" yaml:"state,omitempty"`

	// Inputs holds literal defaults per input socket: a scalar for single inputs,
	// a scalar or list for array inputs, or "$name" to bind a graph variable.
	Inputs map[string]any `json:"inputs,omitempty" yaml:"inputs,omitempty"`

	// Config is decoded into the node's configuration struct.
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// Link joins two sockets, written as "node.Socket".
type Link struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Endpoint is a parsed "node.Socket" reference.
type Endpoint struct {
	Node   string
	Socket string
}

func (e Endpoint) String() string { return e.Node + "." + e.Socket }

// ParseEndpoint splits "node.Socket" at the last dot so node IDs may contain dots.
func ParseEndpoint(ref string) (Endpoint, error) {
	i := strings.LastIndex(ref, ".")
	if i <= 0 || i == len(ref)-1 {
		return Endpoint{}, fmt.Errorf("invalid endpoint %q: expected node.Socket", ref)
	}
	return Endpoint{Node: ref[:i], Socket: ref[i+1:]}, nil
}

// VariableRef reports whether an input literal binds a graph variable, and which.
func VariableRef(literal any) (string, bool) {
	s, ok := literal.(string)
	if !ok || !strings.HasPrefix(s, VariablePrefix) || len(s) == len(VariablePrefix) {
		return "", false
	}
	return strings.TrimPrefix(s, VariablePrefix), true
}

// Node looks up a node definition by ID.
func (g *Graph) Node(id string) (*NodeDef, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy so callers can mutate definitions freely.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	out := *g
	out.States = append([]string(nil), g.States...)
	out.Variables = append([]VariableDef(nil), g.Variables...)
	out.Links = append([]Link(nil), g.Links...)
	out.Nodes = make([]NodeDef, len(g.Nodes))
	for i, n := range g.Nodes {
		n.Inputs = cloneMap(n.Inputs)
		n.Config = cloneMap(n.Config)
		out.Nodes[i] = n
	}
	return &out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if list, ok := v.([]any); ok {
			v = append([]any(nil), list...)
		}
		out[k] = v
	}
	return out
}
