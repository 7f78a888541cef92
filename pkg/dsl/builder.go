package dsl

import (
	"fmt"

	"github.com/aretw0/actiongraph/pkg/adapters/memory"
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/schema"
)

// Builder manages the graph construction.
type Builder struct {
	def   schema.Graph
	nodes []*NodeBuilder
	index map[string]*NodeBuilder
}

// New creates a new graph builder.
func New(name string) *Builder {
	return &Builder{
		def:   schema.Graph{Name: name},
		index: make(map[string]*NodeBuilder),
	}
}

// States declares the graph's states. The first one is initial unless
// Initial says otherwise.
func (b *Builder) States(names ...string) *Builder {
	b.def.States = append(b.def.States, names...)
	return b
}

// Initial sets the state the graph starts in.
func (b *Builder) Initial(state string) *Builder {
	b.def.Initial = state
	return b
}

// Variable declares a graph variable that inputs can bind with NodeBuilder.Bind.
func (b *Builder) Variable(name string, t domain.ValueType, def any) *Builder {
	b.def.Variables = append(b.def.Variables, schema.VariableDef{Name: name, Type: t, Default: def})
	return b
}

// Add creates a node of the given kind.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id, kind string) *NodeBuilder {
	if nb, ok := b.index[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    schema.NodeDef{ID: id, Kind: kind},
		builder: b,
	}
	b.index[id] = nb
	b.nodes = append(b.nodes, nb)
	return nb
}

// Link connects two "node.Socket" endpoints. Signal-to-entry and
// output-to-input are both links; the runtime tells them apart.
func (b *Builder) Link(from, to string) *Builder {
	b.def.Links = append(b.def.Links, schema.Link{From: from, To: to})
	return b
}

// Definition returns the definition built so far, without validation.
func (b *Builder) Definition() *schema.Graph {
	def := b.def
	def.Nodes = make([]schema.NodeDef, 0, len(b.nodes))
	for _, nb := range b.nodes {
		def.Nodes = append(def.Nodes, nb.node)
	}
	return def.Clone()
}

// Build validates the graph and compiles it into a memory loader.
func (b *Builder) Build() (*memory.Loader, error) {
	def := b.Definition()
	if err := schema.Validate(def); err != nil {
		return nil, fmt.Errorf("failed to build graph %q: %w", def.Name, err)
	}
	return memory.NewLoader(def), nil
}
