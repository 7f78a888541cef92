package runtime

import (
	"fmt"

	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/nodes"
	"github.com/aretw0/actiongraph/pkg/schema"
)

// Instantiate builds a graph from a definition: states, variables, nodes with
// their config and literal inputs, then links. Array literals grow one producer
// cell per element; "$name" binds a graph variable.
func Instantiate(def *schema.Graph, catalog *nodes.Catalog, scheduler *Scheduler, opts ...GraphOption) (*Graph, error) {
	if err := schema.Validate(def); err != nil {
		return nil, err
	}
	g := NewGraph(def.Name, scheduler, opts...)

	for _, s := range def.States {
		if err := g.AddState(s); err != nil {
			return nil, err
		}
	}
	for _, v := range def.Variables {
		if err := g.DeclareVariable(v.Name, v.Type, v.Default); err != nil {
			return nil, err
		}
	}

	env := nodes.Env{Scheduler: scheduler}
	for _, nd := range def.Nodes {
		n, err := catalog.New(nd.Kind, nd.ID, env)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", nd.ID, err)
		}
		if err := nodes.Configure(n, nd.Config); err != nil {
			return nil, fmt.Errorf("node %s: %w", nd.ID, err)
		}
		if err := g.AddNode(n, nd.State); err != nil {
			return nil, err
		}
	}

	// Inputs follow declaration order so array producers are stable across loads.
	for _, nd := range def.Nodes {
		n, _ := g.Node(nd.ID)
		for _, in := range n.Sockets().Inputs() {
			literal, ok := nd.Inputs[in.Name]
			if !ok {
				continue
			}
			if err := g.assignInput(nd.ID, in.Name, in.Port.IsArray(), literal); err != nil {
				return nil, err
			}
		}
		for name := range nd.Inputs {
			if _, ok := n.Sockets().LookupIn(name); !ok {
				return nil, fmt.Errorf("node %s: input %s: %w", nd.ID, name, domain.ErrSocketNotFound)
			}
		}
	}

	for _, l := range def.Links {
		if err := g.Connect(l.From, l.To); err != nil {
			return nil, err
		}
	}

	if def.Initial != "" {
		if err := g.Transition(def.Initial); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Graph) assignInput(nodeID, input string, array bool, literal any) error {
	if name, ok := schema.VariableRef(literal); ok {
		return g.BindVariable(name, nodeID, input)
	}
	if list, ok := literal.([]any); ok && array {
		values := make([]any, 0, len(list))
		for _, item := range list {
			if name, ok := schema.VariableRef(item); ok {
				if err := g.flushLiterals(nodeID, input, values); err != nil {
					return err
				}
				values = values[:0]
				if err := g.BindVariable(name, nodeID, input); err != nil {
					return err
				}
				continue
			}
			values = append(values, item)
		}
		return g.flushLiterals(nodeID, input, values)
	}
	return g.SetLiteral(nodeID, input, literal)
}

func (g *Graph) flushLiterals(nodeID, input string, values []any) error {
	if len(values) == 0 {
		return nil
	}
	return g.SetLiteral(nodeID, input, values...)
}
