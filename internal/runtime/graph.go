package runtime

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/actiongraph/internal/logging"
	"github.com/aretw0/actiongraph/pkg/domain"
	"github.com/aretw0/actiongraph/pkg/schema"
)

// LinkKind tells whether a link carries control or a value.
type LinkKind string

const (
	LinkSignal   LinkKind = "signal"
	LinkVariable LinkKind = "variable"
)

// Link is a wired connection between two sockets.
type Link struct {
	From schema.Endpoint
	To   schema.Endpoint
	Kind LinkKind
}

// Binding records an input socket that reads through a graph variable.
type Binding struct {
	Variable string
	Input    schema.Endpoint
}

type member struct {
	node  domain.Node
	state *domain.State
}

// Graph owns the node instances of one action graph, their wiring and the state
// machine that gates them.
type Graph struct {
	name      string
	nodes     []*member
	byID      map[string]*member
	states    *domain.StateMachine
	scheduler *Scheduler

	variables map[string]domain.Cell
	varOrder  []string

	links    []Link
	bindings []Binding

	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) GraphOption {
	return func(g *Graph) {
		g.logger = logger
	}
}

// WithHooks configures the OnSignal and OnTransition callbacks.
// Scheduler events are configured on the Scheduler itself.
func WithHooks(hooks domain.LifecycleHooks) GraphOption {
	return func(g *Graph) {
		g.hooks = hooks
	}
}

// WithGraphClock replaces time.Now for event timestamps.
func WithGraphClock(now func() time.Time) GraphOption {
	return func(g *Graph) {
		g.now = now
	}
}

// NewGraph creates an empty graph ticked by scheduler.
func NewGraph(name string, scheduler *Scheduler, opts ...GraphOption) *Graph {
	g := &Graph{
		name:      name,
		byID:      make(map[string]*member),
		states:    domain.NewStateMachine(),
		scheduler: scheduler,
		variables: make(map[string]domain.Cell),
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Graph) Name() string { return g.name }

func (g *Graph) Scheduler() *Scheduler { return g.scheduler }

// AddState declares a state. The first state declared is current.
func (g *Graph) AddState(name string) error {
	_, err := g.states.Add(name)
	return err
}

// States returns the declared state names in declaration order.
func (g *Graph) States() []string {
	out := make([]string, 0, len(g.states.States()))
	for _, s := range g.states.States() {
		out = append(out, s.Name)
	}
	return out
}

// CurrentState returns the current state name, or "" when the graph has none.
func (g *Graph) CurrentState() string {
	if s := g.states.Current(); s != nil {
		return s.Name
	}
	return ""
}

// AddNode adds n to the graph. An empty state makes the node global.
func (g *Graph) AddNode(n domain.Node, state string) error {
	if _, exists := g.byID[n.ID()]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateNode, n.ID())
	}
	m := &member{node: n}
	if state != "" {
		s, ok := g.states.Get(state)
		if !ok {
			return fmt.Errorf("node %s: %w: %s", n.ID(), domain.ErrStateNotFound, state)
		}
		s.Nodes = append(s.Nodes, n)
		m.state = s
	}
	g.nodes = append(g.nodes, m)
	g.byID[n.ID()] = m
	return nil
}

// Node looks up a node by ID.
func (g *Graph) Node(id string) (domain.Node, error) {
	m, err := g.member(id)
	if err != nil {
		return nil, err
	}
	return m.node, nil
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []domain.Node {
	out := make([]domain.Node, len(g.nodes))
	for i, m := range g.nodes {
		out[i] = m.node
	}
	return out
}

// NodeState returns the state a node belongs to, or "" for global nodes.
func (g *Graph) NodeState(id string) (string, error) {
	m, err := g.member(id)
	if err != nil {
		return "", err
	}
	if m.state == nil {
		return "", nil
	}
	return m.state.Name, nil
}

// Active reports whether the node's state is current. Global nodes are always active.
func (g *Graph) Active(id string) bool {
	m, ok := g.byID[id]
	return ok && g.active(m)
}

func (g *Graph) active(m *member) bool {
	return m.state == nil || m.state == g.states.Current()
}

func (g *Graph) member(id string) (*member, error) {
	m, ok := g.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
	}
	return m, nil
}

// Links returns the signal and variable links in wiring order.
func (g *Graph) Links() []Link { return append([]Link(nil), g.links...) }

// Bindings returns the inputs bound to graph variables.
func (g *Graph) Bindings() []Binding { return append([]Binding(nil), g.bindings...) }
