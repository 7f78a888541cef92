package domain

import "fmt"

// State is a named group of nodes. Only nodes of the current state (and nodes
// outside every state) receive signals and ticks.
type State struct {
	Name  string
	Nodes []Node
}

// Has reports whether n belongs to the state.
func (s *State) Has(n Node) bool {
	for _, m := range s.Nodes {
		if m == n {
			return true
		}
	}
	return false
}

// StateMachine holds the states of a graph and the current one.
// It only does bookkeeping; interrupting the nodes of a deactivated state is the
// caller's job (see runtime.Graph.Transition).
type StateMachine struct {
	states  []*State
	byName  map[string]*State
	current *State
}

func NewStateMachine() *StateMachine {
	return &StateMachine{byName: make(map[string]*State)}
}

// Add registers a state. The first state added becomes current.
func (m *StateMachine) Add(name string) (*State, error) {
	if _, exists := m.byName[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateState, name)
	}
	s := &State{Name: name}
	m.states = append(m.states, s)
	m.byName[name] = s
	if m.current == nil {
		m.current = s
	}
	return s, nil
}

func (m *StateMachine) Get(name string) (*State, bool) {
	s, ok := m.byName[name]
	return s, ok
}

func (m *StateMachine) States() []*State { return m.states }

// Current returns the current state, or nil when no state was declared.
func (m *StateMachine) Current() *State { return m.current }

// IsCurrent reports whether name is the current state.
func (m *StateMachine) IsCurrent(name string) bool {
	return m.current != nil && m.current.Name == name
}

// Transition makes name current and returns the state that was left.
// Transitioning to the current state returns nil and changes nothing.
func (m *StateMachine) Transition(name string) (*State, error) {
	next, ok := m.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStateNotFound, name)
	}
	if next == m.current {
		return nil, nil
	}
	prev := m.current
	m.current = next
	return prev, nil
}
