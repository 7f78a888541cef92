package runtime

import (
	"github.com/aretw0/actiongraph/pkg/domain"
)

// Transition makes state current. Every updating node of the state being left
// is interrupted, so each receives exactly one OnUpdateStopped. Transitioning
// to the current state does nothing.
func (g *Graph) Transition(state string) error {
	from := g.CurrentState()
	prev, err := g.states.Transition(state)
	if err != nil {
		return err
	}
	if prev == nil {
		return nil
	}

	interrupted := g.scheduler.InterruptWhere(func(u domain.Updatable) bool {
		n, ok := u.(domain.Node)
		if !ok {
			return false
		}
		m, owned := g.byID[n.ID()]
		return owned && m.node == n && m.state == prev
	})

	g.logger.Debug("state transition", "from", from, "to", state, "interrupted", interrupted)
	if g.hooks.OnTransition != nil {
		g.hooks.OnTransition(&domain.TransitionEvent{
			Timestamp:   g.now(),
			From:        from,
			To:          state,
			Interrupted: interrupted,
		})
	}
	return nil
}

// Updating returns the IDs of this graph's nodes currently registered for updates.
func (g *Graph) Updating() []string {
	var ids []string
	for _, u := range g.scheduler.Nodes() {
		if n, ok := u.(domain.Node); ok && g.owns(n) {
			ids = append(ids, n.ID())
		}
	}
	return ids
}

// Teardown interrupts every updating node of the graph.
func (g *Graph) Teardown() int {
	return g.scheduler.InterruptWhere(func(u domain.Updatable) bool {
		n, ok := u.(domain.Node)
		return ok && g.owns(n)
	})
}

func (g *Graph) owns(n domain.Node) bool {
	m, ok := g.byID[n.ID()]
	return ok && m.node == n
}
