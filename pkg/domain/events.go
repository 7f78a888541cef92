package domain

import "time"

// UpdateReason tells why a node entered or left the update scheduler.
type UpdateReason string

const (
	UpdateStarted     UpdateReason = "started"
	UpdateStopped     UpdateReason = "stopped"
	UpdateInterrupted UpdateReason = "interrupted"
)

// SignalEvent reports an entry point invocation that passed state gating.
type SignalEvent struct {
	Timestamp time.Time `json:"timestamp"`
	NodeID    string    `json:"node_id"`
	Kind      string    `json:"kind"`
	Entry     string    `json:"entry"`
}

// UpdateEvent reports a scheduler registration change. Registered is the
// scheduler's registration count after the change.
type UpdateEvent struct {
	Timestamp  time.Time    `json:"timestamp"`
	NodeID     string       `json:"node_id"`
	Kind       string       `json:"kind"`
	Reason     UpdateReason `json:"reason"`
	Registered int          `json:"registered"`
}

// TickEvent reports one completed scheduler pass.
type TickEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Elapsed   time.Duration `json:"elapsed"`
	Updated   int           `json:"updated"`
	Took      time.Duration `json:"took"`
}

// TransitionEvent reports a state machine transition.
type TransitionEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Interrupted int       `json:"interrupted"`
}

// LifecycleHooks defines callbacks for runtime observability. Nil fields are skipped.
// Hooks run synchronously on the runtime's goroutine and must not call back into it.
type LifecycleHooks struct {
	OnSignal     func(*SignalEvent)
	OnUpdate     func(*UpdateEvent)
	OnTick       func(*TickEvent)
	OnTransition func(*TransitionEvent)
}

// Merge returns hooks that call h first and then o.
func (h LifecycleHooks) Merge(o LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnSignal:     chain(h.OnSignal, o.OnSignal),
		OnUpdate:     chain(h.OnUpdate, o.OnUpdate),
		OnTick:       chain(h.OnTick, o.OnTick),
		OnTransition: chain(h.OnTransition, o.OnTransition),
	}
}

func chain[E any](a, b func(*E)) func(*E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *E) {
		a(e)
		b(e)
	}
}
