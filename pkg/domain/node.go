package domain

import (
	"fmt"
	"time"
)

// Node is an action node: named entry points, signal outputs and variable sockets.
type Node interface {
	ID() string
	Kind() string
	Sockets() *Sockets
}

// Updatable is implemented by nodes that opt into per-frame ticking.
type Updatable interface {
	// Update runs once per frame while the node is registered with a scheduler.
	Update(elapsed time.Duration)
	// OnUpdateStopped runs when the node is removed by an external authority
	// rather than by its own StopUpdating. Implementations must leave their
	// state machine consistent (e.g. reopen a gate, mark a run idle).
	OnUpdateStopped()
}

type entryPoint struct {
	name string
	fn   func()
}

type signalSocket struct {
	name   string
	signal *Signal
}

type varSocket struct {
	name string
	dir  Direction
	in   InPort
	out  OutPort
}

// Sockets is a node's socket table in declaration order.
type Sockets struct {
	entries []entryPoint
	signals []signalSocket
	vars    []varSocket
}

// Entry declares an entry point.
func (s *Sockets) Entry(name string, fn func()) {
	s.entries = append(s.entries, entryPoint{name: name, fn: fn})
}

// Signal declares a signal output.
func (s *Sockets) Signal(name string, sig *Signal) {
	s.signals = append(s.signals, signalSocket{name: name, signal: sig})
}

// In declares a variable input.
func (s *Sockets) In(name string, port InPort) {
	s.vars = append(s.vars, varSocket{name: name, dir: DirectionIn, in: port})
}

// Out declares a variable output.
func (s *Sockets) Out(name string, port OutPort) {
	s.vars = append(s.vars, varSocket{name: name, dir: DirectionOut, out: port})
}

// LookupEntry returns the raw entry point, unwrapped by any graph gating.
func (s *Sockets) LookupEntry(name string) (func(), bool) {
	for _, e := range s.entries {
		if e.name == name {
			return e.fn, true
		}
	}
	return nil, false
}

func (s *Sockets) LookupSignal(name string) (*Signal, bool) {
	for _, sig := range s.signals {
		if sig.name == name {
			return sig.signal, true
		}
	}
	return nil, false
}

func (s *Sockets) LookupIn(name string) (InPort, bool) {
	for _, v := range s.vars {
		if v.name == name && v.dir == DirectionIn {
			return v.in, true
		}
	}
	return nil, false
}

func (s *Sockets) LookupOut(name string) (OutPort, bool) {
	for _, v := range s.vars {
		if v.name == name && v.dir == DirectionOut {
			return v.out, true
		}
	}
	return nil, false
}

// Cells returns the cells behind a variable socket of either direction.
func (s *Sockets) Cells(name string) ([]Cell, bool) {
	if in, ok := s.LookupIn(name); ok {
		return in.Cells(), true
	}
	if out, ok := s.LookupOut(name); ok {
		return out.Cells(), true
	}
	return nil, false
}

// Inputs returns the input sockets in declaration order.
func (s *Sockets) Inputs() []NamedInPort {
	var out []NamedInPort
	for _, v := range s.vars {
		if v.dir == DirectionIn {
			out = append(out, NamedInPort{Name: v.name, Port: v.in})
		}
	}
	return out
}

// NamedInPort pairs an input socket with its declared name.
type NamedInPort struct {
	Name string
	Port InPort
}

// Describe builds the descriptor of the table.
func (s *Sockets) Describe(kind, category string) Descriptor {
	d := Descriptor{
		Kind:      kind,
		Category:  category,
		Entries:   make([]string, 0, len(s.entries)),
		Signals:   make([]string, 0, len(s.signals)),
		Variables: make([]SocketDescriptor, 0, len(s.vars)),
	}
	for _, e := range s.entries {
		d.Entries = append(d.Entries, e.name)
	}
	for _, sig := range s.signals {
		d.Signals = append(d.Signals, sig.name)
	}
	for _, v := range s.vars {
		sd := SocketDescriptor{Name: v.name, Direction: v.dir}
		if v.dir == DirectionIn {
			sd.Type, sd.Array = v.in.ValueType(), v.in.IsArray()
		} else {
			sd.Type, sd.Array = v.out.ValueType(), v.out.IsArray()
		}
		d.Variables = append(d.Variables, sd)
	}
	return d
}

// Base carries the identity and socket table shared by every node.
// Embed it and declare sockets in the node's constructor.
type Base struct {
	id      string
	kind    string
	sockets Sockets
}

// NewBase creates the identity for a node of kind.
func NewBase(id, kind string) Base {
	return Base{id: id, kind: kind}
}

func (b *Base) ID() string { return b.id }

func (b *Base) Kind() string { return b.kind }

func (b *Base) Sockets() *Sockets { return &b.sockets }

func (b *Base) String() string { return fmt.Sprintf("%s(%s)", b.kind, b.id) }
