package domain

import "fmt"

// Direction of a variable socket.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Signal is an optional reference to a downstream entry point.
// Firing an unconnected signal does nothing.
type Signal struct {
	target func()
}

// Connect points the signal at fn, replacing any previous target.
func (s *Signal) Connect(fn func()) { s.target = fn }

func (s *Signal) Disconnect() { s.target = nil }

func (s *Signal) Connected() bool { return s.target != nil }

// Fire transfers control to the connected entry point and returns once the
// downstream chain has finished.
func (s *Signal) Fire() {
	if s.target != nil {
		s.target()
	}
}

// InPort is the type-erased view of an input socket used for wiring.
type InPort interface {
	ValueType() ValueType
	IsArray() bool
	// Sink returns the cell an upstream output should write into. Single inputs
	// return their own cell; array inputs grow by one producer cell per call.
	Sink() Cell
	// Share makes the input read through c instead of its own cell.
	// Array inputs append c as a producer.
	Share(c Cell) error
	Cells() []Cell
}

// OutPort is the type-erased view of an output socket used for wiring.
type OutPort interface {
	ValueType() ValueType
	IsArray() bool
	// Attach adds c to the cells receiving every write.
	Attach(c Cell) error
	Cells() []Cell
}

// Input is a single-cell input socket.
type Input[T Value] struct {
	cell *Variable[T]
}

// NewInput creates an input owning a fresh cell with default def.
func NewInput[T Value](def T) *Input[T] {
	return &Input[T]{cell: NewVariable(def)}
}

func (in *Input[T]) Read() T { return in.cell.Read() }

// Write stores v into the input's current cell, which may be shared.
func (in *Input[T]) Write(v T) { in.cell.Write(v) }

func (in *Input[T]) Cell() *Variable[T] { return in.cell }

// Bind replaces the input's cell with a shared one.
func (in *Input[T]) Bind(v *Variable[T]) { in.cell = v }

func (in *Input[T]) ValueType() ValueType { return TypeOf[T]() }

func (in *Input[T]) IsArray() bool { return false }

func (in *Input[T]) Sink() Cell { return in.cell }

func (in *Input[T]) Share(c Cell) error {
	v, ok := c.(*Variable[T])
	if !ok {
		return fmt.Errorf("%w: %s input cannot share %s cell", ErrTypeMismatch, in.ValueType(), c.ValueType())
	}
	in.cell = v
	return nil
}

func (in *Input[T]) Cells() []Cell { return []Cell{in.cell} }

// ArrayInput is a fan-in input: a list of producer cells reduced on every read.
type ArrayInput[T Value] struct {
	cells []*Variable[T]
	def   T
}

// NewArrayInput creates an empty fan-in input; cells added by Sink default to def.
func NewArrayInput[T Value](def T) *ArrayInput[T] {
	return &ArrayInput[T]{def: def}
}

// Add appends a producer cell holding def and returns it.
func (a *ArrayInput[T]) Add(def T) *Variable[T] {
	v := NewVariable(def)
	a.cells = append(a.cells, v)
	return v
}

func (a *ArrayInput[T]) Len() int { return len(a.cells) }

// Values reads every producer cell in wiring order.
func (a *ArrayInput[T]) Values() []T {
	out := make([]T, len(a.cells))
	for i, c := range a.cells {
		out[i] = c.Read()
	}
	return out
}

// Reduce folds the current producer values starting from init.
func (a *ArrayInput[T]) Reduce(init T, fold func(acc, v T) T) T {
	acc := init
	for _, c := range a.cells {
		acc = fold(acc, c.Read())
	}
	return acc
}

func (a *ArrayInput[T]) ValueType() ValueType { return TypeOf[T]() }

func (a *ArrayInput[T]) IsArray() bool { return true }

func (a *ArrayInput[T]) Sink() Cell { return a.Add(a.def) }

func (a *ArrayInput[T]) Share(c Cell) error {
	v, ok := c.(*Variable[T])
	if !ok {
		return fmt.Errorf("%w: %s array input cannot share %s cell", ErrTypeMismatch, a.ValueType(), c.ValueType())
	}
	a.cells = append(a.cells, v)
	return nil
}

func (a *ArrayInput[T]) Cells() []Cell {
	out := make([]Cell, len(a.cells))
	for i, c := range a.cells {
		out[i] = c
	}
	return out
}

// Output is an output socket. Every Write reaches its own cell and every
// attached consumer cell.
type Output[T Value] struct {
	cell    *Variable[T]
	targets []*Variable[T]
}

func NewOutput[T Value]() *Output[T] {
	var zero T
	return &Output[T]{cell: NewVariable(zero)}
}

func (o *Output[T]) Write(v T) {
	o.cell.Write(v)
	for _, t := range o.targets {
		t.Write(v)
	}
}

// Read returns the last value written.
func (o *Output[T]) Read() T { return o.cell.Read() }

// Bind attaches a consumer cell.
func (o *Output[T]) Bind(v *Variable[T]) { o.targets = append(o.targets, v) }

func (o *Output[T]) ValueType() ValueType { return TypeOf[T]() }

func (o *Output[T]) IsArray() bool { return true }

func (o *Output[T]) Attach(c Cell) error {
	v, ok := c.(*Variable[T])
	if !ok {
		return fmt.Errorf("%w: %s output cannot feed %s cell", ErrTypeMismatch, o.ValueType(), c.ValueType())
	}
	o.Bind(v)
	return nil
}

// Cells returns the owned cell followed by the attached consumers.
func (o *Output[T]) Cells() []Cell {
	out := make([]Cell, 0, len(o.targets)+1)
	out = append(out, o.cell)
	for _, t := range o.targets {
		out = append(out, t)
	}
	return out
}

// Number is the numeric subset of Value.
type Number interface {
	int | float64
}

// Sum folds a fan-in by addition; the empty sum is 0.
func Sum[T Number](a *ArrayInput[T]) T {
	return a.Reduce(0, func(acc, v T) T { return acc + v })
}

// Product folds a fan-in by multiplication; the empty product is 1.
func Product[T Number](a *ArrayInput[T]) T {
	return a.Reduce(1, func(acc, v T) T { return acc * v })
}

// Min returns the smallest producer value, or 0 for an empty fan-in.
func Min[T Number](a *ArrayInput[T]) T {
	vals := a.Values()
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Max returns the largest producer value, or 0 for an empty fan-in.
func Max[T Number](a *ArrayInput[T]) T {
	vals := a.Values()
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// SumVector2 adds every producer vector.
func SumVector2(a *ArrayInput[Vector2]) Vector2 {
	return a.Reduce(Vector2{}, Vector2.Add)
}

// All reports whether every producer is true; an empty fan-in is true.
func All(a *ArrayInput[bool]) bool {
	return a.Reduce(true, func(acc, v bool) bool { return acc && v })
}

// Any reports whether some producer is true; an empty fan-in is false.
func Any(a *ArrayInput[bool]) bool {
	return a.Reduce(false, func(acc, v bool) bool { return acc || v })
}
