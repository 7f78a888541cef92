package domain

import "fmt"

// Cell is the type-erased view of a Variable.
// Loaders, host adapters and snapshots use it; node logic uses Variable[T] directly.
type Cell interface {
	ValueType() ValueType
	// Value returns the same result as Read, boxed.
	Value() any
	// Assign writes v, which must already be of the cell's Go type.
	Assign(v any) error
	// AssignDefault replaces the fallback returned while the cell is unbound.
	AssignDefault(v any) error
	IsBound() bool
	// Reset drops the written value so reads fall back to the default again.
	Reset()
}

// Variable is a typed value holder with a default.
// Reading an unbound variable yields the default; writing marks it bound.
type Variable[T Value] struct {
	value T
	def   T
	bound bool
}

var _ Cell = (*Variable[int])(nil)

// NewVariable creates an unbound variable with the given default.
func NewVariable[T Value](def T) *Variable[T] {
	return &Variable[T]{def: def}
}

// Read returns the written value, or the default if the variable was never written.
func (v *Variable[T]) Read() T {
	if v.bound {
		return v.value
	}
	return v.def
}

// Write overwrites the value and marks the variable bound.
func (v *Variable[T]) Write(value T) {
	v.value = value
	v.bound = true
}

func (v *Variable[T]) Default() T { return v.def }

func (v *Variable[T]) SetDefault(def T) { v.def = def }

func (v *Variable[T]) IsBound() bool { return v.bound }

func (v *Variable[T]) Reset() {
	var zero T
	v.value = zero
	v.bound = false
}

func (v *Variable[T]) ValueType() ValueType { return TypeOf[T]() }

func (v *Variable[T]) Value() any { return v.Read() }

func (v *Variable[T]) Assign(raw any) error {
	val, ok := raw.(T)
	if !ok {
		return fmt.Errorf("%w: %s cell cannot hold %T", ErrTypeMismatch, v.ValueType(), raw)
	}
	v.Write(val)
	return nil
}

func (v *Variable[T]) AssignDefault(raw any) error {
	val, ok := raw.(T)
	if !ok {
		return fmt.Errorf("%w: %s cell cannot default to %T", ErrTypeMismatch, v.ValueType(), raw)
	}
	v.def = val
	return nil
}

func (v *Variable[T]) String() string {
	return fmt.Sprintf("%v", v.Read())
}

// NewCell creates an unbound variable of the given type with its zero default.
func NewCell(t ValueType) (Cell, error) {
	switch t {
	case TypeInt:
		return NewVariable(0), nil
	case TypeFloat:
		return NewVariable(0.0), nil
	case TypeBool:
		return NewVariable(false), nil
	case TypeVector2:
		return NewVariable(Vector2{}), nil
	}
	return nil, fmt.Errorf("unknown value type %q", t)
}
