package domain

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/mitchellh/mapstructure"
)

// ValueType tags the element type of a variable cell or socket.
type ValueType string

const (
	TypeInt     ValueType = "int"
	TypeFloat   ValueType = "float"
	TypeBool    ValueType = "bool"
	TypeVector2 ValueType = "vector2"
)

// Valid reports whether t is one of the supported payload types.
func (t ValueType) Valid() bool {
	switch t {
	case TypeInt, TypeFloat, TypeBool, TypeVector2:
		return true
	}
	return false
}

// Vector2 is a 2D vector payload.
type Vector2 struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
}

func (v Vector2) Add(o Vector2) Vector2 { return Vector2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vector2) Scale(f float64) Vector2 { return Vector2{X: v.X * f, Y: v.Y * f} }

// Length returns the euclidean norm.
func (v Vector2) Length() float64 { return math.Hypot(v.X, v.Y) }

// Lerp interpolates each component between v and o.
func (v Vector2) Lerp(o Vector2, t float64) Vector2 {
	return Vector2{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

// Value is the closed set of payload types a cell may hold.
type Value interface {
	int | float64 | bool | Vector2
}

// TypeOf returns the tag for the payload type T.
func TypeOf[T Value]() ValueType {
	var zero T
	switch any(zero).(type) {
	case int:
		return TypeInt
	case float64:
		return TypeFloat
	case bool:
		return TypeBool
	default:
		return TypeVector2
	}
}

// Truncate converts f to int rounding toward zero.
// NaN maps to 0; values beyond the int range clamp to its bounds.
func Truncate(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(math.Trunc(f))
}

// ParseValue converts a decoded literal (YAML, JSON, form input) into the exact Go
// type for t. Integral floats are accepted for int cells; fractional ones are not.
func ParseValue(t ValueType, raw any) (any, error) {
	switch t {
	case TypeInt:
		return parseInt(raw)
	case TypeFloat:
		return parseFloat(raw)
	case TypeBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: expected bool, got %T", ErrTypeMismatch, raw)
		}
		return b, nil
	case TypeVector2:
		return parseVector2(raw)
	}
	return nil, fmt.Errorf("unknown value type %q", t)
}

func parseInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, fmt.Errorf("%w: %d overflows int", ErrTypeMismatch, v)
		}
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return 0, fmt.Errorf("%w: %d overflows int", ErrTypeMismatch, v)
		}
		return int(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return parseInt(i)
		}
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: invalid number %q", ErrTypeMismatch, v)
		}
		return parseInt(f)
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrTypeMismatch, v)
		}
		// float64(math.MaxInt) rounds up to 2^63, which is already out of range.
		if v < math.MinInt || v >= math.MaxInt {
			return 0, fmt.Errorf("%w: %v overflows int", ErrTypeMismatch, v)
		}
		return int(v), nil
	}
	return 0, fmt.Errorf("%w: expected int, got %T", ErrTypeMismatch, raw)
}

func parseFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: invalid number %q", ErrTypeMismatch, v)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: expected float, got %T", ErrTypeMismatch, raw)
}

func parseVector2(raw any) (Vector2, error) {
	switch v := raw.(type) {
	case Vector2:
		return v, nil
	case []any:
		if len(v) != 2 {
			return Vector2{}, fmt.Errorf("%w: vector2 needs 2 components, got %d", ErrTypeMismatch, len(v))
		}
		x, err := parseFloat(v[0])
		if err != nil {
			return Vector2{}, err
		}
		y, err := parseFloat(v[1])
		if err != nil {
			return Vector2{}, err
		}
		return Vector2{X: x, Y: y}, nil
	}

	var out Vector2
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &out,
		ErrorUnused: true,
	})
	if err != nil {
		return Vector2{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Vector2{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return out, nil
}
