package binio

import (
	"fmt"

	"github.com/dhamidi/octio/precision"
	"golang.org/x/exp/constraints"
)

type number interface {
	constraints.Integer | constraints.Float
}

// Array is the result of a typed read, stored column-major.
type Array struct {
	Type precision.Type
	Rows int
	Cols int
	// Data is a slice of the Go type matching Type: []int8 ... []uint64,
	// []float32, []float64, or []byte for char.
	Data any
}

// Len returns the number of elements, padding included.
func (a *Array) Len() int {
	return a.Rows * a.Cols
}

// Float64s returns the elements converted to float64.
func (a *Array) Float64s() []float64 {
	switch d := a.Data.(type) {
	case []int8:
		return toFloat64s(d)
	case []uint8:
		return toFloat64s(d)
	case []int16:
		return toFloat64s(d)
	case []uint16:
		return toFloat64s(d)
	case []int32:
		return toFloat64s(d)
	case []uint32:
		return toFloat64s(d)
	case []int64:
		return toFloat64s(d)
	case []uint64:
		return toFloat64s(d)
	case []float32:
		return toFloat64s(d)
	case []float64:
		return d
	}
	return nil
}

// String returns the elements of a char array as text.
func (a *Array) String() string {
	if b, ok := a.Data.([]byte); ok && a.Type == precision.Char {
		return string(b)
	}
	return fmt.Sprint(a.Data)
}

func toFloat64s[T number](v []T) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// buffer accumulates converted elements of one output type.
type buffer interface {
	append(Scalar)
	pad(n int)
	len() int
	data() any
}

type typedBuffer[T number] struct {
	vals []T
	conv func(Scalar) T
}

func (b *typedBuffer[T]) append(s Scalar) { b.vals = append(b.vals, b.conv(s)) }
func (b *typedBuffer[T]) len() int        { return len(b.vals) }
func (b *typedBuffer[T]) data() any       { return b.vals }

func (b *typedBuffer[T]) pad(n int) {
	for len(b.vals) < n {
		var zero T
		b.vals = append(b.vals, zero)
	}
}

func signed[T constraints.Signed](t precision.Type) buffer {
	return &typedBuffer[T]{conv: func(s Scalar) T { return T(s.Int(t)) }}
}

func unsigned[T constraints.Unsigned](t precision.Type) buffer {
	return &typedBuffer[T]{conv: func(s Scalar) T { return T(s.Uint(t)) }}
}

func floating[T constraints.Float]() buffer {
	return &typedBuffer[T]{conv: func(s Scalar) T { return T(s.Float64()) }}
}

func newBuffer(t precision.Type) buffer {
	switch t {
	case precision.Int8:
		return signed[int8](t)
	case precision.Uint8, precision.Char:
		return unsigned[uint8](t)
	case precision.Int16:
		return signed[int16](t)
	case precision.Uint16:
		return unsigned[uint16](t)
	case precision.Int32:
		return signed[int32](t)
	case precision.Uint32:
		return unsigned[uint32](t)
	case precision.Int64:
		return signed[int64](t)
	case precision.Uint64:
		return unsigned[uint64](t)
	case precision.Single:
		return floating[float32]()
	}
	return floating[float64]()
}

// Scalars converts a slice of Go numbers, a string or a []byte into the
// values to encode.
func Scalars(values any) ([]Scalar, error) {
	switch v := values.(type) {
	case []float64:
		return fromFloats(v), nil
	case []float32:
		return fromFloats(v), nil
	case []int:
		return fromSigned(v), nil
	case []int8:
		return fromSigned(v), nil
	case []int16:
		return fromSigned(v), nil
	case []int32:
		return fromSigned(v), nil
	case []int64:
		return fromSigned(v), nil
	case []uint:
		return fromUnsigned(v), nil
	case []uint8:
		return fromUnsigned(v), nil
	case []uint16:
		return fromUnsigned(v), nil
	case []uint32:
		return fromUnsigned(v), nil
	case []uint64:
		return fromUnsigned(v), nil
	case string:
		return fromUnsigned([]byte(v)), nil
	case []Scalar:
		return v, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", values)
}

func fromSigned[T constraints.Signed](v []T) []Scalar {
	out := make([]Scalar, len(v))
	for i, x := range v {
		out[i] = IntScalar(int64(x))
	}
	return out
}

func fromUnsigned[T constraints.Unsigned](v []T) []Scalar {
	out := make([]Scalar, len(v))
	for i, x := range v {
		out[i] = UintScalar(uint64(x))
	}
	return out
}

func fromFloats[T constraints.Float](v []T) []Scalar {
	out := make([]Scalar, len(v))
	for i, x := range v {
		out[i] = FloatScalar(float64(x))
	}
	return out
}
