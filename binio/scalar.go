package binio

import (
	"math"

	"github.com/dhamidi/octio/precision"
)

type scalarKind uint8

const (
	kindInt scalarKind = iota
	kindUint
	kindFloat
)

// Scalar is one decoded element. It keeps integers exact so that 64-bit
// values survive conversion between integer types.
type Scalar struct {
	kind scalarKind
	i    int64
	u    uint64
	f    float64
}

func IntScalar(v int64) Scalar     { return Scalar{kind: kindInt, i: v} }
func UintScalar(v uint64) Scalar   { return Scalar{kind: kindUint, u: v} }
func FloatScalar(v float64) Scalar { return Scalar{kind: kindFloat, f: v} }

// Float64 returns the value as a float64.
func (s Scalar) Float64() float64 {
	switch s.kind {
	case kindInt:
		return float64(s.i)
	case kindUint:
		return float64(s.u)
	}
	return s.f
}

// Int returns the value converted to the signed integer type t: NaN
// becomes 0, fractions round half away from zero and out of range values
// saturate at t's limits.
func (s Scalar) Int(t precision.Type) int64 {
	lo, hi := t.Min(), int64(t.Max())
	switch s.kind {
	case kindInt:
		return clampInt(s.i, lo, hi)
	case kindUint:
		if s.u > uint64(hi) {
			return hi
		}
		return int64(s.u)
	}
	return SaturateInt(s.f, t)
}

// Uint returns the value converted to the unsigned integer type t with
// the same rules as Int.
func (s Scalar) Uint(t precision.Type) uint64 {
	hi := t.Max()
	switch s.kind {
	case kindInt:
		if s.i < 0 {
			return 0
		}
		if uint64(s.i) > hi {
			return hi
		}
		return uint64(s.i)
	case kindUint:
		if s.u > hi {
			return hi
		}
		return s.u
	}
	return SaturateUint(s.f, t)
}

func clampInt(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SaturateInt converts f to the signed integer type t.
func SaturateInt(f float64, t precision.Type) int64 {
	if math.IsNaN(f) {
		return 0
	}
	f = math.Round(f)
	lo, hi := t.Min(), int64(t.Max())
	// float64(hi) rounds up to 2^63 for int64, so compare with >=.
	if f >= float64(hi) {
		return hi
	}
	if f <= float64(lo) {
		return lo
	}
	return int64(f)
}

// SaturateUint converts f to the unsigned integer type t.
func SaturateUint(f float64, t precision.Type) uint64 {
	if math.IsNaN(f) {
		return 0
	}
	f = math.Round(f)
	if f <= 0 {
		return 0
	}
	hi := t.Max()
	if f >= float64(hi) {
		return hi
	}
	return uint64(f)
}
