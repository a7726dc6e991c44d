// Package binio reads and writes typed binary data with explicit byte
// order and saturating type conversion.
package binio

import (
	"encoding/binary"
	"math"

	"github.com/dhamidi/octio/precision"
)

// Swap reverses the bytes of every size-wide element of b in place.
func Swap(b []byte, size int) {
	if size < 2 {
		return
	}
	for off := 0; off+size <= len(b); off += size {
		e := b[off : off+size]
		for i, j := 0, size-1; i < j; i, j = i+1, j-1 {
			e[i], e[j] = e[j], e[i]
		}
	}
}

// Decode decodes one element of type t stored in order o at the start of b.
// b must hold at least t.Size() bytes.
func Decode(b []byte, t precision.Type, o precision.ByteOrder) Scalar {
	var buf [8]byte
	n := t.Size()
	copy(buf[:n], b[:n])
	if o.Swaps() {
		Swap(buf[:n], n)
	}
	ne := binary.NativeEndian
	switch t {
	case precision.Int8:
		return IntScalar(int64(int8(buf[0])))
	case precision.Uint8, precision.Char:
		return UintScalar(uint64(buf[0]))
	case precision.Int16:
		return IntScalar(int64(int16(ne.Uint16(buf[:2]))))
	case precision.Uint16:
		return UintScalar(uint64(ne.Uint16(buf[:2])))
	case precision.Int32:
		return IntScalar(int64(int32(ne.Uint32(buf[:4]))))
	case precision.Uint32:
		return UintScalar(uint64(ne.Uint32(buf[:4])))
	case precision.Int64:
		return IntScalar(int64(ne.Uint64(buf[:8])))
	case precision.Uint64:
		return UintScalar(ne.Uint64(buf[:8]))
	case precision.Single:
		return FloatScalar(float64(math.Float32frombits(ne.Uint32(buf[:4]))))
	case precision.Double:
		return FloatScalar(math.Float64frombits(ne.Uint64(buf[:8])))
	}
	return Scalar{}
}

// Encode converts s to type t and stores it in order o at the start of
// dst, which must hold at least t.Size() bytes.
func Encode(dst []byte, s Scalar, t precision.Type, o precision.ByteOrder) {
	ne := binary.NativeEndian
	n := t.Size()
	switch t {
	case precision.Int8:
		dst[0] = byte(int8(s.Int(t)))
	case precision.Uint8, precision.Char:
		dst[0] = byte(s.Uint(t))
	case precision.Int16:
		ne.PutUint16(dst, uint16(int16(s.Int(t))))
	case precision.Uint16:
		ne.PutUint16(dst, uint16(s.Uint(t)))
	case precision.Int32:
		ne.PutUint32(dst, uint32(int32(s.Int(t))))
	case precision.Uint32:
		ne.PutUint32(dst, uint32(s.Uint(t)))
	case precision.Int64:
		ne.PutUint64(dst, uint64(s.Int(t)))
	case precision.Uint64:
		ne.PutUint64(dst, s.Uint(t))
	case precision.Single:
		ne.PutUint32(dst, math.Float32bits(float32(s.Float64())))
	case precision.Double:
		ne.PutUint64(dst, math.Float64bits(s.Float64()))
	default:
		return
	}
	if o.Swaps() {
		Swap(dst[:n], n)
	}
}
