package precision

import (
	"encoding/binary"
	"strings"
)

// ByteOrder selects the byte order of binary data on the stream.
type ByteOrder uint8

const (
	Native ByteOrder = iota
	BigEndian
	LittleEndian
)

func (o ByteOrder) String() string {
	switch o {
	case BigEndian:
		return "ieee-be"
	case LittleEndian:
		return "ieee-le"
	}
	return "native"
}

var hostOrder = func() ByteOrder {
	if binary.NativeEndian.Uint16([]byte{1, 0}) == 1 {
		return LittleEndian
	}
	return BigEndian
}()

// HostOrder reports the byte order of the running machine.
func HostOrder() ByteOrder { return hostOrder }

// Resolve maps Native to the host order.
func (o ByteOrder) Resolve() ByteOrder {
	if o == Native {
		return hostOrder
	}
	return o
}

// Swaps reports whether data in order o must be byte swapped on this host.
func (o ByteOrder) Swaps() bool {
	return o != Native && o != hostOrder
}

// ParseArch parses an architecture string. Unsupported names fall back to
// Native, which applies no conversion.
func ParseArch(arch string) ByteOrder {
	switch strings.ToLower(strings.TrimSpace(arch)) {
	case "ieee-be", "b", "ieee-be.l64", "s":
		return BigEndian
	case "ieee-le", "l", "ieee-le.l64", "a":
		return LittleEndian
	}
	return Native
}

// KnownArch reports whether arch names a supported architecture.
func KnownArch(arch string) bool {
	switch strings.ToLower(strings.TrimSpace(arch)) {
	case "native", "n", "ieee-be", "b", "ieee-be.l64", "s", "ieee-le", "l", "ieee-le.l64", "a":
		return true
	}
	return false
}
