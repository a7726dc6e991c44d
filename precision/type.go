package precision

import (
	"math"
	"strings"
)

// Type is the element type of a binary read or write.
type Type uint8

const (
	Invalid Type = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Single
	Double
	Char
)

var typeNames = [...]string{
	Invalid: "invalid",
	Int8:    "int8",
	Uint8:   "uint8",
	Int16:   "int16",
	Uint16:  "uint16",
	Int32:   "int32",
	Uint32:  "uint32",
	Int64:   "int64",
	Uint64:  "uint64",
	Single:  "single",
	Double:  "double",
	Char:    "char",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "invalid"
}

// Size is the width of one element in bytes.
func (t Type) Size() int {
	switch t {
	case Int8, Uint8, Char:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Single:
		return 4
	case Int64, Uint64, Double:
		return 8
	}
	return 0
}

func (t Type) Valid() bool   { return t > Invalid && t <= Char }
func (t Type) Float() bool   { return t == Single || t == Double }
func (t Type) Integer() bool { return t.Valid() && !t.Float() && t != Char }

func (t Type) Signed() bool {
	switch t {
	case Int8, Int16, Int32, Int64, Single, Double:
		return true
	}
	return false
}

// Min returns the smallest value of an integer type. Char behaves as uint8.
func (t Type) Min() int64 {
	switch t {
	case Int8:
		return math.MinInt8
	case Int16:
		return math.MinInt16
	case Int32:
		return math.MinInt32
	case Int64:
		return math.MinInt64
	}
	return 0
}

// Max returns the largest value of an integer type. Char behaves as uint8.
func (t Type) Max() uint64 {
	switch t {
	case Int8:
		return math.MaxInt8
	case Uint8, Char:
		return math.MaxUint8
	case Int16:
		return math.MaxInt16
	case Uint16:
		return math.MaxUint16
	case Int32:
		return math.MaxInt32
	case Uint32:
		return math.MaxUint32
	case Int64:
		return math.MaxInt64
	case Uint64:
		return math.MaxUint64
	}
	return 0
}

// Word-size dependent names resolve for an LP64 host.
var typeAliases = map[string]Type{
	"int8":           Int8,
	"schar":          Int8,
	"signed char":    Int8,
	"integer*1":      Int8,
	"uint8":          Uint8,
	"uchar":          Uint8,
	"unsigned char":  Uint8,
	"int16":          Int16,
	"short":          Int16,
	"integer*2":      Int16,
	"uint16":         Uint16,
	"ushort":         Uint16,
	"unsigned short": Uint16,
	"int32":          Int32,
	"int":            Int32,
	"integer*4":      Int32,
	"uint32":         Uint32,
	"uint":           Uint32,
	"unsigned int":   Uint32,
	"int64":          Int64,
	"long":           Int64,
	"integer*8":      Int64,
	"uint64":         Uint64,
	"ulong":          Uint64,
	"unsigned long":  Uint64,
	"single":         Single,
	"float":          Single,
	"float32":        Single,
	"real*4":         Single,
	"double":         Double,
	"float64":        Double,
	"real*8":         Double,
	"char":           Char,
	"char*1":         Char,
}

// ParseType resolves a type name or alias. Matching ignores case and
// surrounding blanks.
func ParseType(name string) (Type, error) {
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if t, ok := typeAliases[key]; ok {
		return t, nil
	}
	return Invalid, &Error{Token: name}
}
