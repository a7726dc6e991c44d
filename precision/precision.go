// Package precision parses the precision strings that describe typed
// binary reads and writes, and the architecture strings that select byte
// order.
//
// A precision string has the form
//
//	[count*]type[=>outtype]
//
// or the shorthand *type, which reads type and keeps it as type.
package precision

import (
	"fmt"
	"strconv"
	"strings"
)

// Error reports a malformed precision string.
type Error struct {
	Token string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid PRECISION specified: %q", e.Token)
}

// Spec is a parsed precision string.
type Spec struct {
	// Count is the number of elements per block. Skips happen between blocks.
	Count int
	In    Type
	Out   Type
}

func (s Spec) String() string {
	if s.Count > 1 {
		return fmt.Sprintf("%d*%s=>%s", s.Count, s.In, s.Out)
	}
	return fmt.Sprintf("%s=>%s", s.In, s.Out)
}

// Parse parses a precision string for reading. The output type defaults to
// double.
func Parse(spec string) (Spec, error) {
	return parse(spec, false)
}

// ParseWrite parses a precision string for writing. Elements are written in
// the raw representation of the input type; an output type, if present,
// must still be valid but is otherwise ignored.
func ParseWrite(spec string) (Spec, error) {
	return parse(spec, true)
}

func parse(spec string, write bool) (Spec, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return Spec{}, &Error{Token: spec}
	}

	result := Spec{Count: 1}
	keep := false

	if rest, ok := strings.CutPrefix(s, "*"); ok {
		keep = true
		s = rest
	} else if count, rest, ok := strings.Cut(s, "*"); ok && isCount(count) {
		// integer*4 and real*8 contain a star too; only a leading number is a count.
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || n <= 0 {
			return Spec{}, &Error{Token: count}
		}
		result.Count = n
		s = rest
		if r, ok := strings.CutPrefix(strings.TrimSpace(s), "*"); ok {
			keep = true
			s = r
		}
	}

	in, out, hasOut := strings.Cut(s, "=>")
	t, err := ParseType(in)
	if err != nil {
		return Spec{}, err
	}
	result.In = t
	result.Out = Double

	switch {
	case hasOut:
		if keep {
			return Spec{}, &Error{Token: spec}
		}
		o, err := ParseType(out)
		if err != nil {
			return Spec{}, err
		}
		result.Out = o
	case keep:
		result.Out = t
	}

	if write {
		result.Out = result.In
	}
	return result, nil
}

func isCount(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			if r == '-' || r == '+' {
				continue
			}
			return false
		}
	}
	return true
}
