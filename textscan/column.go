package textscan

import (
	"fmt"

	"github.com/dhamidi/octio/precision"
)

// Column holds the values of one output column, or of several adjacent
// columns merged by CollectOutput, stored column-major. Type is the
// element type; text columns use precision.Char and fill Strings.
type Column struct {
	Type precision.Type
	// Width is the number of directives merged into the column.
	Width int

	Floats []float64
	// Imag holds imaginary parts, parallel to Floats. It is nil until a
	// complex value is stored.
	Imag    []float64
	Ints    []int64
	Uints   []uint64
	Strings []string
}

func newColumn(t precision.Type) *Column {
	return &Column{Type: t, Width: 1}
}

// Text reports whether the column holds strings.
func (c *Column) Text() bool { return c.Type == precision.Char }

func (c *Column) size() int {
	switch {
	case c.Text():
		return len(c.Strings)
	case c.Type.Float():
		return len(c.Floats)
	case c.Type.Signed():
		return len(c.Ints)
	}
	return len(c.Uints)
}

// Len returns the number of rows.
func (c *Column) Len() int {
	if c.Width <= 1 {
		return c.size()
	}
	return c.size() / c.Width
}

func (c *Column) appendNumber(n number) {
	switch {
	case c.Type.Float():
		re, im := n.re, n.im
		if c.Type == precision.Single {
			re, im = float64(float32(re)), float64(float32(im))
		}
		if n.complex && c.Imag == nil {
			c.Imag = make([]float64, len(c.Floats), cap(c.Floats))
		}
		c.Floats = append(c.Floats, re)
		if c.Imag != nil {
			c.Imag = append(c.Imag, im)
		}
	case c.Type.Signed():
		i, _ := convertInt(n, c.Type)
		c.Ints = append(c.Ints, i)
	default:
		_, u := convertInt(n, c.Type)
		c.Uints = append(c.Uints, u)
	}
}

func (c *Column) appendString(s string) {
	c.Strings = append(c.Strings, s)
}

// appendEmpty stores the value of an empty field: empty for numeric
// columns and "" for text.
func (c *Column) appendEmpty(empty float64) {
	if c.Text() {
		c.appendString("")
		return
	}
	c.appendNumber(number{re: empty})
}

func (c *Column) padTo(n int, empty float64) {
	for c.size() < n {
		c.appendEmpty(empty)
	}
}

// Float64s returns the real parts of a numeric column as float64.
func (c *Column) Float64s() []float64 {
	switch {
	case c.Text():
		return nil
	case c.Type.Float():
		return c.Floats
	case c.Type.Signed():
		out := make([]float64, len(c.Ints))
		for i, v := range c.Ints {
			out[i] = float64(v)
		}
		return out
	}
	out := make([]float64, len(c.Uints))
	for i, v := range c.Uints {
		out[i] = float64(v)
	}
	return out
}

// Value returns element i as float64, complex128, int64, uint64 or string.
func (c *Column) Value(i int) any {
	switch {
	case c.Text():
		return c.Strings[i]
	case c.Type.Float():
		if c.Imag != nil {
			return complex(c.Floats[i], c.Imag[i])
		}
		return c.Floats[i]
	case c.Type.Signed():
		return c.Ints[i]
	}
	return c.Uints[i]
}

// Complex reports whether any element has an imaginary part.
func (c *Column) Complex() bool { return c.Imag != nil }

func (c *Column) String() string {
	return fmt.Sprintf("%s[%dx%d]", c.Type, c.Len(), max(c.Width, 1))
}

// merge appends src to c column-wise. Both must have the same number of
// rows.
func (c *Column) merge(src *Column) {
	if src.Imag != nil && c.Imag == nil {
		c.Imag = make([]float64, len(c.Floats))
	}
	c.Floats = append(c.Floats, src.Floats...)
	if c.Imag != nil {
		if src.Imag != nil {
			c.Imag = append(c.Imag, src.Imag...)
		} else {
			c.Imag = append(c.Imag, make([]float64, len(src.Floats))...)
		}
	}
	c.Ints = append(c.Ints, src.Ints...)
	c.Uints = append(c.Uints, src.Uints...)
	c.Strings = append(c.Strings, src.Strings...)
	c.Width += src.Width
}

// collect merges runs of adjacent columns of the same type into one
// column, padding the shorter ones with the empty value.
func collect(cols []*Column, empty float64) []*Column {
	var out []*Column
	for i := 0; i < len(cols); {
		j := i + 1
		for j < len(cols) && cols[j].Type == cols[i].Type {
			j++
		}
		group := cols[i:j]
		rows := 0
		for _, c := range group {
			rows = max(rows, c.Len())
		}
		merged := group[0]
		merged.padTo(rows, empty)
		for _, c := range group[1:] {
			c.padTo(rows, empty)
			merged.merge(c)
		}
		out = append(out, merged)
		i = j
	}
	return out
}
