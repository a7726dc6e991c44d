package format

import (
	"encoding"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/dhamidi/octio/binio"
	"github.com/dhamidi/octio/precision"
	"github.com/dhamidi/octio/textscan"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(t *Table) error
}

// NewEncoder returns the encoder called name: json, line or csv.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	case "csv":
		return NewCSVEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s (expected json, line, or csv)", name)
}

// Series is one named column of a table. Values hold float64, complex128,
// int64, uint64 or string elements.
type Series struct {
	Name   string
	Type   string
	Values []any
}

// Table is the common shape of scan and read results. Series may differ
// in length.
type Table struct {
	Series   []Series
	Count    int
	Message  string
	Position int64
}

// Rows returns the length of the longest series.
func (t *Table) Rows() int {
	n := 0
	for _, s := range t.Series {
		n = max(n, len(s.Values))
	}
	return n
}

// FromResult lays out a textscan result. Columns merged by CollectOutput
// are split back into one series per merged directive.
func FromResult(res *textscan.Result) *Table {
	t := &Table{Count: res.Count, Message: res.Message, Position: res.Position}
	for i, c := range res.Columns {
		rows := c.Len()
		width := max(c.Width, 1)
		for j := range width {
			name := fmt.Sprintf("c%d", i+1)
			if width > 1 {
				name = fmt.Sprintf("c%d.%d", i+1, j+1)
			}
			s := Series{Name: name, Type: columnType(c)}
			for k := range rows {
				s.Values = append(s.Values, c.Value(j*rows+k))
			}
			t.Series = append(t.Series, s)
		}
	}
	return t
}

func columnType(c *textscan.Column) string {
	switch {
	case c.Text():
		return "string"
	case c.Complex():
		return c.Type.String() + " complex"
	}
	return c.Type.String()
}

// FromArray lays out a typed read, one series per column.
func FromArray(a *binio.Array) *Table {
	t := &Table{Count: a.Len()}
	if a.Type == precision.Char {
		t.Series = []Series{{Name: "c1", Type: "char", Values: []any{a.String()}}}
		return t
	}
	values := arrayValues(a)
	for j := range a.Cols {
		t.Series = append(t.Series, Series{
			Name:   fmt.Sprintf("c%d", j+1),
			Type:   a.Type.String(),
			Values: values[j*a.Rows : (j+1)*a.Rows],
		})
	}
	return t
}

func arrayValues(a *binio.Array) []any {
	out := make([]any, 0, a.Len())
	switch d := a.Data.(type) {
	case []int64:
		for _, v := range d {
			out = append(out, v)
		}
	case []uint64:
		for _, v := range d {
			out = append(out, v)
		}
	default:
		for _, v := range a.Float64s() {
			out = append(out, elementValue(a.Type, v))
		}
	}
	return out
}

func elementValue(t precision.Type, v float64) any {
	switch {
	case t.Float():
		return v
	case t.Signed():
		return int64(v)
	}
	return uint64(v)
}

// FromScanf lays out scanf values in one series.
func FromScanf(res *textscan.ScanfResult) *Table {
	t := &Table{Count: res.Count, Message: res.Message, Position: res.Position}
	s := Series{Name: "values", Type: "double"}
	if text, ok := res.Text(); ok {
		s.Type = "char"
		s.Values = []any{text}
	} else {
		for _, v := range res.Float64s() {
			s.Values = append(s.Values, v)
		}
	}
	t.Series = []Series{s}
	return t
}

// cell renders one value as text. Non-finite floats print as Inf, -Inf
// and NaN.
func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatFloat(v)
	case complex128:
		im := imag(v)
		sign := "+"
		if im < 0 || (im == 0 && math.Signbit(im)) {
			sign = "-"
			im = -im
		}
		return formatFloat(real(v)) + sign + formatFloat(im) + "i"
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
