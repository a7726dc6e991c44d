package format

import (
	"io"
	"math"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type JSONEncoder struct {
	w     io.Writer
	table *Table
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(t *Table) error {
	e.table = t
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildTableData(), "", "  ")
}

type jsonTable struct {
	Columns  []jsonColumn `json:"columns"`
	Count    int          `json:"count"`
	Message  string       `json:"message,omitempty"`
	Position int64        `json:"position"`
}

type jsonColumn struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Values []any  `json:"values"`
}

type jsonComplex struct {
	Re any `json:"re"`
	Im any `json:"im"`
}

func (e *JSONEncoder) buildTableData() jsonTable {
	t := e.table
	data := jsonTable{
		Columns:  make([]jsonColumn, 0, len(t.Series)),
		Count:    t.Count,
		Message:  t.Message,
		Position: t.Position,
	}
	for _, s := range t.Series {
		col := jsonColumn{Name: s.Name, Type: s.Type, Values: make([]any, len(s.Values))}
		for i, v := range s.Values {
			col.Values[i] = jsonValue(v)
		}
		data.Columns = append(data.Columns, col)
	}
	return data
}

// jsonValue maps values JSON cannot carry: non-finite floats become the
// strings Inf, -Inf and NaN, complex numbers become {re, im} objects.
func jsonValue(v any) any {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return formatFloat(v)
		}
		return v
	case complex128:
		return jsonComplex{Re: jsonValue(real(v)), Im: jsonValue(imag(v))}
	}
	return v
}
