package format

import (
	"io"
	"strings"
)

// LineEncoder writes one row per line with tab separated cells. Cells of
// short series are left empty.
type LineEncoder struct {
	w     io.Writer
	table *Table
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(t *Table) error {
	e.table = t
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	t := e.table
	cells := make([]string, len(t.Series))
	for i := range t.Rows() {
		for j, s := range t.Series {
			cells[j] = ""
			if i < len(s.Values) {
				cells[j] = cell(s.Values[i])
			}
		}
		sb.WriteString(strings.Join(cells, "\t"))
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}
