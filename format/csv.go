package format

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// CSVEncoder writes a header of series names followed by one record per
// row.
type CSVEncoder struct {
	w      io.Writer
	table  *Table
	comma  rune
	header bool
}

type CSVOption func(*CSVEncoder)

func WithComma(comma rune) CSVOption {
	return func(e *CSVEncoder) {
		e.comma = comma
	}
}

func WithHeader(header bool) CSVOption {
	return func(e *CSVEncoder) {
		e.header = header
	}
}

func NewCSVEncoder(w io.Writer, opts ...CSVOption) *CSVEncoder {
	e := &CSVEncoder{w: w, comma: ',', header: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *CSVEncoder) Encode(t *Table) error {
	e.table = t
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *CSVEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Comma = e.comma
	t := e.table

	if e.header {
		names := make([]string, len(t.Series))
		for i, s := range t.Series {
			names[i] = s.Name
		}
		if err := cw.Write(names); err != nil {
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i := range t.Rows() {
		record := make([]string, len(t.Series))
		for j, s := range t.Series {
			if i < len(s.Values) {
				record[j] = cell(s.Values[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
