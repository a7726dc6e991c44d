package format

import (
	"bytes"
	"testing"

	"github.com/dhamidi/octio/binio"
	"github.com/dhamidi/octio/precision"
	"github.com/dhamidi/octio/textscan"
	"github.com/stretchr/testify/require"
)

func scanTable(t *testing.T, text, format string, opts ...textscan.Option) *Table {
	t.Helper()
	res, err := textscan.ScanString(text, format, opts...)
	require.NoError(t, err)
	return FromResult(res)
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	err := NewLineEncoder(&buf).Encode(scanTable(t, "1 2 3\n4", "%f %f %f"))
	require.NoError(t, err)
	require.Equal(t, "1\t2\t3\n4\t\t\n", buf.String())
}

func TestCSVEncoder(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVEncoder(&buf).Encode(scanTable(t, "1 a\n2.5 \"b c\"\n", "%f %q"))
	require.NoError(t, err)
	require.Equal(t, "c1,c2\n1,a\n2.5,b c\n", buf.String())

	buf.Reset()
	err = NewCSVEncoder(&buf, WithComma(';'), WithHeader(false)).Encode(scanTable(t, "1 2\n3 4\n", "%d %d"))
	require.NoError(t, err)
	require.Equal(t, "1;2\n3;4\n", buf.String())
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	table := scanTable(t, "1,,3+4i\n", "%f %f %f", textscan.WithDelimiter(","))
	require.NoError(t, NewJSONEncoder(&buf).Encode(table))

	var got struct {
		Columns []struct {
			Name   string `json:"name"`
			Type   string `json:"type"`
			Values []any  `json:"values"`
		} `json:"columns"`
		Count    int   `json:"count"`
		Position int64 `json:"position"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Columns, 3)
	require.Equal(t, "c1", got.Columns[0].Name)
	require.Equal(t, []any{1.0}, got.Columns[0].Values)
	require.Equal(t, []any{"NaN"}, got.Columns[1].Values)
	require.Equal(t, "double complex", got.Columns[2].Type)
	require.Equal(t, []any{map[string]any{"re": 3.0, "im": 4.0}}, got.Columns[2].Values)
	require.Equal(t, 3, got.Count)
	require.Equal(t, int64(8), got.Position)
}

func TestFromResultSplitsCollectedColumns(t *testing.T) {
	table := scanTable(t, "1 2 x\n3 4 y\n", "%d %d %s", textscan.WithCollectOutput(true))
	require.Len(t, table.Series, 3)
	require.Equal(t, "c1.1", table.Series[0].Name)
	require.Equal(t, []any{int64(1), int64(3)}, table.Series[0].Values)
	require.Equal(t, "c1.2", table.Series[1].Name)
	require.Equal(t, []any{int64(2), int64(4)}, table.Series[1].Values)
	require.Equal(t, "c2", table.Series[2].Name)
	require.Equal(t, []any{"x", "y"}, table.Series[2].Values)
}

func TestFromArray(t *testing.T) {
	a := &binio.Array{Type: precision.Int16, Rows: 2, Cols: 2, Data: []int16{1, 2, 3, -4}}
	table := FromArray(a)
	require.Len(t, table.Series, 2)
	require.Equal(t, []any{int64(1), int64(2)}, table.Series[0].Values)
	require.Equal(t, []any{int64(3), int64(-4)}, table.Series[1].Values)

	u := &binio.Array{Type: precision.Uint64, Rows: 1, Cols: 1, Data: []uint64{1<<64 - 1}}
	require.Equal(t, []any{uint64(1<<64 - 1)}, FromArray(u).Series[0].Values)

	c := &binio.Array{Type: precision.Char, Rows: 2, Cols: 1, Data: []byte("hi")}
	require.Equal(t, []any{"hi"}, FromArray(c).Series[0].Values)
}

func TestFromScanf(t *testing.T) {
	res, err := textscan.Sscanf("1 2 3", "%d", -1)
	require.NoError(t, err)
	table := FromScanf(res)
	require.Equal(t, []any{1.0, 2.0, 3.0}, table.Series[0].Values)

	res, err = textscan.Sscanf("ab", "%s", -1)
	require.NoError(t, err)
	require.Equal(t, []any{"ab"}, FromScanf(res).Series[0].Values)
}

func TestCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{1.5, "1.5"},
		{complex(1, -2), "1-2i"},
		{complex(0, 3), "0+3i"},
		{int64(-7), "-7"},
		{uint64(7), "7"},
		{"s", "s"},
	}
	for _, tt := range tests {
		if got := cell(tt.in); got != tt.want {
			t.Errorf("cell(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewEncoder(t *testing.T) {
	for _, name := range []string{"json", "line", "csv"} {
		_, err := NewEncoder(name, &bytes.Buffer{})
		require.NoError(t, err, name)
	}
	_, err := NewEncoder("xml", &bytes.Buffer{})
	require.Error(t, err)
}
