package main

import (
	"testing"

	"github.com/dhamidi/octio/binio"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want binio.Size
	}{
		{"Inf", binio.All},
		{"10", binio.Count(10)},
		{"2x3", binio.Size{Rows: 2, Cols: 3}},
		{"4xinf", binio.Size{Rows: 4, Cols: binio.Inf}},
	}
	for _, tt := range tests {
		got, err := parseSize(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}
	for _, bad := range []string{"", "x", "-1", "2x", "ax3"} {
		_, err := parseSize(bad)
		require.Error(t, err, bad)
	}
}

func TestTextscanConfig(t *testing.T) {
	cfg, err := textscanConfig([]string{"Delimiter=,", "EmptyValue=-1", "HeaderLines=2"})
	require.NoError(t, err)
	require.Equal(t, []string{","}, cfg.Delimiters)
	require.Equal(t, -1.0, cfg.EmptyValue)
	require.Equal(t, 2, cfg.HeaderLines)

	_, err = textscanConfig([]string{"Delimiter"})
	require.Error(t, err)
	_, err = textscanConfig([]string{"Bogus=1"})
	require.Error(t, err)
}

func TestWriteValues(t *testing.T) {
	v, err := writeValues([]string{"1", "-2.5"}, false)
	require.NoError(t, err)
	require.Equal(t, []float64{1, -2.5}, v)

	v, err = writeValues([]string{"hi", "there"}, true)
	require.NoError(t, err)
	require.Equal(t, "hi there", v)

	_, err = writeValues([]string{"x"}, false)
	require.Error(t, err)
}
