package textscan

import (
	"testing"

	"github.com/dhamidi/octio/stream"
	"github.com/stretchr/testify/require"
)

func TestSscanf(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		format  string
		limit   int
		want    []float64
		message bool
	}{
		{"cycles format", "1 2 3", "%d", -1, []float64{1, 2, 3}, false},
		{"stops on mismatch", "3 4 a", "%d", -1, []float64{3, 4}, true},
		{"limit", "1 2 3 4", "%d", 2, []float64{1, 2}, false},
		{"auto base", "0x1A 017 9 -5", "%i", -1, []float64{26, 15, 9, -5}, false},
		{"hex and octal", "ff 17", "%x %o", -1, []float64{255, 15}, false},
		{"literals", "a=1.5,b=2", "a=%f,b=%d", -1, []float64{1.5, 2}, false},
		{"floats", "1e3 -2.5 inf", "%f", -1, []float64{1000, -2.5, posInf}, false},
		{"width", "12345", "%2d", -1, []float64{12, 34, 5}, false},
		{"skip", "1 2 3 4", "%d %*d", -1, []float64{1, 3}, false},
		{"chars", "abc", "%c", -1, []float64{97, 98, 99}, false},
		{"modifiers", "7 8", "%ld %hd", -1, []float64{7, 8}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Sscanf(tt.text, tt.format, tt.limit)
			require.NoError(t, err)
			require.Equal(t, tt.want, res.Float64s())
			if tt.message {
				require.NotEmpty(t, res.Message)
			} else {
				require.Empty(t, res.Message)
			}
		})
	}
}

var posInf = func() float64 {
	var zero float64
	return 1 / zero
}()

func TestSscanfText(t *testing.T) {
	res, err := Sscanf("hello world", "%s", -1)
	require.NoError(t, err)
	text, ok := res.Text()
	require.True(t, ok)
	require.Equal(t, "helloworld", text)
	require.Equal(t, 2, res.Count)

	res, err = Sscanf("id: 42 name: bob", "id: %d name: %[a-z]", -1)
	require.NoError(t, err)
	require.Len(t, res.Values, 2)
	require.Equal(t, 42.0, res.Values[0].Num)
	require.Equal(t, "bob", res.Values[1].Text)
	_, ok = res.Text()
	require.False(t, ok)
}

func TestScanfPosition(t *testing.T) {
	s := stream.NewString("10 20 x 30")
	res, err := Scanf(s, "%d", -1)
	require.NoError(t, err)
	require.Equal(t, []float64{10, 20}, res.Float64s())
	require.Equal(t, int64(6), res.Position)
	require.Equal(t, int64(6), s.Tell())

	line, err := s.GetLine(false)
	require.NoError(t, err)
	require.Equal(t, "x 30", line)
}

func TestScanfFormatErrors(t *testing.T) {
	for _, format := range []string{"%", "%y", "%[abc"} {
		_, err := Sscanf("1", format, -1)
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr, format)
	}
}
