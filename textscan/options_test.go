package textscan

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/dhamidi/octio/precision"
	"github.com/dhamidi/octio/stream"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Whitespace != " \b\t" {
		t.Errorf("Whitespace = %q", c.Whitespace)
	}
	if !math.IsNaN(c.EmptyValue) {
		t.Errorf("EmptyValue = %v, want NaN", c.EmptyValue)
	}
	if c.BufSize != 4096 || !c.ReturnOnError || c.MultipleDelimsAsOne || c.CollectOutput || !c.AutoEOL {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestSetOptions(t *testing.T) {
	c, err := FromPairs(
		"delimiter", `,\t`,
		"EmptyValue", -10,
		"HEADERLINES", "2",
		"MultipleDelimsAsOne", 1,
		"CommentStyle", []string{"/*", "*/"},
		"EndOfLine", `\r\n`,
		"TreatAsEmpty", []string{"NA", "--"},
		"ReturnOnError", false,
		"CollectOutput", "true",
		"BufSize", 16,
	)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Delimiters:          []string{",", "\t"},
		Whitespace:          " \b\t",
		CommentStart:        "/*",
		CommentEnd:          "*/",
		EmptyValue:          -10,
		EndOfLine:           "\r\n",
		HeaderLines:         2,
		MultipleDelimsAsOne: true,
		TreatAsEmpty:        []string{"NA", "--"},
		CollectOutput:       true,
		BufSize:             16,
		ExpChars:            "eEdD",
		Repeat:              -1,
	}
	if !reflect.DeepEqual(c, want) {
		t.Errorf("got  %+v\nwant %+v", c, want)
	}
}

func TestConfigCopiesAreIndependent(t *testing.T) {
	base, err := NewConfig(WithDelimiter(",;"))
	if err != nil {
		t.Fatal(err)
	}
	other := base
	if err := other.Set("Delimiter", "|"); err != nil {
		t.Fatal(err)
	}
	if want := []string{",", ";"}; !reflect.DeepEqual(base.Delimiters, want) {
		t.Errorf("base.Delimiters = %q, want %q", base.Delimiters, want)
	}
	if want := []string{"|"}; !reflect.DeepEqual(other.Delimiters, want) {
		t.Errorf("other.Delimiters = %q, want %q", other.Delimiters, want)
	}

	values := []string{"NA", "--"}
	c, err := NewConfig(WithTreatAsEmpty(values...))
	if err != nil {
		t.Fatal(err)
	}
	values[0] = "changed"
	if c.TreatAsEmpty[0] != "NA" {
		t.Errorf("TreatAsEmpty shares the caller's slice: %q", c.TreatAsEmpty)
	}
}

func TestSetRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name  string
		value any
		token string
	}{
		{"Bogus", 1, "Bogus"},
		{"HeaderLines", -1, "HeaderLines"},
		{"HeaderLines", 1.5, "HeaderLines"},
		{"BufSize", 0, "BufSize"},
		{"EndOfLine", "x", "EndOfLine"},
		{"CommentStyle", []string{"a", "b", "c"}, "CommentStyle"},
		{"EmptyValue", "abc", "EmptyValue"},
		{"Delimiter", 3, "Delimiter"},
		{"ReturnOnError", "maybe", "ReturnOnError"},
	}
	for _, tt := range tests {
		c := DefaultConfig()
		err := c.Set(tt.name, tt.value)
		var oerr *OptionError
		if !errors.As(err, &oerr) {
			t.Errorf("Set(%q, %v) = %v, want *OptionError", tt.name, tt.value, err)
			continue
		}
		if oerr.Name != tt.token {
			t.Errorf("Set(%q, %v) names %q, want %q", tt.name, tt.value, oerr.Name, tt.token)
		}
	}
}

func TestNamedCommentStyles(t *testing.T) {
	tests := []struct {
		style      string
		start, end string
	}{
		{"matlab", "%", ""},
		{"shell", "#", ""},
		{"c", "/*", "*/"},
		{"C++", "//", ""},
		{";", ";", ""},
	}
	for _, tt := range tests {
		c, err := NewConfig(WithCommentStyle(tt.style))
		if err != nil {
			t.Fatal(err)
		}
		if c.CommentStart != tt.start || c.CommentEnd != tt.end {
			t.Errorf("%s: got %q %q, want %q %q", tt.style, c.CommentStart, c.CommentEnd, tt.start, tt.end)
		}
	}
}

func TestUnescape(t *testing.T) {
	tests := map[string]string{
		`a\tb`: "a\tb",
		`\r\n`: "\r\n",
		`\\`:   `\`,
		`\q`:   `\q`,
		`end\`: `end\`,
		"none": "none",
	}
	for in, want := range tests {
		if got := unescape(in); got != want {
			t.Errorf("unescape(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		format  string
		dirs    []string
		columns []precision.Type
	}{
		{"%f %d %s", []string{"%f", "%d", "%s"}, []precision.Type{precision.Double, precision.Int32, precision.Char}},
		{"%*f%5.2f", []string{"%*f", "%5.2f"}, []precision.Type{precision.Double}},
		{"%f32%f64%n", []string{"%f32", "%f", "%f"}, []precision.Type{precision.Single, precision.Double, precision.Double}},
		{"%d8%d16%d32%d64", []string{"%d8", "%d16", "%d", "%d64"}, []precision.Type{precision.Int8, precision.Int16, precision.Int32, precision.Int64}},
		{"%u8%u16%u%u64", []string{"%u8", "%u16", "%u", "%u64"}, []precision.Type{precision.Uint8, precision.Uint16, precision.Uint32, precision.Uint64}},
		{"x=%f, 100%%", []string{"x=", "%f", ",", "100%"}, []precision.Type{precision.Double}},
		{"%q%3c%[]a-z]%[^,]", []string{"%q", "%3c", "%[]a-z]", "%[^,]"}, []precision.Type{precision.Char, precision.Char, precision.Char, precision.Char}},
		{"", []string{}, nil},
	}
	for _, tt := range tests {
		f, err := ParseFormat(tt.format)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tt.format, err)
			continue
		}
		if got := f.Directives(); !reflect.DeepEqual(got, tt.dirs) {
			t.Errorf("ParseFormat(%q) directives = %q, want %q", tt.format, got, tt.dirs)
		}
		if got := f.Columns(); !reflect.DeepEqual(got, tt.columns) {
			t.Errorf("ParseFormat(%q) columns = %v, want %v", tt.format, got, tt.columns)
		}
	}
}

func TestParseFormatErrors(t *testing.T) {
	tests := []struct {
		format   string
		fragment string
	}{
		{"%f %k", "%k"},
		{"%", "%"},
		{"%5", "%5"},
		{"%[abc", "%[abc"},
		{"%.2d", "%.2d"},
		{"%3.1s", "%3.1s"},
	}
	for _, tt := range tests {
		_, err := ParseFormat(tt.format)
		var ferr *FormatError
		if !errors.As(err, &ferr) {
			t.Errorf("ParseFormat(%q) = %v, want *FormatError", tt.format, err)
			continue
		}
		if ferr.Fragment != tt.fragment {
			t.Errorf("ParseFormat(%q) fragment = %q, want %q", tt.format, ferr.Fragment, tt.fragment)
		}
		if ferr.Format != tt.format {
			t.Errorf("ParseFormat(%q) format = %q", tt.format, ferr.Format)
		}
	}
}

func TestClassifyPriority(t *testing.T) {
	cfg, err := NewConfig(
		WithDelimiters(",", "::", "\t"),
		WithCommentStyle("::!"),
	)
	if err != nil {
		t.Fatal(err)
	}
	cls := newClassifier(&cfg)
	tests := []struct {
		text string
		want Class
		n    int
	}{
		{"::!x", Comment, 3},
		{"::x", Delimiter, 2},
		{",", Delimiter, 1},
		{"\tx", Delimiter, 1},
		{" x", Whitespace, 1},
		{"\r\nx", EndOfLine, 2},
		{"\rx", EndOfLine, 1},
		{"\n", EndOfLine, 1},
		{"x", Literal, 1},
		{"", EndOfInput, 0},
	}
	for _, tt := range tests {
		in := newInput(stream.NewString(tt.text), 1)
		got, n := cls.classify(in)
		if got != tt.want || n != tt.n {
			t.Errorf("classify(%q) = %s/%d, want %s/%d", tt.text, got, n, tt.want, tt.n)
		}
	}
}

func TestInputWindow(t *testing.T) {
	in := newInput(stream.NewString("abcdefgh"), 3)
	if !in.hasPrefix([]byte("abcde")) {
		t.Fatal("prefix across chunks not found")
	}
	in.skip(4)
	m := in.mark()
	in.skip(2)
	if got := in.text(m); got != "ef" {
		t.Errorf("text = %q, want %q", got, "ef")
	}
	in.release()
	if in.offset() != 6 {
		t.Errorf("offset = %d, want 6", in.offset())
	}
	if pos := in.finish(); pos != 6 {
		t.Errorf("finish = %d, want 6", pos)
	}
}
