package textscan

import (
	"strings"

	"github.com/dhamidi/octio/precision"
)

// Format is a parsed format string.
type Format struct {
	src  string
	dirs []directive
}

// ParseFormat parses a format made of conversions
// %[*][width][.prec]{f|f32|f64|n|d|d8|d16|d32|d64|u|u8|u16|u32|u64|s|q|c|[...]|[^...]}
// and literal text. Whitespace separates directives and is otherwise
// ignored. %% is a literal percent sign.
func ParseFormat(format string) (*Format, error) {
	f := &Format{src: format}
	text := unescape(format)
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			f.dirs = append(f.dirs, literalDirective{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case isFormatSpace(c):
			flush()
			i++
		case c == '%' && i+1 < len(text) && text[i+1] == '%':
			lit.WriteByte('%')
			i += 2
		case c == '%':
			flush()
			d, n, err := parseConversion(text[i:])
			if err != nil {
				err.Format = format
				return nil, err
			}
			f.dirs = append(f.dirs, d)
			i += n
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return f, nil
}

func isFormatSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\b', '\v', '\f':
		return true
	}
	return false
}

func (f *Format) String() string { return f.src }

// Empty reports whether the format has no directives. An empty format
// scans as many %f columns as the first data line has fields.
func (f *Format) Empty() bool { return len(f.dirs) == 0 }

// Columns returns the element type of each output column, in order.
func (f *Format) Columns() []precision.Type {
	var out []precision.Type
	for _, d := range f.dirs {
		if t := d.output(); t != precision.Invalid {
			out = append(out, t)
		}
	}
	return out
}

// Directives returns the directives in canonical form.
func (f *Format) Directives() []string {
	out := make([]string, len(f.dirs))
	for i, d := range f.dirs {
		out[i] = d.String()
	}
	return out
}

func repeatFloat(n int) *Format {
	f := &Format{src: strings.Repeat("%f", n)}
	for range n {
		f.dirs = append(f.dirs, numericDirective{typ: precision.Double, prec: -1})
	}
	return f
}

// parseConversion parses the conversion at the start of s, which begins
// with '%', and returns it with the number of bytes it spans.
func parseConversion(s string) (directive, int, *FormatError) {
	i := 1
	skip := false
	if i < len(s) && s[i] == '*' {
		skip = true
		i++
	}
	width, i := parseDigits(s, i)
	prec := -1
	if i < len(s) && s[i] == '.' {
		prec, i = parseDigits(s, i+1)
	}
	fail := func(end int, reason string) (directive, int, *FormatError) {
		return nil, 0, &FormatError{Fragment: s[:min(end, len(s))], Reason: reason}
	}
	if i == len(s) {
		return fail(i, "missing conversion")
	}

	var d directive
	verb := s[i]
	i++
	switch verb {
	case 'f':
		typ := precision.Double
		switch {
		case strings.HasPrefix(s[i:], "32"):
			typ = precision.Single
			i += 2
		case strings.HasPrefix(s[i:], "64"):
			i += 2
		}
		d = numericDirective{typ: typ, width: width, prec: prec}
	case 'n':
		d = numericDirective{typ: precision.Double, width: width, prec: prec}
	case 'd', 'u':
		typ, n := integerType(verb, s[i:])
		i += n
		if prec >= 0 {
			return fail(i, "precision on an integer conversion")
		}
		d = numericDirective{typ: typ, width: width, prec: -1}
	case 's':
		d = stringDirective{width: width}
	case 'q':
		d = quotedDirective{width: width}
	case 'c':
		d = charDirective{width: width}
	case '[':
		end := i
		if end < len(s) && s[end] == '^' {
			end++
		}
		if end < len(s) && s[end] == ']' {
			end++
		}
		j := strings.IndexByte(s[end:], ']')
		if j < 0 {
			return fail(len(s), "unterminated character class")
		}
		end += j
		cd := parseClass(s[i:end])
		cd.width = width
		d = cd
		i = end + 1
	default:
		return fail(i, "unknown conversion")
	}
	if prec >= 0 && verb != 'f' && verb != 'n' {
		return fail(i, "precision on a text conversion")
	}
	if skip {
		d = skipDirective{conv: d}
	}
	return d, i, nil
}

func integerType(verb byte, rest string) (precision.Type, int) {
	sizes := []struct {
		suffix   string
		signed   precision.Type
		unsigned precision.Type
	}{
		{"8", precision.Int8, precision.Uint8},
		{"16", precision.Int16, precision.Uint16},
		{"32", precision.Int32, precision.Uint32},
		{"64", precision.Int64, precision.Uint64},
	}
	for _, sz := range sizes {
		if strings.HasPrefix(rest, sz.suffix) {
			if verb == 'd' {
				return sz.signed, len(sz.suffix)
			}
			return sz.unsigned, len(sz.suffix)
		}
	}
	if verb == 'd' {
		return precision.Int32, 0
	}
	return precision.Uint32, 0
}

func parseDigits(s string, i int) (int, int) {
	n := 0
	for i < len(s) && isDigit(s[i]) {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return n, i
}
