package textscan

import (
	"fmt"
	"strings"

	"github.com/dhamidi/octio/stream"
)

// Value is one value converted by Scanf.
type Value struct {
	Num  float64
	Text string
	// IsText marks values read by %s, %c and %[...].
	IsText bool
}

// ScanfResult is the outcome of Scanf.
type ScanfResult struct {
	Values []Value
	// Count is the number of conversions stored, skipped ones excluded.
	Count    int
	Message  string
	Position int64
}

// Float64s flattens the values into numbers. Text contributes the code of
// each of its characters.
func (r *ScanfResult) Float64s() []float64 {
	var out []float64
	for _, v := range r.Values {
		if !v.IsText {
			out = append(out, v.Num)
			continue
		}
		for i := 0; i < len(v.Text); i++ {
			out = append(out, float64(v.Text[i]))
		}
	}
	return out
}

// Text returns the concatenated values when every value is text.
func (r *ScanfResult) Text() (string, bool) {
	var sb strings.Builder
	for _, v := range r.Values {
		if !v.IsText {
			return "", false
		}
		sb.WriteString(v.Text)
	}
	return sb.String(), len(r.Values) > 0
}

type scanfItem struct {
	verb  byte
	text  string
	skip  bool
	width int
	set   [256]bool
}

const (
	itemSpace   = ' '
	itemLiteral = 'l'
)

func parseScanfFormat(format string) ([]scanfItem, error) {
	text := unescape(format)
	var items []scanfItem
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case isCSpace(c):
			for i < len(text) && isCSpace(text[i]) {
				i++
			}
			items = append(items, scanfItem{verb: itemSpace})
		case c == '%' && i+1 < len(text) && text[i+1] == '%':
			items = append(items, scanfItem{verb: itemLiteral, text: "%"})
			i += 2
		case c == '%':
			it, n, err := parseScanfConversion(text[i:])
			if err != nil {
				err.Format = format
				return nil, err
			}
			items = append(items, it)
			i += n
		default:
			j := i
			for j < len(text) && text[j] != '%' && !isCSpace(text[j]) {
				j++
			}
			items = append(items, scanfItem{verb: itemLiteral, text: text[i:j]})
			i = j
		}
	}
	return items, nil
}

func parseScanfConversion(s string) (scanfItem, int, *FormatError) {
	it := scanfItem{}
	i := 1
	if i < len(s) && s[i] == '*' {
		it.skip = true
		i++
	}
	it.width, i = parseDigits(s, i)
	for i < len(s) && (s[i] == 'h' || s[i] == 'l' || s[i] == 'L') {
		i++
	}
	if i == len(s) {
		return it, 0, &FormatError{Fragment: s, Reason: "missing conversion"}
	}
	it.verb = s[i]
	i++
	switch it.verb {
	case 'd', 'i', 'u', 'x', 'X', 'o', 'f', 'e', 'E', 'g', 'G', 'a', 's', 'c':
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
			return it, 0, &FormatError{Fragment: s, Reason: "unterminated character class"}
		}
		end += j
		it.set = parseClass(s[i:end]).set
		i = end + 1
	default:
		return it, 0, &FormatError{Fragment: s[:i], Reason: "unknown conversion"}
	}
	return it, i, nil
}

func isCSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Scanf reads values from s the way C scanf does, applying format
// repeatedly until the input no longer matches, the input ends, or limit
// values have been stored. A negative limit means no limit.
func Scanf(s *stream.Stream, format string, limit int) (*ScanfResult, error) {
	items, err := parseScanfFormat(format)
	if err != nil {
		return nil, err
	}
	if s.Closed() {
		return nil, fmt.Errorf("scanf: %s: %w", s.Name(), stream.ErrClosed)
	}
	if !s.Mode().Read {
		return nil, fmt.Errorf("scanf: %s: %w", s.Name(), stream.ErrNotReadable)
	}

	in := newInput(s, defaultBufSize)
	res := &ScanfResult{}
	convs := 0
	for _, it := range items {
		if it.verb != itemSpace && it.verb != itemLiteral {
			convs++
		}
	}

pass:
	for {
		start := in.offset()
		for _, it := range items {
			if limit >= 0 && res.Count >= limit {
				break pass
			}
			switch it.verb {
			case itemSpace:
				skipCSpace(in)
				continue
			case itemLiteral:
				if !in.hasPrefix([]byte(it.text)) {
					if !in.atEOF() {
						res.Message = "scanf: format failed to match"
					}
					break pass
				}
				in.skip(len(it.text))
				continue
			case 'c', '[':
			default:
				skipCSpace(in)
			}
			if in.atEOF() {
				break pass
			}
			v, ok := scanfConvert(in, it)
			if !ok {
				res.Message = "scanf: format failed to match"
				break pass
			}
			if !it.skip {
				res.Values = append(res.Values, v)
				res.Count++
			}
		}
		if convs == 0 || in.offset() == start {
			break
		}
		in.release()
	}

	res.Position = in.finish()
	if res.Message == "" && in.err != nil {
		res.Message = in.err.Error()
	}
	log.Debugf("%s: scanf stored %d values, stopped at %d", s.Name(), res.Count, res.Position)
	return res, nil
}

// Sscanf is Scanf over a string.
func Sscanf(text, format string, limit int) (*ScanfResult, error) {
	return Scanf(stream.NewString(text), format, limit)
}

func skipCSpace(in *input) {
	for {
		b, ok := in.peek()
		if !ok || !isCSpace(b) {
			return
		}
		in.skip(1)
	}
}

func scanfConvert(in *input, it scanfItem) (Value, bool) {
	switch it.verb {
	case 'd', 'u':
		return readCInt(in, it.width, 10)
	case 'i':
		return readCInt(in, it.width, 0)
	case 'x', 'X':
		return readCInt(in, it.width, 16)
	case 'o':
		return readCInt(in, it.width, 8)
	case 'f', 'e', 'E', 'g', 'G', 'a':
		v, _, ok := readReal(&limited{in: in, width: it.width}, -1, "eE")
		return Value{Num: v}, ok
	case 's':
		start := in.mark()
		for n := 0; it.width <= 0 || n < it.width; n++ {
			b, ok := in.peek()
			if !ok || isCSpace(b) {
				break
			}
			in.skip(1)
		}
		return Value{Text: in.text(start), IsText: true}, in.since(start) > 0
	case 'c':
		start := in.mark()
		in.skip(max(it.width, 1))
		return Value{Text: in.text(start), IsText: true}, in.since(start) > 0
	case '[':
		start := in.mark()
		for n := 0; it.width <= 0 || n < it.width; n++ {
			b, ok := in.peek()
			if !ok || !it.set[b] {
				break
			}
			in.skip(1)
		}
		return Value{Text: in.text(start), IsText: true}, in.since(start) > 0
	}
	return Value{}, false
}

// readCInt reads an integer in base, or with base 0 in the base its
// prefix selects: 0x for hexadecimal, 0 for octal.
func readCInt(in *input, width, base int) (Value, bool) {
	l := &limited{in: in, width: width}
	pos, used := l.mark()
	neg := false
	if b, ok := l.peek(0); ok && (b == '+' || b == '-') {
		neg = b == '-'
		l.take()
	}
	if b, ok := l.peek(0); ok && b == '0' && (base == 0 || base == 16) {
		if x, ok := l.peek(1); ok && (x == 'x' || x == 'X') {
			if h, ok := l.peek(2); ok && digitValue(h) < 16 {
				l.take()
				l.take()
				base = 16
			}
		}
		if base == 0 {
			base = 8
		}
	}
	if base == 0 {
		base = 10
	}
	digits := 0
	v := 0.0
	for {
		b, ok := l.peek(0)
		if !ok || digitValue(b) >= base {
			break
		}
		v = v*float64(base) + float64(digitValue(l.take()))
		digits++
	}
	if digits == 0 {
		l.reset(pos, used)
		return Value{}, false
	}
	if neg {
		v = -v
	}
	return Value{Num: v}, true
}

func digitValue(b byte) int {
	switch {
	case '0' <= b && b <= '9':
		return int(b - '0')
	case 'a' <= b && b <= 'f':
		return int(b-'a') + 10
	case 'A' <= b && b <= 'F':
		return int(b-'A') + 10
	}
	return 99
}
