package textscan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/octio/precision"
)

// directive is one element of a parsed format: a conversion or a literal.
type directive interface {
	fmt.Stringer
	// output is the type of the column the directive fills, or Invalid
	// when it produces no value.
	output() precision.Type
	// read consumes one field at the cursor and appends its value to col
	// when col is not nil. It reports false if the input does not match.
	read(sc *scanner, col *Column) bool
}

func widthString(width, prec int) string {
	var sb strings.Builder
	if width > 0 {
		sb.WriteString(strconv.Itoa(width))
	}
	if prec >= 0 {
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(prec))
	}
	return sb.String()
}

type numericDirective struct {
	typ   precision.Type
	width int
	prec  int
}

var numericVerbs = map[precision.Type]string{
	precision.Double: "f",
	precision.Single: "f32",
	precision.Int8:   "d8",
	precision.Int16:  "d16",
	precision.Int32:  "d",
	precision.Int64:  "d64",
	precision.Uint8:  "u8",
	precision.Uint16: "u16",
	precision.Uint32: "u",
	precision.Uint64: "u64",
}

func (d numericDirective) String() string {
	return "%" + widthString(d.width, d.prec) + numericVerbs[d.typ]
}

func (d numericDirective) output() precision.Type { return d.typ }

func (d numericDirective) read(sc *scanner, col *Column) bool {
	prec := d.prec
	if d.typ.Integer() {
		prec = -1
	}
	n, ok := readNumber(sc.in, d.width, prec, sc.cfg.ExpChars)
	if !ok {
		return false
	}
	if col != nil {
		col.appendNumber(n)
	}
	return true
}

// stringDirective reads a run of literal bytes, stopping at a delimiter,
// whitespace, a comment or a line end.
type stringDirective struct {
	width int
}

func (d stringDirective) String() string         { return "%" + widthString(d.width, -1) + "s" }
func (d stringDirective) output() precision.Type { return precision.Char }

func (d stringDirective) read(sc *scanner, col *Column) bool {
	return readWord(sc, col, d.width)
}

func readWord(sc *scanner, col *Column, width int) bool {
	start := sc.in.mark()
	for n := 0; width <= 0 || n < width; n++ {
		if cls, _ := sc.cls.classify(sc.in); cls != Literal {
			break
		}
		sc.in.skip(1)
	}
	if sc.in.since(start) == 0 {
		return false
	}
	if col != nil {
		col.appendString(sc.in.text(start))
	}
	return true
}

// quotedDirective reads a double-quoted string, where a doubled quote
// stands for one quote, or a plain word when no quote opens the field.
// The width caps only the plain word; a quoted field always reads through
// its closing quote.
type quotedDirective struct {
	width int
}

func (d quotedDirective) String() string         { return "%" + widthString(d.width, -1) + "q" }
func (d quotedDirective) output() precision.Type { return precision.Char }

func (d quotedDirective) read(sc *scanner, col *Column) bool {
	if b, ok := sc.in.peek(); !ok || b != '"' {
		return readWord(sc, col, d.width)
	}
	sc.in.skip(1)
	var sb strings.Builder
	for {
		b, ok := sc.in.next()
		if !ok {
			break
		}
		if b == '"' {
			if nb, ok := sc.in.peek(); ok && nb == '"' {
				sc.in.skip(1)
				sb.WriteByte('"')
				continue
			}
			break
		}
		sb.WriteByte(b)
	}
	if col != nil {
		col.appendString(sb.String())
	}
	return true
}

// charDirective reads width bytes verbatim, delimiters and whitespace
// included.
type charDirective struct {
	width int
}

func (d charDirective) String() string         { return "%" + widthString(d.width, -1) + "c" }
func (d charDirective) output() precision.Type { return precision.Char }

func (d charDirective) read(sc *scanner, col *Column) bool {
	start := sc.in.mark()
	for range max(d.width, 1) {
		if _, ok := sc.in.next(); !ok {
			break
		}
	}
	if sc.in.since(start) == 0 {
		return false
	}
	if col != nil {
		col.appendString(sc.in.text(start))
	}
	return true
}

// classDirective reads a run of bytes inside (or, negated, outside) a set.
type classDirective struct {
	set   [256]bool
	src   string
	width int
}

func (d classDirective) String() string         { return "%" + widthString(d.width, -1) + "[" + d.src + "]" }
func (d classDirective) output() precision.Type { return precision.Char }

func (d classDirective) read(sc *scanner, col *Column) bool {
	start := sc.in.mark()
	for n := 0; d.width <= 0 || n < d.width; n++ {
		b, ok := sc.in.peek()
		if !ok || !d.set[b] {
			break
		}
		sc.in.skip(1)
	}
	if sc.in.since(start) == 0 {
		return false
	}
	if col != nil {
		col.appendString(sc.in.text(start))
	}
	return true
}

// parseClass builds the set for the body of %[...]. A leading ^ negates
// the set, a ] right after [ or [^ is a member, and a-z denotes a range.
func parseClass(body string) classDirective {
	d := classDirective{src: body}
	negate := strings.HasPrefix(body, "^")
	if negate {
		body = body[1:]
	}
	var members [256]bool
	for i := 0; i < len(body); i++ {
		lo := body[i]
		if i+2 < len(body) && body[i+1] == '-' && body[i+2] >= lo {
			for c := int(lo); c <= int(body[i+2]); c++ {
				members[c] = true
			}
			i += 2
			continue
		}
		members[lo] = true
	}
	for i := range members {
		d.set[i] = members[i] != negate
	}
	return d
}

type literalDirective struct {
	text string
}

func (d literalDirective) String() string         { return d.text }
func (d literalDirective) output() precision.Type { return precision.Invalid }

func (d literalDirective) read(sc *scanner, _ *Column) bool {
	if !sc.in.hasPrefix([]byte(d.text)) {
		return false
	}
	sc.in.skip(len(d.text))
	return true
}

// skipDirective consumes what its conversion would and discards the value.
type skipDirective struct {
	conv directive
}

func (d skipDirective) String() string {
	return "%*" + strings.TrimPrefix(d.conv.String(), "%")
}

func (d skipDirective) output() precision.Type { return precision.Invalid }

func (d skipDirective) read(sc *scanner, _ *Column) bool {
	return d.conv.read(sc, nil)
}

// conversion returns the conversion behind a possibly skipped directive,
// or nil for literals.
func conversion(d directive) directive {
	switch d := d.(type) {
	case skipDirective:
		return d.conv
	case literalDirective:
		return nil
	}
	return d
}
