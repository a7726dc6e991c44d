package textscan

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/dhamidi/octio/binio"
	"github.com/dhamidi/octio/precision"
)

// number is a parsed numeric literal.
type number struct {
	re, im  float64
	complex bool
	// text holds the literal when it has no fraction or exponent, so that
	// 64-bit integers convert without going through float64.
	text string
}

func (n number) scalar() binio.Scalar {
	if n.text != "" {
		if v, err := strconv.ParseInt(n.text, 10, 64); err == nil {
			return binio.IntScalar(v)
		}
		if v, err := strconv.ParseUint(strings.TrimPrefix(n.text, "+"), 10, 64); err == nil {
			return binio.UintScalar(v)
		}
	}
	return binio.FloatScalar(n.re)
}

// limited reads from an input while counting bytes against a field width.
// A width of zero or less is unlimited.
type limited struct {
	in    *input
	width int
	used  int
}

func (l *limited) peek(i int) (byte, bool) {
	if l.width > 0 && l.used+i >= l.width {
		return 0, false
	}
	return l.in.peekAt(i)
}

func (l *limited) take() byte {
	b, _ := l.in.next()
	l.used++
	return b
}

func (l *limited) mark() (int, int) { return l.in.mark(), l.used }

func (l *limited) reset(pos, used int) {
	l.in.reset(pos)
	l.used = used
}

func (l *limited) matchFold(word string) bool {
	for i := 0; i < len(word); i++ {
		b, ok := l.peek(i)
		if !ok || lower(b) != word[i] {
			return false
		}
	}
	return true
}

func lower(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// readNumber reads a real or complex literal: an optional sign, digits, a
// fraction, an exponent introduced by one of expChars, Inf or NaN, and an
// optional imaginary part written as a trailing i/j or as a+bi. prec caps
// the kept fraction digits; further digits within the width are consumed
// and dropped.
func readNumber(in *input, width, prec int, expChars string) (number, bool) {
	l := &limited{in: in, width: width}
	re, text, ok := readReal(l, prec, expChars)
	if !ok {
		return number{}, false
	}
	if b, ok := l.peek(0); ok && (b == 'i' || b == 'j') {
		l.take()
		return number{im: re, complex: true}, true
	}
	if b, ok := l.peek(0); ok && (b == '+' || b == '-') {
		pos, used := l.mark()
		if im, _, ok := readReal(l, prec, expChars); ok {
			if b, ok := l.peek(0); ok && (b == 'i' || b == 'j') {
				l.take()
				return number{re: re, im: im, complex: true}, true
			}
		}
		l.reset(pos, used)
	}
	return number{re: re, text: text}, true
}

func readReal(l *limited, prec int, expChars string) (float64, string, bool) {
	pos, used := l.mark()
	var lit []byte
	neg := false
	if b, ok := l.peek(0); ok && (b == '+' || b == '-') {
		neg = b == '-'
		lit = append(lit, l.take())
	}

	switch {
	case l.matchFold("inf"):
		for range 3 {
			l.take()
		}
		if l.matchFold("inity") {
			for range 5 {
				l.take()
			}
		}
		if neg {
			return math.Inf(-1), "", true
		}
		return math.Inf(1), "", true
	case l.matchFold("nan"):
		for range 3 {
			l.take()
		}
		return math.NaN(), "", true
	}

	intDigits, fracDigits := 0, 0
	for {
		b, ok := l.peek(0)
		if !ok || !isDigit(b) {
			break
		}
		lit = append(lit, l.take())
		intDigits++
	}
	integer := true
	if b, ok := l.peek(0); ok && b == '.' {
		l.take()
		integer = false
		if intDigits == 0 {
			lit = append(lit, '0')
		}
		lit = append(lit, '.')
		for {
			b, ok := l.peek(0)
			if !ok || !isDigit(b) {
				break
			}
			d := l.take()
			if prec < 0 || fracDigits < prec {
				lit = append(lit, d)
			}
			fracDigits++
		}
	}
	if intDigits+fracDigits == 0 {
		l.reset(pos, used)
		return 0, "", false
	}

	if b, ok := l.peek(0); ok && strings.IndexByte(expChars, b) >= 0 && hasExponent(l) {
		l.take()
		integer = false
		lit = append(lit, 'e')
		if b, _ := l.peek(0); b == '+' || b == '-' {
			lit = append(lit, l.take())
		}
		for {
			b, ok := l.peek(0)
			if !ok || !isDigit(b) {
				break
			}
			lit = append(lit, l.take())
		}
	}

	v, err := strconv.ParseFloat(string(lit), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		l.reset(pos, used)
		return 0, "", false
	}
	if integer {
		return v, string(lit), true
	}
	return v, "", true
}

// hasExponent reports whether the exponent marker at the cursor is
// followed by digits, optionally signed.
func hasExponent(l *limited) bool {
	b, ok := l.peek(1)
	if ok && (b == '+' || b == '-') {
		b, ok = l.peek(2)
	}
	return ok && isDigit(b)
}

// convertInt maps a number to the element type of an integer column.
func convertInt(n number, t precision.Type) (int64, uint64) {
	s := n.scalar()
	if t.Signed() {
		return s.Int(t), 0
	}
	return 0, s.Uint(t)
}
