package textscan

import (
	"slices"
	"strings"
)

// Class is the kind of input found at the cursor.
type Class uint8

const (
	Literal Class = iota
	Delimiter
	Whitespace
	Comment
	EndOfLine
	EndOfInput
)

var classNames = [...]string{
	Literal:    "literal",
	Delimiter:  "delimiter",
	Whitespace: "whitespace",
	Comment:    "comment",
	EndOfLine:  "end-of-line",
	EndOfInput: "end-of-input",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// classifier decides what the next run of input is. When several classes
// match at the same position, comment wins over end-of-line, end-of-line
// over delimiter, delimiter over whitespace, and whitespace over literal.
type classifier struct {
	delims       [][]byte
	white        [256]bool
	commentStart []byte
	commentEnd   []byte
	autoEOL      bool
	eol          []byte
}

func newClassifier(cfg *Config) *classifier {
	c := &classifier{
		autoEOL:      cfg.AutoEOL,
		eol:          []byte(cfg.EndOfLine),
		commentStart: []byte(cfg.CommentStart),
		commentEnd:   []byte(cfg.CommentEnd),
	}
	for _, d := range cfg.Delimiters {
		c.delims = append(c.delims, []byte(d))
	}
	// Longest delimiters are tried first.
	slices.SortStableFunc(c.delims, func(a, b []byte) int { return len(b) - len(a) })
	for i := 0; i < len(cfg.Whitespace); i++ {
		c.white[cfg.Whitespace[i]] = true
	}
	if !c.autoEOL {
		// Line breaks that do not end a line still separate fields.
		for _, b := range []byte("\r\n") {
			if !strings.ContainsRune(cfg.EndOfLine, rune(b)) {
				c.white[b] = true
			}
		}
	}
	return c
}

// classify returns the class of the input at the cursor and the number of
// bytes the match spans. Literal and whitespace matches span one byte.
func (c *classifier) classify(in *input) (Class, int) {
	b, ok := in.peek()
	if !ok {
		return EndOfInput, 0
	}
	if len(c.commentStart) > 0 && b == c.commentStart[0] && in.hasPrefix(c.commentStart) {
		return Comment, len(c.commentStart)
	}
	if n := c.eolLen(in); n > 0 {
		return EndOfLine, n
	}
	if n := c.delimLen(in); n > 0 {
		return Delimiter, n
	}
	if c.white[b] {
		return Whitespace, 1
	}
	return Literal, 1
}

func (c *classifier) eolLen(in *input) int {
	b, ok := in.peek()
	if !ok {
		return 0
	}
	if c.autoEOL {
		switch b {
		case '\n':
			return 1
		case '\r':
			if nb, ok := in.peekAt(1); ok && nb == '\n' {
				return 2
			}
			return 1
		}
		return 0
	}
	if len(c.eol) > 0 && b == c.eol[0] && in.hasPrefix(c.eol) {
		return len(c.eol)
	}
	return 0
}

func (c *classifier) delimLen(in *input) int {
	for _, d := range c.delims {
		if in.hasPrefix(d) {
			return len(d)
		}
	}
	return 0
}

// eolChars lists the bytes that may terminate the input on a line
// boundary.
func (c *classifier) eolChars() string {
	if c.autoEOL {
		return "\r\n"
	}
	if len(c.eol) == 0 {
		return ""
	}
	return string(c.eol[len(c.eol)-1:])
}

// skipComment consumes the comment at the cursor. A comment without an end
// marker stops before the end of its line; a bracketed comment runs past
// its end marker or to the end of input.
func (c *classifier) skipComment(in *input) {
	in.skip(len(c.commentStart))
	if len(c.commentEnd) == 0 {
		for !in.atEOF() && c.eolLen(in) == 0 {
			in.skip(1)
		}
		return
	}
	for !in.atEOF() {
		if in.hasPrefix(c.commentEnd) {
			in.skip(len(c.commentEnd))
			return
		}
		in.skip(1)
	}
}

// skipLine consumes the rest of the current line and its terminator.
func (c *classifier) skipLine(in *input) bool {
	for {
		if n := c.eolLen(in); n > 0 {
			in.skip(n)
			return true
		}
		if _, ok := in.next(); !ok {
			return false
		}
	}
}

// skipBlank consumes whitespace and comments, and line ends too when
// lines is set. It reports whether anything was consumed.
func (c *classifier) skipBlank(in *input, lines bool) bool {
	start := in.offset()
	for {
		cls, n := c.classify(in)
		switch {
		case cls == Whitespace:
			in.skip(n)
		case cls == Comment:
			c.skipComment(in)
		case cls == EndOfLine && lines:
			in.skip(n)
		default:
			return in.offset() != start
		}
	}
}
