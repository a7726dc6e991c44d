// Package textscan reads delimited text into typed columns under the
// control of a format string.
//
// A scan walks the format left to right once per pass over the input.
// Conversions fill one column each; literal text must match the input
// verbatim. Fields are separated by a delimiter, by whitespace, or by a
// line end, and comments are skipped wherever whitespace may appear.
package textscan

import (
	"fmt"
	"strings"

	"github.com/dhamidi/octio/precision"
	"github.com/dhamidi/octio/stream"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("octio.textscan")

// Result is the outcome of a scan.
type Result struct {
	// Columns holds one column per conversion that is not skipped, or one
	// per run of same-typed conversions with CollectOutput.
	Columns []*Column
	// Count is the number of conversions completed, skipped ones
	// included.
	Count int
	// Message is empty unless the scan stopped early.
	Message string
	// Position is the stream position after the last consumed byte.
	Position int64
}

type state uint8

const (
	stateSkipWhitespace state = iota
	stateScanLiteral
	stateScanConversion
	stateSkipComment
	stateRowBoundary
	stateError
	stateDone
)

var stateNames = [...]string{
	stateSkipWhitespace: "SkipWhitespace",
	stateScanLiteral:    "ScanLiteral",
	stateScanConversion: "ScanConversion",
	stateSkipComment:    "SkipComment",
	stateRowBoundary:    "RowBoundary",
	stateError:          "Error",
	stateDone:           "Done",
}

func (s state) String() string { return stateNames[s] }

// Scan reads s according to format.
func Scan(s *stream.Stream, format string, opts ...Option) (*Result, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return ScanWith(s, format, cfg)
}

// ScanString reads text according to format.
func ScanString(text, format string, opts ...Option) (*Result, error) {
	return Scan(stream.NewString(text), format, opts...)
}

// ScanWith reads s according to format with a prepared configuration.
func ScanWith(s *stream.Stream, format string, cfg Config) (*Result, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if s.Closed() {
		return nil, fmt.Errorf("textscan: %s: %w", s.Name(), stream.ErrClosed)
	}
	if !s.Mode().Read {
		return nil, fmt.Errorf("textscan: %s: %w", s.Name(), stream.ErrNotReadable)
	}
	sc := newScanner(s, f, &cfg)
	res, err := sc.run()
	if err != nil {
		return nil, err
	}
	log.Debugf("%s: %d conversions into %d columns, stopped at %d", s.Name(), res.Count, len(res.Columns), res.Position)
	return res, nil
}

type scanner struct {
	cfg    *Config
	cls    *classifier
	in     *input
	format *Format

	dirs []directive
	// cols is parallel to dirs; entries for literals and skipped
	// conversions are nil.
	cols []*Column
	out  []*Column

	state      state
	field      int
	rows       int
	count      int
	passStart  int64
	lineStart  bool
	afterDelim bool
	message    string
}

func newScanner(s *stream.Stream, f *Format, cfg *Config) *scanner {
	return &scanner{
		cfg:    cfg,
		cls:    newClassifier(cfg),
		in:     newInput(s, cfg.BufSize),
		format: f,
	}
}

func (sc *scanner) setFormat(f *Format) {
	sc.dirs = f.dirs
	sc.cols = make([]*Column, len(f.dirs))
	sc.out = nil
	for i, d := range f.dirs {
		if t := d.output(); t != precision.Invalid {
			sc.cols[i] = newColumn(t)
			sc.out = append(sc.out, sc.cols[i])
		}
	}
}

func (sc *scanner) run() (*Result, error) {
	for range sc.cfg.HeaderLines {
		if !sc.cls.skipLine(sc.in) {
			break
		}
	}
	f := sc.format
	if f.Empty() {
		f = repeatFloat(sc.countFields())
	}
	sc.setFormat(f)

	sc.passStart = sc.in.offset()
	sc.lineStart = true
	sc.state = stateSkipWhitespace
	if sc.cfg.Repeat == 0 {
		sc.state = stateDone
	}
	for {
		switch sc.state {
		case stateSkipWhitespace:
			sc.state = sc.skipWhitespace()
		case stateSkipComment:
			sc.cls.skipComment(sc.in)
			sc.state = stateSkipWhitespace
		case stateScanLiteral:
			sc.state = sc.scanLiteral()
		case stateScanConversion:
			sc.state = sc.scanConversion()
		case stateRowBoundary:
			sc.state = sc.rowBoundary()
		case stateError:
			rerr := &ReadError{Field: sc.field + 1, Row: sc.rows + 1}
			if !sc.cfg.ReturnOnError {
				sc.in.finish()
				return nil, rerr
			}
			sc.message = rerr.Error()
			sc.state = stateDone
		case stateDone:
			return sc.result(), nil
		}
	}
}

func (sc *scanner) result() *Result {
	cols := sc.out
	if sc.cfg.CollectOutput {
		cols = collect(cols, sc.cfg.EmptyValue)
	}
	res := &Result{
		Columns:  cols,
		Count:    sc.count,
		Message:  sc.message,
		Position: sc.in.finish(),
	}
	if res.Message == "" && sc.in.err != nil {
		res.Message = sc.in.err.Error()
	}
	return res
}

// skipWhitespace moves to the start of the next field. At the start of a
// pass, and when fields are separated by whitespace only, line ends are
// skipped too.
func (sc *scanner) skipWhitespace() state {
	if sc.field == len(sc.dirs) {
		return stateRowBoundary
	}
	d := sc.dirs[sc.field]
	if _, ok := conversion(d).(charDirective); ok && !sc.lineStart {
		if sc.in.atEOF() {
			return sc.endOfInput()
		}
		return stateScanConversion
	}
	lines := sc.lineStart || len(sc.cfg.Delimiters) == 0
	for {
		cls, n := sc.cls.classify(sc.in)
		switch {
		case cls == Whitespace, cls == EndOfLine && lines:
			sc.in.skip(n)
		case cls == Comment:
			return stateSkipComment
		case cls == EndOfInput:
			return sc.endOfInput()
		default:
			sc.lineStart = false
			if _, ok := d.(literalDirective); ok {
				return stateScanLiteral
			}
			return stateScanConversion
		}
	}
}

// endOfInput handles running out of input at the start of a field. A
// trailing delimiter still yields one empty field. When a pass is cut
// short, the remaining columns are padded if the input ended with a line
// end and left ragged otherwise.
func (sc *scanner) endOfInput() state {
	if sc.afterDelim {
		sc.afterDelim = false
		if conv := conversion(sc.dirs[sc.field]); conv != nil {
			if col := sc.cols[sc.field]; col != nil {
				col.appendEmpty(sc.cfg.EmptyValue)
			}
			sc.count++
			sc.field++
			return stateSkipWhitespace
		}
	}
	if sc.field > 0 && sc.in.endsWith(sc.cls.eolChars()) {
		rows := 0
		for _, col := range sc.out {
			rows = max(rows, col.Len())
		}
		for _, col := range sc.out {
			col.padTo(rows, sc.cfg.EmptyValue)
		}
	}
	return stateDone
}

func (sc *scanner) scanLiteral() state {
	if !sc.dirs[sc.field].read(sc, nil) {
		return stateError
	}
	sc.field++
	sc.afterDelim = false
	return stateSkipWhitespace
}

func (sc *scanner) scanConversion() state {
	d := sc.dirs[sc.field]
	col := sc.cols[sc.field]
	conv := conversion(d)
	if _, verbatim := conv.(charDirective); !verbatim && (sc.atFieldEnd() || sc.treatAsEmpty(conv)) {
		if col != nil {
			col.appendEmpty(sc.cfg.EmptyValue)
		}
		return sc.finishField()
	}
	start := sc.in.mark()
	if !d.read(sc, col) {
		sc.in.reset(start)
		return stateError
	}
	return sc.finishField()
}

func (sc *scanner) atFieldEnd() bool {
	cls, _ := sc.cls.classify(sc.in)
	return cls == Delimiter || cls == EndOfLine
}

// treatAsEmpty consumes a TreatAsEmpty token that fills a whole numeric
// field.
func (sc *scanner) treatAsEmpty(conv directive) bool {
	if _, ok := conv.(numericDirective); !ok {
		return false
	}
	for _, tok := range sc.cfg.TreatAsEmpty {
		if !sc.in.hasPrefix([]byte(tok)) {
			continue
		}
		m := sc.in.mark()
		sc.in.skip(len(tok))
		if cls, _ := sc.cls.classify(sc.in); cls != Literal {
			return true
		}
		sc.in.reset(m)
	}
	return false
}

func (sc *scanner) finishField() state {
	sc.count++
	sc.field++
	sc.afterDelim = false
	if sc.field < len(sc.dirs) {
		switch next := sc.dirs[sc.field].(type) {
		case literalDirective:
			if sc.startsWithSeparator(next.text) {
				return stateSkipWhitespace
			}
		default:
			if _, ok := conversion(next).(charDirective); ok {
				return stateSkipWhitespace
			}
		}
	}
	sc.skipDelimiter()
	return stateSkipWhitespace
}

func (sc *scanner) startsWithSeparator(text string) bool {
	for _, d := range sc.cfg.Delimiters {
		if strings.HasPrefix(text, d) {
			return true
		}
	}
	return text != "" && strings.IndexByte(sc.cfg.Whitespace, text[0]) >= 0
}

// skipDelimiter consumes the separator after a field: whitespace and then
// one delimiter or one line end. With MultipleDelimsAsOne the whole run of
// delimiters, whitespace, line ends and comments that follows is consumed
// as well.
func (sc *scanner) skipDelimiter() {
	cls, n := sc.cls.classify(sc.in)
	for cls == Whitespace {
		sc.in.skip(n)
		cls, n = sc.cls.classify(sc.in)
	}
	switch cls {
	case Delimiter:
		sc.in.skip(n)
		sc.afterDelim = true
	case EndOfLine:
		sc.in.skip(n)
	default:
		return
	}
	if !sc.cfg.MultipleDelimsAsOne {
		return
	}
	for {
		cls, n := sc.cls.classify(sc.in)
		switch cls {
		case Delimiter, Whitespace, EndOfLine:
			sc.in.skip(n)
		case Comment:
			sc.cls.skipComment(sc.in)
		default:
			return
		}
	}
}

// rowBoundary ends a pass over the format. The scan stops when the repeat
// limit is reached or when a whole pass consumed nothing.
func (sc *scanner) rowBoundary() state {
	if sc.in.offset() == sc.passStart {
		return stateDone
	}
	sc.rows++
	if sc.cfg.Repeat >= 0 && sc.rows >= sc.cfg.Repeat {
		return stateDone
	}
	sc.in.release()
	sc.field = 0
	sc.lineStart = true
	sc.passStart = sc.in.offset()
	return stateSkipWhitespace
}

// countFields counts the fields on the first data line without consuming
// it.
func (sc *scanner) countFields() int {
	start := sc.in.mark()
	defer sc.in.reset(start)

	sc.cls.skipBlank(sc.in, true)
	tokens, delims := 0, 0
	inToken, lastDelim := false, false
	for {
		cls, n := sc.cls.classify(sc.in)
		switch cls {
		case EndOfInput, EndOfLine:
			if len(sc.cfg.Delimiters) > 0 && tokens+delims > 0 {
				return delims + 1
			}
			return max(tokens, 1)
		case Comment:
			sc.cls.skipComment(sc.in)
			inToken = false
			continue
		case Delimiter:
			if !sc.cfg.MultipleDelimsAsOne || !lastDelim {
				delims++
			}
			lastDelim = true
			inToken = false
		case Whitespace:
			inToken = false
		default:
			if !inToken {
				tokens++
			}
			inToken = true
			lastDelim = false
		}
		sc.in.skip(n)
	}
}
