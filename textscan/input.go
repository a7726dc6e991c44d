package textscan

import (
	"bytes"
	"errors"
	"io"

	"github.com/dhamidi/octio/stream"
)

// input is a sliding window over a stream. It reads chunk bytes at a time
// and grows on demand, so a token that crosses a chunk boundary is never
// cut short. Offsets handed out by mark stay valid until release.
type input struct {
	s     *stream.Stream
	buf   []byte
	pos   int
	chunk int
	eof   bool
	err   error
	last  byte
	seen  bool

	// base is the number of bytes released before buf[0].
	base int64
}

func newInput(s *stream.Stream, chunk int) *input {
	if chunk <= 0 {
		chunk = defaultBufSize
	}
	return &input{s: s, chunk: chunk}
}

// fill makes n bytes available past the cursor if the stream has them.
func (in *input) fill(n int) bool {
	for len(in.buf)-in.pos < n && !in.eof {
		in.read()
	}
	return len(in.buf)-in.pos >= n
}

func (in *input) read() {
	tmp := make([]byte, in.chunk)
	n, err := in.s.Read(tmp)
	if n > 0 {
		in.buf = append(in.buf, tmp[:n]...)
		in.last = tmp[n-1]
		in.seen = true
	}
	if err != nil {
		in.eof = true
		if !errors.Is(err, io.EOF) {
			in.err = err
		}
	}
}

func (in *input) atEOF() bool {
	return !in.fill(1)
}

func (in *input) peek() (byte, bool) {
	if !in.fill(1) {
		return 0, false
	}
	return in.buf[in.pos], true
}

func (in *input) peekAt(i int) (byte, bool) {
	if !in.fill(i + 1) {
		return 0, false
	}
	return in.buf[in.pos+i], true
}

func (in *input) next() (byte, bool) {
	c, ok := in.peek()
	if ok {
		in.pos++
	}
	return c, ok
}

func (in *input) hasPrefix(p []byte) bool {
	if len(p) == 0 || !in.fill(len(p)) {
		return false
	}
	return bytes.Equal(in.buf[in.pos:in.pos+len(p)], p)
}

func (in *input) skip(n int) {
	in.fill(n)
	in.pos = min(in.pos+n, len(in.buf))
}

func (in *input) mark() int       { return in.pos }
func (in *input) reset(m int)     { in.pos = m }
func (in *input) since(m int) int { return in.pos - m }

// offset is the number of bytes consumed since the scan started.
func (in *input) offset() int64 { return in.base + int64(in.pos) }

func (in *input) text(m int) string {
	return string(in.buf[m:in.pos])
}

// release drops consumed bytes once they dominate the window. Marks taken
// before release are invalid afterwards.
func (in *input) release() {
	if in.pos > in.chunk && in.pos > len(in.buf)/2 {
		n := copy(in.buf, in.buf[in.pos:])
		in.buf = in.buf[:n]
		in.base += int64(in.pos)
		in.pos = 0
	}
}

// endsWith reports whether the last byte of the whole input is one of set.
// It is only meaningful once the input is exhausted.
func (in *input) endsWith(set string) bool {
	return in.eof && in.seen && bytes.IndexByte([]byte(set), in.last) >= 0
}

// finish hands unconsumed bytes back to the stream so its position is the
// last consumed byte, and returns that position.
func (in *input) finish() int64 {
	if in.pos < len(in.buf) {
		in.s.Unread(in.buf[in.pos:])
	}
	in.buf = nil
	in.pos = 0
	return in.s.Tell()
}
