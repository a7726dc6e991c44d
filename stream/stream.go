// Package stream provides byte streams over files, compressed files,
// process pipes and memory buffers, and the registry that maps integer
// stream ids to open streams.
package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/octio/precision"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("octio.stream")

var (
	ErrClosed      = errors.New("stream is closed")
	ErrNotReadable = errors.New("stream not open for reading")
	ErrNotWritable = errors.New("stream not open for writing")
	ErrNotSeekable = errors.New("stream is not seekable")
)

// Stream is an open byte stream. It owns its device exclusively; closing
// the stream closes the device. A Stream is not safe for concurrent use.
//
// Bytes that a reader looked at but did not consume are pushed back with
// Unread, so Tell always reports the position just past the last consumed
// byte, even on devices that cannot seek.
type Stream struct {
	name    string
	mode    Mode
	order   precision.ByteOrder
	dev     Device
	pending []byte
	pos     int64
	eof     bool
	err     error
	closed  bool
}

type Option func(*options)

type options struct {
	compression Compression
}

// WithCompression wraps the file in a compressing or decompressing codec.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// New wraps an already open device.
func New(name string, dev Device, m Mode, order precision.ByteOrder) *Stream {
	return &Stream{name: name, dev: dev, mode: m, order: order}
}

// Open opens a file with an fopen style mode string.
func Open(name, mode string, order precision.ByteOrder, opts ...Option) (*Stream, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if m.Gzip && o.compression == NoCompression {
		o.compression = Gzip
	}

	f, err := os.OpenFile(name, m.flags(), 0o666)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	dev, err := compressed(f, o.compression, m)
	if err != nil {
		f.Close()
		return nil, err
	}

	s := New(name, dev, m, order)
	if m.Append {
		if pos, err := f.Seek(0, io.SeekEnd); err == nil {
			s.pos = pos
		}
	}
	log.Debugf("opened %s mode=%s arch=%s compression=%s", name, m, order, o.compression)
	return s, nil
}

// NewString returns a read-only stream over s.
func NewString(s string) *Stream {
	return New("", &memDevice{buf: []byte(s)}, Mode{Read: true}, precision.Native)
}

// NewBuffer returns a seekable in-memory stream initialised with data.
func NewBuffer(data []byte, mode string, order precision.ByteOrder) (*Stream, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	if m.Gzip {
		return nil, fmt.Errorf("invalid mode %q for a memory stream", mode)
	}
	dev := &memDevice{buf: data}
	if m.Truncate {
		dev.buf = dev.buf[:0]
	}
	s := New("", dev, m, order)
	if m.Append {
		dev.off = int64(len(dev.buf))
		s.pos = dev.off
	}
	return s, nil
}

// Popen starts command through the shell and connects a stream to its
// standard output (mode "r") or standard input (mode "w").
func Popen(command, mode string) (*Stream, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	dev, err := startProcess(command, m)
	if err != nil {
		return nil, err
	}
	log.Debugf("started %q mode=%s", command, m)
	return New(command, dev, m, precision.Native), nil
}

func (s *Stream) Name() string                   { return s.name }
func (s *Stream) Mode() Mode                     { return s.mode }
func (s *Stream) ByteOrder() precision.ByteOrder { return s.order }
func (s *Stream) EOF() bool                      { return s.eof && len(s.pending) == 0 }
func (s *Stream) Closed() bool                   { return s.closed }

// Err returns the sticky I/O error, if any.
func (s *Stream) Err() error { return s.err }

// ClearError resets the sticky error and the EOF flag.
func (s *Stream) ClearError() {
	s.err = nil
	s.eof = false
}

// Bytes returns the contents of a memory stream, or nil for other devices.
func (s *Stream) Bytes() []byte {
	if m, ok := s.dev.(*memDevice); ok {
		return m.buf
	}
	return nil
}

func (s *Stream) fail(err error) error {
	if s.err == nil {
		s.err = err
	}
	return err
}

func (s *Stream) checkRead() error {
	if s.closed {
		return ErrClosed
	}
	if !s.mode.Read {
		return s.fail(ErrNotReadable)
	}
	return nil
}

// Read implements io.Reader. Pushed back bytes are returned first.
func (s *Stream) Read(p []byte) (int, error) {
	if err := s.checkRead(); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if len(s.pending) > 0 {
		n := copy(p, s.pending)
		s.pending = s.pending[n:]
		s.pos += int64(n)
		return n, nil
	}
	if s.eof {
		return 0, io.EOF
	}
	n, err := s.dev.Read(p)
	s.pos += int64(n)
	if err == io.EOF {
		s.eof = true
	} else if err != nil {
		s.fail(err)
	}
	return n, err
}

// Peek returns up to n bytes without consuming them. It returns fewer
// bytes only at end of input or on error.
func (s *Stream) Peek(n int) ([]byte, error) {
	if err := s.checkRead(); err != nil {
		return nil, err
	}
	for len(s.pending) < n && !s.eof {
		buf := make([]byte, n-len(s.pending))
		m, err := s.dev.Read(buf)
		s.pending = append(s.pending, buf[:m]...)
		if err == io.EOF {
			s.eof = true
			break
		}
		if err != nil {
			return s.pending, s.fail(err)
		}
	}
	if len(s.pending) < n {
		return s.pending, io.EOF
	}
	return s.pending[:n], nil
}

// Unread pushes b back in front of the unread input and moves the
// position back by len(b).
func (s *Stream) Unread(b []byte) {
	if len(b) == 0 {
		return
	}
	pending := make([]byte, 0, len(b)+len(s.pending))
	pending = append(pending, b...)
	s.pending = append(pending, s.pending...)
	s.pos -= int64(len(b))
}

// Write implements io.Writer.
func (s *Stream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if !s.mode.Write {
		return 0, s.fail(ErrNotWritable)
	}
	if len(s.pending) > 0 {
		if _, err := s.Seek(0, io.SeekCurrent); err != nil {
			return 0, err
		}
	}
	n, err := s.dev.Write(p)
	s.pos += int64(n)
	if err != nil {
		s.fail(err)
	}
	return n, err
}

// WriteString writes a string.
func (s *Stream) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// Seek moves the position. It discards pushed back bytes and clears EOF.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	sk, ok := s.dev.(io.Seeker)
	if !ok {
		return s.pos, ErrNotSeekable
	}
	if whence == io.SeekCurrent {
		offset -= int64(len(s.pending))
	}
	pos, err := sk.Seek(offset, whence)
	if err != nil {
		return s.pos, fmt.Errorf("seek %s: %w", s.name, err)
	}
	s.pending = nil
	s.pos = pos
	s.eof = false
	return pos, nil
}

// Tell returns the position just past the last consumed byte.
func (s *Stream) Tell() int64 { return s.pos }

// Rewind seeks to the start and clears the error state.
func (s *Stream) Rewind() error {
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return err
	}
	s.ClearError()
	return nil
}

// Flush flushes buffered writes of compressed devices.
func (s *Stream) Flush() error {
	if f, ok := s.dev.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close closes the device. Closing twice is not an error.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.pending = nil
	log.Debugf("closing %s", s.describe())
	return s.dev.Close()
}

func (s *Stream) describe() string {
	if s.name == "" {
		return "<memory>"
	}
	return s.name
}

// GetLine reads the next line. The line terminator (LF, CRLF or CR) is
// kept when keepEOL is set. At end of input with nothing read it returns
// io.EOF.
func (s *Stream) GetLine(keepEOL bool) (string, error) {
	var line bytes.Buffer
	buf := make([]byte, 1)
	for {
		n, err := s.Read(buf)
		if n == 0 {
			if err == nil {
				continue
			}
			if err == io.EOF && line.Len() > 0 {
				return line.String(), nil
			}
			return line.String(), err
		}
		c := buf[0]
		switch c {
		case '\n':
			if keepEOL {
				line.WriteByte(c)
			}
			return line.String(), nil
		case '\r':
			if keepEOL {
				line.WriteByte(c)
			}
			if next, _ := s.Peek(1); len(next) == 1 && next[0] == '\n' {
				s.Read(buf)
				if keepEOL {
					line.WriteByte('\n')
				}
			}
			return line.String(), nil
		}
		line.WriteByte(c)
	}
}

// SkipLines skips up to n lines (all remaining lines when n < 0) and
// returns how many were skipped.
func (s *Stream) SkipLines(n int) (int, error) {
	skipped := 0
	for n < 0 || skipped < n {
		_, err := s.GetLine(false)
		if err == io.EOF {
			return skipped, nil
		}
		if err != nil {
			return skipped, err
		}
		skipped++
	}
	return skipped, nil
}
