package stream

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Device is the byte endpoint owned by a Stream. Devices that also
// implement io.Seeker support Seek; the others are sequential.
type Device interface {
	io.Reader
	io.Writer
	io.Closer
}

var (
	errNotReadable = errors.New("device is not readable")
	errNotWritable = errors.New("device is not writable")
)

type readOnly struct{ io.ReadCloser }

func (readOnly) Write([]byte) (int, error) { return 0, errNotWritable }

type writeOnly struct{ io.WriteCloser }

func (writeOnly) Read([]byte) (int, error) { return 0, errNotReadable }

// memDevice is an in-memory, seekable read/write buffer.
type memDevice struct {
	buf []byte
	off int64
}

func (m *memDevice) Read(p []byte) (int, error) {
	if m.off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.off:])
	m.off += int64(n)
	return n, nil
}

func (m *memDevice) Write(p []byte) (int, error) {
	end := m.off + int64(len(p))
	if end > int64(len(m.buf)) {
		if end > int64(cap(m.buf)) {
			grown := make([]byte, end, 2*end)
			copy(grown, m.buf)
			m.buf = grown
		} else {
			old := len(m.buf)
			m.buf = m.buf[:end]
			clear(m.buf[old:])
		}
	}
	copy(m.buf[m.off:], p)
	m.off = end
	return len(p), nil
}

func (m *memDevice) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.off + offset
	case io.SeekEnd:
		abs = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("negative position %d", abs)
	}
	m.off = abs
	return abs, nil
}

func (m *memDevice) Close() error { return nil }

// procDevice talks to a child process through one of its standard pipes.
type procDevice struct {
	cmd  *exec.Cmd
	pipe io.Closer
	r    io.Reader
	w    io.Writer
}

func startProcess(command string, m Mode) (*procDevice, error) {
	if m.Read == m.Write {
		return nil, fmt.Errorf("invalid mode %q for a process stream", m)
	}
	cmd := exec.Command("/bin/sh", "-c", command)
	d := &procDevice{cmd: cmd}
	if m.Read {
		out, err := cmd.StdoutPipe()
		if err != nil {
			return nil, fmt.Errorf("open stdout pipe: %w", err)
		}
		d.r, d.pipe = out, out
		cmd.Stderr = os.Stderr
	} else {
		in, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("open stdin pipe: %w", err)
		}
		d.w, d.pipe = in, in
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %q: %w", command, err)
	}
	return d, nil
}

func (d *procDevice) Read(p []byte) (int, error) {
	if d.r == nil {
		return 0, errNotReadable
	}
	return d.r.Read(p)
}

func (d *procDevice) Write(p []byte) (int, error) {
	if d.w == nil {
		return 0, errNotWritable
	}
	return d.w.Write(p)
}

func (d *procDevice) Close() error {
	if d.w != nil {
		d.pipe.Close()
	}
	err := d.cmd.Wait()
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		// A reader that stops early makes the child die of SIGPIPE.
		return nil
	}
	return err
}

// Compression selects a codec wrapped around a file device.
type Compression uint8

const (
	NoCompression Compression = iota
	Gzip
	Zstd
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	}
	return "none"
}

// ParseCompression maps "", "none", "gzip" and "zstd" to a Compression.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", "none":
		return NoCompression, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst":
		return Zstd, nil
	}
	return NoCompression, fmt.Errorf("unknown compression %q", s)
}

// codecDevice layers a compressor or decompressor over a file and closes
// both in order. flusher is set for compressors.
type codecDevice struct {
	Device
	file    *os.File
	flusher interface{ Flush() error }
}

// Flush pushes the compressor's pending output to the file.
func (d *codecDevice) Flush() error {
	if d.flusher == nil {
		return nil
	}
	return d.flusher.Flush()
}

func (d *codecDevice) Close() error {
	err := d.Device.Close()
	if ferr := d.file.Close(); err == nil {
		err = ferr
	}
	return err
}

func compressed(f *os.File, c Compression, m Mode) (Device, error) {
	if c == NoCompression {
		return f, nil
	}
	if m.Read && m.Write {
		return nil, fmt.Errorf("%s streams cannot be opened for reading and writing", c)
	}
	switch c {
	case Gzip:
		if m.Read {
			zr, err := gzip.NewReader(f)
			if err != nil {
				return nil, fmt.Errorf("open gzip reader: %w", err)
			}
			return &codecDevice{Device: readOnly{zr}, file: f}, nil
		}
		zw := gzip.NewWriter(f)
		return &codecDevice{Device: writeOnly{zw}, file: f, flusher: zw}, nil
	case Zstd:
		if m.Read {
			zr, err := zstd.NewReader(f)
			if err != nil {
				return nil, fmt.Errorf("open zstd reader: %w", err)
			}
			return &codecDevice{Device: readOnly{zr.IOReadCloser()}, file: f}, nil
		}
		zw, err := zstd.NewWriter(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd writer: %w", err)
		}
		return &codecDevice{Device: writeOnly{zw}, file: f, flusher: zw}, nil
	}
	return f, nil
}
