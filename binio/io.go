package binio

import (
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/octio/precision"
	"github.com/dhamidi/octio/stream"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("octio.binio")

// Inf requests as many elements as the stream holds.
const Inf = -1

// Size is the requested shape of a read. Rows or Cols may be Inf; a
// single count N is Size{N, 1}.
type Size struct {
	Rows int
	Cols int
}

// All reads every remaining element into a column.
var All = Size{Rows: Inf, Cols: 1}

func Count(n int) Size { return Size{Rows: n, Cols: 1} }

func (sz Size) vector() bool { return sz.Cols == 1 }

func (sz Size) elements() int {
	if sz.Rows == Inf || sz.Cols == Inf {
		return Inf
	}
	return sz.Rows * sz.Cols
}

func (sz Size) validate() error {
	if sz.Rows == Inf && sz.Cols != 1 {
		return fmt.Errorf("invalid size: only the last dimension may be Inf")
	}
	if (sz.Rows < 0 && sz.Rows != Inf) || (sz.Cols < 0 && sz.Cols != Inf) {
		return fmt.Errorf("invalid size [%d %d]", sz.Rows, sz.Cols)
	}
	return nil
}

// Read reads elements of spec.In from s, converts them to spec.Out, and
// after each block of spec.Count elements skips skip bytes. Native order
// defers to the stream's own byte order.
//
// Reading stops at end of input. A trailing partial element is dropped but
// its bytes remain consumed.
func Read(s *stream.Stream, size Size, spec precision.Spec, skip int64, order precision.ByteOrder) (*Array, error) {
	if err := size.validate(); err != nil {
		return nil, err
	}
	if !spec.In.Valid() || !spec.Out.Valid() {
		return nil, &precision.Error{Token: spec.String()}
	}
	if skip < 0 {
		return nil, fmt.Errorf("invalid skip %d", skip)
	}
	if order == precision.Native {
		order = s.ByteOrder()
	}
	count := spec.Count
	if count < 1 {
		count = 1
	}

	want := size.elements()
	out := newBuffer(spec.Out)
	n := spec.In.Size()
	var buf [8]byte
	var ioErr error
	inBlock := 0
	for want == Inf || out.len() < want {
		got, err := io.ReadFull(s, buf[:n])
		if got < n {
			if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				ioErr = err
			}
			break
		}
		out.append(Decode(buf[:n], spec.In, order))

		inBlock++
		if skip > 0 && inBlock == count {
			inBlock = 0
			if want != Inf && out.len() >= want {
				break
			}
			if err := skipBytes(s, skip); err != nil {
				if !errors.Is(err, io.EOF) {
					ioErr = err
				}
				break
			}
		}
	}

	a := &Array{Type: spec.Out}
	shape(a, out, size)
	log.Debugf("read %d elements of %s in %s order from %s", out.len(), spec, order.Resolve(), s.Name())
	if ioErr != nil {
		return a, fmt.Errorf("fread: %w", ioErr)
	}
	return a, nil
}

func shape(a *Array, out buffer, size Size) {
	n := out.len()
	switch {
	case n == 0:
		a.Rows, a.Cols = 0, 0
	case size.vector():
		a.Rows, a.Cols = n, 1
	case n < size.Rows:
		a.Rows, a.Cols = n, 1
	default:
		a.Rows = size.Rows
		a.Cols = (n + size.Rows - 1) / size.Rows
		out.pad(a.Rows * a.Cols)
	}
	a.Data = out.data()
}

func skipBytes(s *stream.Stream, n int64) error {
	_, err := s.Seek(n, io.SeekCurrent)
	if errors.Is(err, stream.ErrNotSeekable) {
		_, err = io.CopyN(io.Discard, s, n)
	}
	return err
}

// Write encodes values as spec.In elements, skipping skip bytes before
// each block of spec.Count elements, and returns the number of elements
// written. Values are converted with saturation.
func Write(s *stream.Stream, values any, spec precision.Spec, skip int64, order precision.ByteOrder) (int, error) {
	if !spec.In.Valid() {
		return 0, &precision.Error{Token: spec.String()}
	}
	if skip < 0 {
		return 0, fmt.Errorf("invalid skip %d", skip)
	}
	scalars, err := Scalars(values)
	if err != nil {
		return 0, fmt.Errorf("fwrite: %w", err)
	}
	if order == precision.Native {
		order = s.ByteOrder()
	}
	count := spec.Count
	if count < 1 {
		count = 1
	}

	n := spec.In.Size()
	var buf [8]byte
	written := 0
	for i, v := range scalars {
		if skip > 0 && i%count == 0 {
			if err := skipForWrite(s, skip); err != nil {
				return written, fmt.Errorf("fwrite: %w", err)
			}
		}
		Encode(buf[:n], v, spec.In, order)
		if _, err := s.Write(buf[:n]); err != nil {
			return written, fmt.Errorf("fwrite: %w", err)
		}
		written++
	}
	log.Debugf("wrote %d elements as %s in %s order to %s", written, spec.In, order.Resolve(), s.Name())
	return written, nil
}

var zeros [512]byte

func skipForWrite(s *stream.Stream, n int64) error {
	_, err := s.Seek(n, io.SeekCurrent)
	if !errors.Is(err, stream.ErrNotSeekable) {
		return err
	}
	for n > 0 {
		chunk := min(n, int64(len(zeros)))
		if _, err := s.Write(zeros[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
