package stream

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/octio/precision"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		mode string
		want Mode
	}{
		{"r", Mode{Read: true, Binary: true}},
		{"rb", Mode{Read: true, Binary: true}},
		{"rt", Mode{Read: true}},
		{"w", Mode{Write: true, Truncate: true, Create: true, Binary: true}},
		{"a+", Mode{Read: true, Write: true, Append: true, Create: true, Binary: true}},
		{"r+b", Mode{Read: true, Write: true, Binary: true}},
		{"wz", Mode{Write: true, Truncate: true, Create: true, Binary: true, Gzip: true}},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.mode)
		if err != nil {
			t.Fatalf("ParseMode(%q) error: %v", tt.mode, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %+v, want %+v", tt.mode, got, tt.want)
		}
	}
	for _, bad := range []string{"", "x", "rr", "rbt", "r++", "r+z"} {
		if _, err := ParseMode(bad); err == nil {
			t.Errorf("ParseMode(%q) succeeded, want error", bad)
		}
	}
}

func TestPeekUnreadKeepsPosition(t *testing.T) {
	s := NewString("hello world")
	buf := make([]byte, 5)
	if _, err := io.ReadFull(s, buf); err != nil {
		t.Fatal(err)
	}
	if s.Tell() != 5 {
		t.Fatalf("Tell() = %d, want 5", s.Tell())
	}

	peek, err := s.Peek(3)
	if err != nil || string(peek) != " wo" {
		t.Fatalf("Peek(3) = %q, %v", peek, err)
	}
	if s.Tell() != 5 {
		t.Errorf("Peek moved the position to %d", s.Tell())
	}

	if _, err := io.ReadFull(s, buf[:3]); err != nil {
		t.Fatal(err)
	}
	s.Unread([]byte("wo"))
	if s.Tell() != 6 {
		t.Errorf("Tell() after Unread = %d, want 6", s.Tell())
	}
	rest, _ := io.ReadAll(s)
	if string(rest) != "world" {
		t.Errorf("rest = %q, want %q", rest, "world")
	}
	if !s.EOF() {
		t.Error("expected EOF")
	}
}

func TestPeekPastEnd(t *testing.T) {
	s := NewString("ab")
	got, err := s.Peek(4)
	if !errors.Is(err, io.EOF) || string(got) != "ab" {
		t.Errorf("Peek(4) = %q, %v", got, err)
	}
}

func TestGetLine(t *testing.T) {
	s := NewString("one\r\ntwo\rthree\nfour")
	var lines []string
	for {
		line, err := s.GetLine(false)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		lines = append(lines, line)
	}
	want := []string{"one", "two", "three", "four"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	s = NewString("a\r\nb\n")
	line, _ := s.GetLine(true)
	if line != "a\r\n" {
		t.Errorf("GetLine(true) = %q", line)
	}
}

func TestSkipLines(t *testing.T) {
	s := NewString("h1\nh2\n1 2\n")
	n, err := s.SkipLines(2)
	if err != nil || n != 2 {
		t.Fatalf("SkipLines(2) = %d, %v", n, err)
	}
	if s.Tell() != 6 {
		t.Errorf("Tell() = %d, want 6", s.Tell())
	}
	n, _ = s.SkipLines(-1)
	if n != 1 {
		t.Errorf("SkipLines(-1) = %d, want 1", n)
	}
}

func TestStickyErrors(t *testing.T) {
	s := NewString("abc")
	if _, err := s.Write([]byte("x")); !errors.Is(err, ErrNotWritable) {
		t.Fatalf("Write error = %v", err)
	}
	if !errors.Is(s.Err(), ErrNotWritable) {
		t.Errorf("Err() = %v", s.Err())
	}
	s.ClearError()
	if s.Err() != nil {
		t.Errorf("Err() after ClearError = %v", s.Err())
	}
}

func TestBufferSeekAndWrite(t *testing.T) {
	s, err := NewBuffer(nil, "w+", precision.Native)
	if err != nil {
		t.Fatal(err)
	}
	s.WriteString("0123456789")
	if _, err := s.Seek(-4, io.SeekEnd); err != nil {
		t.Fatal(err)
	}
	s.WriteString("xy")
	if got := string(s.Bytes()); got != "012345xy89" {
		t.Errorf("Bytes() = %q", got)
	}
	if err := s.Rewind(); err != nil {
		t.Fatal(err)
	}
	line, _ := s.GetLine(false)
	if line != "012345xy89" {
		t.Errorf("GetLine = %q", line)
	}
}

func TestCompressedFiles(t *testing.T) {
	for _, c := range []Compression{Gzip, Zstd} {
		t.Run(c.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data")
			w, err := Open(path, "w", precision.Native, WithCompression(c))
			if err != nil {
				t.Fatal(err)
			}
			w.WriteString("1 2 3\n4 5 6\n")
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}

			r, err := Open(path, "r", precision.Native, WithCompression(c))
			if err != nil {
				t.Fatal(err)
			}
			defer r.Close()
			if _, err := r.Seek(0, io.SeekStart); !errors.Is(err, ErrNotSeekable) {
				t.Errorf("Seek error = %v, want ErrNotSeekable", err)
			}
			data, _ := io.ReadAll(r)
			if string(data) != "1 2 3\n4 5 6\n" {
				t.Errorf("read back %q", data)
			}
		})
	}
}

func TestCompressedFlush(t *testing.T) {
	for _, c := range []Compression{Gzip, Zstd} {
		t.Run(c.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data")
			w, err := Open(path, "w", precision.Native, WithCompression(c))
			if err != nil {
				t.Fatal(err)
			}
			defer w.Close()
			if _, err := w.WriteString("hello world"); err != nil {
				t.Fatal(err)
			}
			before := fileSize(t, path)
			if err := w.Flush(); err != nil {
				t.Fatal(err)
			}
			if after := fileSize(t, path); after <= before {
				t.Errorf("size after Flush = %d, want more than %d", after, before)
			}
		})
	}
}

func fileSize(t *testing.T, path string) int64 {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return info.Size()
}

func TestOpenUpdateModes(t *testing.T) {
	tests := []struct {
		mode string
		want string
	}{
		{"r+", "XYc"},
		{"w+", "XY"},
		{"a+", "abcXY"},
		{"r+b", "XYc"},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data")
			if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
				t.Fatal(err)
			}
			s, err := Open(path, tt.mode, precision.Native)
			if err != nil {
				t.Fatalf("Open(%q): %v", tt.mode, err)
			}
			defer s.Close()
			if _, err := s.WriteString("XY"); err != nil {
				t.Fatal(err)
			}
			if err := s.Rewind(); err != nil {
				t.Fatal(err)
			}
			data, err := io.ReadAll(s)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.want {
				t.Errorf("read back %q, want %q", data, tt.want)
			}
		})
	}
}

func TestPopen(t *testing.T) {
	s, err := Popen("printf 'a\\nb\\n'", "r")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	first, _ := s.GetLine(false)
	second, _ := s.GetLine(false)
	if first != "a" || second != "b" {
		t.Errorf("lines = %q, %q", first, second)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if ids := r.IDs(); len(ids) != 3 {
		t.Fatalf("IDs() = %v, want the three standard streams", ids)
	}

	s := NewString("x")
	id := r.Insert(s)
	if id != 3 {
		t.Errorf("Insert returned %d, want 3", id)
	}
	got, err := r.Lookup(id)
	if err != nil || got != s {
		t.Fatalf("Lookup(%d) = %v, %v", id, got, err)
	}
	if err := r.Remove(id); err != nil {
		t.Fatal(err)
	}
	if !s.Closed() {
		t.Error("Remove did not close the stream")
	}
	if _, err := r.Lookup(id); !errors.Is(err, ErrStreamNotFound) {
		t.Errorf("Lookup after Remove error = %v", err)
	}
	if err := r.Remove(id); !errors.Is(err, ErrStreamNotFound) {
		t.Errorf("second Remove error = %v", err)
	}
	if err := r.Remove(Stdout); err == nil {
		t.Error("removing stdout succeeded")
	}
	if next := r.Insert(NewString("y")); next != 4 {
		t.Errorf("ids reused: got %d, want 4", next)
	}
	if err := r.CloseAll(); err != nil {
		t.Fatal(err)
	}
	if ids := r.IDs(); len(ids) != 3 {
		t.Errorf("IDs() after CloseAll = %v", ids)
	}
}
