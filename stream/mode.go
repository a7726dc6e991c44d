package stream

import (
	"fmt"
	"os"
	"strings"
)

// Mode is a parsed fopen mode string.
type Mode struct {
	Read     bool
	Write    bool
	Append   bool
	Truncate bool
	Create   bool
	Binary   bool
	Gzip     bool
}

// ParseMode parses r, w, a, r+, w+ and a+, optionally followed by b or t
// and by z for gzip compression. The modifiers may come in any order after
// the base letter.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return Mode{}, fmt.Errorf("invalid mode %q", s)
	}
	var m Mode
	switch s[0] {
	case 'r':
		m.Read = true
	case 'w':
		m.Write, m.Truncate, m.Create = true, true, true
	case 'a':
		m.Write, m.Append, m.Create = true, true, true
	default:
		return Mode{}, fmt.Errorf("invalid mode %q", s)
	}
	m.Binary = true

	seen := map[byte]bool{}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if seen[c] {
			return Mode{}, fmt.Errorf("invalid mode %q", s)
		}
		seen[c] = true
		switch c {
		case '+':
			m.Read, m.Write = true, true
		case 'b':
			if seen['t'] {
				return Mode{}, fmt.Errorf("invalid mode %q", s)
			}
		case 't':
			if seen['b'] {
				return Mode{}, fmt.Errorf("invalid mode %q", s)
			}
			m.Binary = false
		case 'z':
			m.Gzip = true
		default:
			return Mode{}, fmt.Errorf("invalid mode %q", s)
		}
	}
	if m.Gzip && m.Read && m.Write {
		return Mode{}, fmt.Errorf("invalid mode %q: compressed streams are read-only or write-only", s)
	}
	return m, nil
}

func (m Mode) String() string {
	var sb strings.Builder
	switch {
	case m.Append:
		sb.WriteByte('a')
	case m.Truncate:
		sb.WriteByte('w')
	default:
		sb.WriteByte('r')
	}
	if m.Read && m.Write {
		sb.WriteByte('+')
	}
	if m.Binary {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('t')
	}
	if m.Gzip {
		sb.WriteByte('z')
	}
	return sb.String()
}

func (m Mode) flags() int {
	var flags int
	switch {
	case m.Read && m.Write:
		flags = os.O_RDWR
	case m.Write:
		flags = os.O_WRONLY
	default:
		flags = os.O_RDONLY
	}
	if m.Create {
		flags |= os.O_CREATE
	}
	if m.Truncate {
		flags |= os.O_TRUNC
	}
	if m.Append {
		flags |= os.O_APPEND
	}
	return flags
}
