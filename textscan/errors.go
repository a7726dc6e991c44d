package textscan

import "fmt"

// FormatError reports a malformed format string. Fragment is the
// offending directive.
type FormatError struct {
	Format   string
	Fragment string
	Reason   string
}

func (e *FormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("textscan: invalid format specifier %q: %s", e.Fragment, e.Reason)
	}
	return fmt.Sprintf("textscan: invalid format specifier %q", e.Fragment)
}

// ReadError reports a conversion failure when ReturnOnError is off. Field
// and Row are 1-based.
type ReadError struct {
	Field int
	Row   int
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("textscan: Read error in field %d of row %d", e.Field, e.Row)
}
