package textscan

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

const defaultBufSize = 4096

// Config controls a scan. It is built once per call and read-only while
// the scan runs.
type Config struct {
	// Delimiters holds the field delimiters, each one or more bytes long.
	// With no delimiters fields are separated by whitespace.
	Delimiters []string
	Whitespace string
	// CommentStart and CommentEnd bracket comments. With an empty
	// CommentEnd a comment runs to the end of the line.
	CommentStart string
	CommentEnd   string
	EmptyValue   float64
	// EndOfLine is the line terminator. When AutoEOL is set any of CR, LF
	// and CRLF ends a line.
	EndOfLine           string
	AutoEOL             bool
	HeaderLines         int
	MultipleDelimsAsOne bool
	TreatAsEmpty        []string
	ReturnOnError       bool
	CollectOutput       bool
	BufSize             int
	ExpChars            string
	// Repeat is the number of passes over the format; -1 scans until the
	// input ends.
	Repeat int
}

// DefaultConfig returns the configuration used when no option is given.
func DefaultConfig() Config {
	return Config{
		Whitespace:    " \b\t",
		EmptyValue:    math.NaN(),
		AutoEOL:       true,
		ReturnOnError: true,
		BufSize:       defaultBufSize,
		ExpChars:      "eEdD",
		Repeat:        -1,
	}
}

// OptionError reports an unknown option name or an invalid option value.
type OptionError struct {
	Name   string
	Reason string
}

func (e *OptionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("textscan: unrecognized option '%s'", e.Name)
	}
	return fmt.Sprintf("textscan: invalid value for option '%s': %s", e.Name, e.Reason)
}

type Option func(*Config) error

// WithDelimiter makes every character of chars a delimiter. Escape
// sequences such as \t are expanded.
func WithDelimiter(chars string) Option {
	return func(c *Config) error {
		chars = unescape(chars)
		c.Delimiters = make([]string, 0, len(chars))
		for i := 0; i < len(chars); i++ {
			c.Delimiters = append(c.Delimiters, chars[i:i+1])
		}
		return nil
	}
}

// WithDelimiters sets delimiters that may be longer than one character.
func WithDelimiters(delims ...string) Option {
	return func(c *Config) error {
		c.Delimiters = nil
		for _, d := range delims {
			d = unescape(d)
			if d == "" {
				return &OptionError{Name: "Delimiter", Reason: "empty delimiter"}
			}
			c.Delimiters = append(c.Delimiters, d)
		}
		return nil
	}
}

func WithWhitespace(chars string) Option {
	return func(c *Config) error {
		c.Whitespace = unescape(chars)
		return nil
	}
}

// WithCommentStyle sets a single comment marker, a start/end pair, or one
// of the named styles matlab, shell, c and c++.
func WithCommentStyle(markers ...string) Option {
	return func(c *Config) error {
		if len(markers) == 1 {
			switch strings.ToLower(markers[0]) {
			case "matlab":
				markers = []string{"%"}
			case "shell":
				markers = []string{"#"}
			case "c":
				markers = []string{"/*", "*/"}
			case "c++":
				markers = []string{"//"}
			}
		}
		switch len(markers) {
		case 1:
			c.CommentStart, c.CommentEnd = unescape(markers[0]), ""
		case 2:
			c.CommentStart, c.CommentEnd = unescape(markers[0]), unescape(markers[1])
		default:
			return &OptionError{Name: "CommentStyle", Reason: fmt.Sprintf("want 1 or 2 markers, got %d", len(markers))}
		}
		if c.CommentStart == "" {
			return &OptionError{Name: "CommentStyle", Reason: "empty comment marker"}
		}
		return nil
	}
}

func WithEmptyValue(v float64) Option {
	return func(c *Config) error {
		c.EmptyValue = v
		return nil
	}
}

// WithEndOfLine sets the line terminator: "\n", "\r", "\r\n", or "" for
// none.
func WithEndOfLine(eol string) Option {
	return func(c *Config) error {
		eol = unescape(eol)
		switch eol {
		case "", "\n", "\r", "\r\n":
		default:
			return &OptionError{Name: "EndOfLine", Reason: strconv.Quote(eol)}
		}
		c.EndOfLine = eol
		c.AutoEOL = false
		return nil
	}
}

func WithHeaderLines(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return &OptionError{Name: "HeaderLines", Reason: fmt.Sprintf("%d is negative", n)}
		}
		c.HeaderLines = n
		return nil
	}
}

func WithMultipleDelimsAsOne(on bool) Option {
	return func(c *Config) error {
		c.MultipleDelimsAsOne = on
		return nil
	}
}

func WithTreatAsEmpty(values ...string) Option {
	return func(c *Config) error {
		for _, v := range values {
			if v == "" {
				return &OptionError{Name: "TreatAsEmpty", Reason: "empty string"}
			}
		}
		c.TreatAsEmpty = slices.Clone(values)
		return nil
	}
}

func WithReturnOnError(on bool) Option {
	return func(c *Config) error {
		c.ReturnOnError = on
		return nil
	}
}

func WithCollectOutput(on bool) Option {
	return func(c *Config) error {
		c.CollectOutput = on
		return nil
	}
}

func WithBufSize(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return &OptionError{Name: "BufSize", Reason: fmt.Sprintf("%d is not positive", n)}
		}
		c.BufSize = n
		return nil
	}
}

func WithExpChars(chars string) Option {
	return func(c *Config) error {
		c.ExpChars = chars
		return nil
	}
}

// WithRepeat limits the number of passes over the format. A negative n
// means no limit.
func WithRepeat(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			n = -1
		}
		c.Repeat = n
		return nil
	}
}

// NewConfig applies opts to the default configuration.
func NewConfig(opts ...Option) (Config, error) {
	c := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return Config{}, err
		}
	}
	return c, nil
}

// Set applies one name/value option. Names are matched without regard to
// case. Values may be strings, string slices, numbers or booleans; string
// values are converted where the option needs a number or a flag.
func (c *Config) Set(name string, value any) error {
	opt, err := optionFor(name, value)
	if err != nil {
		return err
	}
	return opt(c)
}

// FromPairs builds a configuration from alternating names and values.
func FromPairs(pairs ...any) (Config, error) {
	c := DefaultConfig()
	if len(pairs)%2 != 0 {
		return Config{}, &OptionError{Name: fmt.Sprint(pairs[len(pairs)-1]), Reason: "missing value"}
	}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			return Config{}, &OptionError{Name: fmt.Sprint(pairs[i])}
		}
		if err := c.Set(name, pairs[i+1]); err != nil {
			return Config{}, err
		}
	}
	return c, nil
}

func optionFor(name string, value any) (Option, error) {
	bad := func(reason string) error { return &OptionError{Name: name, Reason: reason} }

	switch strings.ToLower(name) {
	case "delimiter":
		switch v := value.(type) {
		case string:
			return WithDelimiter(v), nil
		case []string:
			return WithDelimiters(v...), nil
		}
		return nil, bad(fmt.Sprintf("want string, got %T", value))
	case "whitespace":
		s, ok := value.(string)
		if !ok {
			return nil, bad(fmt.Sprintf("want string, got %T", value))
		}
		return WithWhitespace(s), nil
	case "commentstyle":
		switch v := value.(type) {
		case string:
			return WithCommentStyle(v), nil
		case []string:
			return WithCommentStyle(v...), nil
		}
		return nil, bad(fmt.Sprintf("want string, got %T", value))
	case "emptyvalue":
		f, err := toFloat(value)
		if err != nil {
			return nil, bad(err.Error())
		}
		return WithEmptyValue(f), nil
	case "endofline":
		s, ok := value.(string)
		if !ok {
			return nil, bad(fmt.Sprintf("want string, got %T", value))
		}
		return WithEndOfLine(s), nil
	case "headerlines":
		n, err := toInt(value)
		if err != nil {
			return nil, bad(err.Error())
		}
		return WithHeaderLines(n), nil
	case "multipledelimsasone":
		b, err := toBool(value)
		if err != nil {
			return nil, bad(err.Error())
		}
		return WithMultipleDelimsAsOne(b), nil
	case "treatasempty":
		switch v := value.(type) {
		case string:
			return WithTreatAsEmpty(v), nil
		case []string:
			return WithTreatAsEmpty(v...), nil
		}
		return nil, bad(fmt.Sprintf("want string, got %T", value))
	case "returnonerror":
		b, err := toBool(value)
		if err != nil {
			return nil, bad(err.Error())
		}
		return WithReturnOnError(b), nil
	case "collectoutput":
		b, err := toBool(value)
		if err != nil {
			return nil, bad(err.Error())
		}
		return WithCollectOutput(b), nil
	case "bufsize":
		n, err := toInt(value)
		if err != nil {
			return nil, bad(err.Error())
		}
		return WithBufSize(n), nil
	case "expchars":
		s, ok := value.(string)
		if !ok {
			return nil, bad(fmt.Sprintf("want string, got %T", value))
		}
		return WithExpChars(s), nil
	}
	return nil, &OptionError{Name: name}
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", x)
		}
		return f, nil
	}
	return 0, fmt.Errorf("want number, got %T", v)
}

func toInt(v any) (int, error) {
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not an integer", v)
	}
	return int(f), nil
}

func toBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return false, fmt.Errorf("%q is not a boolean", x)
		}
		return b, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return false, fmt.Errorf("want boolean, got %T", v)
	}
	return f != 0, nil
}

// unescape expands the backslash escapes \a \b \f \n \r \t \v \\ and \0.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case '\\':
			sb.WriteByte('\\')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
