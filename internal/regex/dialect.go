package regex

import (
	"fmt"
	"strings"
)

// RegexDialect selects the syntax rules a pattern is written in
type RegexDialect int

const (
	EmacsStyle RegexDialect = iota // Default, zero value
	GrepStyle
	PosixBasic
	PosixExtended
)

var dialects = []RegexDialect{EmacsStyle, GrepStyle, PosixBasic, PosixExtended}

// DefaultDialect returns the dialect used when none is configured
func DefaultDialect() RegexDialect {
	return EmacsStyle
}

// AllDialects returns every supported dialect in a stable order
func AllDialects() []RegexDialect {
	out := make([]RegexDialect, len(dialects))
	copy(out, dialects)
	return out
}

// String returns the canonical token for the dialect
func (d RegexDialect) String() string {
	switch d {
	case EmacsStyle:
		return "emacs"
	case GrepStyle:
		return "grep"
	case PosixBasic:
		return "posix-basic"
	case PosixExtended:
		return "posix-extended"
	default:
		return fmt.Sprintf("RegexDialect(%d)", int(d))
	}
}

// ParseDialect maps a canonical token back to its dialect. Matching is exact.
func ParseDialect(text string) (RegexDialect, error) {
	for _, d := range dialects {
		if d.String() == text {
			return d, nil
		}
	}
	return EmacsStyle, &DialectParseError{Input: text}
}

// DialectParseError reports an unrecognized dialect token
type DialectParseError struct {
	Input string
}

func (e *DialectParseError) Error() string {
	tokens := make([]string, 0, len(dialects))
	for _, d := range dialects {
		tokens = append(tokens, d.String())
	}
	return fmt.Sprintf("invalid regex type: %s (must be one of %s)", e.Input, strings.Join(tokens, ", "))
}

// Set implements pflag.Value
func (d *RegexDialect) Set(text string) error {
	parsed, err := ParseDialect(text)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Type implements pflag.Value
func (d *RegexDialect) Type() string {
	return "regextype"
}

// MarshalText implements encoding.TextMarshaler
func (d RegexDialect) MarshalText() ([]byte, error) {
	if d < EmacsStyle || d > PosixExtended {
		return nil, fmt.Errorf("unknown regex dialect %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *RegexDialect) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}
