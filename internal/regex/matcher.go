package regex

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// PatternMatcher is a pattern compiled under one dialect and case setting.
// It never changes after Compile and is safe for concurrent use.
type PatternMatcher struct {
	dialect    RegexDialect
	pattern    string
	ignoreCase bool
	re         *regexp2.Regexp
}

// PatternCompileError reports a pattern rejected by its dialect or the engine
type PatternCompileError struct {
	Dialect RegexDialect
	Pattern string
	Err     error
}

func (e *PatternCompileError) Error() string {
	return fmt.Sprintf("invalid %s regex %q: %v", e.Dialect, e.Pattern, e.Err)
}

func (e *PatternCompileError) Unwrap() error {
	return e.Err
}

// Option tunes how a pattern is compiled
type Option func(*compileOptions)

type compileOptions struct {
	matchTimeout time.Duration
}

// WithMatchTimeout bounds the time a single match may take. A match that
// runs out of time reports no match. Zero leaves matching unbounded.
func WithMatchTimeout(d time.Duration) Option {
	return func(o *compileOptions) {
		o.matchTimeout = d
	}
}

// Compile builds a matcher for pattern written in dialect
func Compile(dialect RegexDialect, pattern string, ignoreCase bool, opts ...Option) (*PatternMatcher, error) {
	var o compileOptions
	for _, opt := range opts {
		opt(&o)
	}

	syn, ok := syntaxFor(dialect)
	if !ok {
		return nil, &PatternCompileError{Dialect: dialect, Pattern: pattern, Err: fmt.Errorf("unknown regex dialect %d", int(dialect))}
	}

	expr, err := translate(syn, pattern, ignoreCase)
	if err != nil {
		return nil, &PatternCompileError{Dialect: dialect, Pattern: pattern, Err: err}
	}

	flags := regexp2.None
	if ignoreCase {
		flags |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(expr, flags)
	if err != nil {
		return nil, &PatternCompileError{Dialect: dialect, Pattern: pattern, Err: err}
	}
	if o.matchTimeout > 0 {
		re.MatchTimeout = o.matchTimeout
	}

	return &PatternMatcher{
		dialect:    dialect,
		pattern:    pattern,
		ignoreCase: ignoreCase,
		re:         re,
	}, nil
}

// Matches reports whether any part of path matches the pattern
func (m *PatternMatcher) Matches(path string) bool {
	// The engine only errors on timeout, which counts as a miss.
	ok, err := m.re.MatchString(path)
	return err == nil && ok
}

func (m *PatternMatcher) Dialect() RegexDialect { return m.dialect }

func (m *PatternMatcher) Pattern() string { return m.pattern }

func (m *PatternMatcher) IgnoreCase() bool { return m.ignoreCase }
