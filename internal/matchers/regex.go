package matchers

import (
	"github.com/cheerioskun/findninja/internal/models"
	"github.com/cheerioskun/findninja/internal/regex"
)

// RegexMatcher tests an entry's full path against a compiled pattern
type RegexMatcher struct {
	pattern *regex.PatternMatcher
}

// NewRegexMatcher compiles pattern under dialect and wraps it as a Matcher
func NewRegexMatcher(dialect regex.RegexDialect, pattern string, ignoreCase bool, opts ...regex.Option) (*RegexMatcher, error) {
	compiled, err := regex.Compile(dialect, pattern, ignoreCase, opts...)
	if err != nil {
		return nil, err
	}
	return &RegexMatcher{pattern: compiled}, nil
}

// WrapRegex adapts an already compiled pattern
func WrapRegex(pattern *regex.PatternMatcher) *RegexMatcher {
	return &RegexMatcher{pattern: pattern}
}

func (m *RegexMatcher) Matches(entry *models.Entry, _ *MatcherIO) bool {
	return m.pattern.Matches(entry.Path)
}

// Pattern returns the compiled pattern
func (m *RegexMatcher) Pattern() *regex.PatternMatcher {
	return m.pattern
}
