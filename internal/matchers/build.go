package matchers

import (
	"fmt"

	"github.com/cheerioskun/findninja/internal/models"
	"github.com/cheerioskun/findninja/internal/regex"
)

// Build compiles every pattern in q and assembles the expression
//
//	type AND include... AND NOT (exclude OR ...) [AND quit]
//
// All compilation happens here, so a bad pattern fails before traversal.
func Build(q *models.Query) (Matcher, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var opts []regex.Option
	if q.MatchTimeout > 0 {
		opts = append(opts, regex.WithMatchTimeout(q.MatchTimeout))
	}

	var terms []Matcher
	if q.Type != models.AnyType {
		terms = append(terms, NewTypeMatcher(q.Type))
	}

	for _, pattern := range q.IncludeRegex {
		m, err := NewRegexMatcher(q.Dialect, pattern, q.IgnoreCase, opts...)
		if err != nil {
			return nil, fmt.Errorf("include pattern: %w", err)
		}
		terms = append(terms, m)
	}

	if len(q.ExcludeRegex) > 0 {
		excludes := make([]Matcher, 0, len(q.ExcludeRegex))
		for _, pattern := range q.ExcludeRegex {
			m, err := NewRegexMatcher(q.Dialect, pattern, q.IgnoreCase, opts...)
			if err != nil {
				return nil, fmt.Errorf("exclude pattern: %w", err)
			}
			excludes = append(excludes, m)
		}
		terms = append(terms, NewNotMatcher(NewOrMatcher(excludes...)))
	}

	if q.Quit {
		terms = append(terms, QuitMatcher{})
	}

	switch len(terms) {
	case 0:
		return TrueMatcher{}, nil
	case 1:
		return terms[0], nil
	default:
		return NewAndMatcher(terms...), nil
	}
}
