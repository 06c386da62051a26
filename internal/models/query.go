package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/cheerioskun/findninja/internal/regex"
)

// ErrInvalidQuery is returned when a Query cannot be evaluated
var ErrInvalidQuery = errors.New("invalid query")

// EntryType restricts a query to files or directories
type EntryType string

const (
	AnyType  EntryType = ""
	FileType EntryType = "f"
	DirType  EntryType = "d"
)

// Query holds everything a find run needs: where to start and which paths to keep
type Query struct {
	Root         string             `json:"root"`          // Starting point, used verbatim as path prefix
	Dialect      regex.RegexDialect `json:"dialect"`       // Syntax of all patterns
	IgnoreCase   bool               `json:"ignore_case"`   // Case-insensitive patterns
	IncludeRegex []string           `json:"include_regex"` // Path must match every one
	ExcludeRegex []string           `json:"exclude_regex"` // Path must match none
	Type         EntryType          `json:"type"`          // Entry type filter
	MinDepth     int                `json:"min_depth"`     // Shallowest depth reported
	MaxDepth     int                `json:"max_depth"`     // Deepest depth visited, -1 for no limit
	MatchTimeout time.Duration      `json:"match_timeout"` // Per-match engine bound, 0 for none
	Quit         bool               `json:"quit"`          // Stop at the first match
}

// NewQuery creates a Query rooted at root with default settings
func NewQuery(root string) *Query {
	return &Query{
		Root:         root,
		Dialect:      regex.DefaultDialect(),
		IncludeRegex: make([]string, 0),
		ExcludeRegex: make([]string, 0),
		Type:         AnyType,
		MinDepth:     0,
		MaxDepth:     -1,
	}
}

// AddIncludeRegex adds a pattern every reported path must match
func (q *Query) AddIncludeRegex(pattern string) {
	q.IncludeRegex = append(q.IncludeRegex, pattern)
}

// AddExcludeRegex adds a pattern that drops any path it matches
func (q *Query) AddExcludeRegex(pattern string) {
	q.ExcludeRegex = append(q.ExcludeRegex, pattern)
}

// HasDepthLimit returns true if traversal stops at MaxDepth
func (q *Query) HasDepthLimit() bool {
	return q.MaxDepth >= 0
}

// Validate checks the query for structural problems. Patterns are checked
// when they are compiled.
func (q *Query) Validate() error {
	if q.Root == "" {
		return fmt.Errorf("%w: empty starting point", ErrInvalidQuery)
	}
	if q.MinDepth < 0 {
		return fmt.Errorf("%w: negative min depth %d", ErrInvalidQuery, q.MinDepth)
	}
	if q.HasDepthLimit() && q.MinDepth > q.MaxDepth {
		return fmt.Errorf("%w: min depth %d exceeds max depth %d", ErrInvalidQuery, q.MinDepth, q.MaxDepth)
	}
	switch q.Type {
	case AnyType, FileType, DirType:
	default:
		return fmt.Errorf("%w: unknown type %q (must be f or d)", ErrInvalidQuery, q.Type)
	}
	if q.MatchTimeout < 0 {
		return fmt.Errorf("%w: negative match timeout", ErrInvalidQuery)
	}
	return nil
}
