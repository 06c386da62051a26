package patterns

import "github.com/cheerioskun/findninja/internal/regex"

// PatternType says whether a pattern keeps or drops the paths it matches
type PatternType int

const (
	IncludeType PatternType = iota
	ExcludeType
)

// String returns a human-readable representation of the pattern type
func (pt PatternType) String() string {
	switch pt {
	case IncludeType:
		return "Include"
	case ExcludeType:
		return "Exclude"
	default:
		return "Unknown"
	}
}

// Pattern is one panel row
type Pattern struct {
	Text       string                // Pattern source as typed
	Type       PatternType           // Include or exclude
	Compiled   *regex.PatternMatcher // nil if invalid
	Valid      bool                  // Whether the pattern compiles under the current dialect
	MatchCount int                   // Paths this pattern matches on its own
	Error      string                // Compile error if invalid
}
