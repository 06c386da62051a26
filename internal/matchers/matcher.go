package matchers

import (
	"sync/atomic"

	"github.com/cheerioskun/findninja/internal/models"
)

// Matcher is a single test in a find expression
type Matcher interface {
	Matches(entry *models.Entry, io *MatcherIO) bool
}

// MatcherIO is the evaluation context shared by every matcher in an
// expression. Pure tests ignore it; QuitMatcher uses it to end the run.
type MatcherIO struct {
	quit atomic.Bool
}

// NewMatcherIO creates a fresh evaluation context
func NewMatcherIO() *MatcherIO {
	return &MatcherIO{}
}

// Quit asks the traversal to stop after the current entry
func (m *MatcherIO) Quit() {
	m.quit.Store(true)
}

// ShouldQuit reports whether Quit was called
func (m *MatcherIO) ShouldQuit() bool {
	return m.quit.Load()
}
