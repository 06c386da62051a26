package matchers

import "github.com/cheerioskun/findninja/internal/models"

// AndMatcher matches when every sub-matcher does. Evaluation stops at the first miss.
type AndMatcher struct {
	matchers []Matcher
}

func NewAndMatcher(matchers ...Matcher) *AndMatcher {
	return &AndMatcher{matchers: matchers}
}

func (m *AndMatcher) Matches(entry *models.Entry, io *MatcherIO) bool {
	for _, sub := range m.matchers {
		if !sub.Matches(entry, io) {
			return false
		}
	}
	return true
}

// OrMatcher matches when any sub-matcher does. Evaluation stops at the first hit.
type OrMatcher struct {
	matchers []Matcher
}

func NewOrMatcher(matchers ...Matcher) *OrMatcher {
	return &OrMatcher{matchers: matchers}
}

func (m *OrMatcher) Matches(entry *models.Entry, io *MatcherIO) bool {
	for _, sub := range m.matchers {
		if sub.Matches(entry, io) {
			return true
		}
	}
	return false
}

// NotMatcher inverts a matcher
type NotMatcher struct {
	inner Matcher
}

func NewNotMatcher(inner Matcher) *NotMatcher {
	return &NotMatcher{inner: inner}
}

func (m *NotMatcher) Matches(entry *models.Entry, io *MatcherIO) bool {
	return !m.inner.Matches(entry, io)
}

// TrueMatcher matches everything
type TrueMatcher struct{}

func (TrueMatcher) Matches(*models.Entry, *MatcherIO) bool {
	return true
}

// QuitMatcher matches and stops the run, like find's -quit. Placed last in
// an And it fires on the first entry everything else accepted.
type QuitMatcher struct{}

func (QuitMatcher) Matches(_ *models.Entry, io *MatcherIO) bool {
	if io != nil {
		io.Quit()
	}
	return true
}

// TypeMatcher keeps only files or only directories
type TypeMatcher struct {
	want models.EntryType
}

func NewTypeMatcher(want models.EntryType) *TypeMatcher {
	return &TypeMatcher{want: want}
}

func (m *TypeMatcher) Matches(entry *models.Entry, _ *MatcherIO) bool {
	switch m.want {
	case models.FileType:
		return !entry.IsDir
	case models.DirType:
		return entry.IsDir
	default:
		return true
	}
}
