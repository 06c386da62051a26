package matchers

import (
	"errors"
	"testing"

	"github.com/cheerioskun/findninja/internal/models"
	"github.com/cheerioskun/findninja/internal/regex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingMatcher records how often it was asked
type countingMatcher struct {
	result bool
	calls  int
}

func (m *countingMatcher) Matches(*models.Entry, *MatcherIO) bool {
	m.calls++
	return m.result
}

func file(path string) *models.Entry {
	return &models.Entry{Path: path}
}

func dir(path string) *models.Entry {
	return &models.Entry{Path: path, IsDir: true}
}

func TestRegexMatcher_UsesFullPath(t *testing.T) {
	m, err := NewRegexMatcher(regex.EmacsStyle, `.*/ab.BC`, true)
	require.NoError(t, err)

	io := NewMatcherIO()
	assert.True(t, m.Matches(file("test_data/simple/abbbc"), io))
	assert.False(t, m.Matches(&models.Entry{Path: "abbbc", Name: "abbbc"}, io), "the name alone has no slash")
}

func TestRegexMatcher_IgnoresContext(t *testing.T) {
	m, err := NewRegexMatcher(regex.PosixExtended, `ab{1,3}c$`, false)
	require.NoError(t, err)

	io := NewMatcherIO()
	assert.True(t, m.Matches(file("/x/abbbc"), io))
	assert.True(t, m.Matches(file("/x/abbbc"), nil))
	assert.False(t, io.ShouldQuit())
}

func TestRegexMatcher_CompileError(t *testing.T) {
	m, err := NewRegexMatcher(regex.PosixBasic, `\(`, false)
	require.Error(t, err)
	assert.Nil(t, m)

	var cerr *regex.PatternCompileError
	assert.True(t, errors.As(err, &cerr))
}

func TestWrapRegex(t *testing.T) {
	compiled, err := regex.Compile(regex.GrepStyle, `b\+c$`, false)
	require.NoError(t, err)

	m := WrapRegex(compiled)
	assert.Same(t, compiled, m.Pattern())
	assert.True(t, m.Matches(file("/abbbc"), nil))
}

func TestLogic(t *testing.T) {
	e := file("/a")

	yes, no := &countingMatcher{result: true}, &countingMatcher{result: false}
	assert.False(t, NewAndMatcher(no, yes).Matches(e, nil))
	assert.Equal(t, 0, yes.calls, "and short-circuits")

	yes, no = &countingMatcher{result: true}, &countingMatcher{result: false}
	assert.True(t, NewOrMatcher(yes, no).Matches(e, nil))
	assert.Equal(t, 0, no.calls, "or short-circuits")

	assert.True(t, NewAndMatcher().Matches(e, nil))
	assert.False(t, NewOrMatcher().Matches(e, nil))
	assert.True(t, NewNotMatcher(&countingMatcher{}).Matches(e, nil))
	assert.True(t, TrueMatcher{}.Matches(e, nil))
}

func TestTypeMatcher(t *testing.T) {
	assert.True(t, NewTypeMatcher(models.FileType).Matches(file("/a"), nil))
	assert.False(t, NewTypeMatcher(models.FileType).Matches(dir("/a"), nil))
	assert.True(t, NewTypeMatcher(models.DirType).Matches(dir("/a"), nil))
	assert.False(t, NewTypeMatcher(models.DirType).Matches(file("/a"), nil))
	assert.True(t, NewTypeMatcher(models.AnyType).Matches(dir("/a"), nil))
}

func TestMatcherIO_Quit(t *testing.T) {
	io := NewMatcherIO()
	assert.False(t, io.ShouldQuit())
	io.Quit()
	assert.True(t, io.ShouldQuit())
}

func TestQuitMatcher(t *testing.T) {
	io := NewMatcherIO()
	assert.True(t, QuitMatcher{}.Matches(file("/a"), io))
	assert.True(t, io.ShouldQuit())
	assert.True(t, QuitMatcher{}.Matches(file("/a"), nil))

	// Only fires once the rest of the expression accepted the entry
	io = NewMatcherIO()
	m := NewAndMatcher(&countingMatcher{result: false}, QuitMatcher{})
	assert.False(t, m.Matches(file("/a"), io))
	assert.False(t, io.ShouldQuit())
}

func TestBuild_Quit(t *testing.T) {
	q := models.NewQuery("/logs")
	q.AddIncludeRegex(`\.log$`)
	q.Quit = true

	m, err := Build(q)
	require.NoError(t, err)

	io := NewMatcherIO()
	assert.False(t, m.Matches(file("/logs/a.txt"), io))
	assert.False(t, io.ShouldQuit())
	assert.True(t, m.Matches(file("/logs/a.log"), io))
	assert.True(t, io.ShouldQuit())
}

func TestBuild(t *testing.T) {
	q := models.NewQuery("/logs")
	q.Dialect = regex.PosixExtended
	q.AddIncludeRegex(`\.log$`)
	q.AddExcludeRegex(`/old/`)
	q.AddExcludeRegex(`debug`)
	q.Type = models.FileType

	m, err := Build(q)
	require.NoError(t, err)

	tests := []struct {
		entry *models.Entry
		want  bool
	}{
		{file("/logs/app.log"), true},
		{file("/logs/old/app.log"), false},
		{file("/logs/debug.log"), false},
		{file("/logs/app.txt"), false},
		{dir("/logs/dir.log"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Matches(tt.entry, nil), tt.entry.Path)
	}
}

func TestBuild_Empty(t *testing.T) {
	m, err := Build(models.NewQuery("."))
	require.NoError(t, err)
	assert.True(t, m.Matches(file("./anything"), nil))
}

func TestBuild_IgnoreCase(t *testing.T) {
	q := models.NewQuery(".")
	q.IgnoreCase = true
	q.AddIncludeRegex(`README`)

	m, err := Build(q)
	require.NoError(t, err)
	assert.True(t, m.Matches(file("./readme.md"), nil))
}

func TestBuild_FailsFast(t *testing.T) {
	q := models.NewQuery(".")
	q.Dialect = regex.PosixExtended
	q.AddIncludeRegex(`ok`)
	q.AddExcludeRegex(`a{2`)

	_, err := Build(q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exclude pattern")

	var cerr *regex.PatternCompileError
	assert.True(t, errors.As(err, &cerr))
}

func TestBuild_InvalidQuery(t *testing.T) {
	q := models.NewQuery("")
	_, err := Build(q)
	assert.ErrorIs(t, err, models.ErrInvalidQuery)
}
