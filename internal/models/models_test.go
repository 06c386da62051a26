package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cheerioskun/findninja/internal/regex"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuery_Defaults(t *testing.T) {
	q := NewQuery("/var/log")
	assert.Equal(t, "/var/log", q.Root)
	assert.Equal(t, regex.EmacsStyle, q.Dialect)
	assert.False(t, q.HasDepthLimit())
	assert.Empty(t, q.IncludeRegex)
	assert.Empty(t, q.ExcludeRegex)
	assert.NoError(t, q.Validate())
}

func TestQuery_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Query)
		ok     bool
	}{
		{"empty root", func(q *Query) { q.Root = "" }, false},
		{"negative min depth", func(q *Query) { q.MinDepth = -1 }, false},
		{"min above max", func(q *Query) { q.MinDepth = 3; q.MaxDepth = 2 }, false},
		{"min equals max", func(q *Query) { q.MinDepth = 2; q.MaxDepth = 2 }, true},
		{"min with unlimited max", func(q *Query) { q.MinDepth = 5 }, true},
		{"file type", func(q *Query) { q.Type = FileType }, true},
		{"dir type", func(q *Query) { q.Type = DirType }, true},
		{"bad type", func(q *Query) { q.Type = "l" }, false},
		{"negative timeout", func(q *Query) { q.MatchTimeout = -time.Second }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuery(".")
			tt.mutate(q)
			err := q.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidQuery)
			}
		})
	}
}

func TestQuery_JSONUsesDialectToken(t *testing.T) {
	q := NewQuery(".")
	q.Dialect = regex.PosixBasic
	q.AddIncludeRegex(`a\{2\}`)

	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dialect":"posix-basic"`)

	var back Query
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, regex.PosixBasic, back.Dialect)
	assert.Equal(t, []string{`a\{2\}`}, back.IncludeRegex)
}

func TestNewEntry(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/app.log", []byte("hello"), 0644))

	info, err := fs.Stat("/data/app.log")
	require.NoError(t, err)

	e := NewEntry("/data//app.log", 2, info)
	assert.Equal(t, "/data//app.log", e.Path, "path is kept verbatim")
	assert.Equal(t, "app.log", e.Name)
	assert.Equal(t, 2, e.Depth)
	assert.False(t, e.IsDir)
	assert.Equal(t, int64(5), e.Size)

	root := NewEntry("/data", 0, nil)
	assert.Equal(t, "/data", root.Path)
	assert.Empty(t, root.Name)
}

func TestResultSet(t *testing.T) {
	rs := NewResultSet(NewQuery("."))
	assert.True(t, rs.IsEmpty())

	rs.Add(&Entry{Path: "./a", Size: 10})
	rs.Add(&Entry{Path: "./b", Size: 5})
	rs.Finish()

	assert.Equal(t, 2, rs.Count())
	assert.Equal(t, int64(15), rs.TotalSize)
	assert.Equal(t, []string{"./a", "./b"}, rs.Paths())
	assert.NotEmpty(t, rs.Duration)
}
