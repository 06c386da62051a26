package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf)

	l.Warning("skipped %s", "/a")
	l.Debug("visited %d", 3)
	l.Error("boom")

	out := buf.String()
	assert.Contains(t, out, "[WARN] ")
	assert.Contains(t, out, "skipped /a")
	assert.Contains(t, out, "[DEBUG] ")
	assert.Contains(t, out, "visited 3")
	assert.Contains(t, out, "[ERROR] ")
	assert.NoError(t, l.Close())
}

func TestWriterLogger_DebugDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf)
	l.debug = false

	l.Debug("hidden")
	l.Warning("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "findninja.out")
	l, err := NewLogger(path)
	require.NoError(t, err)

	l.Error("written to %s", "file")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
