package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/cheerioskun/findninja/internal/config"
	"github.com/cheerioskun/findninja/internal/models"
	"github.com/cheerioskun/findninja/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	utils.SetLogFile(os.DevNull)
	utils.GetLogger()
	os.Exit(m.Run())
}

func newTestFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/data/simple/abbbc":       "x",
		"/data/simple/abc":         "xy",
		"/data/simple/ab{3}c":      "",
		"/data/logs/app.log":       "hello",
		"/data/logs/old/app.log":   "hello world",
		"/data/logs/old/DEBUG.LOG": "",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}

func execute(t *testing.T, fs afero.Fs, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd(viper.New(), fs)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestFind_DefaultDialect(t *testing.T) {
	out, _, err := execute(t, newTestFs(t), "find", "/data", "--regex", `.*/ab\{3\}c`)
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/simple/abbbc"}, lines(out))
}

func TestFind_DialectsDisagreeOnBraces(t *testing.T) {
	fs := newTestFs(t)

	out, _, err := execute(t, fs, "find", "/data", "--regextype", "posix-extended", "--regex", ".*/ab{3}c$")
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/simple/abbbc"}, lines(out))

	out, _, err = execute(t, fs, "find", "/data", "--regextype", "posix-basic", "--regex", ".*/ab{3}c$")
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/simple/ab{3}c"}, lines(out))
}

func TestFind_IgnoreCase(t *testing.T) {
	fs := newTestFs(t)

	out, _, err := execute(t, fs, "find", "/data", "--regex", ".*/ab.BC")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, _, err = execute(t, fs, "find", "/data", "--regex", ".*/ab.BC", "-i")
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/simple/abbbc"}, lines(out))

	out, _, err = execute(t, fs, "find", "/data", "--iregex", `.*\.log$`)
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/logs/app.log", "/data/logs/old/DEBUG.LOG", "/data/logs/old/app.log"}, lines(out))
}

func TestFind_RegexAndIregexConflict(t *testing.T) {
	_, _, err := execute(t, newTestFs(t), "find", "/data", "--regex", "a", "--iregex", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--iregex")
}

func TestFind_InvalidDialect(t *testing.T) {
	out, _, err := execute(t, newTestFs(t), "find", "/data", "--regextype", "bogus-dialect", "--regex", ".*")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus-dialect")
	assert.Contains(t, err.Error(), "emacs, grep, posix-basic, posix-extended")
	assert.Empty(t, out)
}

func TestFind_InvalidPatternFailsBeforeOutput(t *testing.T) {
	out, _, err := execute(t, newTestFs(t), "find", "/data", "--regextype", "posix-extended", "--regex", "(unclosed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include pattern")
	assert.Empty(t, out)
}

func TestFind_ExcludeAndType(t *testing.T) {
	fs := newTestFs(t)

	out, _, err := execute(t, fs, "find", "/data", "--regex", `.*\.log$`, "--exclude-regex", ".*/old/.*")
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/logs/app.log"}, lines(out))

	out, _, err = execute(t, fs, "find", "/data", "--type", "d", "--max-depth", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"/data", "/data/logs", "/data/simple"}, lines(out))

	_, _, err = execute(t, fs, "find", "/data", "--type", "x")
	assert.Error(t, err)
}

func TestFind_Print0(t *testing.T) {
	out, _, err := execute(t, newTestFs(t), "find", "/data/logs/old", "--print0", "--min-depth", "1")
	require.NoError(t, err)
	assert.Equal(t, "/data/logs/old/DEBUG.LOG\x00/data/logs/old/app.log\x00", out)
}

func TestFind_JSON(t *testing.T) {
	out, _, err := execute(t, newTestFs(t), "find", "/data", "--regex", `.*\.log$`, "--json", "--workers", "2")
	require.NoError(t, err)

	var result struct {
		Query struct {
			Root    string `json:"root"`
			Dialect string `json:"dialect"`
		} `json:"query"`
		Entries []struct {
			Path string `json:"path"`
		} `json:"entries"`
		TotalSize int64 `json:"total_size"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "/data", result.Query.Root)
	assert.Equal(t, "emacs", result.Query.Dialect)
	require.Len(t, result.Entries, 3)
	assert.Equal(t, "/data/logs/app.log", result.Entries[0].Path)
	assert.Equal(t, int64(16), result.TotalSize)
}

func TestFind_Quit(t *testing.T) {
	out, _, err := execute(t, newTestFs(t), "find", "/data", "--regex", `.*\.log$`, "--quit", "--workers", "4")
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/logs/app.log"}, lines(out))
}

func TestFind_Workers(t *testing.T) {
	_, _, err := execute(t, newTestFs(t), "find", "/data", "--workers", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--workers")
}

func TestFind_MissingRoot(t *testing.T) {
	_, _, err := execute(t, newTestFs(t), "find", "/nowhere")
	assert.Error(t, err)
}

func TestFind_CopyTo(t *testing.T) {
	fs := newTestFs(t)

	out, errOut, err := execute(t, fs, "find", "/data/logs", "--regex", `.*\.log$`, "--copy-to", "/out")
	require.NoError(t, err)
	assert.Len(t, lines(out), 2)
	assert.Contains(t, errOut, "Copied 2 files")

	data, err := afero.ReadFile(fs, "/out/old/app.log")
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestFind_CopyToStartingPoint(t *testing.T) {
	fs := newTestFs(t)

	_, _, err := execute(t, fs, "find", "/data/logs", "--regex", `.*\.log$`, "--copy-to", "/data/logs", "--overwrite")
	require.Error(t, err)

	data, err := afero.ReadFile(fs, "/data/logs/app.log")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestTestCmd(t *testing.T) {
	out, _, err := execute(t, afero.NewMemMapFs(), "test", "--regextype", "posix-basic", `.*/ab\{1,3\}c`, "/tmp/abbbc", "/tmp/ac")
	require.NoError(t, err)
	assert.Equal(t, "match\t/tmp/abbbc\nno match\t/tmp/ac\n", out)

	out, _, err = execute(t, afero.NewMemMapFs(), "test", "-i", ".*/ab.BC", "/tmp/abbbc")
	require.NoError(t, err)
	assert.Equal(t, "match\t/tmp/abbbc\n", out)

	_, _, err = execute(t, afero.NewMemMapFs(), "test", ".*")
	assert.Error(t, err)
}

func TestDialectsCmd(t *testing.T) {
	out, _, err := execute(t, afero.NewMemMapFs(), "dialects")
	require.NoError(t, err)
	for _, token := range []string{"emacs", "grep", "posix-basic", "posix-extended"} {
		assert.Contains(t, out, token)
	}
	assert.Contains(t, out, "* emacs")
}

func TestInitCmd_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()

	out, _, err := execute(t, fs, "init", "--output", "/cfg/findninja.yaml",
		"--regextype", "posix-extended", "--ignore-case", "--workers", "3", "--match-timeout", "2s")
	require.NoError(t, err)
	assert.Contains(t, out, "/cfg/findninja.yaml")

	_, _, err = execute(t, fs, "init", "--output", "/cfg/findninja.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	out, _, err = execute(t, fs, "--config", "/cfg/findninja.yaml", "dialects")
	require.NoError(t, err)
	assert.Contains(t, out, "* posix-extended")

	out, _, err = execute(t, fs, "--config", "/cfg/findninja.yaml", "test", "AB{2}", "/x/abb")
	require.NoError(t, err)
	assert.Equal(t, "match\t/x/abb\n", out)
}

func TestInitCmd_RejectsUnknownFormat(t *testing.T) {
	_, _, err := execute(t, afero.NewMemMapFs(), "init", "--output", "/cfg/findninja.ini")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
}

func TestConfigFile_MissingExplicit(t *testing.T) {
	_, _, err := execute(t, afero.NewMemMapFs(), "--config", "/nope.yaml", "dialects")
	assert.Error(t, err)
}

func TestScanForTUI(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	s, err := config.Load(v)
	require.NoError(t, err)

	a := &app{v: v, fs: newTestFs(t), settings: s}
	opts := &findOptions{regexes: []string{`.*\.log$`}, entryType: "f"}

	q, entries, err := scanForTUI(context.Background(), a, opts, "/data/logs")
	require.NoError(t, err)
	assert.Equal(t, []string{`.*\.log$`}, q.IncludeRegex)
	assert.Equal(t, models.FileType, q.Type)

	// Patterns are left to the tester, so every entry comes back
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	assert.Equal(t, []string{
		"/data/logs",
		"/data/logs/app.log",
		"/data/logs/old",
		"/data/logs/old/DEBUG.LOG",
		"/data/logs/old/app.log",
	}, paths)
}
