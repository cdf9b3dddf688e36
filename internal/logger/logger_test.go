package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	Init(cfg, &out)
	t.Cleanup(func() { Init(NewConfig(), nil) })
	out.Reset()
	return &out
}

func TestLevels(t *testing.T) {
	out := capture(t, Config{LogLevel: "warn"})

	Infof("quiet %d", 1)
	Warnf("loud %d", 2)
	Errorf("louder %d", 3)

	assert.NotContains(t, out.String(), "quiet 1")
	assert.Contains(t, out.String(), "loud 2")
	assert.Contains(t, out.String(), "louder 3")
	assert.Contains(t, out.String(), "source=logger_test.go:")
}

func TestTagFilter(t *testing.T) {
	out := capture(t, Config{LogLevel: "debug", EnabledTags: []string{"History"}})

	DebugTagf("history", "kept")
	DebugTagf("highlight", "dropped tag")
	Debugf("dropped untagged")

	assert.Contains(t, out.String(), "kept")
	assert.Contains(t, out.String(), "tag=history")
	assert.NotContains(t, out.String(), "dropped")
}

func TestDisabledWins(t *testing.T) {
	out := capture(t, Config{
		LogLevel:     "debug",
		EnabledTags:  []string{"input"},
		DisabledTags: []string{"input"},
	})
	DebugTagf("input", "never")
	assert.Empty(t, out.String())
}

func TestPackageFilter(t *testing.T) {
	out := capture(t, Config{LogLevel: "debug", DisabledPackages: []string{"logger"}})
	Infof("from this package")
	assert.Empty(t, out.String())

	out = capture(t, Config{LogLevel: "debug", EnabledFiles: []string{"logger_test.go"}})
	Infof("from this file")
	assert.Contains(t, out.String(), "from this file")
}

func TestWithTag(t *testing.T) {
	out := capture(t, Config{LogLevel: "debug", DisabledTags: []string{"watch"}})
	Get().With("tag", "watch").Info("muted")
	Get().With("tag", "scheme").Info("heard")

	assert.NotContains(t, out.String(), "muted")
	assert.Contains(t, out.String(), "heard")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("err"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestOpenOutput(t *testing.T) {
	w, closeFn, err := OpenOutput("-")
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	require.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "codeview.log")
	w, closeFn, err = OpenOutput(path)
	require.NoError(t, err)
	Init(Config{LogLevel: "info"}, w)
	t.Cleanup(func() { Init(NewConfig(), nil) })
	Infof("to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")

	_, _, err = OpenOutput(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
}
