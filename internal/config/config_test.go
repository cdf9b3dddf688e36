package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig().Editor, cfg.Editor)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
	assert.Empty(t, cfg.Path())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[logger]
log_level = "debug"
enabled_tags = ["highlight"]

[editor]
scheme = "monokai"
lexer = "python"
highlight_mode = "treesitter"
tab_width = 8
viewport_height = 20
bogus = 1
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"highlight"}, cfg.Logger.EnabledTags)
	assert.Equal(t, EditorConfig{
		Scheme:         "monokai",
		Lexer:          "python",
		HighlightMode:  "treesitter",
		TabWidth:       8,
		ViewportHeight: 20,
	}, cfg.Editor)
	assert.Equal(t, []string{"editor.bogus"}, cfg.Undecoded())
}

func TestLoad_ValidateResets(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = -2
viewport_height = -1
scheme = ""
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTabWidth, cfg.Editor.TabWidth)
	assert.Equal(t, 0, cfg.Editor.ViewportHeight)
	assert.Equal(t, "dracula", cfg.Editor.Scheme)
}

func TestLoad_BadMode(t *testing.T) {
	path := writeConfig(t, "[editor]\nhighlight_mode = \"magic\"\n")
	_, err := Load(path, nil)
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[editor\n"), nil)
	assert.Error(t, err)
}

func TestFlags_Overrides(t *testing.T) {
	path := writeConfig(t, `
[editor]
scheme = "monokai"
tab_width = 2
`)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var f Flags
	f.DefineFlags(fs)
	require.NoError(t, fs.Parse([]string{"--scheme", "mariana", "--loglevel=warn", "--log-tags", "edit, highlight,"}))

	cfg, err := Load(path, &f)
	require.NoError(t, err)
	assert.Equal(t, "mariana", cfg.Editor.Scheme)
	assert.Equal(t, 2, cfg.Editor.TabWidth, "unset flags keep file values")
	assert.Equal(t, "warn", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"edit", "highlight"}, cfg.Logger.EnabledTags)
}
