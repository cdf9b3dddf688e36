package scheme

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/codeview/internal/token"
)

func TestBundledCatalog(t *testing.T) {
	c, err := NewBundledCatalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"ayu-dark", "ayu-light", "dracula", "mariana", "monokai"}, c.Names())

	for _, name := range c.Names() {
		s, err := c.Load(name)
		require.NoError(t, err)
		ed, styles, err := Resolve(s)
		require.NoError(t, err, name)
		assert.NotNil(t, ed.CaretWidth, name)
		assert.Contains(t, styles, token.Keyword, name)
		assert.Contains(t, styles, token.LiteralNumberInteger, name)
	}

	_, err = c.Load(DefaultName)
	require.NoError(t, err)
}

func TestCatalog_UnknownName(t *testing.T) {
	c, err := NewBundledCatalog()
	require.NoError(t, err)

	_, err = c.Load("solarized-plaid")
	assert.ErrorIs(t, err, ErrUnknownScheme)

	s, err := c.Load("Dracula")
	require.NoError(t, err)
	assert.Equal(t, "dracula", s.Name)
}

func TestNewCatalog_FS(t *testing.T) {
	fsys := fstest.MapFS{
		"one.toml":  {Data: []byte("[general]\nkeyword = \"#111111\"\n")},
		"two.yaml":  {Data: []byte("general:\n  keyword: \"#222222\"\n")},
		"notes.txt": {Data: []byte("ignored")},
	}
	c, err := NewCatalog(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, c.Names())

	fsys["bad.toml"] = &fstest.MapFile{Data: []byte("[general")}
	_, err = NewCatalog(fsys)
	assert.Error(t, err)
}

func TestCatalog_WithDir(t *testing.T) {
	base, err := NewBundledCatalog()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dracula.yml"),
		[]byte("general:\n  keyword: \"#010203\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mine.toml"),
		[]byte("[general]\nstring = \"#ffffff\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.toml"),
		[]byte("[general"), 0o644))

	c, err := base.WithDir(dir)
	require.NoError(t, err)
	assert.Contains(t, c.Names(), "mine")
	assert.NotContains(t, c.Names(), "broken")

	s, err := c.Load("dracula")
	require.NoError(t, err)
	_, styles, err := Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, fg("#010203"), styles[token.Keyword])

	orig, err := base.Load("dracula")
	require.NoError(t, err)
	assert.NotSame(t, orig, s, "the base catalog is unchanged")

	missing, err := base.WithDir(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Equal(t, base.Names(), missing.Names())
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Night.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
editor:
  bg: "#000000"
  caret_width: 3
general:
  comment: "#777777"
comment:
  multiline: "#888888"
`), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "night", s.Name)

	ed, styles, err := Resolve(s)
	require.NoError(t, err)
	require.NotNil(t, ed.CaretWidth)
	assert.Equal(t, 3, *ed.CaretWidth)
	assert.Equal(t, fg("#777777"), styles[token.Comment])
	assert.Equal(t, fg("#888888"), styles[token.CommentMultiline])
	assert.Equal(t, fg("#777777"), styles[token.CommentSingle])

	_, err = LoadFile(filepath.Join(t.TempDir(), "x.json"))
	assert.Error(t, err)
}
