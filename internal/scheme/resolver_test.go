package scheme

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/codeview/internal/token"
)

func fg(hex string) tcell.Style {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return tcell.StyleDefault.Foreground(c)
}

func parseTOML(t *testing.T, src string) *Scheme {
	t.Helper()
	s, err := Parse("test", ".toml", []byte(src))
	require.NoError(t, err)
	return s
}

func TestResolve_GeneralFallback(t *testing.T) {
	s := parseTOML(t, `
[general]
keyword = "#ff0000"
`)
	_, styles, err := Resolve(s)
	require.NoError(t, err)

	red := fg("#ff0000")
	for _, k := range []token.Kind{
		token.Keyword, token.KeywordOther, token.KeywordConstant, token.KeywordDeclaration,
		token.KeywordNamespace, token.KeywordPseudo, token.KeywordReserved, token.KeywordType,
	} {
		assert.Equal(t, red, styles[k], k.String())
	}
	_, ok := styles[token.NameFunction]
	assert.False(t, ok, "unset categories stay unbound")
}

func TestResolve_TableOverridesGeneral(t *testing.T) {
	s := parseTOML(t, `
[general]
keyword = "#ff0000"
number = "#00ff00"

[keyword]
type = "#0000ff"

[number]
hex = "#abc"
`)
	_, styles, err := Resolve(s)
	require.NoError(t, err)

	assert.Equal(t, fg("#0000ff"), styles[token.KeywordType])
	assert.Equal(t, fg("#ff0000"), styles[token.KeywordPseudo])
	assert.Equal(t, fg("#aabbcc"), styles[token.LiteralNumberHex])
	assert.Equal(t, fg("#00ff00"), styles[token.LiteralNumberInteger])
}

func TestResolve_UnsetDoesNotOverride(t *testing.T) {
	s := parseTOML(t, `
[general]
error = "#ff0000"

[extras]
date = "#00ff00"
`)
	_, styles, err := Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, fg("#ff0000"), styles[token.Error])
	assert.Equal(t, fg("#00ff00"), styles[token.LiteralDate])
}

func TestResolve_DelimiterSpellings(t *testing.T) {
	for _, key := range []string{"delimiter", "delimeter"} {
		s := parseTOML(t, "[general]\n[string]\n"+key+" = \"#123456\"\n")
		_, styles, err := Resolve(s)
		require.NoError(t, err)
		assert.Equal(t, fg("#123456"), styles[token.LiteralStringDelimiter], key)
	}
}

func TestResolve_StyleTables(t *testing.T) {
	s := parseTOML(t, `
[general]
[generic]
strong = { fg = "red", bold = true }
`)
	_, styles, err := Resolve(s)
	require.NoError(t, err)
	want := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	assert.Equal(t, want, styles[token.GenericStrong])
}

func TestResolve_MissingGeneral(t *testing.T) {
	s := parseTOML(t, `
[keyword]
type = "#ffffff"
`)
	_, _, err := Resolve(s)
	assert.ErrorIs(t, err, ErrMissingGeneral)

	_, _, err = Resolve(nil)
	assert.ErrorIs(t, err, ErrMissingGeneral)
}

func TestResolve_Malformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad hex", "[general]\nkeyword = \"#12\""},
		{"unknown name", "[general]\nkeyword = \"not-a-color\""},
		{"wrong type", "[general]\nkeyword = 12"},
		{"bad editor color", "[general]\n[editor]\nbg = true"},
		{"negative width", "[general]\n[editor]\ncaret_width = -1"},
		{"bad attribute", "[general]\n[name]\nclass = { fg = \"red\", blink = true }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Resolve(parseTOML(t, tt.src))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}

	_, err := Parse("test", ".toml", []byte("palette = \"#fff\"\n[general]\n"))
	require.NoError(t, err, "unknown top-level keys are only warned about")
	_, err = Parse("test", ".toml", []byte("general = \"#fff\""))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestResolve_Editor(t *testing.T) {
	s := parseTOML(t, `
[editor]
bg = "#000000"
fg = "white"
caret_width = 2
border_width = 0

[general]
`)
	ed, _, err := Resolve(s)
	require.NoError(t, err)

	assert.Equal(t, tcell.NewRGBColor(0, 0, 0), ed.Background)
	assert.Equal(t, tcell.ColorWhite, ed.Foreground)
	assert.Equal(t, tcell.ColorDefault, ed.SelectBackground)
	require.NotNil(t, ed.CaretWidth)
	assert.Equal(t, 2, *ed.CaretWidth)
	require.NotNil(t, ed.BorderWidth)
	assert.Equal(t, 0, *ed.BorderWidth)
	assert.Nil(t, ed.FocusBorderWidth)
}

func TestTagStyles_Lookup(t *testing.T) {
	styles := TagStyles{token.NameFunction: fg("#00ff00")}

	st, ok := styles.Lookup(token.NameFunctionMagic)
	assert.True(t, ok)
	assert.Equal(t, fg("#00ff00"), st)

	_, ok = styles.Lookup(token.NameClass)
	assert.False(t, ok)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor(" #FF8000 ")
	require.NoError(t, err)
	assert.Equal(t, "#ff8000", Hex(c))

	c, err = ParseColor("#f80")
	require.NoError(t, err)
	assert.Equal(t, "#ff8800", Hex(c))

	c, err = ParseColor("default")
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorDefault, c)

	c, err = ParseColor("reset")
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorReset, c)

	_, err = ParseColor("")
	assert.ErrorIs(t, err, ErrMalformed)
}
