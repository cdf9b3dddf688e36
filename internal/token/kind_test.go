package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"Keyword", Keyword},
		{"Token.Keyword.Type", KeywordType},
		{"Name.Builtin.Pseudo", NameBuiltinPseudo},
		{"Name.Function.Foo", NameFunction},
		{"Literal.Number.Integer.Long", LiteralNumberIntegerLong},
		{"Literal.String.Delimeter", LiteralStringDelimiter},
		{"Text.Whitespace", Whitespace},
		{"Text.Punctuation", Text},
		{"Name", Unmapped},
		{"Generic.Deleted", Unmapped},
		{"Bogus.Thing", Unmapped},
		{"", Unmapped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKind(tt.name))
		})
	}
}

func TestKind_TagNameRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := KindFromTag(k.TagName())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	_, ok := KindFromTag("sel")
	assert.False(t, ok)
}

func TestKind_Classes(t *testing.T) {
	assert.True(t, Text.IsPlain())
	assert.True(t, Whitespace.IsPlain())
	assert.False(t, Text.Tagged())
	assert.False(t, Unmapped.Tagged())
	assert.True(t, NameBuiltin.Tagged())
	assert.Equal(t, "Token.Name.Builtin", NameBuiltin.TagName())

	assert.True(t, CommentMultiline.Continues())
	assert.True(t, LiteralStringDouble.Continues())
	assert.False(t, LiteralStringEscape.Continues())
	assert.False(t, CommentSingle.Continues())
	assert.False(t, Keyword.Continues())
}

func TestKind_Parent(t *testing.T) {
	p, ok := KeywordType.Parent()
	assert.True(t, ok)
	assert.Equal(t, Keyword, p)

	p, ok = NameFunctionMagic.Parent()
	assert.True(t, ok)
	assert.Equal(t, NameFunction, p)

	p, ok = LiteralStringDouble.Parent()
	assert.True(t, ok)
	assert.Equal(t, LiteralString, p)

	_, ok = LiteralNumberHex.Parent()
	assert.False(t, ok)
	_, ok = Keyword.Parent()
	assert.False(t, ok)

	p, ok = Whitespace.Parent()
	assert.True(t, ok)
	assert.Equal(t, Text, p)
}
