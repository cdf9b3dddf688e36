package lexer

import (
	"fmt"
	"iter"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/bethropolis/codeview/internal/token"
)

// Compile-time interface verification.
var _ token.Tokenizer = (*Chroma)(nil)

// Chroma tokenizes with a chroma regex lexer. Its token types follow the
// pygments taxonomy the highlighter binds styles to.
type Chroma struct {
	lexer chroma.Lexer
	name  string
}

// NewChroma returns the chroma lexer registered under name, alias or file
// extension.
func NewChroma(name string) (*Chroma, error) {
	l := lexers.Get(name)
	if l == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLexer, name)
	}
	return newChroma(l), nil
}

// ChromaForFile picks a chroma lexer from the file name, then from the
// content. It returns nil when neither identifies a language.
func ChromaForFile(path, content string) *Chroma {
	l := lexers.Match(filepath.Base(path))
	if l == nil && content != "" {
		l = lexers.Analyse(content)
	}
	if l == nil {
		return nil
	}
	return newChroma(l)
}

func newChroma(l chroma.Lexer) *Chroma {
	// Coalesce so that a construct spanning lines reaches the highlighter as
	// one token.
	return &Chroma{lexer: chroma.Coalesce(l), name: l.Config().Name}
}

// Name returns the chroma lexer name.
func (c *Chroma) Name() string {
	return c.name
}

// Tokenize runs the lexer over text.
func (c *Chroma) Tokenize(text string) (iter.Seq[token.Raw], error) {
	it, err := c.lexer.Tokenise(nil, text)
	if err != nil {
		return nil, fmt.Errorf("chroma %s: %w", c.name, err)
	}
	return func(yield func(token.Raw) bool) {
		off := 0
		for t := it(); t != chroma.EOF; t = it() {
			var value string
			value, off = sourceText(text, off, t.Value)
			if !yield(token.Raw{Kind: chromaKindName(t.Type), Text: value}) {
				return
			}
		}
	}, nil
}

// sourceText returns the bytes of text starting at off that chroma lexed as
// value, and the offset after them. Chroma lexes runes, so an invalid UTF-8
// byte comes back as U+FFFD; slicing by rune count restores it. Runes of
// value past the end of text (the newline chroma appends) are kept as is.
func sourceText(text string, off int, value string) (string, int) {
	start := off
	n := 0
	for range value {
		if off >= len(text) {
			break
		}
		_, size := utf8.DecodeRuneInString(text[off:])
		off += size
		n++
	}
	out := text[start:off]
	for i := range value {
		if n == 0 {
			return out + value[i:], off
		}
		n--
	}
	return out, off
}

// Token types whose dotted name cannot be derived from the camel-case one.
var chromaKindNames = map[chroma.TokenType]string{
	chroma.CommentPreprocFile: "Comment.PreprocFile",
}

// chromaKindName turns "LiteralStringDouble" into "Literal.String.Double".
func chromaKindName(tt chroma.TokenType) string {
	if name, ok := chromaKindNames[tt]; ok {
		return name
	}
	s := tt.String()
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}
