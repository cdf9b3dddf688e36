package lexer

import (
	"iter"

	"github.com/bethropolis/codeview/internal/token"
)

// PlainName is the name of the plain-text tokenizer.
const PlainName = "plain"

// Plain emits its whole input as one Text token.
type Plain struct{}

// Name returns "plain".
func (Plain) Name() string { return PlainName }

// Tokenize yields text unchanged.
func (Plain) Tokenize(text string) (iter.Seq[token.Raw], error) {
	return func(yield func(token.Raw) bool) {
		if text != "" {
			yield(token.Raw{Kind: "Text", Text: text})
		}
	}, nil
}
