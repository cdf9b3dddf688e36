package token

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrCoverage reports tokenizer output that does not reconstruct its input.
var ErrCoverage = errors.New("tokenizer output does not cover its input")

// Raw is one token as an external tokenizer emits it: a dotted kind name in
// the pygments style ("Keyword.Type", "Token.Name.Builtin") and its text.
type Raw struct {
	Kind string
	Text string
}

// Tokenizer is the external tokenizer contract. The texts of the returned
// sequence, concatenated, must equal text.
type Tokenizer interface {
	Name() string
	Tokenize(text string) (iter.Seq[Raw], error)
}

// LeadingNewlineStripper is implemented by tokenizers that drop leading
// newlines from their input before lexing.
type LeadingNewlineStripper interface {
	StripsLeadingNewlines() bool
}

// Token is a normalized token.
type Token struct {
	Kind Kind
	Text string
}

// Adapter normalizes a Tokenizer into a gapless Token stream.
type Adapter struct {
	tk         Tokenizer
	stripsLead bool
}

// NewAdapter wraps tk.
func NewAdapter(tk Tokenizer) *Adapter {
	a := &Adapter{tk: tk}
	if s, ok := tk.(LeadingNewlineStripper); ok {
		a.stripsLead = s.StripsLeadingNewlines()
	}
	return a
}

// Tokenizer returns the wrapped tokenizer.
func (a *Adapter) Tokenizer() Tokenizer {
	return a.tk
}

// Tokenize returns a lazy token sequence covering text exactly. Each range
// over the sequence runs the tokenizer afresh. Empty raw tokens are dropped.
// A single trailing newline the tokenizer appends beyond the input is
// clipped; any other divergence ends the sequence with an ErrCoverage error.
func (a *Adapter) Tokenize(text string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		body := text
		if a.stripsLead {
			body = strings.TrimLeft(text, "\n")
			if lead := text[:len(text)-len(body)]; lead != "" {
				if !yield(Token{Kind: Text, Text: lead}, nil) {
					return
				}
			}
		}
		if body == "" {
			return
		}

		raws, err := a.tk.Tokenize(body)
		if err != nil {
			yield(Token{}, fmt.Errorf("tokenizer %s: %w", a.tk.Name(), err))
			return
		}

		rest := body
		extra := ""
		for raw := range raws {
			if raw.Text == "" {
				continue
			}
			t := raw.Text
			if !strings.HasPrefix(rest, t) {
				if !strings.HasPrefix(t, rest) {
					yield(Token{}, a.coverageError(body, rest, t))
					return
				}
				extra += t[len(rest):]
				t = rest
			}
			rest = rest[len(t):]
			if t == "" {
				continue
			}
			if !yield(Token{Kind: ParseKind(raw.Kind), Text: t}, nil) {
				return
			}
		}

		switch {
		case rest != "":
			yield(Token{}, fmt.Errorf("%w: %s stopped with %d bytes uncovered",
				ErrCoverage, a.tk.Name(), len(rest)))
		case extra != "" && (extra != "\n" || strings.HasSuffix(body, "\n")):
			yield(Token{}, fmt.Errorf("%w: %s emitted %q beyond the input",
				ErrCoverage, a.tk.Name(), extra))
		}
	}
}

func (a *Adapter) coverageError(body, rest, got string) error {
	return fmt.Errorf("%w: %s emitted %q at offset %d", ErrCoverage, a.tk.Name(),
		truncate(got, 20), len(body)-len(rest))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
