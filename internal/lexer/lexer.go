// Package lexer provides the tokenizers the highlighter can plug in: chroma
// regex lexers, tree-sitter grammars and plain text.
package lexer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/codeview/internal/logger"
	"github.com/bethropolis/codeview/internal/token"
)

// ErrUnknownLexer is returned for a lexer name no backend recognizes.
var ErrUnknownLexer = errors.New("unknown lexer")

// TreeSitterPrefix selects the tree-sitter backend in a lexer name, as in
// "treesitter:go".
const TreeSitterPrefix = "treesitter:"

// Mode chooses the backend ForFile prefers.
type Mode string

const (
	ModeChroma     Mode = "chroma"
	ModeTreeSitter Mode = "treesitter"
)

// ParseMode validates a configured mode name. Empty means ModeChroma.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case "", ModeChroma:
		return ModeChroma, nil
	case ModeTreeSitter:
		return ModeTreeSitter, nil
	}
	return "", fmt.Errorf("invalid highlight mode %q (want %q or %q)", s, ModeChroma, ModeTreeSitter)
}

// Get returns a tokenizer by name: "plain" (or "text"), "treesitter:<lang>",
// or any chroma lexer name, alias or extension.
func Get(name string) (token.Tokenizer, error) {
	switch lower := strings.ToLower(strings.TrimSpace(name)); {
	case lower == PlainName || lower == "text" || lower == "":
		return Plain{}, nil
	case strings.HasPrefix(lower, TreeSitterPrefix):
		langName := strings.TrimPrefix(lower, TreeSitterPrefix)
		lang := LanguageByName(langName)
		if lang == nil {
			return nil, fmt.Errorf("%w: no tree-sitter grammar for %q", ErrUnknownLexer, langName)
		}
		return NewTreeSitter(lang)
	}
	return NewChroma(name)
}

// ForFile picks a tokenizer for a file. With ModeTreeSitter a registered
// grammar is preferred; otherwise chroma is matched by file name and content.
// Unrecognized files get the plain tokenizer.
func ForFile(path, content string, mode Mode) token.Tokenizer {
	if mode == ModeTreeSitter {
		if lang := LanguageForFile(path); lang != nil {
			ts, err := NewTreeSitter(lang)
			if err == nil {
				return ts
			}
			logger.Warnf("tree-sitter %s unavailable, falling back to chroma: %v", lang.Name, err)
		}
	}
	if c := ChromaForFile(path, content); c != nil {
		return c
	}
	logger.Debugf("no lexer matches %q, using plain text", path)
	return Plain{}
}
