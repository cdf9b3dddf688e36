package lexer

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/codeview/internal/logger"
	"github.com/bethropolis/codeview/internal/token"
)

var _ token.Tokenizer = (*TreeSitter)(nil)

// TreeSitter tokenizes by parsing with a tree-sitter grammar and running its
// highlight query. Bytes no capture covers are emitted as Text.
type TreeSitter struct {
	lang   *Language
	parser *sitter.Parser
}

// NewTreeSitter creates a tokenizer for lang. The parser is owned by the
// tokenizer, so one instance must not be shared between goroutines.
func NewTreeSitter(lang *Language) (*TreeSitter, error) {
	if lang == nil {
		return nil, fmt.Errorf("%w: no tree-sitter language", ErrUnknownLexer)
	}
	if _, err := lang.Query(); err != nil {
		return nil, err
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang.TreeSitterLang)
	return &TreeSitter{lang: lang, parser: parser}, nil
}

// Name returns "treesitter:<language>".
func (t *TreeSitter) Name() string {
	return TreeSitterPrefix + strings.ToLower(t.lang.Name)
}

// capture is one query capture resolved to a kind.
type capture struct {
	start, end uint32
	pattern    uint16
	kind       token.Kind
}

// Tokenize parses text and returns the captured spans in order.
func (t *TreeSitter) Tokenize(text string) (iter.Seq[token.Raw], error) {
	src := []byte(text)
	tree, err := t.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter %s: parse: %w", t.lang.Name, err)
	}
	defer tree.Close()

	query, err := t.lang.Query()
	if err != nil {
		return nil, err
	}
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	var captures []capture
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		match = qc.FilterPredicates(match, src)
		for _, c := range match.Captures {
			kind := captureKind(query.CaptureNameForId(c.Index))
			if kind == token.Unmapped {
				continue
			}
			start, end := c.Node.StartByte(), c.Node.EndByte()
			if end <= start || int(end) > len(src) {
				continue
			}
			captures = append(captures, capture{start: start, end: end, pattern: match.PatternIndex, kind: kind})
		}
	}
	logger.DebugTagf("lexer", "tree-sitter %s: %d captures over %d bytes", t.lang.Name, len(captures), len(src))

	kinds := paint(len(src), captures)
	return func(yield func(token.Raw) bool) {
		for i := 0; i < len(kinds); {
			j := i + 1
			for j < len(kinds) && kinds[j] == kinds[i] {
				j++
			}
			if !yield(token.Raw{Kind: kinds[i].String(), Text: text[i:j]}) {
				return
			}
			i = j
		}
	}, nil
}

// paint assigns a kind to every byte. Inner captures override the nodes
// enclosing them; for identical spans the earlier query pattern wins.
func paint(n int, captures []capture) []token.Kind {
	kinds := make([]token.Kind, n)
	for i := range kinds {
		kinds[i] = token.Text
	}
	sort.SliceStable(captures, func(i, j int) bool {
		a, b := captures[i], captures[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.end != b.end {
			return a.end > b.end
		}
		return a.pattern > b.pattern
	})
	for _, c := range captures {
		for i := c.start; i < c.end; i++ {
			kinds[i] = c.kind
		}
	}
	return kinds
}

// Capture names, in the usual tree-sitter vocabulary, bound to kinds.
var captureKinds = map[string]token.Kind{
	"keyword":          token.Keyword,
	"keyword.function": token.KeywordDeclaration,
	"keyword.import":   token.KeywordNamespace,
	"keyword.operator": token.OperatorWord,
	"type":             token.KeywordType,
	"type.builtin":     token.KeywordType,
	"constant.builtin": token.KeywordConstant,
	"constant":         token.NameConstant,
	"function":         token.NameFunction,
	"function.builtin": token.NameBuiltin,
	"function.method":  token.NameFunction,
	"function.magic":   token.NameFunctionMagic,
	"constructor":      token.NameClass,
	"attribute":        token.NameDecorator,
	"property":         token.NameAttribute,
	"module":           token.NameNamespace,
	"label":            token.NameLabel,
	"variable.builtin": token.NameBuiltinPseudo,
	"string":           token.LiteralString,
	"string.doc":       token.LiteralStringDoc,
	"string.escape":    token.LiteralStringEscape,
	"escape":           token.LiteralStringEscape,
	"character":        token.LiteralStringChar,
	"number":           token.LiteralNumberInteger,
	"number.float":     token.LiteralNumberFloat,
	"comment":          token.Comment,
	"operator":         token.Operator,
	"punctuation":      token.Punctuation,
}

// captureKind resolves "function.method.call" to the nearest bound ancestor.
func captureKind(name string) token.Kind {
	name = strings.TrimPrefix(name, "@")
	for name != "" {
		if k, ok := captureKinds[name]; ok {
			return k
		}
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return token.Unmapped
}
