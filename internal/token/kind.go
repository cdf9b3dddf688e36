// Package token defines the closed token-kind taxonomy the highlighter binds
// styles to, the contract external tokenizers satisfy, and the Adapter that
// normalizes their output.
package token

import "strings"

// HighlightPrefix prefixes every highlight-family tag name.
const HighlightPrefix = "Token"

// Kind is a token kind. The set is closed: every kind a color scheme can
// style has a value, plus the plain sentinels Text and Whitespace and the
// Unmapped default for anything else.
type Kind uint16

const (
	Unmapped Kind = iota
	Text
	Whitespace

	Error
	Escape
	Punctuation

	Keyword
	KeywordConstant
	KeywordDeclaration
	KeywordNamespace
	KeywordPseudo
	KeywordReserved
	KeywordType
	KeywordOther

	NameAttribute
	NameBuiltin
	NameBuiltinPseudo
	NameClass
	NameConstant
	NameDecorator
	NameEntity
	NameException
	NameFunction
	NameFunctionMagic
	NameLabel
	NameNamespace
	NameTag
	NameVariable
	NameVariableClass
	NameVariableGlobal
	NameVariableInstance
	NameVariableMagic
	NameOther

	Operator
	OperatorWord

	LiteralString
	LiteralStringAffix
	LiteralStringBacktick
	LiteralStringChar
	LiteralStringDelimiter
	LiteralStringDoc
	LiteralStringDouble
	LiteralStringEscape
	LiteralStringHeredoc
	LiteralStringInterpol
	LiteralStringRegex
	LiteralStringSingle
	LiteralStringSymbol
	LiteralStringOther

	LiteralNumberBin
	LiteralNumberFloat
	LiteralNumberHex
	LiteralNumberInteger
	LiteralNumberIntegerLong
	LiteralNumberOct

	LiteralDate

	Comment
	CommentHashbang
	CommentMultiline
	CommentPreproc
	CommentPreprocFile
	CommentSingle
	CommentSpecial

	GenericEmph
	GenericError
	GenericHeading
	GenericStrong
	GenericSubheading

	kindCount
)

var kindNames = [kindCount]string{
	Unmapped:    "Unmapped",
	Text:        "Text",
	Whitespace:  "Text.Whitespace",
	Error:       "Error",
	Escape:      "Escape",
	Punctuation: "Punctuation",

	Keyword:            "Keyword",
	KeywordConstant:    "Keyword.Constant",
	KeywordDeclaration: "Keyword.Declaration",
	KeywordNamespace:   "Keyword.Namespace",
	KeywordPseudo:      "Keyword.Pseudo",
	KeywordReserved:    "Keyword.Reserved",
	KeywordType:        "Keyword.Type",
	KeywordOther:       "Keyword.Other",

	NameAttribute:        "Name.Attribute",
	NameBuiltin:          "Name.Builtin",
	NameBuiltinPseudo:    "Name.Builtin.Pseudo",
	NameClass:            "Name.Class",
	NameConstant:         "Name.Constant",
	NameDecorator:        "Name.Decorator",
	NameEntity:           "Name.Entity",
	NameException:        "Name.Exception",
	NameFunction:         "Name.Function",
	NameFunctionMagic:    "Name.Function.Magic",
	NameLabel:            "Name.Label",
	NameNamespace:        "Name.Namespace",
	NameTag:              "Name.Tag",
	NameVariable:         "Name.Variable",
	NameVariableClass:    "Name.Variable.Class",
	NameVariableGlobal:   "Name.Variable.Global",
	NameVariableInstance: "Name.Variable.Instance",
	NameVariableMagic:    "Name.Variable.Magic",
	NameOther:            "Name.Other",

	Operator:     "Operator",
	OperatorWord: "Operator.Word",

	LiteralString:          "Literal.String",
	LiteralStringAffix:     "Literal.String.Affix",
	LiteralStringBacktick:  "Literal.String.Backtick",
	LiteralStringChar:      "Literal.String.Char",
	LiteralStringDelimiter: "Literal.String.Delimiter",
	LiteralStringDoc:       "Literal.String.Doc",
	LiteralStringDouble:    "Literal.String.Double",
	LiteralStringEscape:    "Literal.String.Escape",
	LiteralStringHeredoc:   "Literal.String.Heredoc",
	LiteralStringInterpol:  "Literal.String.Interpol",
	LiteralStringRegex:     "Literal.String.Regex",
	LiteralStringSingle:    "Literal.String.Single",
	LiteralStringSymbol:    "Literal.String.Symbol",
	LiteralStringOther:     "Literal.String.Other",

	LiteralNumberBin:         "Literal.Number.Bin",
	LiteralNumberFloat:       "Literal.Number.Float",
	LiteralNumberHex:         "Literal.Number.Hex",
	LiteralNumberInteger:     "Literal.Number.Integer",
	LiteralNumberIntegerLong: "Literal.Number.Integer.Long",
	LiteralNumberOct:         "Literal.Number.Oct",

	LiteralDate: "Literal.Date",

	Comment:            "Comment",
	CommentHashbang:    "Comment.Hashbang",
	CommentMultiline:   "Comment.Multiline",
	CommentPreproc:     "Comment.Preproc",
	CommentPreprocFile: "Comment.PreprocFile",
	CommentSingle:      "Comment.Single",
	CommentSpecial:     "Comment.Special",

	GenericEmph:       "Generic.Emph",
	GenericError:      "Generic.Error",
	GenericHeading:    "Generic.Heading",
	GenericStrong:     "Generic.Strong",
	GenericSubheading: "Generic.Subheading",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		m[kindNames[k]] = k
	}
	// Common misspelling carried by pygments-era schemes and lexers.
	m["Literal.String.Delimeter"] = LiteralStringDelimiter
	m["String"] = LiteralString
	return m
}()

// ParseKind maps a dotted kind name, with or without the "Token." prefix, to
// the nearest kind of the taxonomy: "Name.Function.Foo" becomes NameFunction.
// Names with no known ancestor become Unmapped.
func ParseKind(name string) Kind {
	name = strings.TrimPrefix(name, HighlightPrefix+".")
	for name != "" {
		if k, ok := kindsByName[name]; ok {
			return k
		}
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return Unmapped
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) String() string {
	if k >= kindCount {
		return kindNames[Unmapped]
	}
	return kindNames[k]
}

// TagName is the buffer tag carrying this kind's style.
func (k Kind) TagName() string {
	return HighlightPrefix + "." + k.String()
}

// IsPlain reports whether the kind is plain text that is never tagged.
func (k Kind) IsPlain() bool {
	return k == Text || k == Whitespace
}

// Tagged reports whether tokens of this kind receive a highlight tag.
func (k Kind) Tagged() bool {
	return !k.IsPlain() && k != Unmapped && k < kindCount
}

// Continues reports whether a token of this kind ending on a line break
// leaves a construct open for the following lines: string literals of any
// flavor and block comments.
func (k Kind) Continues() bool {
	switch {
	case k == CommentMultiline:
		return true
	case k >= LiteralString && k <= LiteralStringOther:
		return k != LiteralStringEscape
	}
	return false
}

// KindFromTag is the inverse of TagName. ok is false for tags outside the
// highlight family.
func KindFromTag(tag string) (Kind, bool) {
	name, found := strings.CutPrefix(tag, HighlightPrefix+".")
	if !found {
		return Unmapped, false
	}
	k, ok := kindsByName[name]
	return k, ok
}

// Parent returns the nearest ancestor kind: Keyword for KeywordType,
// NameFunction for NameFunctionMagic. ok is false for roots.
func (k Kind) Parent() (Kind, bool) {
	name := k.String()
	for {
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			return Unmapped, false
		}
		name = name[:i]
		if p, ok := kindsByName[name]; ok && p != k {
			return p, true
		}
	}
}
