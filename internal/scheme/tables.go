package scheme

import "github.com/bethropolis/codeview/internal/token"

// binding ties a kind to its key in a category table.
type binding struct {
	kind token.Kind
	key  string
}

// editorKeys lists the editor table keys. Colors first, then widths.
var (
	editorColorKeys = []string{"bg", "fg", "select_bg", "select_fg", "inactive_select_bg", "caret"}
	editorWidthKeys = []string{"caret_width", "border_width", "focus_border_width"}
)

// crossCutting binds kinds straight to general values.
var crossCutting = []binding{
	{token.Error, "error"},
	{token.Escape, "escape"},
	{token.Punctuation, "punctuation"},
	{token.Comment, "comment"},
	{token.Keyword, "keyword"},
	{token.KeywordOther, "keyword"},
	{token.LiteralString, "string"},
	{token.LiteralStringOther, "string"},
	{token.NameOther, "name"},
}

var categoryTables = map[string][]binding{
	"keyword": {
		{token.KeywordConstant, "constant"},
		{token.KeywordDeclaration, "declaration"},
		{token.KeywordNamespace, "namespace"},
		{token.KeywordPseudo, "pseudo"},
		{token.KeywordReserved, "reserved"},
		{token.KeywordType, "type"},
	},
	"name": {
		{token.NameAttribute, "attr"},
		{token.NameBuiltin, "builtin"},
		{token.NameBuiltinPseudo, "builtin_pseudo"},
		{token.NameClass, "class"},
		{token.NameConstant, "constant"},
		{token.NameDecorator, "decorator"},
		{token.NameEntity, "entity"},
		{token.NameException, "exception"},
		{token.NameFunction, "function"},
		{token.NameFunctionMagic, "magic_function"},
		{token.NameLabel, "label"},
		{token.NameNamespace, "namespace"},
		{token.NameTag, "tag"},
		{token.NameVariable, "variable"},
		{token.NameVariableClass, "class_variable"},
		{token.NameVariableGlobal, "global_variable"},
		{token.NameVariableInstance, "instance_variable"},
		{token.NameVariableMagic, "magic_variable"},
	},
	"operator": {
		{token.Operator, "symbol"},
		{token.OperatorWord, "word"},
	},
	"string": {
		{token.LiteralStringAffix, "affix"},
		{token.LiteralStringBacktick, "backtick"},
		{token.LiteralStringChar, "char"},
		{token.LiteralStringDelimiter, "delimiter"},
		{token.LiteralStringDoc, "doc"},
		{token.LiteralStringDouble, "double"},
		{token.LiteralStringEscape, "escape"},
		{token.LiteralStringHeredoc, "heredoc"},
		{token.LiteralStringInterpol, "interpol"},
		{token.LiteralStringRegex, "regex"},
		{token.LiteralStringSingle, "single"},
		{token.LiteralStringSymbol, "symbol"},
	},
	"number": {
		{token.LiteralNumberBin, "binary"},
		{token.LiteralNumberFloat, "float"},
		{token.LiteralNumberHex, "hex"},
		{token.LiteralNumberInteger, "integer"},
		{token.LiteralNumberIntegerLong, "long"},
		{token.LiteralNumberOct, "octal"},
	},
	"comment": {
		{token.CommentHashbang, "hashbang"},
		{token.CommentMultiline, "multiline"},
		{token.CommentPreproc, "preproc"},
		{token.CommentPreprocFile, "preprocfile"},
		{token.CommentSingle, "single"},
		{token.CommentSpecial, "special"},
	},
	"generic": {
		{token.GenericEmph, "emphasis"},
		{token.GenericError, "error"},
		{token.GenericHeading, "heading"},
		{token.GenericStrong, "strong"},
		{token.GenericSubheading, "subheading"},
	},
	"extras": {
		{token.Error, "error"},
		{token.LiteralDate, "date"},
	},
}

// keyAliases maps spellings found in older scheme files to current keys.
var keyAliases = map[string]string{
	"delimiter": "delimeter",
}
