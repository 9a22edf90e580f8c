package scanner

// TokenKind classifies a lexical token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenInlineHTML
	TokenOpenTag
	TokenCloseTag
	TokenWhitespace
	TokenComment
	TokenDocComment
	TokenName
	TokenVariable
	TokenString
	TokenNumber
	TokenPunct

	// Keywords.
	TokenNamespace
	TokenClass
	TokenInterface
	TokenTrait
	TokenExtends
	TokenImplements
	TokenUse
	TokenAs
	TokenFunction
	TokenNew
	TokenConst
)

var keywords = map[string]TokenKind{
	"namespace":  TokenNamespace,
	"class":      TokenClass,
	"interface":  TokenInterface,
	"trait":      TokenTrait,
	"extends":    TokenExtends,
	"implements": TokenImplements,
	"use":        TokenUse,
	"as":         TokenAs,
	"function":   TokenFunction,
	"new":        TokenNew,
	"const":      TokenConst,
}

var kindNames = map[TokenKind]string{
	TokenEOF:        "end of file",
	TokenInlineHTML: "inline html",
	TokenOpenTag:    "open tag",
	TokenCloseTag:   "close tag",
	TokenWhitespace: "whitespace",
	TokenComment:    "comment",
	TokenDocComment: "doc comment",
	TokenName:       "name",
	TokenVariable:   "variable",
	TokenString:     "string",
	TokenNumber:     "number",
	TokenPunct:      "punctuation",
}

// String returns a readable name for the kind.
func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	for word, kind := range keywords {
		if kind == k {
			return word
		}
	}
	return "token"
}

// Token is one lexeme with the line it starts on.
type Token struct {
	Kind TokenKind
	Text string
	Line int
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= TokenNamespace
}

// IsWord reports whether the token is a name or a reserved word.
// Method names may be reserved words.
func (t Token) IsWord() bool {
	return t.Kind == TokenName || t.IsKeyword()
}

// Trivia reports whether the token carries no syntax.
func (t Token) Trivia() bool {
	switch t.Kind {
	case TokenWhitespace, TokenComment, TokenDocComment, TokenInlineHTML, TokenOpenTag, TokenCloseTag:
		return true
	default:
		return false
	}
}

// Is reports whether the token is the punctuation p.
func (t Token) Is(p string) bool {
	return t.Kind == TokenPunct && t.Text == p
}
