package scanner

import (
	"bytes"
	"strings"
)

// Lexer splits source into tokens. Text outside the code tags is returned as inline html.
type Lexer struct {
	src    []byte
	pos    int
	line   int
	inCode bool
}

// NewLexer creates a lexer over src.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Tokens lexes the whole input.
func (l *Lexer) Tokens() []Token {
	var out []Token
	for {
		tok := l.Next()
		if tok.Kind == TokenEOF {
			return out
		}
		out = append(out, tok)
	}
}

// Next returns the next token, or a TokenEOF token at the end of the input.
func (l *Lexer) Next() Token {
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Line: l.line}
	}
	if !l.inCode {
		return l.lexInline()
	}
	return l.lexCode()
}

func (l *Lexer) emit(kind TokenKind, start int) Token {
	text := string(l.src[start:l.pos])
	tok := Token{Kind: kind, Text: text, Line: l.line}
	l.line += strings.Count(text, "\n")
	return tok
}

func (l *Lexer) lexInline() Token {
	start := l.pos
	idx := bytes.Index(l.src[l.pos:], []byte("<?"))
	if idx < 0 {
		l.pos = len(l.src)
		return l.emit(TokenInlineHTML, start)
	}
	if idx > 0 {
		l.pos += idx
		return l.emit(TokenInlineHTML, start)
	}

	l.pos += 2
	switch {
	case l.hasPrefixFold("php"):
		l.pos += 3
		if l.pos < len(l.src) && isSpace(l.src[l.pos]) {
			l.pos++
		}
	case l.hasPrefix("="):
		l.pos++
	}
	l.inCode = true
	return l.emit(TokenOpenTag, start)
}

//nolint:cyclop,gocyclo // one branch per lexeme class
func (l *Lexer) lexCode() Token {
	start := l.pos
	c := l.src[l.pos]

	switch {
	case isSpace(c):
		for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
			l.pos++
		}
		return l.emit(TokenWhitespace, start)
	case l.hasPrefix("?>"):
		l.pos += 2
		if l.hasPrefix("\r\n") {
			l.pos += 2
		} else if l.hasPrefix("\n") {
			l.pos++
		}
		l.inCode = false
		return l.emit(TokenCloseTag, start)
	case l.hasPrefix("#["):
		l.pos += 2
		return l.emit(TokenPunct, start)
	case c == '#' || l.hasPrefix("//"):
		l.lineComment()
		return l.emit(TokenComment, start)
	case l.hasPrefix("/*"):
		doc := l.hasPrefix("/**") && l.pos+3 < len(l.src) && isSpace(l.src[l.pos+3])
		end := bytes.Index(l.src[l.pos+2:], []byte("*/"))
		if end < 0 {
			l.pos = len(l.src)
		} else {
			l.pos += 2 + end + 2
		}
		if doc {
			return l.emit(TokenDocComment, start)
		}
		return l.emit(TokenComment, start)
	case c == '\'' || c == '"' || c == '`':
		l.quoted(c)
		return l.emit(TokenString, start)
	case l.hasPrefix("<<<"):
		if l.heredoc() {
			return l.emit(TokenString, start)
		}
		l.pos = start + 3
		return l.emit(TokenPunct, start)
	case c == '$' && l.pos+1 < len(l.src) && isIdentStart(l.src[l.pos+1]):
		l.pos++
		l.ident()
		return l.emit(TokenVariable, start)
	case isIdentStart(c) || (c == '\\' && l.pos+1 < len(l.src) && isIdentStart(l.src[l.pos+1])):
		return l.name(start)
	case isDigit(c):
		for l.pos < len(l.src) && (isIdentChar(l.src[l.pos]) || l.src[l.pos] == '.') {
			l.pos++
		}
		return l.emit(TokenNumber, start)
	}

	for _, op := range []string{"?->", "::", "->", "=>"} {
		if l.hasPrefix(op) {
			l.pos += len(op)
			return l.emit(TokenPunct, start)
		}
	}
	l.pos++
	return l.emit(TokenPunct, start)
}

// name lexes an identifier or a qualified name such as \Foo\Bar.
// A trailing separator before "{" is kept so group imports can be recognized.
func (l *Lexer) name(start int) Token {
	if l.src[l.pos] == '\\' {
		l.pos++
	}
	l.ident()
	for l.pos < len(l.src) && l.src[l.pos] == '\\' {
		if l.pos+1 < len(l.src) && isIdentStart(l.src[l.pos+1]) {
			l.pos++
			l.ident()
			continue
		}
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '{' {
			l.pos++
		}
		break
	}

	tok := l.emit(TokenName, start)
	if !strings.Contains(tok.Text, `\`) {
		if kind, ok := keywords[strings.ToLower(tok.Text)]; ok {
			tok.Kind = kind
		}
	}
	return tok
}

func (l *Lexer) ident() {
	for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) lineComment() {
	for l.pos < len(l.src) {
		if l.src[l.pos] == '\n' || l.hasPrefix("?>") {
			return
		}
		l.pos++
	}
}

func (l *Lexer) quoted(quote byte) {
	l.pos++
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos += 2
			continue
		case quote:
			l.pos++
			return
		}
		l.pos++
	}
	l.pos = len(l.src)
}

// heredoc consumes a heredoc or nowdoc literal. It reports false when the
// opener is malformed, leaving the position untouched.
func (l *Lexer) heredoc() bool {
	p := l.pos + 3
	for p < len(l.src) && (l.src[p] == ' ' || l.src[p] == '\t') {
		p++
	}
	var quote byte
	if p < len(l.src) && (l.src[p] == '\'' || l.src[p] == '"') {
		quote = l.src[p]
		p++
	}
	idStart := p
	for p < len(l.src) && isIdentChar(l.src[p]) {
		p++
	}
	if p == idStart {
		return false
	}
	id := l.src[idStart:p]
	if quote != 0 {
		if p >= len(l.src) || l.src[p] != quote {
			return false
		}
		p++
	}
	nl := bytes.IndexByte(l.src[p:], '\n')
	if nl < 0 {
		return false
	}
	p += nl + 1

	for p < len(l.src) {
		lineEnd := bytes.IndexByte(l.src[p:], '\n')
		if lineEnd < 0 {
			lineEnd = len(l.src) - p
		}
		line := l.src[p : p+lineEnd]
		trimmed := bytes.TrimLeft(line, " \t")
		if bytes.HasPrefix(trimmed, id) && (len(trimmed) == len(id) || !isIdentChar(trimmed[len(id)])) {
			l.pos = p + (len(line) - len(trimmed)) + len(id)
			return true
		}
		p += lineEnd + 1
	}
	l.pos = len(l.src)
	return true
}

func (l *Lexer) hasPrefix(s string) bool {
	return bytes.HasPrefix(l.src[l.pos:], []byte(s))
}

func (l *Lexer) hasPrefixFold(s string) bool {
	if len(l.src)-l.pos < len(s) {
		return false
	}
	return strings.EqualFold(string(l.src[l.pos:l.pos+len(s)]), s)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
