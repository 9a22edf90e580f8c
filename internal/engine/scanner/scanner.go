// Package scanner extracts type declaration headers from source files.
package scanner

import (
	"fmt"
	"strings"

	"go.trai.ch/autoload/internal/core/domain"
)

type state uint8

const (
	stateSeek state = iota
	stateAfterNamespace
	stateAfterClass
	stateAfterExtends
	stateAfterImplements
	stateAfterInterface
	stateBody
	stateAfterUse
)

// Options configures a scan.
type Options struct {
	// RootType is the universal base type. A class extending it is recorded without a supertype.
	RootType string
}

// Result is what a scan found in one file.
type Result struct {
	Headers     []domain.Header
	Diagnostics []domain.Diagnostic
}

// Scan extracts every class and interface header from src.
// It never fails: odd input yields diagnostics and possibly zero headers.
func Scan(src []byte, opts Options) Result {
	s := &scanner{
		opts:    opts,
		imports: make(map[string]string),
	}
	for _, tok := range NewLexer(src).Tokens() {
		if tok.Trivia() {
			continue
		}
		s.step(tok)
		s.prev = tok
	}
	switch s.state {
	case stateSeek, stateAfterUse:
	case stateBody:
		// The declaration counts from its opening brace; the missing close is still reported.
		s.unexpected(Token{Kind: TokenEOF, Line: s.prev.Line})
		s.headers = append(s.headers, s.current.header)
		s.current = nil
	default:
		s.unexpected(Token{Kind: TokenEOF, Line: s.prev.Line})
	}
	return Result{Headers: s.headers, Diagnostics: s.diags}
}

type record struct {
	header    domain.Header
	openDepth int
	// multiple is set once a class lists a second supertype.
	multiple bool
}

type scanner struct {
	opts  Options
	state state
	prev  Token
	depth int

	namespace string
	nsBuf     strings.Builder
	// nsDepth is the brace depth of the current braced namespace body.
	nsDepth  int
	nsBraced bool
	imports  map[string]string

	use useStatement

	current     *record
	awaitMethod bool

	headers []domain.Header
	diags   []domain.Diagnostic
}

//nolint:cyclop // dispatch over states
func (s *scanner) step(tok Token) {
	switch s.state {
	case stateSeek:
		s.seek(tok)
	case stateAfterNamespace:
		s.afterNamespace(tok)
	case stateAfterClass:
		s.afterClass(tok)
	case stateAfterExtends:
		s.afterExtends(tok)
	case stateAfterImplements:
		s.afterImplements(tok)
	case stateAfterInterface:
		s.afterInterface(tok)
	case stateBody:
		s.body(tok)
	case stateAfterUse:
		s.afterUse(tok)
	}
}

// memberAccess reports whether the previous token makes a keyword a plain member name,
// as in Foo::class or $node->class.
func (s *scanner) memberAccess() bool {
	return s.prev.Is("::") || s.prev.Is("->") || s.prev.Is("?->")
}

func (s *scanner) seek(tok Token) {
	switch {
	case tok.Is("{"):
		s.depth++
	case tok.Is("}"):
		s.closeBrace()
	case s.memberAccess():
	case tok.Kind == TokenNamespace:
		s.nsBuf.Reset()
		s.state = stateAfterNamespace
	case tok.Kind == TokenUse && s.topLevel():
		s.use = useStatement{}
		s.state = stateAfterUse
	case tok.Kind == TokenClass && s.prev.Kind != TokenNew:
		s.open(domain.KindClass, tok.Line)
		s.state = stateAfterClass
	case tok.Kind == TokenInterface:
		s.open(domain.KindInterface, tok.Line)
		s.state = stateAfterInterface
	}
}

func (s *scanner) topLevel() bool {
	if s.nsBraced {
		return s.depth == s.nsDepth
	}
	return s.depth == 0
}

func (s *scanner) closeBrace() {
	if s.depth > 0 {
		s.depth--
	}
	if s.nsBraced && s.depth < s.nsDepth {
		s.namespace = ""
		s.nsBraced = false
		s.nsDepth = 0
		clear(s.imports)
	}
}

func (s *scanner) afterNamespace(tok Token) {
	switch {
	case tok.Kind == TokenName:
		s.nsBuf.WriteString(strings.TrimPrefix(tok.Text, domain.NamespaceSeparator))
	case tok.Is(";"):
		s.enterNamespace(false)
		s.state = stateSeek
	case tok.Is("{"):
		s.depth++
		s.enterNamespace(true)
		s.state = stateSeek
	default:
		s.unexpected(tok)
		s.state = stateSeek
	}
}

func (s *scanner) enterNamespace(braced bool) {
	s.namespace = s.nsBuf.String()
	s.nsBraced = braced
	s.nsDepth = s.depth
	clear(s.imports)
}

func (s *scanner) open(kind domain.Kind, line int) {
	s.current = &record{
		header: domain.Header{
			Kind:      kind,
			Namespace: s.namespace,
			Line:      line,
		},
		openDepth: s.depth,
	}
}

func (s *scanner) afterClass(tok Token) {
	h := &s.current.header
	switch {
	case tok.Kind == TokenName && h.Name == "" && !strings.Contains(tok.Text, domain.NamespaceSeparator):
		h.Name = tok.Text
	case tok.Kind == TokenExtends && h.Name != "":
		s.state = stateAfterExtends
	case tok.Kind == TokenImplements && h.Name != "":
		s.state = stateAfterImplements
	case tok.Is("{") && h.Name != "":
		s.define()
	default:
		s.unexpectedInHeader(tok)
	}
}

func (s *scanner) afterInterface(tok Token) {
	h := &s.current.header
	switch {
	case tok.Kind == TokenName && h.Name == "" && !strings.Contains(tok.Text, domain.NamespaceSeparator):
		h.Name = tok.Text
	case tok.Kind == TokenExtends && h.Name != "":
		s.state = stateAfterExtends
	case tok.Is("{") && h.Name != "":
		s.define()
	default:
		s.unexpectedInHeader(tok)
	}
}

func (s *scanner) afterExtends(tok Token) {
	rec := s.current
	h := &rec.header
	switch {
	case tok.Kind == TokenName:
		if h.Kind == domain.KindClass && len(h.Supertypes) == 1 {
			rec.multiple = true
			return
		}
		h.Supertypes = append(h.Supertypes, s.resolve(tok.Text))
	case tok.Is(","):
	case tok.Kind == TokenImplements && h.Kind == domain.KindClass:
		s.state = stateAfterImplements
	case tok.Is("{") && len(h.Supertypes) > 0:
		s.define()
	default:
		s.unexpectedInHeader(tok)
	}
}

func (s *scanner) afterImplements(tok Token) {
	h := &s.current.header
	switch {
	case tok.Kind == TokenName:
		h.Interfaces = append(h.Interfaces, s.resolve(tok.Text))
	case tok.Is(","):
	case tok.Is("{") && len(h.Interfaces) > 0:
		s.define()
	default:
		s.unexpectedInHeader(tok)
	}
}

// unexpectedInHeader reports tok and keeps scanning the header, unless the
// statement ended, in which case the declaration is dropped.
func (s *scanner) unexpectedInHeader(tok Token) {
	s.unexpected(tok)
	if tok.Is(";") || tok.Is("}") {
		if tok.Is("}") {
			s.closeBrace()
		}
		s.current = nil
		s.state = stateSeek
	}
}

// define closes the header on its opening brace.
func (s *scanner) define() {
	rec := s.current
	h := &rec.header
	if rec.multiple {
		s.diags = append(s.diags, domain.Diagnostic{
			Code:    domain.CodeMultipleInheritance,
			Message: fmt.Sprintf("class %q: multiple inheritance is not allowed for classes", h.Name),
			Line:    h.Line,
		})
	}
	if h.Kind == domain.KindClass && s.opts.RootType != "" && len(h.Supertypes) == 1 && h.Supertypes[0] == s.opts.RootType {
		h.Supertypes = nil
		h.Rooted = true
	}
	s.depth++
	s.state = stateBody
}

func (s *scanner) body(tok Token) {
	rec := s.current
	switch {
	case tok.Is("{"):
		s.depth++
	case tok.Is("}"):
		s.depth--
		if s.depth == rec.openDepth {
			s.headers = append(s.headers, rec.header)
			s.current = nil
			s.state = stateSeek
		}
	case s.awaitMethod:
		if tok.Is("&") {
			return
		}
		s.awaitMethod = false
		if tok.IsWord() {
			rec.header.Methods = append(rec.header.Methods, tok.Text)
		}
	case tok.Kind == TokenFunction && s.depth == rec.openDepth+1 && !s.memberAccess():
		s.awaitMethod = true
	}
}

func (s *scanner) unexpected(tok Token) {
	text := tok.Text
	if tok.Kind == TokenEOF {
		text = "end of file"
	}
	s.diags = append(s.diags, domain.Diagnostic{
		Code:    domain.CodeUnexpectedToken,
		Message: fmt.Sprintf("unexpected token: %s %q", tok.Kind, text),
		Line:    tok.Line,
		Context: map[string]any{"state": s.state.String()},
	})
}

// resolve turns a reference into a fully qualified name using the current
// namespace and imports.
func (s *scanner) resolve(name string) string {
	if strings.HasPrefix(name, domain.NamespaceSeparator) {
		return name[1:]
	}
	first, rest, qualified := strings.Cut(name, domain.NamespaceSeparator)
	if qualified && strings.EqualFold(first, "namespace") {
		return domain.Qualify(s.namespace, rest)
	}
	if target, ok := s.imports[strings.ToLower(first)]; ok {
		if qualified {
			return target + domain.NamespaceSeparator + rest
		}
		return target
	}
	return domain.Qualify(s.namespace, name)
}

func (st state) String() string {
	switch st {
	case stateSeek:
		return "SEEK"
	case stateAfterNamespace:
		return "AFTER_NAMESPACE_KEYWORD"
	case stateAfterClass:
		return "AFTER_CLASS_KEYWORD"
	case stateAfterExtends:
		return "AFTER_EXTENDS_KEYWORD"
	case stateAfterImplements:
		return "AFTER_IMPLEMENTS_KEYWORD"
	case stateAfterInterface:
		return "AFTER_INTERFACE_KEYWORD"
	case stateBody:
		return "BODY"
	case stateAfterUse:
		return "AFTER_USE_KEYWORD"
	default:
		return "UNKNOWN"
	}
}
