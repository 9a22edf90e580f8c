package scanner

import (
	"strings"

	"go.trai.ch/autoload/internal/core/domain"
)

// useStatement accumulates one import statement.
type useStatement struct {
	// prefix is set inside a group use such as "use App\{A, B as C}".
	prefix  string
	grouped bool
	target  string
	alias   string
	// awaitAlias is set after "as".
	awaitAlias bool
	// skip is set for "use function" and "use const" imports.
	skip bool
}

func (s *scanner) afterUse(tok Token) {
	u := &s.use
	switch {
	case tok.Is("("):
		// Closure capture list, not an import.
		s.state = stateSeek
	case tok.Is(";"):
		s.commitUse()
		s.state = stateSeek
	case tok.Is(","):
		s.commitUse()
	case u.skip:
	case (tok.Kind == TokenFunction || tok.Kind == TokenConst) && u.target == "" && !u.grouped:
		u.skip = true
	case tok.Kind == TokenAs && u.target != "":
		u.awaitAlias = true
	case u.awaitAlias && tok.IsWord():
		u.alias = tok.Text
		u.awaitAlias = false
	case tok.Is("{") && strings.HasSuffix(u.target, domain.NamespaceSeparator):
		u.prefix = strings.Trim(u.target, domain.NamespaceSeparator)
		u.grouped = true
		u.target = ""
	case tok.Is("}") && u.grouped:
		s.commitUse()
		u.grouped = false
		u.prefix = ""
	case tok.Kind == TokenName && u.target == "":
		u.target = strings.TrimPrefix(tok.Text, domain.NamespaceSeparator)
	default:
		s.unexpected(tok)
		if tok.Is("{") || tok.Is("}") {
			s.state = stateSeek
			s.seek(tok)
		}
	}
}

// commitUse records the pending import and resets it for the next clause.
func (s *scanner) commitUse() {
	u := &s.use
	if u.target != "" && !u.skip {
		target := u.target
		if u.grouped {
			target = domain.Qualify(u.prefix, target)
		}
		alias := u.alias
		if alias == "" {
			_, alias = domain.SplitName(target)
		}
		s.imports[strings.ToLower(alias)] = target
	}
	u.target = ""
	u.alias = ""
	u.awaitAlias = false
	if !u.grouped {
		u.skip = false
	}
}
