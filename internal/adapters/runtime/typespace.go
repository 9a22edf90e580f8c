// Package runtime provides an in-memory type space that stands in for the
// host interpreter: files are included once and their types declared in order.
package runtime

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/core/ports"
	"go.trai.ch/autoload/internal/engine/scanner" //nolint:depguard // Shares the declaration scanner
	"go.trai.ch/zerr"
)

var _ ports.Runtime = (*TypeSpace)(nil)

// Hook supplies a type that is referenced but not declared yet.
// It plays the role of the interpreter's class-loading callback.
type Hook func(name string) error

// TypeSpace implements ports.Runtime. It is not safe for concurrent use.
type TypeSpace struct {
	rootType string
	types    map[string]domain.TypeInfo
	order    []string
	included map[string]bool
	hook     Hook
}

// New creates a TypeSpace that already knows the given builtin types.
func New(builtins []domain.TypeInfo, rootType string) *TypeSpace {
	s := &TypeSpace{
		rootType: rootType,
		types:    make(map[string]domain.TypeInfo, len(builtins)),
		included: make(map[string]bool),
	}
	for _, b := range builtins {
		b.Builtin = true
		s.types[b.Name] = b
	}
	return s
}

// SetHook registers the callback used for undeclared supertypes and interfaces.
func (s *TypeSpace) SetHook(h Hook) {
	s.hook = h
}

// Declared reports whether name is materialized.
func (s *TypeSpace) Declared(name string) bool {
	_, ok := s.types[name]
	return ok
}

// Describe returns what the type space knows about name.
func (s *TypeSpace) Describe(name string) (domain.TypeInfo, bool) {
	info, ok := s.types[name]
	return info, ok
}

// Materialized returns the non-builtin types in declaration order.
func (s *TypeSpace) Materialized() []string {
	return slices.Clone(s.order)
}

// Included reports whether file has been loaded.
func (s *TypeSpace) Included(file string) bool {
	return s.included[filepath.Clean(file)]
}

// Load includes file once and declares every type it defines. Types that
// extend another type from the same file are declared after it.
func (s *TypeSpace) Load(file string) error {
	file = filepath.Clean(file)
	if s.included[file] {
		return nil
	}
	s.included[file] = true

	//nolint:gosec // Path is controlled by caller
	src, err := os.ReadFile(file)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to include file"), "file", file)
	}

	res := scanner.Scan(src, scanner.Options{RootType: s.rootType})
	for _, h := range orderHeaders(res.Headers) {
		if err := s.declare(s.infoFor(h, file)); err != nil {
			return err
		}
	}
	return nil
}

// Derive declares name as an empty subtype of base.
func (s *TypeSpace) Derive(name, base string) error {
	baseInfo, ok := s.types[base]
	if !ok {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrUnknownType, "base type is not declared"), "type", name), "base", base)
	}
	kind := domain.KindClass
	if baseInfo.Kind == domain.KindInterface {
		kind = domain.KindInterface
	}
	return s.declare(domain.TypeInfo{
		Name:       name,
		Kind:       kind,
		Supertypes: []string{base},
	})
}

func (s *TypeSpace) infoFor(h domain.Header, file string) domain.TypeInfo {
	info := domain.TypeInfo{
		Name:       h.QualifiedName(),
		Kind:       h.Kind,
		Supertypes: h.Supertypes,
		Interfaces: h.Interfaces,
		Methods:    h.Methods,
		File:       file,
	}
	if h.Rooted && s.rootType != "" {
		info.Supertypes = []string{s.rootType}
	}
	return info
}

func (s *TypeSpace) declare(info domain.TypeInfo) error {
	if _, exists := s.types[info.Name]; exists {
		return zerr.With(zerr.Wrap(domain.ErrTypeAlreadyDeclared, "cannot redeclare type"), "type", info.Name)
	}
	for _, dep := range slices.Concat(info.Supertypes, info.Interfaces) {
		if err := s.require(info.Name, dep); err != nil {
			return err
		}
	}
	s.types[info.Name] = info
	s.order = append(s.order, info.Name)
	return nil
}

// require makes sure dep is declared, asking the hook when it is not.
func (s *TypeSpace) require(name, dep string) error {
	if s.Declared(dep) {
		return nil
	}
	if s.hook != nil {
		if err := s.hook(dep); err != nil {
			return zerr.With(zerr.With(zerr.Wrap(err, "failed to load dependency"), "type", name), "dependency", dep)
		}
	}
	if !s.Declared(dep) {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrUnknownType, "dependency not found"), "type", name), "dependency", dep)
	}
	return nil
}

// orderHeaders sorts headers so that every header follows the headers of the
// same file it depends on. Everything else keeps file order.
func orderHeaders(headers []domain.Header) []domain.Header {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, dup := index[h.QualifiedName()]; !dup {
			index[h.QualifiedName()] = i
		}
	}

	out := make([]domain.Header, 0, len(headers))
	state := make([]uint8, len(headers)) // 0: pending, 1: visiting, 2: done
	var visit func(i int)
	visit = func(i int) {
		if state[i] != 0 {
			return
		}
		state[i] = 1
		h := headers[i]
		for _, dep := range slices.Concat(h.Supertypes, h.Interfaces) {
			if j, ok := index[dep]; ok && state[j] == 0 {
				visit(j)
			}
		}
		state[i] = 2
		out = append(out, h)
	}
	for i := range headers {
		visit(i)
	}
	return out
}
