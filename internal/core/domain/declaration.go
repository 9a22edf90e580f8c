package domain

import "strings"

// NamespaceSeparator separates namespace segments in a qualified type name.
const NamespaceSeparator = `\`

// Kind identifies what a declaration describes.
type Kind uint8

const (
	// KindClass is a class declaration.
	KindClass Kind = iota + 1
	// KindInterface is an interface declaration.
	KindInterface
	// KindSynthesized is an empty subclass binding a long namespaced name to a shallower type.
	KindSynthesized
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindSynthesized:
		return "synthesized"
	default:
		return "unknown"
	}
}

// ParseKind converts a kind name back to a Kind. Unknown names map to KindClass.
func ParseKind(s string) Kind {
	switch strings.ToLower(s) {
	case "interface":
		return KindInterface
	case "synthesized":
		return KindSynthesized
	default:
		return KindClass
	}
}

// Entry is a declaration without its name, the unit stored in snapshots.
type Entry struct {
	File       string
	Supertypes []string
	Interfaces []string
	Methods    []string
}

// Declaration is one discovered type.
// A class has at most one supertype, an interface may extend several.
type Declaration struct {
	Name       string
	Kind       Kind
	File       SourceFile
	Supertypes []string
	Interfaces []string
	Methods    []string
	// Base is the shallower type a synthesized declaration derives from.
	Base string
}

// Supertype returns the single supertype of a class, or "" when it has none.
func (d Declaration) Supertype() string {
	if len(d.Supertypes) == 0 {
		return ""
	}
	return d.Supertypes[0]
}

// Entry strips the name from the declaration.
func (d Declaration) Entry() Entry {
	return Entry{
		File:       d.File.String(),
		Supertypes: d.Supertypes,
		Interfaces: d.Interfaces,
		Methods:    d.Methods,
	}
}

// NewDeclaration builds a declaration from a snapshot entry.
func NewDeclaration(name string, kind Kind, e Entry) Declaration {
	return Declaration{
		Name:       name,
		Kind:       kind,
		File:       NewSourceFile(e.File),
		Supertypes: e.Supertypes,
		Interfaces: e.Interfaces,
		Methods:    e.Methods,
	}
}

// Header is what the scanner reports for one declaration in a file.
type Header struct {
	Kind       Kind
	Namespace  string
	Name       string
	Supertypes []string
	Interfaces []string
	Methods    []string
	Line       int
	// Rooted is set when the class extended the root type, which is not listed in Supertypes.
	Rooted bool
}

// QualifiedName joins the namespace and the bare name.
func (h Header) QualifiedName() string {
	return Qualify(h.Namespace, h.Name)
}

// Qualify joins a namespace and a bare name with the namespace separator.
func Qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + NamespaceSeparator + name
}

// SplitName splits a qualified name into its namespace segments and bare name.
func SplitName(name string) (namespaces []string, bare string) {
	parts := strings.Split(strings.TrimPrefix(name, NamespaceSeparator), NamespaceSeparator)
	return parts[:len(parts)-1], parts[len(parts)-1]
}

// Batch is the immutable result of indexing one module.
type Batch struct {
	Classes    map[string]Entry
	Interfaces map[string]Entry
}

// NewBatch returns an empty batch.
func NewBatch() Batch {
	return Batch{
		Classes:    make(map[string]Entry),
		Interfaces: make(map[string]Entry),
	}
}

// Len returns the number of entries in the batch.
func (b Batch) Len() int {
	return len(b.Classes) + len(b.Interfaces)
}

// Filter returns the entries whose names satisfy keep.
func (b Batch) Filter(keep func(name string) bool) Batch {
	out := NewBatch()
	for name, e := range b.Classes {
		if keep(name) {
			out.Classes[name] = e
		}
	}
	for name, e := range b.Interfaces {
		if keep(name) {
			out.Interfaces[name] = e
		}
	}
	return out
}

// Overlay returns a new batch holding b's entries overwritten by other's.
func (b Batch) Overlay(other Batch) Batch {
	out := NewBatch()
	for _, src := range []Batch{b, other} {
		for name, e := range src.Classes {
			delete(out.Interfaces, name)
			out.Classes[name] = e
		}
		for name, e := range src.Interfaces {
			delete(out.Classes, name)
			out.Interfaces[name] = e
		}
	}
	return out
}
