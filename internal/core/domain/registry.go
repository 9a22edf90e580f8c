// Package domain contains the core domain models for the declaration index and its resolution.
package domain

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Registry maps fully qualified type names to their declarations.
// Entries are only ever added or refreshed; a rebuild creates a new Registry.
type Registry struct {
	decls map[string]Declaration
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		decls: make(map[string]Declaration),
	}
}

// Merge adds a module batch to the registry.
// A name already bound to a different file is overwritten and reported as ambiguous.
func (r *Registry) Merge(b Batch) []Diagnostic {
	var diags []Diagnostic
	diags = r.mergeKind(b.Classes, KindClass, diags)
	diags = r.mergeKind(b.Interfaces, KindInterface, diags)
	return diags
}

func (r *Registry) mergeKind(entries map[string]Entry, kind Kind, diags []Diagnostic) []Diagnostic {
	for _, name := range slices.Sorted(maps.Keys(entries)) {
		e := entries[name]
		if prev, exists := r.decls[name]; exists && prev.File.String() != e.File {
			diags = append(diags, Diagnostic{
				Code:    CodeAmbiguousName,
				Message: fmt.Sprintf("%s %q is ambiguous, it is found in multiple files", kind, name),
				File:    e.File,
				Context: map[string]any{"previous": prev.File.String(), "current": e.File},
			})
		}
		r.decls[name] = NewDeclaration(name, kind, e)
	}
	return diags
}

// Get returns the declaration for name.
func (r *Registry) Get(name string) (Declaration, bool) {
	d, ok := r.decls[name]
	return d, ok
}

// Has reports whether name is indexed.
func (r *Registry) Has(name string) bool {
	_, ok := r.decls[name]
	return ok
}

// FileOf returns the defining file of name relative to the project root.
// Builtin and synthesized declarations report "".
func (r *Registry) FileOf(name string) (string, bool) {
	d, ok := r.decls[name]
	if !ok {
		return "", false
	}
	return d.File.String(), true
}

// Synthesize records an empty subclass binding name to base.
func (r *Registry) Synthesize(name, base string) Declaration {
	d := Declaration{
		Name:       name,
		Kind:       KindSynthesized,
		Supertypes: []string{base},
		Base:       base,
	}
	r.decls[name] = d
	return d
}

// Len returns the number of indexed declarations.
func (r *Registry) Len() int {
	return len(r.decls)
}

// Counts returns the number of classes and interfaces.
// Synthesized bindings count as classes.
func (r *Registry) Counts() (classes, interfaces int) {
	for _, d := range r.decls {
		if d.Kind == KindInterface {
			interfaces++
		} else {
			classes++
		}
	}
	return classes, interfaces
}

// Names returns all indexed names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.decls))
}

// All yields every declaration in name order.
func (r *Registry) All() iter.Seq[Declaration] {
	return func(yield func(Declaration) bool) {
		for _, name := range r.Names() {
			if !yield(r.decls[name]) {
				return
			}
		}
	}
}

// Batch exports the scanned declarations. Synthesized bindings are not exported
// because they are re-derived on demand.
func (r *Registry) Batch() Batch {
	b := NewBatch()
	for name, d := range r.decls {
		switch d.Kind {
		case KindClass:
			b.Classes[name] = d.Entry()
		case KindInterface:
			b.Interfaces[name] = d.Entry()
		case KindSynthesized:
		}
	}
	return b
}

// Validate checks that every class supertype and interface is either indexed
// or already materialized, and that indexed ones have the right kind: a class
// extends a class and implements interfaces, an interface extends interfaces.
// Materialized names are not kind checked. It never removes anything from the registry.
func (r *Registry) Validate(materialized func(name string) bool) []Diagnostic {
	exists := func(name string) bool {
		return r.Has(name) || (materialized != nil && materialized(name))
	}

	var issues []Diagnostic
	for d := range r.All() {
		switch d.Kind {
		case KindClass:
			if super := d.Supertype(); super != "" {
				if !exists(super) {
					issues = append(issues, Diagnostic{
						Code:    CodeMissingSupertype,
						Message: fmt.Sprintf("parent class %q not found for class %q", super, d.Name),
						File:    d.File.String(),
						Context: map[string]any{"type": d.Name, "parent": super},
					})
				} else if r.isInterface(super) {
					issues = append(issues, r.kindMismatch(d, super, "extends interface"))
				}
			}
			for _, iface := range d.Interfaces {
				if !exists(iface) {
					issues = append(issues, Diagnostic{
						Code:    CodeMissingInterface,
						Message: fmt.Sprintf("interface %q not found for class %q", iface, d.Name),
						File:    d.File.String(),
						Context: map[string]any{"type": d.Name, "interface": iface},
					})
				} else if r.isClass(iface) {
					issues = append(issues, r.kindMismatch(d, iface, "implements class"))
				}
			}
		case KindInterface:
			for _, super := range d.Supertypes {
				if r.isClass(super) {
					issues = append(issues, r.kindMismatch(d, super, "extends class"))
				}
			}
		case KindSynthesized:
		}
	}
	return issues
}

func (r *Registry) isInterface(name string) bool {
	d, ok := r.decls[name]
	return ok && d.Kind == KindInterface
}

func (r *Registry) isClass(name string) bool {
	d, ok := r.decls[name]
	return ok && d.Kind != KindInterface
}

func (r *Registry) kindMismatch(d Declaration, target, relation string) Diagnostic {
	return Diagnostic{
		Code:    CodeKindMismatch,
		Message: fmt.Sprintf("%s %q %s %q", d.Kind, d.Name, relation, target),
		File:    d.File.String(),
		Context: map[string]any{"type": d.Name, "target": target},
	}
}
