// Package resolver declares types on demand, supertypes and interfaces first.
package resolver

import (
	"errors"
	"strings"

	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver makes indexed types available in the runtime.
// It is not safe for concurrent use.
type Resolver struct {
	project  *domain.Project
	registry *domain.Registry
	runtime  ports.Runtime
	states   map[string]domain.ResolutionState
	// path is the chain of names currently being resolved, outermost first.
	path []string
}

// New creates a new Resolver.
func New(project *domain.Project, registry *domain.Registry, runtime ports.Runtime) *Resolver {
	return &Resolver{
		project:  project,
		registry: registry,
		runtime:  runtime,
		states:   make(map[string]domain.ResolutionState),
	}
}

// State returns where name stands in resolution.
func (r *Resolver) State(name string) domain.ResolutionState {
	return r.states[normalize(name)]
}

// EnsureDeclared makes name available in the runtime, declaring its
// supertypes and interfaces before it. A type that is already materialized
// returns immediately without consulting the registry.
func (r *Resolver) EnsureDeclared(name string) error {
	name = normalize(name)
	if r.runtime.Declared(name) {
		r.states[name] = domain.StateDeclared
		return nil
	}
	if r.states[name].InFlight() {
		return r.cycleError(name)
	}

	decl, ok := r.registry.Get(name)
	if !ok {
		return r.fallback(name)
	}
	return r.declare(decl)
}

func (r *Resolver) declare(decl domain.Declaration) error {
	name := decl.Name
	r.path = append(r.path, name)
	defer func() { r.path = r.path[:len(r.path)-1] }()

	r.states[name] = domain.StateResolvingSupertype
	for _, super := range decl.Supertypes {
		if err := r.EnsureDeclared(super); err != nil {
			r.states[name] = domain.StateFailed
			return zerr.With(zerr.With(
				zerr.Wrap(errors.Join(domain.ErrParentDeclarationFailed, err), "failed to declare parent"),
				"type", name), "parent", super)
		}
	}

	r.states[name] = domain.StateResolvingInterfaces
	for _, iface := range decl.Interfaces {
		if err := r.EnsureDeclared(iface); err != nil {
			r.states[name] = domain.StateFailed
			return zerr.With(zerr.With(
				zerr.Wrap(errors.Join(domain.ErrInterfaceDeclarationFailed, err), "failed to declare interface"),
				"type", name), "interface", iface)
		}
	}

	r.states[name] = domain.StateMaterializing
	if err := r.materialize(decl); err != nil {
		r.states[name] = domain.StateFailed
		return err
	}
	r.states[name] = domain.StateDeclared
	return nil
}

func (r *Resolver) materialize(decl domain.Declaration) error {
	if decl.Kind == domain.KindSynthesized {
		if err := r.runtime.Derive(decl.Name, decl.Base); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to derive type"), "type", decl.Name)
		}
		return nil
	}

	file := r.project.FullPath(decl.File.String())
	if err := r.runtime.Load(file); err != nil {
		return zerr.With(zerr.With(
			zerr.Wrap(errors.Join(domain.ErrSourceFileCorrupt, err), "failed to load defining file"),
			"type", decl.Name), "file", file)
	}
	// The index promised this file defines the type.
	if !r.runtime.Declared(decl.Name) {
		return zerr.With(zerr.With(
			zerr.Wrap(domain.ErrSourceFileCorrupt, "type not found in defining file"),
			"type", decl.Name), "file", file)
	}
	return nil
}

// fallback looks for the bare name at shallower namespaces, dropping the
// innermost segment each time. App\Sub\Widget tries App\Widget, then Widget.
func (r *Resolver) fallback(name string) error {
	namespaces, bare := domain.SplitName(name)
	for i := len(namespaces) - 1; i >= 0; i-- {
		candidate := domain.Qualify(strings.Join(namespaces[:i], domain.NamespaceSeparator), bare)
		if !r.registry.Has(candidate) && !r.runtime.Declared(candidate) {
			continue
		}
		if err := r.EnsureDeclared(candidate); err != nil {
			return zerr.With(zerr.With(
				zerr.Wrap(errors.Join(domain.ErrParentDeclarationFailed, err), "failed to declare fallback base"),
				"type", name), "base", candidate)
		}
		decl := r.registry.Synthesize(name, candidate)
		return r.declare(decl)
	}
	return zerr.With(zerr.Wrap(domain.ErrUnknownType, "type is unknown"), "type", name)
}

// cycleError reports the chain from the first occurrence of name back to it.
func (r *Resolver) cycleError(name string) error {
	start := 0
	for i, n := range r.path {
		if n == name {
			start = i
			break
		}
	}
	cycle := strings.Join(append(append([]string{}, r.path[start:]...), name), " -> ")
	return zerr.With(zerr.Wrap(domain.ErrCyclicDependency, "type depends on itself"), "cycle", cycle)
}

func normalize(name string) string {
	return strings.TrimPrefix(name, domain.NamespaceSeparator)
}
