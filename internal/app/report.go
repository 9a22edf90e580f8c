package app

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Dump formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

func buildReport(info domain.TypeInfo, describe func(string) (domain.TypeInfo, bool)) *TypeReport {
	report := &TypeReport{TypeInfo: info}
	interfaces := make(map[string]bool)

	var collect func(name string)
	collect = func(name string) {
		if interfaces[name] {
			return
		}
		interfaces[name] = true
		if parent, ok := describe(name); ok {
			for _, super := range parent.Supertypes {
				collect(super)
			}
		}
	}

	if info.Kind == domain.KindInterface {
		for _, super := range info.Supertypes {
			collect(super)
		}
		report.AllInterfaces = slices.Sorted(maps.Keys(interfaces))
		return report
	}

	seen := map[string]bool{info.Name: true}
	current := info
	for {
		for _, iface := range current.Interfaces {
			collect(iface)
		}
		if len(current.Supertypes) == 0 {
			break
		}
		next := current.Supertypes[0]
		if seen[next] {
			break
		}
		seen[next] = true
		report.Ancestry = append(report.Ancestry, next)
		parent, ok := describe(next)
		if !ok {
			break
		}
		current = parent
	}
	report.AllInterfaces = slices.Sorted(maps.Keys(interfaces))
	return report
}

type dumpEntry struct {
	File       string   `yaml:"file"`
	Extends    []string `yaml:"extends,omitempty"`
	Implements []string `yaml:"implements,omitempty"`
	Methods    []string `yaml:"methods,omitempty"`
}

type dumpDocument struct {
	Classes    map[string]dumpEntry `yaml:"classes"`
	Interfaces map[string]dumpEntry `yaml:"interfaces"`
}

// Dump writes the registry to w as text or YAML.
func (a *App) Dump(ctx context.Context, w io.Writer, format string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.init(ctx); err != nil {
		return err
	}

	switch format {
	case FormatText, "":
		return dumpText(w, a.registry)
	case FormatYAML:
		return dumpYAML(w, a.registry)
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedFormat, "cannot dump registry"), "format", format)
	}
}

func dumpText(w io.Writer, registry *domain.Registry) error {
	for decl := range registry.All() {
		line := fmt.Sprintf("%-9s %s", decl.Kind, decl.Name)
		if len(decl.Supertypes) > 0 {
			line += " extends " + strings.Join(decl.Supertypes, ", ")
		}
		if len(decl.Interfaces) > 0 {
			line += " implements " + strings.Join(decl.Interfaces, ", ")
		}
		if file := decl.File.String(); file != "" {
			line += " (" + file + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return zerr.Wrap(err, "failed to write dump")
		}
	}
	return nil
}

func dumpYAML(w io.Writer, registry *domain.Registry) error {
	batch := registry.Batch()
	doc := dumpDocument{
		Classes:    make(map[string]dumpEntry, len(batch.Classes)),
		Interfaces: make(map[string]dumpEntry, len(batch.Interfaces)),
	}
	for name, e := range batch.Classes {
		doc.Classes[name] = toDumpEntry(e)
	}
	for name, e := range batch.Interfaces {
		doc.Interfaces[name] = toDumpEntry(e)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return zerr.Wrap(err, "failed to encode dump")
	}
	return zerr.Wrap(enc.Close(), "failed to flush dump")
}

func toDumpEntry(e domain.Entry) dumpEntry {
	return dumpEntry{
		File:       e.File,
		Extends:    e.Supertypes,
		Implements: e.Interfaces,
		Methods:    e.Methods,
	}
}
