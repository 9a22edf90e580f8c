package domain

import (
	"path/filepath"
	"strings"
)

// Project is the resolved project configuration.
type Project struct {
	// Root is the absolute project root. Defining files below it are stored relative to it.
	Root string
	// CacheDir is the absolute directory holding per-module snapshots.
	CacheDir string
	// Database is the absolute path of the consolidated snapshot.
	Database string
	// RootType is the universal base type elided from supertype lists.
	RootType string
	// Exempt lists class names that may omit a superclass.
	Exempt []string
	// Standalone makes unknown types a warning instead of a silent failure.
	Standalone bool
	// CacheEnabled turns per-module snapshots on.
	CacheEnabled bool
	Builtins     []TypeInfo
	Modules      []Module
}

// RelativePath returns path relative to the project root when it lies below it.
func (p *Project) RelativePath(path string) string {
	if p.Root == "" {
		return path
	}
	rel, err := filepath.Rel(p.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// FullPath returns an absolute path for a stored defining file.
func (p *Project) FullPath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(p.Root, file)
}

// Contains reports whether path lies inside the project root.
func (p *Project) Contains(path string) bool {
	return p.RelativePath(path) != path
}

// Module returns the configured module with the given name.
func (p *Project) Module(name string) (Module, bool) {
	for _, m := range p.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}
