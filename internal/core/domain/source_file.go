package domain

import (
	"path/filepath"
	"unique"
)

// SourceFile is the interned path of the file that defines a declaration,
// relative to the project root. Every declaration of a file shares one handle.
type SourceFile struct {
	h unique.Handle[string]
}

// NewSourceFile interns path. The empty path yields the zero SourceFile,
// which builtin and synthesized declarations carry.
func NewSourceFile(path string) SourceFile {
	if path == "" {
		return SourceFile{}
	}
	return SourceFile{h: unique.Make(filepath.Clean(path))}
}

// IsZero reports whether no file defines the declaration.
func (f SourceFile) IsZero() bool {
	return f == SourceFile{}
}

func (f SourceFile) String() string {
	if f.IsZero() {
		return ""
	}
	return f.h.Value()
}

// MarshalText writes the path with forward slashes.
func (f SourceFile) MarshalText() ([]byte, error) {
	return []byte(filepath.ToSlash(f.String())), nil
}

// UnmarshalText interns the slash-separated path in text.
func (f *SourceFile) UnmarshalText(text []byte) error {
	*f = NewSourceFile(filepath.FromSlash(string(text)))
	return nil
}
