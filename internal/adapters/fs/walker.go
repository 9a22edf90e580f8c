// Package fs provides file system adapters for walking, hashing and inspecting source trees.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Walk yields every file and folder under root, root included. Dot-prefixed
// folders and folders matching one of the ignore patterns are not entered.
func (w *Walker) Walk(root string, ignores []string) iter.Seq2[string, fs.DirEntry] {
	return func(yield func(string, fs.DirEntry) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}

			if path != root {
				if skipAction := w.shouldSkip(d, ignores); skipAction != nil {
					return skipAction
				}
			}

			if !yield(path, d) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// WalkDirs yields the folders under root, root included.
func (w *Walker) WalkDirs(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for path, d := range w.Walk(root, ignores) {
			if d.IsDir() && !yield(path) {
				return
			}
		}
	}
}

// shouldSkip returns filepath.SkipDir for folders that are not entered.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) error {
	if !d.IsDir() {
		return nil
	}
	name := d.Name()

	// Always skip dot folders (.git, .svn, editor state)
	if strings.HasPrefix(name, ".") {
		return filepath.SkipDir
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return filepath.SkipDir
		}
	}
	return nil
}
