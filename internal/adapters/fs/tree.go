package fs

import (
	"time"

	"go.trai.ch/autoload/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TreeInspector = (*Tree)(nil)

// Tree reports modification times of source trees.
type Tree struct {
	walker *Walker
}

// NewTree creates a new Tree.
func NewTree(walker *Walker) *Tree {
	return &Tree{walker: walker}
}

// LatestModTime returns the newest modification time of any file or folder under root.
func (t *Tree) LatestModTime(root string) (time.Time, error) {
	var latest time.Time
	seen := false
	for _, d := range t.walker.Walk(root, nil) {
		info, err := d.Info()
		if err != nil {
			continue
		}
		seen = true
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	if !seen {
		return time.Time{}, zerr.With(zerr.New("source tree not readable"), "path", root)
	}
	return latest, nil
}
