package watcher

import (
	"sync"

	"go.trai.ch/autoload/internal/core/ports"
)

// ContentFilter drops events for files whose content did not change, such as
// a save without edits or a touch.
type ContentFilter struct {
	mu     sync.Mutex
	hasher ports.Hasher
	seen   map[string]uint64
}

// NewContentFilter creates a new ContentFilter.
func NewContentFilter(hasher ports.Hasher) *ContentFilter {
	return &ContentFilter{
		hasher: hasher,
		seen:   make(map[string]uint64),
	}
}

// Prime records the current content of path without reporting a change.
func (f *ContentFilter) Prime(path string) {
	if sum, err := f.hasher.ComputeFileHash(path); err == nil {
		f.mu.Lock()
		f.seen[path] = sum
		f.mu.Unlock()
	}
}

// Changed reports whether the event for path may affect the index.
// Removed or unreadable paths always count as changed.
func (f *ContentFilter) Changed(event ports.WatchEvent) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if event.Operation == ports.OpRemove || event.Operation == ports.OpRename {
		delete(f.seen, event.Path)
		return true
	}

	sum, err := f.hasher.ComputeFileHash(event.Path)
	if err != nil {
		delete(f.seen, event.Path)
		return true
	}
	prev, ok := f.seen[event.Path]
	f.seen[event.Path] = sum
	return !ok || prev != sum
}
