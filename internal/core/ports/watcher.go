package ports

import (
	"context"
	"iter"
	"path/filepath"
	"strings"
)

// WatchOp is the kind of change a watcher observed on a path.
type WatchOp uint8

// Kinds of change reported by a Watcher.
const (
	OpCreate WatchOp = iota
	OpWrite
	OpRemove
	OpRename
)

var watchOpNames = [...]string{"create", "write", "remove", "rename"}

func (op WatchOp) String() string {
	if int(op) < len(watchOpNames) {
		return watchOpNames[op]
	}
	return "unknown"
}

// WatchEvent is a change to a file or directory below a module root.
type WatchEvent struct {
	// Path is absolute.
	Path      string
	Operation WatchOp
}

// Within reports whether the event path is dir itself or lies below it.
func (e WatchEvent) Within(dir string) bool {
	dir = filepath.Clean(dir)
	return e.Path == dir || strings.HasPrefix(e.Path, dir+string(filepath.Separator))
}

// Watcher reports changes below a set of module roots until it is stopped.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start watches every directory below roots, including ones created later.
	Start(ctx context.Context, roots ...string) error
	Stop() error
	// Events yields changes until Stop is called.
	Events() iter.Seq[WatchEvent]
}
