// Package cache decides per module whether a snapshot can be reused or the
// source tree has to be walked again.
package cache

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/core/ports"
	"go.trai.ch/autoload/internal/engine/walker"
	"go.trai.ch/zerr"
)

// Indexer walks a module's source tree.
type Indexer interface {
	Walk(ctx context.Context, m domain.Module) (*walker.Result, error)
	RootSettings(m domain.Module) (domain.Settings, error)
}

// Outcome is what LoadOrScan produced for one module.
type Outcome struct {
	// Batch holds the module's declarations, from the snapshot or the walk.
	Batch       domain.Batch
	Diagnostics []domain.Diagnostic
	// Cached is set when the snapshot was reused.
	Cached bool
	// Written is set when a fresh snapshot was persisted.
	Written bool
	// Overrides lists walked names an earlier module defines in another file.
	// Such a walk is never persisted.
	Overrides []string
	Artifact  string
	Files     int
	// Degraded is a non-fatal failure of the snapshot layer, for example a
	// failed write. It is never returned as an error.
	Degraded error
}

// Manager implements the snapshot reuse policy.
type Manager struct {
	project *domain.Project
	indexer Indexer
	store   ports.SnapshotStore
	tree    ports.TreeInspector
	hasher  ports.Hasher
	now     func() time.Time
}

// NewManager creates a new Manager for the project.
func NewManager(
	project *domain.Project,
	indexer Indexer,
	store ports.SnapshotStore,
	tree ports.TreeInspector,
	hasher ports.Hasher,
) *Manager {
	return &Manager{
		project: project,
		indexer: indexer,
		store:   store,
		tree:    tree,
		hasher:  hasher,
		now:     time.Now,
	}
}

// ArtifactPath returns where the module's snapshot lives. Modules outside the
// project root are keyed by a hash of their parent folder.
func (m *Manager) ArtifactPath(mod domain.Module) string {
	if m.project.Contains(mod.Path) {
		return domain.ArtifactPath(m.project.CacheDir, mod.Name)
	}
	key := m.hasher.HashPath(filepath.Dir(filepath.Clean(mod.Path)))
	return domain.ExternalArtifactPath(m.project.CacheDir, key, mod.Name)
}

// Lookup returns the file an already indexed name is defined in.
type Lookup func(name string) (file string, ok bool)

// LoadOrScan returns the module's declarations. lookup reports what earlier
// modules indexed. Only names it does not know are persisted. A walked name
// that lookup binds to another file makes the module ambiguous: nothing is
// written and any previous snapshot is dropped, so the override is walked
// again on the next run.
func (m *Manager) LoadOrScan(ctx context.Context, mod domain.Module, lookup Lookup) (*Outcome, error) {
	if !m.project.CacheEnabled {
		return m.scan(ctx, mod)
	}

	path := m.ArtifactPath(mod)
	out, existing := m.tryReuse(mod, path)
	if out != nil {
		return out, nil
	}

	out, err := m.scan(ctx, mod)
	if err != nil {
		return nil, err
	}
	out.Artifact = path
	if len(out.Diagnostics) > 0 {
		return out, nil
	}

	if out.Overrides = overrides(out.Batch, lookup); len(out.Overrides) > 0 {
		if existing != nil {
			if err := m.store.Remove(path); err != nil {
				out.Degraded = zerr.With(
					zerr.Wrap(errors.Join(domain.ErrCacheWriteFailed, err), "failed to drop outdated snapshot"),
					"path", path,
				)
			}
		}
		return out, nil
	}

	fresh := out.Batch.Filter(func(name string) bool {
		_, ok := lookup(name)
		return !ok
	})
	artifact := fresh
	if existing != nil {
		artifact = existing.Overlay(fresh)
	}
	if err := m.store.Save(path, domain.NewSnapshot(artifact, m.now())); err != nil {
		out.Degraded = zerr.With(
			zerr.Wrap(errors.Join(domain.ErrCacheWriteFailed, err), "caching disabled for this run"),
			"path", path,
		)
		return out, nil
	}
	out.Written = true
	return out, nil
}

// overrides returns, sorted, the names of b that lookup binds to a different file.
func overrides(b domain.Batch, lookup Lookup) []string {
	var names []string
	for _, entries := range []map[string]domain.Entry{b.Classes, b.Interfaces} {
		for name, e := range entries {
			if file, ok := lookup(name); ok && file != e.File {
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return names
}

// tryReuse returns an outcome when the snapshot is fresh. Otherwise it returns
// the existing snapshot's batch, if readable, for the write that follows the walk.
func (m *Manager) tryReuse(mod domain.Module, path string) (*Outcome, *domain.Batch) {
	modTime, exists, err := m.store.ModTime(path)
	if err != nil || !exists {
		return nil, nil
	}

	snap, err := m.store.Load(path)
	if err != nil || snap == nil {
		return nil, nil
	}

	settings, err := m.indexer.RootSettings(mod)
	if err != nil {
		settings = mod.Settings()
	}
	delay := settings.RevalidateCacheDelay
	now := m.now()

	if delay > 0 && now.Sub(modTime) < delay {
		return &Outcome{Batch: snap.Batch, Cached: true, Artifact: path}, nil
	}

	latest, err := m.tree.LatestModTime(mod.SourceDir())
	if err != nil || latest.After(modTime) {
		return nil, &snap.Batch
	}

	out := &Outcome{Batch: snap.Batch, Cached: true, Artifact: path}
	if delay > 0 {
		if err := m.store.Touch(path, now); err != nil {
			out.Degraded = zerr.With(zerr.Wrap(err, "failed to touch snapshot"), "path", path)
		}
	}
	return out, nil
}

func (m *Manager) scan(ctx context.Context, mod domain.Module) (*Outcome, error) {
	res, err := m.indexer.Walk(ctx, mod)
	if err != nil {
		return nil, err
	}
	return &Outcome{Batch: res.Batch, Diagnostics: res.Diagnostics, Files: res.Files}, nil
}

// Clean removes every snapshot under the cache directory.
func (m *Manager) Clean() error {
	return m.store.Remove(m.project.CacheDir)
}

// Invalidate removes the module's snapshot so the next LoadOrScan walks it.
func (m *Manager) Invalidate(mod domain.Module) error {
	return m.store.Remove(m.ArtifactPath(mod))
}
