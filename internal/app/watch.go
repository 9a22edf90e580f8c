package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.trai.ch/autoload/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/core/ports"
	"go.trai.ch/zerr"
)

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	// Save rewrites the consolidated database after every rebuild.
	Save bool
	// Window is the quiet period before changes trigger a rebuild.
	Window time.Duration
}

// Watch rebuilds once, then again whenever a module's files change, until
// ctx is cancelled. Only the modules holding changed files are rescanned.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	if _, err := a.Rebuild(ctx, RebuildOptions{Save: opts.Save}); err != nil {
		a.logger.Error(err)
	}

	project, err := a.Project()
	if err != nil {
		return err
	}

	roots := make([]string, 0, len(project.Modules))
	for _, mod := range project.Modules {
		if info, err := os.Stat(mod.Path); err == nil && info.IsDir() {
			roots = append(roots, mod.Path)
		}
	}

	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	if reporter, ok := w.(interface{ OnError(func(error)) }); ok {
		reporter.OnError(a.logger.Error)
	}
	if err := w.Start(ctx, roots...); err != nil {
		_ = w.Stop()
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() { _ = w.Stop() }()

	window := opts.Window
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}
	filter := watcher.NewContentFilter(a.hasher)
	for _, file := range a.indexedFiles() {
		filter.Prime(file)
	}
	debouncer := watcher.NewDebouncer(window, func(paths []string) {
		a.onChange(ctx, paths, opts.Save)
	})

	a.logger.Info(fmt.Sprintf("watching %d modules", len(roots)))
	for event := range w.Events() {
		if !filter.Changed(event) {
			a.logger.Debug(fmt.Sprintf("ignoring %s of %s: content unchanged", event.Operation, event.Path))
			continue
		}
		debouncer.Add(event.Path)
	}
	return nil
}

func (a *App) onChange(ctx context.Context, paths []string, save bool) {
	if ctx.Err() != nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	modules := affectedModules(a.project, paths)
	if len(modules) == 0 {
		return
	}

	manager, err := a.scheduler.Manager(a.project)
	if err != nil {
		a.logger.Error(err)
		return
	}
	names := make([]string, 0, len(modules))
	for _, mod := range modules {
		names = append(names, mod.Name)
		if err := manager.Invalidate(mod); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to invalidate %s: %v", mod.Name, err))
		}
	}
	a.logger.Info(fmt.Sprintf("changes in %s, rebuilding", strings.Join(names, ", ")))

	if _, err := a.rebuild(ctx, save); err != nil {
		a.logger.Error(err)
	}
}

// indexedFiles returns the absolute paths of the files defining indexed types.
func (a *App) indexedFiles() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.registry == nil {
		return nil
	}
	seen := make(map[string]bool)
	var files []string
	for decl := range a.registry.All() {
		if decl.File.IsZero() {
			continue
		}
		file := decl.File.String()
		if seen[file] {
			continue
		}
		seen[file] = true
		files = append(files, a.project.FullPath(file))
	}
	return files
}

// affectedModules returns the modules, in project order, holding any of paths.
func affectedModules(project *domain.Project, paths []string) []domain.Module {
	var out []domain.Module
	for _, mod := range project.Modules {
		for _, path := range paths {
			if (ports.WatchEvent{Path: path}).Within(mod.Path) {
				out = append(out, mod)
				break
			}
		}
	}
	return out
}
