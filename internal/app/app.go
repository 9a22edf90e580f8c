// Package app implements the application layer for autoload.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.trai.ch/autoload/internal/adapters/runtime" //nolint:depguard // Wired in app layer
	"go.trai.ch/autoload/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/core/ports"
	"go.trai.ch/autoload/internal/engine/resolver"
	"go.trai.ch/autoload/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// maxListedNames caps the known names printed next to an unknown type.
const maxListedNames = 50

// App represents the main application logic.
type App struct {
	loader     ports.ProjectLoader
	scheduler  *scheduler.Scheduler
	store      ports.SnapshotStore
	hasher     ports.Hasher
	logger     ports.Logger
	newWatcher watcher.Factory
	configPath string
	now        func() time.Time

	mu       sync.Mutex
	project  *domain.Project
	registry *domain.Registry
	space    *runtime.TypeSpace
	resolver *resolver.Resolver
}

// New creates a new App instance.
func New(
	loader ports.ProjectLoader,
	sched *scheduler.Scheduler,
	store ports.SnapshotStore,
	hasher ports.Hasher,
	log ports.Logger,
	newWatcher watcher.Factory,
) *App {
	return &App{
		loader:     loader,
		scheduler:  sched,
		store:      store,
		hasher:     hasher,
		logger:     log,
		newWatcher: newWatcher,
		configPath: ".",
		now:        time.Now,
	}
}

// UseConfig sets the project file, or the folder to search it from.
// It must be called before the project is first loaded.
func (a *App) UseConfig(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if path != "" {
		a.configPath = path
	}
}

// Project returns the loaded project configuration.
func (a *App) Project() (*domain.Project, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loadProject()
}

func (a *App) loadProject() (*domain.Project, error) {
	if a.project != nil {
		return a.project, nil
	}
	project, err := a.loader.Load(a.configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	a.project = project
	return project, nil
}

// Init makes the registry available. It loads the consolidated database when
// one exists and rebuilds from the modules otherwise.
func (a *App) Init(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.init(ctx)
}

func (a *App) init(ctx context.Context) error {
	if a.registry != nil {
		return nil
	}
	project, err := a.loadProject()
	if err != nil {
		return err
	}

	snap, err := a.store.Load(project.Database)
	switch {
	case err != nil:
		a.logger.Warn(fmt.Sprintf("ignoring database %s: %v", project.RelativePath(project.Database), err))
	case snap != nil:
		registry := domain.NewRegistry()
		registry.Merge(snap.Batch)
		a.activate(registry)
		return nil
	}

	_, err = a.rebuild(ctx, false)
	return err
}

// activate installs registry and a fresh type space resolving against it.
func (a *App) activate(registry *domain.Registry) {
	a.registry = registry
	a.space = runtime.New(a.project.Builtins, a.project.RootType)
	a.resolver = resolver.New(a.project, registry, a.space)
	a.space.SetHook(a.resolver.EnsureDeclared)
}

// RebuildOptions configuration for the Rebuild method.
type RebuildOptions struct {
	// Save writes the consolidated database after a successful rebuild.
	Save bool
}

// Rebuild indexes every module in order and replaces the registry.
func (a *App) Rebuild(ctx context.Context, opts RebuildOptions) (*domain.Summary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.loadProject(); err != nil {
		return nil, err
	}
	return a.rebuild(ctx, opts.Save)
}

func (a *App) rebuild(ctx context.Context, save bool) (*domain.Summary, error) {
	res, err := a.scheduler.Rebuild(ctx, a.project)
	if res == nil {
		return nil, err
	}
	a.activate(res.Registry)
	a.report(res.Summary)

	if err != nil {
		return &res.Summary, zerr.Wrap(err, "rebuild finished with errors")
	}
	if save {
		if err := a.saveDatabase(); err != nil {
			return &res.Summary, err
		}
	}
	return &res.Summary, nil
}

func (a *App) report(summary domain.Summary) {
	for _, m := range summary.Modules {
		a.logger.Info(fmt.Sprintf("%s: %d classes, %d interfaces (%s)", m.Name, m.Classes, m.Interfaces, m.Status))
	}
	classes, interfaces := summary.Totals()
	a.logger.Info(fmt.Sprintf("indexed %d classes and %d interfaces in %d modules", classes, interfaces, len(summary.Modules)))
}

// Resolve declares each named type in the runtime, supertypes and interfaces
// first. Every name is attempted; the failures are joined.
func (a *App) Resolve(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return domain.ErrNoTypesSpecified
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.init(ctx); err != nil {
		return err
	}

	var errs error
	for _, name := range names {
		if err := a.resolve(name); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		a.logger.Info(fmt.Sprintf("declared %s", name))
	}
	return errs
}

func (a *App) resolve(name string) error {
	err := a.resolver.EnsureDeclared(name)
	if err != nil && errors.Is(err, domain.ErrUnknownType) && a.project.Standalone {
		a.logger.Warn(a.unknownTypeMessage(name))
	}
	return err
}

func (a *App) unknownTypeMessage(name string) string {
	names := a.registry.Names()
	listed := names
	if len(listed) > maxListedNames {
		listed = listed[:maxListedNames]
	}
	msg := fmt.Sprintf("unknown type %q, available types: %s", name, strings.Join(listed, ", "))
	if rest := len(names) - len(listed); rest > 0 {
		msg += fmt.Sprintf(" and %d more", rest)
	}
	return msg
}

// TypeReport describes a materialized type and its ancestry.
type TypeReport struct {
	domain.TypeInfo
	// Ancestry lists the supertype chain, nearest first.
	Ancestry []string
	// AllInterfaces lists every interface implemented directly or inherited, sorted.
	AllInterfaces []string
}

// Describe declares name and reports what the runtime knows about it.
func (a *App) Describe(ctx context.Context, name string) (*TypeReport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.init(ctx); err != nil {
		return nil, err
	}
	if err := a.resolve(name); err != nil {
		return nil, err
	}

	name = strings.TrimPrefix(name, domain.NamespaceSeparator)
	info, ok := a.space.Describe(name)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownType, "type is not materialized"), "type", name)
	}
	return buildReport(info, a.space.Describe), nil
}

// Show returns the defining file of name and its content.
func (a *App) Show(ctx context.Context, name string) (string, []byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.init(ctx); err != nil {
		return "", nil, err
	}

	name = strings.TrimPrefix(name, domain.NamespaceSeparator)
	decl, ok := a.registry.Get(name)
	if !ok {
		if a.space.Declared(name) {
			return "", nil, zerr.With(zerr.Wrap(domain.ErrNoSourceFile, "type is provided by the runtime"), "type", name)
		}
		return "", nil, zerr.With(zerr.Wrap(domain.ErrUnknownType, "type is not indexed"), "type", name)
	}
	if decl.Kind == domain.KindSynthesized {
		return "", nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrNoSourceFile, "type is synthesized"), "type", name), "base", decl.Base)
	}

	file := a.project.FullPath(decl.File.String())
	//nolint:gosec // Path comes from the index
	content, err := os.ReadFile(file)
	if err != nil {
		return file, nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrSourceFileCorrupt, err), "failed to read defining file"), "file", file)
	}
	return file, content, nil
}

// Validate checks that every referenced supertype and interface can be found.
func (a *App) Validate(ctx context.Context) ([]domain.Diagnostic, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	issues := a.registry.Validate(a.space.Declared)
	for _, d := range issues {
		a.logger.Warn(fmt.Sprintf("[%s] %s", d.Code, d.String()))
	}
	if len(issues) > 0 {
		return issues, zerr.With(zerr.Wrap(domain.ErrValidationFailed, "registry references missing types"), "issues", len(issues))
	}
	a.logger.Info(fmt.Sprintf("all %d declarations are consistent", a.registry.Len()))
	return nil, nil
}

// SaveDatabase writes the whole registry to the consolidated database.
func (a *App) SaveDatabase(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.init(ctx); err != nil {
		return err
	}
	return a.saveDatabase()
}

func (a *App) saveDatabase() error {
	batch := a.registry.Batch()
	if err := a.store.Save(a.project.Database, domain.NewSnapshot(batch, a.now())); err != nil {
		return zerr.Wrap(err, "failed to save database")
	}
	a.logger.Info(fmt.Sprintf("saved %d declarations to %s", batch.Len(), a.project.RelativePath(a.project.Database)))
	return nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// All also removes the consolidated database.
	All bool
}

// Clean removes the module snapshots and, optionally, the database.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	project, err := a.loadProject()
	if err != nil {
		return err
	}
	manager, err := a.scheduler.Manager(project)
	if err != nil {
		return err
	}

	var errs error
	remove := func(name, path string, fn func() error) {
		a.logger.Info(fmt.Sprintf("removing %s %s...", name, project.RelativePath(path)))
		if err := fn(); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, "failed to remove "+name))
		}
	}

	remove("cache", project.CacheDir, manager.Clean)
	if opts.All {
		remove("database", project.Database, func() error { return a.store.Remove(project.Database) })
	}
	return errs
}
