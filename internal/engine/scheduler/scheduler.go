// Package scheduler rebuilds the registry from every configured module.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/core/ports"
	"go.trai.ch/autoload/internal/engine/cache"
	"go.trai.ch/autoload/internal/engine/walker"
	"go.trai.ch/zerr"
)

// Scheduler runs the cache manager for each module in order and merges the
// results into one registry.
type Scheduler struct {
	overrides ports.OverrideLoader
	store     ports.SnapshotStore
	tree      ports.TreeInspector
	hasher    ports.Hasher
	telemetry ports.Telemetry
	logger    ports.Logger

	mu           sync.RWMutex
	moduleStatus map[string]domain.ModuleStatus

	// walker is kept between rebuilds of the same project so unchanged files
	// are not scanned twice in watch mode.
	walker     *walker.Walker
	walkerRoot string
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	overrides ports.OverrideLoader,
	store ports.SnapshotStore,
	tree ports.TreeInspector,
	hasher ports.Hasher,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		overrides:    overrides,
		store:        store,
		tree:         tree,
		hasher:       hasher,
		telemetry:    telemetry,
		logger:       logger,
		moduleStatus: make(map[string]domain.ModuleStatus),
	}
}

// Result is the outcome of a rebuild.
type Result struct {
	Registry    *domain.Registry
	Summary     domain.Summary
	Diagnostics []domain.Diagnostic
}

// Manager returns the cache manager for project.
func (s *Scheduler) Manager(project *domain.Project) (*cache.Manager, error) {
	w, err := s.walkerFor(project)
	if err != nil {
		return nil, err
	}
	return cache.NewManager(project, w, s.store, s.tree, s.hasher), nil
}

func (s *Scheduler) walkerFor(project *domain.Project) (*walker.Walker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.walker != nil && s.walkerRoot == project.Root {
		return s.walker, nil
	}
	w, err := walker.New(s.overrides, walker.Options{
		Root:     project.Root,
		RootType: project.RootType,
		Exempt:   project.Exempt,
	})
	if err != nil {
		return nil, err
	}
	s.walker = w
	s.walkerRoot = project.Root
	return w, nil
}

func (s *Scheduler) updateStatus(name string, status domain.ModuleStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moduleStatus[name] = status
}

// Status returns the status of a module in the current or last rebuild.
func (s *Scheduler) Status(name string) domain.ModuleStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if status, ok := s.moduleStatus[name]; ok {
		return status
	}
	return domain.ModuleStatusPending
}

// Rebuild indexes every module of the project in order. A module that fails
// does not stop the others; the failures are joined into the returned error
// next to a usable result.
func (s *Scheduler) Rebuild(ctx context.Context, project *domain.Project) (*Result, error) {
	manager, err := s.Manager(project)
	if err != nil {
		return nil, err
	}

	for _, mod := range project.Modules {
		s.updateStatus(mod.Name, domain.ModuleStatusPending)
	}

	res := &Result{Registry: domain.NewRegistry()}
	var errs error
	for _, mod := range project.Modules {
		if err := ctx.Err(); err != nil {
			return res, errors.Join(errs, err)
		}
		summary, err := s.rebuildModule(ctx, manager, mod, res)
		if err != nil {
			errs = errors.Join(errs, err)
		}
		res.Summary.Modules = append(res.Summary.Modules, summary)
	}
	return res, errs
}

func (s *Scheduler) rebuildModule(
	ctx context.Context,
	manager *cache.Manager,
	mod domain.Module,
	res *Result,
) (domain.ModuleSummary, error) {
	summary := domain.ModuleSummary{Name: mod.Name}
	s.updateStatus(mod.Name, domain.ModuleStatusRunning)
	ctx, vertex := s.telemetry.Record(ctx, "index "+mod.Name)

	out, err := manager.LoadOrScan(ctx, mod, res.Registry.FileOf)
	if err != nil {
		if errors.Is(err, domain.ErrModuleNotFound) {
			s.logger.Warn(fmt.Sprintf("module %q skipped: folder %s not found", mod.Name, mod.SourceDir()))
			vertex.Log(domain.LogLevelWarn, "module folder not found")
			vertex.Complete(nil)
			summary.Status = domain.ModuleStatusSkipped
			s.updateStatus(mod.Name, summary.Status)
			return summary, nil
		}
		vertex.Complete(err)
		summary.Status = domain.ModuleStatusFailed
		s.updateStatus(mod.Name, summary.Status)
		return summary, zerr.With(zerr.Wrap(err, "module indexing failed"), "module", mod.Name)
	}

	classesBefore, interfacesBefore := res.Registry.Counts()
	diags := append([]domain.Diagnostic{}, out.Diagnostics...)
	diags = append(diags, res.Registry.Merge(out.Batch)...)
	classesAfter, interfacesAfter := res.Registry.Counts()

	summary.Classes = classesAfter - classesBefore
	summary.Interfaces = interfacesAfter - interfacesBefore
	summary.Diagnostics = len(diags)
	res.Diagnostics = append(res.Diagnostics, diags...)

	for _, d := range diags {
		msg := fmt.Sprintf("[%s] %s", d.Code, d.String())
		s.logger.Warn(msg)
		vertex.Log(domain.LogLevelWarn, msg)
	}
	if out.Degraded != nil {
		s.logger.Warn(out.Degraded.Error())
		vertex.Log(domain.LogLevelWarn, out.Degraded.Error())
	}

	if out.Cached {
		vertex.Cached()
		summary.Status = domain.ModuleStatusCached
	} else {
		summary.Status = domain.ModuleStatusCompleted
	}
	vertex.Complete(nil)
	s.updateStatus(mod.Name, summary.Status)
	return summary, nil
}
