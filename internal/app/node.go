package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/autoload/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/autoload/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/autoload/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/autoload/internal/adapters/snapshot"           //nolint:depguard // Wired in app layer
	"go.trai.ch/autoload/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/autoload/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/autoload/internal/core/ports"
	"go.trai.ch/autoload/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI needs.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			scheduler.NodeID,
			snapshot.NodeID,
			fs.HasherNodeID,
			logger.NodeID,
			watcher.FactoryNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ProjectLoader](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.SnapshotStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	newWatcher, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, sched, store, hasher, log, newWatcher), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{App: app, Logger: log, Telemetry: telemetry}, nil
}
