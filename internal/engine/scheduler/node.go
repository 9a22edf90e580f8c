package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/autoload/internal/adapters/config"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autoload/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autoload/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autoload/internal/adapters/snapshot"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autoload/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autoload/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.OverrideNodeID,
			snapshot.NodeID,
			fs.TreeNodeID,
			fs.HasherNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			overrides, err := graft.Dep[ports.OverrideLoader](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.SnapshotStore](ctx)
			if err != nil {
				return nil, err
			}

			tree, err := graft.Dep[ports.TreeInspector](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(overrides, store, tree, hasher, telemetry, log), nil
		},
	})
}
