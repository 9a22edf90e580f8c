package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/autoload/internal/adapters/logger"
	"go.trai.ch/autoload/internal/core/ports"
)

const (
	// NodeID is the graft node for the project file loader.
	NodeID graft.ID = "adapter.config_loader"
	// OverrideNodeID is the graft node for the per-folder override loader.
	OverrideNodeID graft.ID = "adapter.override_loader"
)

func init() {
	graft.Register(graft.Node[ports.ProjectLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProjectLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.OverrideLoader]{
		ID:        OverrideNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OverrideLoader, error) {
			return NewOverrideLoader(), nil
		},
	})
}
