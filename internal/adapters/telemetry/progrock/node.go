package progrock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/autoload/internal/adapters/logger" //nolint:depguard // Debug trace of vertexes
	"go.trai.ch/autoload/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry adapter node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(WithLogger(log)), nil
		},
	})
}
