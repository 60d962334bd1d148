package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ccplan/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ccplan/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ccplan/internal/core/ports"
	"go.trai.ch/ccplan/internal/engine/planner"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			planner.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			p, err := graft.Dep[*planner.Planner](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(p, tracer, log), nil
		},
	})
}
