package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ccplan/internal/adapters/actions" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ccplan/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ccplan/internal/core/ports"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			actions.CompilerNodeID,
			actions.LinkerNodeID,
			actions.RecorderNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Planner, error) {
			compiler, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}

			linker, err := graft.Dep[ports.Linker](ctx)
			if err != nil {
				return nil, err
			}

			registrar, err := graft.Dep[ports.ActionRegistrar](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(compiler, linker, registrar, log), nil
		},
	})
}
