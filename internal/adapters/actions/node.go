package actions

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ccplan/internal/adapters/telemetry/progrock"
	"go.trai.ch/ccplan/internal/core/ports"
)

const (
	// RecorderNodeID is the unique identifier for the action registrar Graft node.
	RecorderNodeID graft.ID = "adapter.actions.recorder"
	// CompilerNodeID is the unique identifier for the compiler Graft node.
	CompilerNodeID graft.ID = "adapter.actions.compiler"
	// LinkerNodeID is the unique identifier for the linker Graft node.
	LinkerNodeID graft.ID = "adapter.actions.linker"
)

func init() {
	graft.Register(graft.Node[ports.ActionRegistrar]{
		ID:        RecorderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{progrock.NodeID},
		Run: func(ctx context.Context) (ports.ActionRegistrar, error) {
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return NewRecorder(telemetry), nil
		},
	})

	graft.Register(graft.Node[ports.Compiler]{
		ID:        CompilerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{RecorderNodeID},
		Run: func(ctx context.Context) (ports.Compiler, error) {
			registrar, err := graft.Dep[ports.ActionRegistrar](ctx)
			if err != nil {
				return nil, err
			}
			return NewCompiler(registrar), nil
		},
	})

	graft.Register(graft.Node[ports.Linker]{
		ID:        LinkerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{RecorderNodeID},
		Run: func(ctx context.Context) (ports.Linker, error) {
			registrar, err := graft.Dep[ports.ActionRegistrar](ctx)
			if err != nil {
				return nil, err
			}
			return NewLinker(registrar), nil
		},
	})
}
