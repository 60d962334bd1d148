package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ccplan/internal/adapters/actions"            //nolint:depguard // Wired in app layer
	"go.trai.ch/ccplan/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/ccplan/internal/adapters/fingerprint"        //nolint:depguard // Wired in app layer
	"go.trai.ch/ccplan/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/ccplan/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/ccplan/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/ccplan/internal/core/ports"
	"go.trai.ch/ccplan/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			scheduler.NodeID,
			actions.RecorderNodeID,
			fingerprint.NodeID,
			progrock.NodeID,
			telemetry.TimingsNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	registrar, err := graft.Dep[ports.ActionRegistrar](ctx)
	if err != nil {
		return nil, err
	}

	fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	timings, err := graft.Dep[*telemetry.Timings](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, sched, registrar, fingerprinter, tel, timings, log), nil
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

	return NewComponents(app, log), nil
}
