package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ccplan/internal/core/ports"
)

const (
	// TimingsNodeID is the unique identifier for the span timings Graft node.
	TimingsNodeID graft.ID = "adapter.telemetry.timings"
	// TracerNodeID is the unique identifier for the tracer Graft node.
	TracerNodeID graft.ID = "adapter.telemetry.tracer"
)

func init() {
	graft.Register(graft.Node[*Timings]{
		ID:        TimingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Timings, error) {
			return NewTimings(), nil
		},
	})

	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{TimingsNodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			timings, err := graft.Dep[*Timings](ctx)
			if err != nil {
				return nil, err
			}
			return NewOTelTracerFromProvider(NewProvider(timings), InstrumentationName), nil
		},
	})
}
