package progrock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ccplan/internal/core/ports"
)

// NodeID is the unique identifier for the action telemetry node.
const NodeID graft.ID = "adapter.telemetry.progrock"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			return New(), nil
		},
	})
}
