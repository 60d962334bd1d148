package progrock

import (
	"fmt"

	"github.com/vito/progrock"
)

// Vertex implements ports.Vertex on a progrock vertex. Inputs are written to the
// vertex's output, one per line.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Inputs writes paths to the vertex output.
func (v *Vertex) Inputs(paths []string) {
	w := v.vertex.Stdout()
	for _, p := range paths {
		_, _ = fmt.Fprintf(w, "< %s\n", p)
	}
}

// Complete marks the vertex as done, failed when err is non-nil.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached marks the vertex as satisfied by an identical earlier action.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
