package ports

import "context"

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string) (context.Context, Span)
	// EmitPlan signals which targets are about to be planned, in order.
	EmitPlan(ctx context.Context, targets []string)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// Telemetry records the progress of individual actions.
type Telemetry interface {
	// Record starts a vertex for a unit of work.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes the recording session.
	Close() error
}

// Vertex is one recorded action.
type Vertex interface {
	// Inputs lists the exec paths the action reads.
	Inputs(paths []string)
	// Complete marks the vertex as finished, with an error on failure.
	Complete(err error)
	// Cached marks the vertex as satisfied by an identical earlier one.
	Cached()
}

// Noop returns a Telemetry that records nothing.
func Noop() Telemetry {
	return noopTelemetry{}
}

type noopTelemetry struct{}

func (noopTelemetry) Record(ctx context.Context, _ string) (context.Context, Vertex) {
	return ctx, noopVertex{}
}

func (noopTelemetry) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Inputs([]string) {}
func (noopVertex) Complete(error)  {}
func (noopVertex) Cached()         {}
