package telemetry

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Timing is the summary of one ended span.
type Timing struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
	Failed   bool          `json:"failed,omitempty"`
}

// Timings implements sdktrace.SpanProcessor by keeping a summary of every ended span.
type Timings struct {
	mu      sync.Mutex
	timings []Timing
}

var _ sdktrace.SpanProcessor = (*Timings)(nil)

// NewTimings returns an empty Timings.
func NewTimings() *Timings {
	return &Timings{}
}

// NewProvider returns an SDK tracer provider feeding the given processors.
func NewProvider(processors ...sdktrace.SpanProcessor) *sdktrace.TracerProvider {
	opts := make([]sdktrace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	return sdktrace.NewTracerProvider(opts...)
}

// OnStart does nothing.
func (t *Timings) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd records the span.
func (t *Timings) OnEnd(s sdktrace.ReadOnlySpan) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timings = append(t.timings, Timing{
		Name:     s.Name(),
		Duration: s.EndTime().Sub(s.StartTime()),
		Failed:   s.Status().Code == codes.Error,
	})
}

// Snapshot returns the recorded timings in the order the spans ended.
func (t *Timings) Snapshot() []Timing {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.timings)
}

// ForceFlush does nothing.
func (t *Timings) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (t *Timings) Shutdown(context.Context) error {
	return nil
}
