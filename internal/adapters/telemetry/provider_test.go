package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/ccplan/internal/adapters/telemetry"
	"go.trai.ch/ccplan/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
}

func newRecordingTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return telemetry.NewOTelTracerFromProvider(tp, "test"), sr
}

func TestOTelTracer_Start(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	ctx, span := tracer.Start(context.Background(), "plan //lib:a")
	tracer.EmitPlan(ctx, []string{"//lib:a"})
	span.SetAttribute("target", "//lib:a")
	span.SetAttribute("actions", 3)
	span.SetAttribute("compiled", true)
	span.SetAttribute("status", struct{ s string }{"planned"})
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	s := ended[0]
	assert.Equal(t, "plan //lib:a", s.Name())
	assert.Contains(t, s.Attributes(), attribute.String("target", "//lib:a"))
	assert.Contains(t, s.Attributes(), attribute.Int("actions", 3))
	assert.Contains(t, s.Attributes(), attribute.Bool("compiled", true))
	require.Len(t, s.Events(), 1)
	assert.Equal(t, "plan_emitted", s.Events()[0].Name)
	assert.Equal(t, codes.Unset, s.Status().Code)
}

func TestOTelSpan_RecordError(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "plan //lib:a")
	span.RecordError(nil)
	span.RecordError(errors.New("boom"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
}

func TestOTelTracer_Global(t *testing.T) {
	tracer := telemetry.NewOTelTracer("test")
	ctx, span := tracer.Start(context.Background(), "span")
	tracer.EmitPlan(ctx, nil)
	span.SetAttribute("key", "value")
	span.End()
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx := context.Background()
	got, span := tracer.Start(ctx, "test-span")
	assert.Equal(t, ctx, got)
	assert.NotNil(t, span)

	tracer.EmitPlan(ctx, []string{"a"})
	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}

func TestTimings(t *testing.T) {
	timings := telemetry.NewTimings()
	tp := telemetry.NewProvider(timings)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	tracer := telemetry.NewOTelTracerFromProvider(tp, "test")

	_, ok := tracer.Start(context.Background(), "plan //lib:a")
	ok.End()
	_, failed := tracer.Start(context.Background(), "plan //lib:b")
	failed.RecordError(errors.New("boom"))
	failed.End()

	got := timings.Snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, "plan //lib:a", got[0].Name)
	assert.False(t, got[0].Failed)
	assert.Equal(t, "plan //lib:b", got[1].Name)
	assert.True(t, got[1].Failed)
	assert.GreaterOrEqual(t, got[0].Duration.Nanoseconds(), int64(0))

	require.NoError(t, timings.ForceFlush(context.Background()))
	require.NoError(t, timings.Shutdown(context.Background()))
}
