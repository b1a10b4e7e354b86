package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInit_WithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	ctx := context.Background()

	shutdown, err := Init(ctx, "graphedit", "test", "")
	require.NoError(t, err)

	assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
	assert.IsType(t, &sdkmetric.MeterProvider{}, otel.GetMeterProvider())

	_, span := Tracer("graphedit/test").Start(ctx, "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	c, err := Meter("graphedit/test").Int64Counter("graphedit.test.ops")
	require.NoError(t, err)
	c.Add(ctx, 1)

	require.NoError(t, shutdown(ctx))
}

func TestInit_WithEndpoint(t *testing.T) {
	ctx := context.Background()

	// Exporters connect lazily, so construction succeeds without a collector.
	shutdown, err := Init(ctx, "graphedit", "test", "http://127.0.0.1:4318")
	require.NoError(t, err)
	assert.IsType(t, &sdkmetric.MeterProvider{}, otel.GetMeterProvider())

	sctx, cancel := context.WithCancel(ctx)
	cancel()
	_ = shutdown(sctx)
}
