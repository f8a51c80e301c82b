package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestObserver(t *testing.T) (*ToolObserver, *sdkmetric.ManualReader, *tracetest.InMemoryExporter) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	obs, err := NewToolObserver(mp.Meter("test"), tp.Tracer("test"))
	require.NoError(t, err)
	return obs, reader, exporter
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, scope := range rm.ScopeMetrics {
		for i := range scope.Metrics {
			if scope.Metrics[i].Name == name {
				return &scope.Metrics[i]
			}
		}
	}
	return nil
}

func TestToolObserverRecordsInvocation(t *testing.T) {
	obs, reader, exporter := newTestObserver(t)

	ctx, span := obs.Start(context.Background(), "network.ping", "run")
	obs.Finish(ctx, span, Invocation{ToolID: "network.ping", Action: "run", Status: 200, Duration: 40 * time.Millisecond})

	ctx, span = obs.Start(context.Background(), "network.ping", "run")
	obs.Finish(ctx, span, Invocation{ToolID: "network.ping", Action: "run", Status: 400, Duration: time.Millisecond})

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	counter := findMetric(&rm, "utools.tool.invocations")
	require.NotNil(t, counter)
	sum, ok := counter.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(2), total)
	assert.NotNil(t, findMetric(&rm, "utools.tool.latency"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "tool.invoke", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
}

func TestInvocationSuccess(t *testing.T) {
	assert.True(t, Invocation{Status: 200}.Success())
	assert.False(t, Invocation{Status: 400}.Success())
	assert.False(t, Invocation{Status: 500}.Success())
	assert.False(t, Invocation{}.Success())
}

func TestNilObserverIsSafe(t *testing.T) {
	var obs *ToolObserver
	ctx, span := obs.Start(context.Background(), "converters.unit", "convert")
	obs.Finish(ctx, span, Invocation{Status: 200})
}

func TestInitTracingWithoutEndpoint(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
