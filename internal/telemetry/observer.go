// Package telemetry records tool invocations into OpenTelemetry.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Invocation describes one completed tool request.
type Invocation struct {
	ToolID   string
	Action   string
	Status   int
	Duration time.Duration
}

func (i Invocation) Success() bool {
	return i.Status > 0 && i.Status < 400
}

type ToolObserver struct {
	tracer trace.Tracer

	invocations metric.Int64Counter
	latency     metric.Float64Histogram
}

// NewToolObserver creates an observer bound to the provided meter and tracer.
func NewToolObserver(meter metric.Meter, tracer trace.Tracer) (*ToolObserver, error) {
	invocations, err := meter.Int64Counter(
		"utools.tool.invocations",
		metric.WithDescription("Number of tool invocations"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"utools.tool.latency",
		metric.WithDescription("Tool latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ToolObserver{
		tracer:      tracer,
		invocations: invocations,
		latency:     latency,
	}, nil
}

// Start opens the span for an invocation. The returned context should be
// passed down to the handler.
func (o *ToolObserver) Start(ctx context.Context, toolID, action string) (context.Context, trace.Span) {
	if o == nil || o.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return o.tracer.Start(ctx, "tool.invoke", trace.WithAttributes(
		attribute.String("tool_id", toolID),
		attribute.String("action", action),
	))
}

// Finish records metrics for a completed invocation and ends span.
func (o *ToolObserver) Finish(ctx context.Context, span trace.Span, inv Invocation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("tool_id", inv.ToolID),
		attribute.String("action", inv.Action),
		attribute.Int("status", inv.Status),
		attribute.Bool("success", inv.Success()),
	}
	options := metric.WithAttributes(attrs...)
	o.invocations.Add(ctx, 1, options)
	o.latency.Record(ctx, inv.Duration.Seconds(), options)

	if span == nil || !span.IsRecording() {
		return
	}
	span.SetAttributes(attrs...)
	if inv.Success() {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, "tool request failed")
	}
	span.End()
}
