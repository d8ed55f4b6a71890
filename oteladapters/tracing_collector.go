package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/lending-library-go/lending"
)

// TracingCollector implements lending.TracingCollector with an OpenTelemetry tracer.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a TracingCollector using tracer, typically taken from a TracerProvider.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan starts an internal span carrying attrs and returns the context holding it.
func (t *TracingCollector) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, lending.SpanContext) {

	spanCtx, span := t.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attributesFrom(attrs)...),
	)

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan adds attrs, sets the status and ends the span. Span contexts of other collectors are ignored.
func (t *TracingCollector) FinishSpan(spanCtx lending.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	otelSpanCtx.span.SetAttributes(attributesFrom(attrs)...)
	otelSpanCtx.SetStatus(status)
	otelSpanCtx.span.End()
}

// OTelSpanContext wraps an OpenTelemetry span as lending.SpanContext.
type OTelSpanContext struct {
	span trace.Span
}

// SetStatus maps lending statuses to span status codes. Unknown statuses are kept as an attribute.
func (s *OTelSpanContext) SetStatus(status string) {
	switch status {
	case lending.StatusSuccess:
		s.span.SetStatus(codes.Ok, "")
	case lending.StatusError:
		s.span.SetStatus(codes.Error, "lending operation failed")
	case "canceled":
		s.span.SetStatus(codes.Error, "lending operation canceled")
	default:
		s.span.SetAttributes(attribute.String("status", status))
	}
}

// AddAttribute sets a string attribute on the span.
func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

var (
	_ lending.TracingCollector = (*TracingCollector)(nil)
	_ lending.SpanContext      = (*OTelSpanContext)(nil)
)
