package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "creative-hub/messaging-api"

// GetTracer returns the tracer for the messaging service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartThreadSpan starts a span for a thread-scoped operation.
func StartThreadSpan(ctx context.Context, operation, actorID, otherID string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "thread."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("thread.actor_id", actorID),
			attribute.String("thread.other_id", otherID),
		),
	)
}

// StartBriefSpan starts a span for a brief lifecycle operation.
func StartBriefSpan(ctx context.Context, operation, briefID string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "brief."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("brief.id", briefID),
		),
	)
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// AddStatusTransition adds a status transition event to a span.
func AddStatusTransition(span trace.Span, fromStatus, toStatus string) {
	span.AddEvent("status.transition",
		trace.WithAttributes(
			attribute.String("status.from", fromStatus),
			attribute.String("status.to", toStatus),
		),
	)
}
