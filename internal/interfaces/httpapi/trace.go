package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("fantasy-ms/internal/interfaces/httpapi")

// startSpan opens a child span under the request span. When the route
// was filtered out of tracing (for example /healthz) there is no valid
// parent, and a non-recording span is returned instead of a new root.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noRecordSpan()
	}
	if !isHandlerSpan(name) {
		return ctx, noRecordSpan()
	}
	return apiTracer.Start(ctx, name)
}

// Only handler-level spans are recorded; middleware and helpers ride
// on the request span.
func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}

func noRecordSpan() trace.Span {
	return trace.SpanFromContext(context.Background())
}
