package mcpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var toolTracer = otel.Tracer("espn-fantasy-mcp/internal/interfaces/mcpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startToolSpan opens the span for one tool call. On stdio there is no
// inbound HTTP span, so this may be a root span.
func startToolSpan(ctx context.Context, tool string) (context.Context, trace.Span) {
	return toolTracer.Start(ctx, "mcpapi.tool."+tool,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("mcp.tool", tool)),
	)
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return toolTracer.Start(ctx, name)
}
