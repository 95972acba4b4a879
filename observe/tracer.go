package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// CallMeta contains metadata about an LLM call for telemetry purposes.
type CallMeta struct {
	Service string // Calling service name (may be empty)
	Prompt  string // Prompt template name (required)
	Model   string // Model identifier (optional)
}

// SpanName returns the deterministic span name for this call.
// Format: llm.generate.<prompt>
func (m CallMeta) SpanName() string {
	return "llm.generate." + m.Prompt
}

// Validate checks that the required metadata fields are present.
func (m CallMeta) Validate() error {
	if m.Prompt == "" {
		return ErrMissingPromptName
	}
	return nil
}

// maxOutputAttrLen bounds the recorded output attribute so oversized model
// responses do not bloat trace storage.
const maxOutputAttrLen = 4096

// Tracer wraps OpenTelemetry tracing with LLM-call span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: StartSpan must honor cancellation/deadlines and return ctx.Err() when canceled.
// - Errors: EndSpan and RecordOutput must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for an LLM call.
	StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span)

	// RecordOutput attaches the normalized call output to the span.
	RecordOutput(span trace.Span, output string)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with call metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("llm.prompt", meta.Prompt),
		attribute.Bool("llm.error", false), // Updated in EndSpan if error
	}
	if meta.Service != "" {
		attrs = append(attrs, attribute.String("llm.service", meta.Service))
	}
	if meta.Model != "" {
		attrs = append(attrs, attribute.String("llm.model", meta.Model))
	}

	ctx, span := t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)

	return ctx, span
}

// RecordOutput attaches the normalized output, truncated to a bounded length.
func (t *tracerImpl) RecordOutput(span trace.Span, output string) {
	if len(output) > maxOutputAttrLen {
		output = output[:maxOutputAttrLen]
	}
	span.SetAttributes(
		attribute.String("llm.output", output),
		attribute.Int("llm.output_len", len(output)),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("llm.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// NewNoopTracer creates a no-op tracer.
func NewNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) RecordOutput(span trace.Span, output string) {}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
