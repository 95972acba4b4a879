package observe

import (
	"context"
	"time"
)

// InvokeFunc is the signature for model invocation functions.
// This is the standard function signature that Middleware wraps.
type InvokeFunc func(ctx context.Context, meta CallMeta, input map[string]any) (any, error)

// Middleware wraps model invocation with observability (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe InvokeFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from the wrapped function are recorded and propagated unchanged.
//   - Ownership: Input/output values are passed through without modification.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps an InvokeFunc with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn InvokeFunc) InvokeFunc {
	return func(ctx context.Context, meta CallMeta, input map[string]any) (any, error) {
		ctx, span := m.tracer.StartSpan(ctx, meta)

		start := time.Now()
		result, err := fn(ctx, meta, input)
		duration := time.Since(start)

		// End span (records error status if err != nil)
		m.tracer.EndSpan(span, err)

		m.metrics.RecordCall(ctx, meta, duration, err)

		callLogger := m.logger.WithCall(meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			callLogger.Error(ctx, "llm call failed", fields...)
		} else {
			callLogger.Info(ctx, "llm call completed", fields...)
		}

		return result, err
	}
}
