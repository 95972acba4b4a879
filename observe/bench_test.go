package observe

import (
	"context"
	"io"
	"testing"
)

// BenchmarkLogger_Info measures logging throughput.
func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "benchmark message", Field{Key: "iteration", Value: i})
	}
}

// BenchmarkLogger_Info_MultipleFields measures logging with multiple fields.
func BenchmarkLogger_Info_MultipleFields(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()
	fields := []Field{
		{Key: "field1", Value: "value1"},
		{Key: "field2", Value: 42},
		{Key: "field3", Value: true},
		{Key: "field4", Value: 3.14},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "benchmark message", fields...)
	}
}

// BenchmarkLogger_WithCall_ThenLog measures the full pattern of creating
// a call-scoped logger and logging.
func BenchmarkLogger_WithCall_ThenLog(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()
	meta := CallMeta{
		Service: "bench",
		Prompt:  "bench_prompt",
		Model:   "bench/model",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		callLogger := logger.WithCall(meta)
		callLogger.Info(ctx, "llm call completed", Field{Key: "iteration", Value: i})
	}
}

// BenchmarkLogger_LevelFiltering measures overhead of level filtering.
func BenchmarkLogger_LevelFiltering(b *testing.B) {
	logger := NewLoggerWithWriter("error", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug(ctx, "filtered debug")
		logger.Info(ctx, "filtered info")
	}
}

// BenchmarkMiddleware_Wrap measures the per-call overhead of the wrapped
// invocation path with no-op telemetry.
func BenchmarkMiddleware_Wrap(b *testing.B) {
	mw := NewMiddleware(NewNoopTracer(), NewNoopMetrics(), NewNoopLogger())
	invoke := mw.Wrap(func(ctx context.Context, meta CallMeta, input map[string]any) (any, error) {
		return "ok", nil
	})
	ctx := context.Background()
	meta := CallMeta{Prompt: "bench_prompt"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = invoke(ctx, meta, nil)
	}
}
