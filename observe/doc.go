// Package observe provides observability primitives for LLM calls made by
// the Phoenix services.
//
// It is a pure instrumentation library: no model invocation, no transport,
// no I/O beyond exporter setup and error-reporting initialization. Services
// wire the observer into the llm client or their own middleware.
package observe
