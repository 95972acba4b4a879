// Package llm provides the shared model-invocation layer for the Phoenix
// services: YAML prompt templates, a traced client around a pluggable
// invoker, and best-effort normalization of heterogeneous model-client
// return values into plain strings.
//
// The transport that actually talks to a model provider is supplied by the
// caller as an Invoker; this package never performs network I/O itself.
package llm
