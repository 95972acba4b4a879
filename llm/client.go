package llm

import (
	"context"
	"strings"
	"text/template"
	"time"

	"github.com/phoenix-platform/phoenixlib/observe"
	"github.com/phoenix-platform/phoenixlib/timeutil"
)

// Invoker executes a rendered prompt against a model provider.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Invoke must honor cancellation/deadlines.
// - Errors: transport and provider errors are returned as-is; the Client
//   does not retry (retry policy belongs to the calling service).
//
// The returned value may be any shape the underlying client library
// produces; the Client normalizes it with Normalize.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, cfg Config) (any, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, prompt string, cfg Config) (any, error)

// Invoke calls the function.
func (f InvokerFunc) Invoke(ctx context.Context, prompt string, cfg Config) (any, error) {
	return f(ctx, prompt, cfg)
}

// Client renders named prompt templates, invokes a model through an
// injected Invoker, and returns the normalized string response. Telemetry
// (span, metrics, structured log) wraps every call; telemetry failure never
// affects the returned value.
//
// Services construct one Client at startup and inject their own defaults.
type Client struct {
	prompts  *PromptLoader
	defaults Config
	invoker  Invoker

	service string
	tracer  observe.Tracer
	metrics observe.Metrics
	logger  observe.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithServiceName tags telemetry with the calling service.
func WithServiceName(name string) ClientOption {
	return func(c *Client) {
		c.service = name
	}
}

// WithObserver wires the client's tracing, metrics, and logging to an
// Observer. Without it, telemetry is a no-op.
func WithObserver(obs observe.Observer) ClientOption {
	return func(c *Client) {
		c.tracer = observe.NewTracer(obs.Tracer())
		if m, err := observe.NewMetrics(obs.Meter()); err == nil {
			c.metrics = m
		}
		c.logger = obs.Logger()
	}
}

// WithLogger overrides just the logger.
func WithLogger(logger observe.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client with the given prompt loader, default model
// configuration, and invoker.
func NewClient(prompts *PromptLoader, defaults Config, invoker Invoker, opts ...ClientOption) (*Client, error) {
	if prompts == nil {
		return nil, ErrNilPromptLoader
	}
	if invoker == nil {
		return nil, ErrNilInvoker
	}

	c := &Client{
		prompts:  prompts,
		defaults: defaults.withDefaults(),
		invoker:  invoker,
		tracer:   observe.NewNoopTracer(),
		metrics:  observe.NewNoopMetrics(),
		logger:   observe.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CallOption overrides the model configuration for a single call.
type CallOption func(*Config)

// WithModel overrides the model string for one call. Default parameters are
// not carried over; use WithConfig to override both.
func WithModel(model string) CallOption {
	return func(cfg *Config) {
		*cfg = Config{Model: model}
	}
}

// WithConfig overrides the full model configuration for one call.
func WithConfig(override Config) CallOption {
	return func(cfg *Config) {
		*cfg = override.withDefaults()
	}
}

// RenderPrompt renders a named prompt template with the given variables
// without invoking the model. Missing variables are an error.
func (c *Client) RenderPrompt(name string, vars map[string]any) (string, error) {
	text, err := c.prompts.Load(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, vars); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Generate renders the named prompt, invokes the model, and returns the
// normalized string response.
func (c *Client) Generate(ctx context.Context, name string, vars map[string]any, opts ...CallOption) (string, error) {
	cfg := c.defaults
	for _, opt := range opts {
		opt(&cfg)
	}

	rendered, err := c.RenderPrompt(name, vars)
	if err != nil {
		return "", err
	}

	meta := observe.CallMeta{Service: c.service, Prompt: name, Model: cfg.Model}
	logger := c.logger.WithCall(meta)
	logger.Info(ctx, "llm.generate",
		observe.Field{Key: "request_id", Value: requestID(vars)},
	)

	ctx, span := c.tracer.StartSpan(ctx, meta)
	start := time.Now()

	raw, err := c.invoker.Invoke(ctx, rendered, cfg)
	duration := time.Since(start)

	if err != nil {
		c.tracer.EndSpan(span, err)
		c.metrics.RecordCall(ctx, meta, duration, err)
		logger.Error(ctx, "llm.generate.error",
			observe.Field{Key: "error", Value: err.Error()},
		)
		return "", err
	}

	normalized := Normalize(raw)

	c.tracer.RecordOutput(span, normalized)
	c.tracer.EndSpan(span, nil)
	c.metrics.RecordCall(ctx, meta, duration, nil)

	return normalized, nil
}

// requestID pulls a caller-provided request id out of the prompt variables,
// falling back to a timestamp so log lines stay correlatable.
func requestID(vars map[string]any) string {
	if v, ok := vars["request_id"].(string); ok && v != "" {
		return v
	}
	return timeutil.UTCTimestamp()
}
