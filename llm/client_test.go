package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/phoenix-platform/phoenixlib/observe"
)

func newTestLoader(t *testing.T, prompts map[string]string) *PromptLoader {
	t.Helper()
	dir := t.TempDir()
	for name, tmpl := range prompts {
		writePrompt(t, dir, name, "template: |\n  "+tmpl+"\n")
	}
	return NewPromptLoader(dir)
}

// TestNewClient_Validation verifies constructor sentinel errors.
func TestNewClient_Validation(t *testing.T) {
	loader := newTestLoader(t, nil)
	invoker := InvokerFunc(func(ctx context.Context, prompt string, cfg Config) (any, error) {
		return "", nil
	})

	if _, err := NewClient(nil, Config{}, invoker); !errors.Is(err, ErrNilPromptLoader) {
		t.Errorf("expected ErrNilPromptLoader, got %v", err)
	}
	if _, err := NewClient(loader, Config{}, nil); !errors.Is(err, ErrNilInvoker) {
		t.Errorf("expected ErrNilInvoker, got %v", err)
	}
	if _, err := NewClient(loader, Config{}, invoker); err != nil {
		t.Errorf("expected valid client, got %v", err)
	}
}

// TestClient_RenderPrompt verifies template rendering and missing-variable
// failures.
func TestClient_RenderPrompt(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"greet": "Hello {{.name}}, welcome to {{.place}}.",
	})
	client, err := NewClient(loader, Config{}, InvokerFunc(func(ctx context.Context, prompt string, cfg Config) (any, error) {
		return "", nil
	}))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	got, err := client.RenderPrompt("greet", map[string]any{"name": "Ada", "place": "Phoenix"})
	if err != nil {
		t.Fatalf("RenderPrompt: %v", err)
	}
	if !strings.Contains(got, "Hello Ada, welcome to Phoenix.") {
		t.Errorf("unexpected render %q", got)
	}

	if _, err := client.RenderPrompt("greet", map[string]any{"name": "Ada"}); err == nil {
		t.Error("expected error for missing variable")
	}

	if _, err := client.RenderPrompt("missing", nil); err == nil {
		t.Error("expected error for unknown prompt")
	}
}

// TestClient_Generate verifies the full path: render, invoke, normalize.
func TestClient_Generate(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"summarize": "Summarize: {{.text}}",
	})

	var seenPrompt string
	var seenCfg Config
	invoker := InvokerFunc(func(ctx context.Context, prompt string, cfg Config) (any, error) {
		seenPrompt = prompt
		seenCfg = cfg
		return withContent{Content: "```json\n{\"summary\": \"ok\"}\n```"}, nil
	})

	client, err := NewClient(loader, Config{}, invoker)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	got, err := client.Generate(context.Background(), "summarize", map[string]any{"text": "a long document"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != `{"summary": "ok"}` {
		t.Errorf("expected normalized fence-stripped output, got %q", got)
	}
	if !strings.Contains(seenPrompt, "Summarize: a long document") {
		t.Errorf("invoker saw wrong prompt %q", seenPrompt)
	}
	if seenCfg.Model != DefaultModel {
		t.Errorf("expected default model, got %q", seenCfg.Model)
	}
}

// TestClient_Generate_CallOptions verifies per-call model overrides.
func TestClient_Generate_CallOptions(t *testing.T) {
	loader := newTestLoader(t, map[string]string{"p": "static"})

	var seenCfg Config
	invoker := InvokerFunc(func(ctx context.Context, prompt string, cfg Config) (any, error) {
		seenCfg = cfg
		return "ok", nil
	})

	defaults := Config{Model: "openai/gpt-4o", Params: map[string]any{"temperature": 0.2}}
	client, err := NewClient(loader, defaults, invoker)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.Generate(context.Background(), "p", nil, WithModel("anthropic/claude-sonnet")); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if seenCfg.Model != "anthropic/claude-sonnet" {
		t.Errorf("expected overridden model, got %q", seenCfg.Model)
	}
	if len(seenCfg.Params) != 0 {
		t.Errorf("expected WithModel to drop default params, got %v", seenCfg.Params)
	}

	override := Config{Model: "local/llama", Params: map[string]any{"max_tokens": 64}}
	if _, err := client.Generate(context.Background(), "p", nil, WithConfig(override)); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if seenCfg.Model != "local/llama" || seenCfg.Params["max_tokens"] != 64 {
		t.Errorf("expected full config override, got %+v", seenCfg)
	}
}

// TestClient_Generate_InvokerError verifies provider errors pass through
// unwrapped.
func TestClient_Generate_InvokerError(t *testing.T) {
	loader := newTestLoader(t, map[string]string{"p": "static"})
	boom := errors.New("provider unavailable")

	client, err := NewClient(loader, Config{}, InvokerFunc(func(ctx context.Context, prompt string, cfg Config) (any, error) {
		return nil, boom
	}))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	out, err := client.Generate(context.Background(), "p", nil)
	if !errors.Is(err, boom) {
		t.Errorf("expected invoker error, got %v", err)
	}
	if out != "" {
		t.Errorf("expected empty output on error, got %q", out)
	}
}

// TestClient_Generate_Logs verifies call logging carries prompt metadata and
// a request id, with failures logged at error level.
func TestClient_Generate_Logs(t *testing.T) {
	loader := newTestLoader(t, map[string]string{"p": "static"})

	var buf bytes.Buffer
	client, err := NewClient(loader, Config{}, InvokerFunc(func(ctx context.Context, prompt string, cfg Config) (any, error) {
		return nil, errors.New("boom")
	}),
		WithServiceName("watcher"),
		WithLogger(observe.NewLoggerWithWriter("info", &buf)),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	client.Generate(context.Background(), "p", map[string]any{"request_id": "req-123"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}

	var start, fail map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &start); err != nil {
		t.Fatalf("parse start line: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &fail); err != nil {
		t.Fatalf("parse error line: %v", err)
	}

	if start["msg"] != "llm.generate" || start["request_id"] != "req-123" {
		t.Errorf("unexpected start entry %v", start)
	}
	if start["llm.prompt"] != "p" || start["llm.service"] != "watcher" {
		t.Errorf("expected call metadata on start entry, got %v", start)
	}
	if fail["msg"] != "llm.generate.error" || fail["level"] != "error" {
		t.Errorf("unexpected error entry %v", fail)
	}
}

// TestConfig_Defaults verifies the zero config picks up the default model.
func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.Model != DefaultModel {
		t.Errorf("expected %q, got %q", DefaultModel, cfg.Model)
	}

	custom := Config{Model: "x"}.withDefaults()
	if custom.Model != "x" {
		t.Errorf("expected model preserved, got %q", custom.Model)
	}
}
