package llm

// DefaultModel is used when a Config does not name a model.
const DefaultModel = "openai/gpt-4o-mini"

// Config is the model configuration for a specific use case.
type Config struct {
	// Model is the provider-qualified model string
	// (e.g. "openai/gpt-4o-mini", "anthropic/claude-3-5-sonnet").
	Model string `yaml:"model" json:"model"`

	// Params holds additional model parameters
	// (temperature, max_tokens, thinking_level, etc.).
	Params map[string]any `yaml:"params" json:"params"`
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	return c
}
