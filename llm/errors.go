package llm

import "errors"

var (
	// ErrNilInvoker indicates a Client was constructed without an Invoker.
	ErrNilInvoker = errors.New("llm: invoker is nil")

	// ErrNilPromptLoader indicates a Client was constructed without a PromptLoader.
	ErrNilPromptLoader = errors.New("llm: prompt loader is nil")

	// ErrMissingTemplate indicates a prompt file exists but has no usable
	// "template" key.
	ErrMissingTemplate = errors.New("llm: prompt template missing")
)
