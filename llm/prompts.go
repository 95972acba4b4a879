package llm

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"
)

// PromptLoader loads prompt templates from YAML files in a base directory.
// A prompt named "match_job" lives in "<baseDir>/match_job.yaml" and must
// carry a top-level "template" key.
//
// Loaded templates are memoized; concurrent loads of the same prompt are
// deduplicated so a cold start does not hit the filesystem once per caller.
type PromptLoader struct {
	baseDir string
	ttl     time.Duration

	mu    sync.RWMutex
	cache map[string]promptEntry
	group singleflight.Group
}

type promptEntry struct {
	template  string
	expiresAt time.Time
}

// PromptOption configures a PromptLoader.
type PromptOption func(*PromptLoader)

// WithCacheTTL sets an expiry on memoized templates. The default is to cache
// forever, which matches immutable prompt files baked into a deploy. Use a
// TTL when prompts are edited in place.
func WithCacheTTL(ttl time.Duration) PromptOption {
	return func(l *PromptLoader) {
		l.ttl = ttl
	}
}

// NewPromptLoader creates a loader rooted at baseDir.
func NewPromptLoader(baseDir string, opts ...PromptOption) *PromptLoader {
	l := &PromptLoader{
		baseDir: baseDir,
		cache:   make(map[string]promptEntry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the template string for the named prompt.
func (l *PromptLoader) Load(name string) (string, error) {
	l.mu.RLock()
	entry, ok := l.cache[name]
	l.mu.RUnlock()

	if ok && (entry.expiresAt.IsZero() || time.Now().Before(entry.expiresAt)) {
		return entry.template, nil
	}

	v, err, _ := l.group.Do(name, func() (any, error) {
		template, err := l.read(name)
		if err != nil {
			return nil, err
		}

		e := promptEntry{template: template}
		if l.ttl > 0 {
			e.expiresAt = time.Now().Add(l.ttl)
		}

		l.mu.Lock()
		l.cache[name] = e
		l.mu.Unlock()

		return template, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops a memoized template. Idempotent.
func (l *PromptLoader) Invalidate(name string) {
	l.mu.Lock()
	delete(l.cache, name)
	l.mu.Unlock()
}

func (l *PromptLoader) read(name string) (string, error) {
	path := filepath.Join(l.baseDir, name+".yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("llm: read prompt %q: %w", name, err)
	}

	var doc struct {
		Template string `yaml:"template"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("llm: parse prompt %q: %w", name, err)
	}
	if doc.Template == "" {
		return "", fmt.Errorf("%w: %q in %s", ErrMissingTemplate, name, path)
	}
	return doc.Template, nil
}
