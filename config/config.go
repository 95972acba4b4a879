package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phoenix-platform/phoenixlib/observe"
)

// ConfigPathEnvVar names the environment variable that overrides all config
// path resolution.
const ConfigPathEnvVar = "APP_CONFIG_PATH"

// Options controls where Load looks for a config file.
type Options struct {
	// LocalPath is the development config location, relative to the service
	// working directory (e.g. "config/config.yaml").
	LocalPath string

	// DockerPath is the containerized config location (e.g.
	// "/app/config/config.yaml"). It is preferred over LocalPath when the
	// file exists.
	DockerPath string

	// Logger receives load diagnostics. Defaults to a no-op logger.
	Logger observe.Logger
}

// Load reads YAML configuration from the first available source, in order:
//
//  1. the path in the APP_CONFIG_PATH environment variable
//  2. DockerPath, if it exists
//  3. LocalPath
//
// Load is best-effort: a missing, empty, or malformed file yields an empty
// map so the calling service can fall back to its defaults.
func Load(opts Options) map[string]any {
	logger := opts.Logger
	if logger == nil {
		logger = observe.NewNoopLogger()
	}
	ctx := context.Background()

	path := resolvePath(opts)
	if path == "" {
		logger.Debug(ctx, "config file not found, using defaults")
		return map[string]any{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error(ctx, "config file unreadable",
			observe.Field{Key: "path", Value: path},
			observe.Field{Key: "error", Value: err.Error()},
		)
		return map[string]any{}
	}

	var cfg map[string]any
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error(ctx, "config file malformed",
			observe.Field{Key: "path", Value: path},
			observe.Field{Key: "error", Value: err.Error()},
		)
		return map[string]any{}
	}
	if cfg == nil {
		return map[string]any{}
	}

	logger.Info(ctx, "configuration loaded",
		observe.Field{Key: "path", Value: path},
	)
	return cfg
}

func resolvePath(opts Options) string {
	if env := os.Getenv(ConfigPathEnvVar); env != "" {
		if fileExists(env) {
			return env
		}
		return ""
	}
	if opts.DockerPath != "" && fileExists(opts.DockerPath) {
		return opts.DockerPath
	}
	if opts.LocalPath != "" && fileExists(opts.LocalPath) {
		return opts.LocalPath
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadInto strictly decodes the YAML file at path into out, expanding
// environment variable references first. Unlike Load, every failure is an
// error: a service that names a config file explicitly wants to know when it
// cannot be used.
func LoadInto(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	expanded, err := ExpandEnvStrict(string(data))
	if err != nil {
		return fmt.Errorf("config: expand %s: %w", path, err)
	}

	if err := yaml.Unmarshal([]byte(expanded), out); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}
