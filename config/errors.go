package config

import "errors"

var (
	// ErrMissingEnv indicates that a ${VAR} reference in a config file names
	// an environment variable that is not set.
	ErrMissingEnv = errors.New("config: missing required environment variables")
)
