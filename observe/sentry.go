package observe

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryConfig configures error-reporting initialization.
type SentryConfig struct {
	// DSN is the Sentry project DSN. Empty DSN skips initialization.
	DSN string

	// ServiceName tags every event with the reporting service.
	ServiceName string

	// Environment is the deployment environment (production, staging,
	// development). Defaults to "production".
	Environment string

	// Release is the release version identifier (optional).
	Release string

	// TracesSampleRate is the fraction of transactions to sample (0.0-1.0).
	TracesSampleRate float64

	// ProfilesSampleRate is the fraction of profiles to sample (0.0-1.0).
	ProfilesSampleRate float64

	// Enabled set to false disables Sentry even when a DSN is provided.
	Enabled bool
}

// InitSentry initializes the Sentry SDK for a service.
//
// Privacy-safe defaults are applied: SendDefaultPII=false and
// AttachStacktrace=true. A falsy DSN or Enabled=false makes the call a
// no-op, so services can ship the same wiring in every environment.
func InitSentry(cfg SentryConfig) error {
	if cfg.DSN == "" || !cfg.Enabled {
		return nil
	}

	environment := cfg.Environment
	if environment == "" {
		environment = "production"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:                cfg.DSN,
		Environment:        environment,
		Release:            cfg.Release,
		TracesSampleRate:   cfg.TracesSampleRate,
		ProfilesSampleRate: cfg.ProfilesSampleRate,
		SendDefaultPII:     false,
		AttachStacktrace:   true,
	})
	if err != nil {
		return fmt.Errorf("observe: sentry init: %w", err)
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("service", cfg.ServiceName)
	})

	return nil
}

// FlushSentry drains buffered events, waiting at most timeout. Safe to call
// even when InitSentry was skipped.
func FlushSentry(timeout time.Duration) {
	sentry.Flush(timeout)
}
