package health

import (
	"context"
	"time"
)

// Status represents the health of a component.
type Status int

const (
	// StatusHealthy indicates the component is functioning normally.
	StatusHealthy Status = iota
	// StatusDegraded indicates the component works but with issues.
	StatusDegraded
	// StatusUnhealthy indicates the component is not functioning.
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result is the outcome of one health check.
type Result struct {
	Status    Status
	Message   string
	Details   map[string]any
	Duration  time.Duration
	Timestamp time.Time
	Error     error
}

// Healthy creates a healthy result.
func Healthy(message string) Result {
	return Result{Status: StatusHealthy, Message: message, Timestamp: time.Now()}
}

// Degraded creates a degraded result.
func Degraded(message string) Result {
	return Result{Status: StatusDegraded, Message: message, Timestamp: time.Now()}
}

// Unhealthy creates an unhealthy result carrying the causing error.
func Unhealthy(message string, err error) Result {
	return Result{Status: StatusUnhealthy, Message: message, Error: err, Timestamp: time.Now()}
}

// WithDetails attaches metadata to a result.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// Checker reports the health of one component.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Check must return promptly once ctx is done.
// - Errors: failures are reported in Result.Error, never panicked.
type Checker interface {
	// Name identifies the component, unique within an Aggregator.
	Name() string

	// Check performs the health check.
	Check(ctx context.Context) Result
}

// NewChecker adapts a plain function into a named Checker.
func NewChecker(name string, fn func(context.Context) Result) Checker {
	return &funcChecker{name: name, fn: fn}
}

type funcChecker struct {
	name string
	fn   func(context.Context) Result
}

func (c *funcChecker) Name() string                      { return c.name }
func (c *funcChecker) Check(ctx context.Context) Result { return c.fn(ctx) }
