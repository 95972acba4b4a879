package health

import (
	"context"
	"database/sql"
)

// DatabaseChecker reports database connectivity and pool pressure.
type DatabaseChecker struct {
	name   string
	handle *sql.DB
}

// NewDatabaseChecker creates a checker over an open database handle.
func NewDatabaseChecker(name string, handle *sql.DB) *DatabaseChecker {
	return &DatabaseChecker{name: name, handle: handle}
}

// Name returns the component name.
func (d *DatabaseChecker) Name() string { return d.name }

// Check pings the database within the caller's deadline. A pool running at
// its open-connection limit reports degraded even when reachable.
func (d *DatabaseChecker) Check(ctx context.Context) Result {
	if d.handle == nil {
		return Unhealthy("database handle not configured", ErrCheckFailed)
	}

	if err := d.handle.PingContext(ctx); err != nil {
		return Unhealthy("database unreachable", err)
	}

	stats := d.handle.Stats()
	details := map[string]any{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
		"wait_duration":    stats.WaitDuration.String(),
	}

	if stats.MaxOpenConnections > 0 && stats.OpenConnections >= stats.MaxOpenConnections {
		return Degraded("connection pool exhausted").WithDetails(details)
	}
	return Healthy("database reachable").WithDetails(details)
}

var _ Checker = (*DatabaseChecker)(nil)
