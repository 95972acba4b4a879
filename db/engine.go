package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Normalized driver names returned by DetectDriver. They match the names the
// corresponding database/sql drivers register under.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

const (
	defaultMaxOpenConns    = 20
	defaultMaxIdleConns    = 10
	defaultConnMaxLifetime = 30 * time.Minute
	defaultPingTimeout     = 5 * time.Second
)

// DetectDriver returns the normalized driver name for a URL-style DSN.
// Scheme prefixes map to the canonical name ("postgresql+asyncpg" is
// postgres, "mysql2" is mysql); an unrecognized scheme is returned as-is in
// lowercase, and a DSN with no scheme yields "".
func DetectDriver(dsn string) string {
	scheme, _, ok := strings.Cut(dsn, "://")
	if !ok {
		return ""
	}
	scheme = strings.ToLower(scheme)
	switch {
	case strings.HasPrefix(scheme, "postgres"):
		return DriverPostgres
	case strings.HasPrefix(scheme, "mysql"):
		return DriverMySQL
	case strings.HasPrefix(scheme, "sqlite"):
		return DriverSQLite
	}
	return scheme
}

// Config describes a database connection and its pool limits. Zero-valued
// pool fields fall back to defaults sized for a modest service instance.
type Config struct {
	// Driver names the database/sql driver. When empty it is detected from
	// the DSN scheme.
	Driver string `yaml:"driver" json:"driver"`

	// DSN is passed verbatim to sql.Open.
	DSN string `yaml:"dsn" json:"dsn"`

	MaxOpenConns    int           `yaml:"max_open_conns" json:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" json:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" json:"conn_max_idle_time"`

	// PingTimeout bounds the connectivity check performed by Open.
	PingTimeout time.Duration `yaml:"ping_timeout" json:"ping_timeout"`
}

// Open opens a connection pool, applies the pool limits, and verifies
// connectivity with a bounded ping. The handle is closed on ping failure so
// a misconfigured DSN cannot leak a pool.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, ErrEmptyDSN
	}

	driver := cfg.Driver
	if driver == "" {
		driver = DetectDriver(cfg.DSN)
	}
	if driver == "" {
		return nil, fmt.Errorf("%w: no driver configured and DSN has no scheme", ErrUnknownDriver)
	}

	handle, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		handle.SetMaxOpenConns(cfg.MaxOpenConns)
	} else {
		handle.SetMaxOpenConns(defaultMaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		handle.SetMaxIdleConns(cfg.MaxIdleConns)
	} else {
		handle.SetMaxIdleConns(defaultMaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		handle.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		handle.SetConnMaxLifetime(defaultConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		handle.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := handle.PingContext(pingCtx); err != nil {
		handle.Close()
		return nil, fmt.Errorf("db: ping %s: %w", driver, err)
	}
	return handle, nil
}
