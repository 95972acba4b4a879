package db

import "errors"

var (
	// ErrEmptyDSN indicates Open was called without a connection string.
	ErrEmptyDSN = errors.New("db: empty DSN")

	// ErrUnknownDriver indicates the driver could not be determined from the
	// configuration or the DSN scheme.
	ErrUnknownDriver = errors.New("db: unknown driver")

	// ErrNilDB indicates a unit of work was constructed without a handle.
	ErrNilDB = errors.New("db: nil database handle")
)
