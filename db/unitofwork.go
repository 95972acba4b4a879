package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UnitOfWork scopes a set of repository operations to one transaction. The
// transaction begins lazily on first use, so a unit of work that performs no
// writes never touches the database.
//
// A UnitOfWork is not safe for concurrent use; it belongs to one request.
type UnitOfWork struct {
	db   *sql.DB
	tx   *sql.Tx
	owns bool
	done bool
}

// NewUnitOfWork creates a unit of work that begins its own transaction on
// first use and owns its lifecycle.
func NewUnitOfWork(db *sql.DB) (*UnitOfWork, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	return &UnitOfWork{db: db, owns: true}, nil
}

// NewUnitOfWorkWithTx creates a unit of work over an injected transaction.
// The injector owns the transaction boundary: Commit and Rollback become
// no-ops, which lets tests run every unit of work inside one rolled-back
// transaction.
func NewUnitOfWorkWithTx(tx *sql.Tx) *UnitOfWork {
	return &UnitOfWork{tx: tx}
}

// Tx returns the active transaction, beginning one if needed.
func (u *UnitOfWork) Tx(ctx context.Context) (*sql.Tx, error) {
	if u.tx != nil {
		return u.tx, nil
	}
	if u.done {
		return nil, sql.ErrTxDone
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db: begin transaction: %w", err)
	}
	u.tx = tx
	return tx, nil
}

// Commit commits the owned transaction. Without an active owned transaction
// it is a no-op.
func (u *UnitOfWork) Commit() error {
	if u.tx == nil || !u.owns || u.done {
		return nil
	}
	u.done = true
	tx := u.tx
	u.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("db: commit: %w", err)
	}
	return nil
}

// Rollback rolls back the owned transaction. Idempotent; without an active
// owned transaction it is a no-op, so it is safe to defer unconditionally.
func (u *UnitOfWork) Rollback() error {
	if u.tx == nil || !u.owns || u.done {
		return nil
	}
	u.done = true
	tx := u.tx
	u.tx = nil
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("db: rollback: %w", err)
	}
	return nil
}

// WithinTx runs fn inside a transaction: commit on success, rollback on
// error or panic. Panics are re-raised after the rollback.
func WithinTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("db: rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("db: commit: %w", err)
	}
	return nil
}
