package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"
	"testing"
)

// stubDriver is a minimal database/sql driver that records transaction
// lifecycle events, keyed by DSN so tests stay independent.

type stubState struct {
	mu        sync.Mutex
	begins    int
	commits   int
	rollbacks int
	pingErr   error
}

func (s *stubState) counts() (begins, commits, rollbacks int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.begins, s.commits, s.rollbacks
}

var (
	stubMu     sync.Mutex
	stubStates = map[string]*stubState{}
)

func init() {
	sql.Register("phoenixstub", stubDriver{})
}

// registerStub returns a DSN unique to the test and its recording state.
func registerStub(t *testing.T, pingErr error) (string, *stubState) {
	t.Helper()
	dsn := "stub://" + t.Name()
	state := &stubState{pingErr: pingErr}

	stubMu.Lock()
	stubStates[dsn] = state
	stubMu.Unlock()

	t.Cleanup(func() {
		stubMu.Lock()
		delete(stubStates, dsn)
		stubMu.Unlock()
	})
	return dsn, state
}

type stubDriver struct{}

func (stubDriver) Open(dsn string) (driver.Conn, error) {
	stubMu.Lock()
	state := stubStates[dsn]
	stubMu.Unlock()
	if state == nil {
		return nil, fmt.Errorf("stub: unknown dsn %q", dsn)
	}
	return &stubConn{state: state}, nil
}

type stubConn struct{ state *stubState }

func (c *stubConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("stub: statements not supported")
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	c.state.mu.Lock()
	c.state.begins++
	c.state.mu.Unlock()
	return &stubTx{state: c.state}, nil
}

func (c *stubConn) Ping(ctx context.Context) error { return c.state.pingErr }

type stubTx struct{ state *stubState }

func (t *stubTx) Commit() error {
	t.state.mu.Lock()
	t.state.commits++
	t.state.mu.Unlock()
	return nil
}

func (t *stubTx) Rollback() error {
	t.state.mu.Lock()
	t.state.rollbacks++
	t.state.mu.Unlock()
	return nil
}
