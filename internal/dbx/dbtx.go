// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by *sql.DB, *sql.Conn and *sql.Tx,
// a helper that scopes one pooled connection to a single store round trip,
// and mapping of driver errors to repository-level errors.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
// *sql.DB, *sql.Conn and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithConn takes one connection from the pool, runs fn with it and returns
// the connection to the pool when fn returns, whatever the outcome.
//
// Pool exhaustion surfaces as a context error once ctx expires, so callers
// should always pass a context with a deadline.
func WithConn(ctx context.Context, db *sql.DB, fn func(ctx context.Context, conn DBTX) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return MapDBErr(err)
	}
	defer conn.Close()

	return fn(ctx, conn)
}
