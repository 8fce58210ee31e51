// Package repository implements the repository pattern for the teaching
// schema. A single generic implementation provides CRUD for every entity;
// per-entity descriptors bind it to one table, and concrete repositories
// specialize it with entity-specific queries.
package repository

import (
	"context"
	"database/sql"
)

// Querier is an interface that can execute queries.
// *sql.DB, *sql.Conn, *sql.Tx, and *database.Session all implement it.
// Repositories only ever hold a Querier; opening, committing, and rolling
// back transactions belongs to the session, never to a repository.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
