// Package db is the query layer over the interview-integrity Postgres
// schema (sessions, anomalies, events, reports). It is hand-written rather
// than generated — the service runs five queries — but keeps the generated
// shape: a Queries struct over a DBTX, a Querier interface for stubbing, and
// WithTx for transaction-scoped use.
//
// Dependency rule: db imports nothing from internal/. Everything else
// imports db.
package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every query method works
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries executes the service's SQL against the provided DBTX.
type Queries struct {
	db DBTX
}

// New returns a Queries bound to db (a pool or a transaction).
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries scoped to tx. The receiver is unchanged.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}
