// Package store wraps db.Querier with transaction support and owns the one
// multi-step operation in the service: fetching a session's records,
// aggregating them, and persisting the resulting report atomically.
//
// Single-query reads (GetReportByID, etc.) should be called directly on
// db.Querier in handlers — there is no value in proxying them through this
// package.
//
// Dependency rule: store imports db, report, and anomaly only. It never
// imports api, vlm, explain, or email.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nyashahama/interview-integrity-backend/internal/db"
	"github.com/nyashahama/interview-integrity-backend/internal/report"
)

// Store holds a *sql.DB for starting transactions, a db.Querier for
// executing queries, and the aggregator that turns fetched rows into a
// report summary.
type Store struct {
	// pool is the raw connection pool, used only to begin transactions.
	pool *sql.DB

	// q is the Querier used for non-transactional calls. Handlers that hold
	// a *Store can also access it directly via store.Q() for single-query
	// reads.
	q db.Querier

	// agg builds the report summary from the fetched rows.
	agg *report.Aggregator
}

// New creates a Store from a live connection pool. The pool must already be
// open and verified (e.g. via PingContext) before calling New. A nil
// aggregator selects report.New(nil) — the default recommendation policy.
func New(pool *sql.DB, q db.Querier, agg *report.Aggregator) *Store {
	if agg == nil {
		agg = report.New(nil)
	}
	return &Store{pool: pool, q: q, agg: agg}
}

// Q exposes the underlying Querier so callers can run single-query reads
// without going through a store method.
//
//	rep, err := s.Q().GetReportByID(ctx, id)
func (s *Store) Q() db.Querier {
	return s.q
}

// txQuerier is a function that receives a transactional Querier and returns
// an error. Returning a non-nil error causes withTx to roll back
// automatically.
type txQuerier func(ctx context.Context, q db.Querier) error

// withTx begins a transaction, passes a Querier scoped to that transaction
// to fn, and commits on success or rolls back on any error (including
// panics). The connection is released on every path — commit, rollback, and
// re-panic — so a storage failure never leaks it.
//
// Serializable isolation keeps the session/anomaly/event reads and the
// report insert consistent with each other for the duration of one
// generation call.
func (s *Store) withTx(ctx context.Context, fn txQuerier) error {
	tx, err := s.pool.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}

	// Roll back on panic so the connection is never left in a broken state.
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p) // re-panic after rollback
		}
	}()

	txQ := s.q.(*db.Queries).WithTx(tx)

	if err := fn(ctx, txQ); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			// Wrap both errors so the caller sees both failure reasons.
			return fmt.Errorf("store: fn error: %w; rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit transaction: %w", err)
	}
	return nil
}
