package db

import (
	"context"

	"github.com/google/uuid"
)

// Querier is the query interface handlers and the store depend on.
// *Queries is the live implementation; tests provide stubs.
type Querier interface {
	// GetSessionByID loads a session with its candidate/interviewer names.
	// Returns sql.ErrNoRows when the session does not exist.
	GetSessionByID(ctx context.Context, id uuid.UUID) (GetSessionByIDRow, error)

	// ListAnomaliesBySession returns the session's anomaly records in
	// ascending detection-time order.
	ListAnomaliesBySession(ctx context.Context, sessionID uuid.UUID) ([]Anomaly, error)

	// GetEventSummary returns the event count and first/last event timestamps
	// for the session. A session with no events yields count 0, not an error.
	GetEventSummary(ctx context.Context, sessionID uuid.UUID) (GetEventSummaryRow, error)

	// InsertReport writes one report row and returns it with the
	// store-assigned id and generation timestamp.
	InsertReport(ctx context.Context, p InsertReportParams) (Report, error)

	// GetReportByID loads a stored report. Returns sql.ErrNoRows when absent.
	GetReportByID(ctx context.Context, id uuid.UUID) (Report, error)
}

var _ Querier = (*Queries)(nil)
