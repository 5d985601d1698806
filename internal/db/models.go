package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// GetSessionByIDRow is the session row joined with the candidate and
// interviewer display names. Both timestamps are nullable: a session with no
// ended_at is in progress (or was never closed), and the report core treats
// the missing-timestamp case as duration 0 rather than an error.
type GetSessionByIDRow struct {
	ID              uuid.UUID
	CandidateID     uuid.NullUUID
	InterviewerID   uuid.NullUUID
	StartedAt       sql.NullTime
	EndedAt         sql.NullTime
	CreatedAt       time.Time
	CandidateName   sql.NullString
	InterviewerName sql.NullString
}

// Anomaly is one row of the anomalies table. Rows are written by the
// upstream detection subsystem and are read-only here. Metrics is a JSONB
// blob whose shape depends on AnomalyType.
type Anomaly struct {
	ID          uuid.UUID
	SessionID   uuid.UUID
	AnomalyType string
	Severity    string
	Description string
	DetectedAt  time.Time
	Metrics     pqtype.NullRawMessage
}

// GetEventSummaryRow is the per-session event aggregate. FirstEvent and
// LastEvent are NULL when the session has no events (COUNT is then 0).
type GetEventSummaryRow struct {
	EventCount int64
	FirstEvent sql.NullTime
	LastEvent  sql.NullTime
}

// Report is one row of the reports table. Rows are created exactly once per
// report-generation call and are immutable thereafter.
type Report struct {
	ID          uuid.UUID
	SessionID   uuid.UUID
	GeneratedAt time.Time
	VlmSummary  string
	Metrics     pqtype.NullRawMessage
	ReportType  string
}
