package db

import (
	"context"

	"github.com/google/uuid"
)

const getSessionByID = `
SELECT s.id, s.candidate_id, s.interviewer_id, s.started_at, s.ended_at, s.created_at,
       c.full_name AS candidate_name,
       u.full_name AS interviewer_name
FROM sessions s
LEFT JOIN candidates c ON s.candidate_id = c.id
LEFT JOIN users u ON s.interviewer_id = u.id
WHERE s.id = $1
`

func (q *Queries) GetSessionByID(ctx context.Context, id uuid.UUID) (GetSessionByIDRow, error) {
	var row GetSessionByIDRow
	err := q.db.QueryRowContext(ctx, getSessionByID, id).Scan(
		&row.ID,
		&row.CandidateID,
		&row.InterviewerID,
		&row.StartedAt,
		&row.EndedAt,
		&row.CreatedAt,
		&row.CandidateName,
		&row.InterviewerName,
	)
	return row, err
}

const listAnomaliesBySession = `
SELECT id, session_id, anomaly_type, severity, description, detected_at, metrics
FROM anomalies
WHERE session_id = $1
ORDER BY detected_at ASC
`

func (q *Queries) ListAnomaliesBySession(ctx context.Context, sessionID uuid.UUID) ([]Anomaly, error) {
	rows, err := q.db.QueryContext(ctx, listAnomaliesBySession, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Anomaly
	for rows.Next() {
		var a Anomaly
		if err := rows.Scan(
			&a.ID,
			&a.SessionID,
			&a.AnomalyType,
			&a.Severity,
			&a.Description,
			&a.DetectedAt,
			&a.Metrics,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

const getEventSummary = `
SELECT COUNT(*)       AS event_count,
       MIN(timestamp) AS first_event,
       MAX(timestamp) AS last_event
FROM events
WHERE session_id = $1
`

func (q *Queries) GetEventSummary(ctx context.Context, sessionID uuid.UUID) (GetEventSummaryRow, error) {
	var row GetEventSummaryRow
	err := q.db.QueryRowContext(ctx, getEventSummary, sessionID).Scan(
		&row.EventCount,
		&row.FirstEvent,
		&row.LastEvent,
	)
	return row, err
}

const insertReport = `
INSERT INTO reports (session_id, generated_at, vlm_summary, metrics, report_type)
VALUES ($1, NOW(), $2, $3, $4)
RETURNING id, session_id, generated_at, vlm_summary, metrics, report_type
`

// InsertReportParams is everything the caller supplies for one report row;
// the id and generation timestamp come from the database.
type InsertReportParams struct {
	SessionID  uuid.UUID
	VlmSummary string
	Metrics    []byte // JSON snapshot; stored as JSONB
	ReportType string
}

func (q *Queries) InsertReport(ctx context.Context, p InsertReportParams) (Report, error) {
	var r Report
	err := q.db.QueryRowContext(ctx, insertReport,
		p.SessionID,
		p.VlmSummary,
		p.Metrics,
		p.ReportType,
	).Scan(
		&r.ID,
		&r.SessionID,
		&r.GeneratedAt,
		&r.VlmSummary,
		&r.Metrics,
		&r.ReportType,
	)
	return r, err
}

const getReportByID = `
SELECT id, session_id, generated_at, vlm_summary, metrics, report_type
FROM reports
WHERE id = $1
`

func (q *Queries) GetReportByID(ctx context.Context, id uuid.UUID) (Report, error) {
	var r Report
	err := q.db.QueryRowContext(ctx, getReportByID, id).Scan(
		&r.ID,
		&r.SessionID,
		&r.GeneratedAt,
		&r.VlmSummary,
		&r.Metrics,
		&r.ReportType,
	)
	return r, err
}
