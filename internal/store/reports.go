package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nyashahama/interview-integrity-backend/internal/anomaly"
	"github.com/nyashahama/interview-integrity-backend/internal/db"
	"github.com/nyashahama/interview-integrity-backend/internal/report"
)

// ─── ERRORS ──────────────────────────────────────────────────────────────────

// ErrSessionNotFound is returned by GenerateReport when the referenced
// session does not exist. The handler maps it to a 404; no aggregation or
// insert happens on this path.
var ErrSessionNotFound = errors.New("store: session not found")

// ─── OUTPUT TYPE ─────────────────────────────────────────────────────────────

// GeneratedReport is everything a successful generation call produces: the
// stored row's identity plus the full in-memory summary, so the handler can
// respond without re-reading the row it just wrote.
type GeneratedReport struct {
	ReportID    uuid.UUID
	SessionID   uuid.UUID
	GeneratedAt time.Time
	Summary     report.Summary
}

// ─── METHODS ─────────────────────────────────────────────────────────────────

// GenerateReport runs the whole fetch→aggregate→persist sequence for one
// session inside a single transaction:
//
//  1. Load the session (absence → ErrSessionNotFound, nothing else runs).
//  2. Load the anomaly records, ascending by detection time.
//  3. Load the event summary.
//  4. Aggregate into the report summary.
//  5. Insert the report row with the metrics snapshot.
//
// If any step fails the transaction rolls back — a failed call never leaves
// a partial report observable. There are no retries; a storage failure is
// terminal for the request.
func (s *Store) GenerateReport(ctx context.Context, sessionID uuid.UUID) (GeneratedReport, error) {
	var out GeneratedReport

	err := s.withTx(ctx, func(ctx context.Context, q db.Querier) error {
		// 1. Session existence gates everything.
		session, err := q.GetSessionByID(ctx, sessionID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("GenerateReport: get session: %w", err)
		}

		// 2. Anomalies, already ordered ascending by detected_at.
		anomalies, err := q.ListAnomaliesBySession(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("GenerateReport: list anomalies: %w", err)
		}

		// 3. Event summary.
		events, err := q.GetEventSummary(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("GenerateReport: get event summary: %w", err)
		}

		// 4. Aggregate. Pure computation — cannot fail.
		summary := s.agg.Aggregate(
			toReportSession(session),
			toReportAnomalies(anomalies),
			report.EventSummary{
				EventCount: events.EventCount,
				FirstEvent: nullTimePtr(events.FirstEvent),
				LastEvent:  nullTimePtr(events.LastEvent),
			},
		)

		// 5. Persist. The metrics snapshot is serialised here so the stored
		//    row is consistent with the summary returned to the caller.
		metricsJSON, err := json.Marshal(summary.Metrics)
		if err != nil {
			return fmt.Errorf("GenerateReport: marshal metrics: %w", err)
		}

		row, err := q.InsertReport(ctx, db.InsertReportParams{
			SessionID:  sessionID,
			VlmSummary: summary.Summary,
			Metrics:    metricsJSON,
			ReportType: "standard",
		})
		if err != nil {
			return fmt.Errorf("GenerateReport: insert report: %w", err)
		}

		out = GeneratedReport{
			ReportID:    row.ID,
			SessionID:   row.SessionID,
			GeneratedAt: row.GeneratedAt,
			Summary:     summary,
		}
		return nil
	})

	// Unwrap the sentinel so callers can check with errors.Is without
	// looking inside a wrapped chain.
	if errors.Is(err, ErrSessionNotFound) {
		return GeneratedReport{}, ErrSessionNotFound
	}
	if err != nil {
		return GeneratedReport{}, err
	}

	return out, nil
}

// ─── ROW MAPPING ─────────────────────────────────────────────────────────────
// The report package takes plain structs so it stays testable without the
// db package; these helpers do the translation.

func toReportSession(row db.GetSessionByIDRow) report.Session {
	return report.Session{
		StartedAt: nullTimePtr(row.StartedAt),
		EndedAt:   nullTimePtr(row.EndedAt),
	}
}

func toReportAnomalies(rows []db.Anomaly) []report.Anomaly {
	out := make([]report.Anomaly, len(rows))
	for i, a := range rows {
		var metrics json.RawMessage
		if a.Metrics.Valid {
			metrics = a.Metrics.RawMessage
		}
		out[i] = report.Anomaly{
			Type:        a.AnomalyType,
			Severity:    anomaly.ParseSeverity(a.Severity),
			Description: a.Description,
			DetectedAt:  a.DetectedAt,
			Metrics:     metrics,
		}
	}
	return out
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
