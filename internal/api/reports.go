package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nyashahama/interview-integrity-backend/internal/email"
	"github.com/nyashahama/interview-integrity-backend/internal/report"
	"github.com/nyashahama/interview-integrity-backend/internal/store"
)

// ─── POST /generate_report ───────────────────────────────────────────────────

type generateReportRequest struct {
	SessionID string `json:"session_id"`
}

type generateReportResponse struct {
	ReportID    string         `json:"report_id"`
	SessionID   string         `json:"session_id"`
	GeneratedAt string         `json:"generated_at"`
	Summary     report.Summary `json:"summary"`
}

// handleGenerateReport runs the full post-session pipeline synchronously:
// fetch, aggregate, persist, respond. There is no queue and no retry; a
// failure surfaces directly in the response so the caller can re-invoke.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req generateReportRequest
	if !decode(w, r, &req) {
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid session_id")
		return
	}

	generated, err := s.reports.GenerateReport(r.Context(), sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		respondErr(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		s.logger.Error("report generation failed",
			"error", err,
			"session_id", sessionID,
		)
		respondErr(w, http.StatusInternalServerError,
			fmt.Sprintf("Report generation failed: %s", err))
		return
	}

	s.notifyReportReady(r, generated)

	respond(w, http.StatusOK, generateReportResponse{
		ReportID:    generated.ReportID.String(),
		SessionID:   generated.SessionID.String(),
		GeneratedAt: generated.GeneratedAt.UTC().Format(time.RFC3339),
		Summary:     generated.Summary,
	})
}

// notifyReportReady sends the report-ready email when notifications are
// configured. Delivery runs against a detached context with its own timeout
// so a slow mail API cannot hold the response, and failure is logged only.
func (s *Server) notifyReportReady(r *http.Request, g store.GeneratedReport) {
	if s.mailer == nil || s.cfg.NotifyAddr == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 20*time.Second)
	defer cancel()

	candidateName := ""
	if session, err := s.q.GetSessionByID(ctx, g.SessionID); err == nil {
		candidateName = session.CandidateName.String
	}

	err := s.mailer.SendReportReady(ctx, email.ReportReadyParams{
		To:            s.cfg.NotifyAddr,
		CandidateName: candidateName,
		ReportID:      g.ReportID,
		SessionID:     g.SessionID,
		HighSeverity:  g.Summary.Metrics.HighSeverityCount,
	})
	s.logAndIgnoreEmailErr(r, err, "report ready notification")
}

// ─── GET /report/{reportID} ──────────────────────────────────────────────────

type storedReportResponse struct {
	ReportID    string          `json:"report_id"`
	SessionID   string          `json:"session_id"`
	GeneratedAt string          `json:"generated_at"`
	Summary     string          `json:"summary"`
	Metrics     json.RawMessage `json:"metrics"`
	ReportType  string          `json:"report_type"`
}

// handleGetReport serves a previously stored report row verbatim. The
// metrics column is returned as-is — it was serialised from the metrics
// snapshot at generation time and is immutable.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	reportID, err := uuid.Parse(chi.URLParam(r, "reportID"))
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid report id")
		return
	}

	row, err := s.q.GetReportByID(r.Context(), reportID)
	if errors.Is(err, sql.ErrNoRows) {
		respondErr(w, http.StatusNotFound, "Report not found")
		return
	}
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("get report: %w", err))
		return
	}

	metrics := json.RawMessage("null")
	if row.Metrics.Valid {
		metrics = row.Metrics.RawMessage
	}

	respond(w, http.StatusOK, storedReportResponse{
		ReportID:    row.ID.String(),
		SessionID:   row.SessionID.String(),
		GeneratedAt: row.GeneratedAt.UTC().Format(time.RFC3339),
		Summary:     row.VlmSummary,
		Metrics:     metrics,
		ReportType:  row.ReportType,
	})
}
