// Package api implements the HTTP layer for the post-session report service.
// Handlers are methods on *Server. Each handler file is responsible for one
// resource group and only imports the dependencies it actually uses.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/nyashahama/interview-integrity-backend/internal/db"
	"github.com/nyashahama/interview-integrity-backend/internal/email"
	"github.com/nyashahama/interview-integrity-backend/internal/explain"
	"github.com/nyashahama/interview-integrity-backend/internal/store"
	"github.com/nyashahama/interview-integrity-backend/internal/vlm"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// BaseURL is used to construct the report link in notification emails.
	// e.g. "https://app.interview-integrity.io"
	BaseURL string

	// NotifyAddr is the recipient for report-ready emails. Empty disables
	// notifications.
	NotifyAddr string

	// Env is "production", "staging", or "development".
	Env string
}

// ReportGenerator runs the full fetch, aggregate, and persist sequence for
// one session. *store.Store is the live implementation; tests use a stub.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, sessionID uuid.UUID) (store.GeneratedReport, error)
}

// Server holds all shared dependencies. Each handler file attaches methods to
// this type and uses only the fields it needs.
type Server struct {
	// q handles all single-query reads. Injected directly — no repo wrapper.
	q db.Querier

	// reports runs the atomic report-generation transaction.
	reports ReportGenerator

	// formatter renders per-anomaly explanations.
	formatter *explain.Formatter

	// vlm answers scene-description and VQA requests.
	vlm vlm.Model

	// mailer sends the report-ready notification. May be nil when
	// notifications are not configured.
	mailer email.Sender

	cfg    Config
	logger *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to http.ListenAndServe.
func NewServer(
	q db.Querier,
	reports ReportGenerator,
	formatter *explain.Formatter,
	model vlm.Model,
	mailer email.Sender,
	cfg Config,
	logger *slog.Logger,
) http.Handler {
	s := &Server{
		q:         q,
		reports:   reports,
		formatter: formatter,
		vlm:       model,
		mailer:    mailer,
		cfg:       cfg,
		logger:    logger,
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))
	r.Use(middleware.Timeout(30 * time.Second))

	// ── Service metadata ──────────────────────────────────────────────────────
	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	// ── Visual model surfaces ─────────────────────────────────────────────────
	r.Post("/describe", s.handleDescribe)
	r.Post("/vqa", s.handleVQA)

	// ── Explanations ──────────────────────────────────────────────────────────
	r.Post("/explain", s.handleExplain)

	// ── Reports ───────────────────────────────────────────────────────────────
	r.Post("/generate_report", s.handleGenerateReport)
	r.Get("/report/{reportID}", s.handleGetReport)

	return r
}

// handleRoot returns service metadata so operators can identify the deployed
// build at a glance.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"service": "Session Report Service",
		"version": "1.0.0",
		"status":  "operational",
		"note":    "Visual analysis uses a template model unless VLM_BASE_URL points at a real inference service",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "report-service",
	})
}
