// Package email defines the interface for transactional email delivery and
// provides a Resend-backed implementation.
package email

import (
	"context"

	"github.com/google/uuid"
)

// ReportReadyParams holds the data needed to send the report-ready
// notification after a session report has been generated and stored.
type ReportReadyParams struct {
	To            string    // recipient email address
	CandidateName string    // used in the subject line; may be empty
	ReportID      uuid.UUID // inserted into the report URL
	SessionID     uuid.UUID
	HighSeverity  int // high-severity flag count, shown in the body
}

// Sender is the interface the report handler uses to send email.
// Tests inject a stub that records calls without hitting the network.
type Sender interface {
	// SendReportReady sends the "session report is ready" email with a link
	// to the stored report. Called after report generation succeeds; a
	// delivery failure must not fail the generation request.
	SendReportReady(ctx context.Context, p ReportReadyParams) error
}
