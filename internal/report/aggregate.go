// Package report synthesises a session's anomalies and event counts into a
// human-readable summary with structured metrics and a recommendation.
// Like the rest of the decision-logic core it is dependency-free apart from
// the anomaly enumerations: plain input structs in, plain Summary out, so it
// can be tested without a database.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nyashahama/interview-integrity-backend/internal/anomaly"
)

// maxDisplayedHighSeverity caps the high-severity descriptions quoted in the
// prose summary. The structured HighPriorityFlags list is never truncated.
const maxDisplayedHighSeverity = 3

// ─── INPUT TYPES ─────────────────────────────────────────────────────────────

// Session is the slice of the session row the aggregator needs. Nil
// timestamps are a defined degenerate case (duration 0), not an error.
type Session struct {
	StartedAt *time.Time
	EndedAt   *time.Time
}

// Anomaly is one detection-subsystem record. The store maps db rows into
// this shape; tests construct it directly.
type Anomaly struct {
	Type        string
	Severity    anomaly.Severity
	Description string
	DetectedAt  time.Time
	Metrics     json.RawMessage
}

// EventSummary is the per-session event aggregate (count plus first/last
// timestamp). Only the count feeds the report metrics today.
type EventSummary struct {
	EventCount int64
	FirstEvent *time.Time
	LastEvent  *time.Time
}

// ─── OUTPUT TYPES ────────────────────────────────────────────────────────────

// Flag is one high-severity anomaly in structured form.
type Flag struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	DetectedAt  string `json:"detected_at"`
}

// Metrics is the structured snapshot persisted alongside the prose summary.
type Metrics struct {
	DurationMinutes   float64    `json:"duration_minutes"`
	TotalAnomalies    int        `json:"total_anomalies"`
	HighSeverityCount int        `json:"high_severity_count"`
	AnomalyBreakdown  *Breakdown `json:"anomaly_breakdown"`
	EventCount        int64      `json:"event_count"`
}

// Summary is the aggregator's full output.
//
// Invariants: AnomalyBreakdown.Total() == TotalAnomalies;
// len(HighPriorityFlags) == HighSeverityCount even when the prose summary
// truncates its displayed list.
type Summary struct {
	Summary           string  `json:"summary"`
	Metrics           Metrics `json:"metrics"`
	HighPriorityFlags []Flag  `json:"high_priority_flags"`
}

// ─── AGGREGATOR ──────────────────────────────────────────────────────────────

// Aggregator builds report summaries. Construct with New.
type Aggregator struct {
	rec Recommender
}

// New constructs an Aggregator. A nil Recommender selects the
// severity-count policy.
func New(rec Recommender) *Aggregator {
	if rec == nil {
		rec = SeverityCountPolicy{}
	}
	return &Aggregator{rec: rec}
}

// Aggregate consumes the session, its anomalies (ascending by detection
// time, as the store returns them), and the event summary, and produces the
// full report summary. It never fails: degenerate inputs (no timestamps,
// end before start, empty anomaly list) all yield defined output.
func (g *Aggregator) Aggregate(s Session, anomalies []Anomaly, events EventSummary) Summary {
	// 1. Duration in minutes. Defined only when both timestamps are present;
	//    otherwise 0. Not clamped — an end before the start yields a negative
	//    duration rather than an error.
	duration := 0.0
	if s.StartedAt != nil && s.EndedAt != nil {
		duration = s.EndedAt.Sub(*s.StartedAt).Seconds() / 60
	}

	// 2–3. One pass: per-type counts in first-seen order, and the
	//      high-severity partition in its original (ascending-time) order.
	breakdown := NewBreakdown()
	var highSeverity []Anomaly
	for _, a := range anomalies {
		breakdown.Add(a.Type)
		if a.Severity == anomaly.SeverityHigh {
			highSeverity = append(highSeverity, a)
		}
	}

	recommendation := g.rec.Recommend(anomalies, duration)

	// 4. Prose summary.
	parts := []string{
		fmt.Sprintf("Interview session completed with duration of %.1f minutes.", duration),
		fmt.Sprintf("Total of %d behavioral flags detected during the session.", len(anomalies)),
	}

	if len(highSeverity) > 0 {
		parts = append(parts, fmt.Sprintf("\n⚠️  %d high-severity flags require attention:", len(highSeverity)))
		for i, a := range highSeverity {
			if i == maxDisplayedHighSeverity {
				break
			}
			parts = append(parts, "  - "+a.Description)
		}
	}

	if breakdown.Len() > 0 {
		parts = append(parts, "\nAnomaly breakdown:")
		for _, typ := range breakdown.Types() {
			parts = append(parts, fmt.Sprintf("  - %s: %d occurrences", typ, breakdown.Count(typ)))
		}
	} else {
		parts = append(parts, "\n✓ No significant anomalies detected. Session appeared normal.")
	}

	parts = append(parts, "\n📝 Recommendation: "+recommendation)

	// 6. Full, untruncated high-priority flag list.
	flags := make([]Flag, 0, len(highSeverity))
	for _, a := range highSeverity {
		flags = append(flags, Flag{
			Type:        a.Type,
			Description: a.Description,
			DetectedAt:  a.DetectedAt.UTC().Format(time.RFC3339),
		})
	}

	return Summary{
		Summary: strings.Join(parts, "\n"),
		Metrics: Metrics{
			DurationMinutes:   duration,
			TotalAnomalies:    len(anomalies),
			HighSeverityCount: len(highSeverity),
			AnomalyBreakdown:  breakdown,
			EventCount:        events.EventCount,
		},
		HighPriorityFlags: flags,
	}
}
