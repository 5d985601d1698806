package report

import "github.com/nyashahama/interview-integrity-backend/internal/anomaly"

// Recommendation messages, evaluated in fixed priority order by
// SeverityCountPolicy. Verbatim strings — the trailing recommendation line
// of every persisted report quotes one of these.
const (
	recommendProceed = "Session appeared normal. Candidate can proceed to next stage."

	recommendFollowUp = "Multiple high-severity flags detected. " +
		"Recommend follow-up discussion with candidate."

	recommendBriefFollowUp = "Some concerns noted. " +
		"Suggest brief follow-up to clarify flagged behaviors."

	recommendMinorFlags = "Minor flags detected but likely not concerning. " +
		"Candidate can proceed with note of minor observations."
)

// Recommender yields one human-readable recommendation for a session.
// The aggregator holds a Recommender rather than calling a function
// directly so that a duration-sensitive or model-backed policy can replace
// the severity-count rule without touching the aggregation code.
// Implementations must be pure and safe for concurrent use.
type Recommender interface {
	Recommend(anomalies []Anomaly, durationMinutes float64) string
}

// SeverityCountPolicy is the current production policy: a deterministic
// ranked rule set over the high-severity count.
//
//	no anomalies        → proceed
//	≥3 high severity    → recommend follow-up discussion
//	1–2 high severity   → suggest brief follow-up
//	only low/medium     → proceed with note
type SeverityCountPolicy struct{}

// Recommend implements Recommender. durationMinutes is accepted but not yet
// used by the rule set — reserved for a future duration-sensitive policy.
func (SeverityCountPolicy) Recommend(anomalies []Anomaly, durationMinutes float64) string {
	_ = durationMinutes

	if len(anomalies) == 0 {
		return recommendProceed
	}

	high := 0
	for _, a := range anomalies {
		if a.Severity == anomaly.SeverityHigh {
			high++
		}
	}

	switch {
	case high >= 3:
		return recommendFollowUp
	case high >= 1:
		return recommendBriefFollowUp
	default:
		return recommendMinorFlags
	}
}
