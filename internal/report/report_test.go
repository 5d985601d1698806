package report_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyashahama/interview-integrity-backend/internal/anomaly"
	"github.com/nyashahama/interview-integrity-backend/internal/report"
)

func timePtr(t time.Time) *time.Time { return &t }

func sessionOf(start time.Time, durationSec int) report.Session {
	end := start.Add(time.Duration(durationSec) * time.Second)
	return report.Session{StartedAt: timePtr(start), EndedAt: timePtr(end)}
}

// ─── AGGREGATE: FULL SCENARIO ────────────────────────────────────────────────

func TestAggregate_FullSession(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	anomalies := []report.Anomaly{
		{Type: "object_phone", Severity: anomaly.SeverityHigh,
			Description: "Phone detected for 12.5 seconds", DetectedAt: start.Add(5 * time.Minute)},
		{Type: "off_screen_gaze", Severity: anomaly.SeverityMedium,
			Description: "Gaze off screen 40% of window", DetectedAt: start.Add(8 * time.Minute)},
		{Type: "object_phone", Severity: anomaly.SeverityHigh,
			Description: "Phone detected for 4.0 seconds", DetectedAt: start.Add(14 * time.Minute)},
		{Type: "face_absence", Severity: anomaly.SeverityLow,
			Description: "Candidate left frame briefly", DetectedAt: start.Add(20 * time.Minute)},
	}

	got := report.New(nil).Aggregate(
		sessionOf(start, 1500), // 25 minutes
		anomalies,
		report.EventSummary{EventCount: 210},
	)

	// Metrics snapshot.
	assert.InDelta(t, 25.0, got.Metrics.DurationMinutes, 1e-9)
	assert.Equal(t, 4, got.Metrics.TotalAnomalies)
	assert.Equal(t, 2, got.Metrics.HighSeverityCount)
	assert.Equal(t, int64(210), got.Metrics.EventCount)

	// Breakdown preserves first-seen order and sums to the total.
	require.NotNil(t, got.Metrics.AnomalyBreakdown)
	assert.Equal(t, []string{"object_phone", "off_screen_gaze", "face_absence"},
		got.Metrics.AnomalyBreakdown.Types())
	assert.Equal(t, 2, got.Metrics.AnomalyBreakdown.Count("object_phone"))
	assert.Equal(t, got.Metrics.TotalAnomalies, got.Metrics.AnomalyBreakdown.Total())

	// High-priority flags keep ascending detection order and RFC 3339 times.
	require.Len(t, got.HighPriorityFlags, 2)
	assert.Equal(t, "Phone detected for 12.5 seconds", got.HighPriorityFlags[0].Description)
	assert.Equal(t, "2026-03-01T10:05:00Z", got.HighPriorityFlags[0].DetectedAt)
	assert.Equal(t, "Phone detected for 4.0 seconds", got.HighPriorityFlags[1].Description)

	// Prose summary.
	assert.Contains(t, got.Summary, "Interview session completed with duration of 25.0 minutes.")
	assert.Contains(t, got.Summary, "Total of 4 behavioral flags detected during the session.")
	assert.Contains(t, got.Summary, "⚠️  2 high-severity flags require attention:")
	assert.Contains(t, got.Summary, "  - object_phone: 2 occurrences")
	assert.Contains(t, got.Summary, "  - off_screen_gaze: 1 occurrences")
	assert.NotContains(t, got.Summary, "No significant anomalies detected")

	// 1–2 high severity → brief follow-up recommendation.
	assert.Contains(t, got.Summary,
		"📝 Recommendation: Some concerns noted. Suggest brief follow-up to clarify flagged behaviors.")
}

func TestAggregate_CleanSession(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	got := report.New(nil).Aggregate(
		sessionOf(start, 1800),
		nil,
		report.EventSummary{EventCount: 95},
	)

	assert.Equal(t, 0, got.Metrics.TotalAnomalies)
	assert.Equal(t, 0, got.Metrics.HighSeverityCount)
	assert.Empty(t, got.HighPriorityFlags)
	assert.Contains(t, got.Summary, "✓ No significant anomalies detected. Session appeared normal.")
	assert.Contains(t, got.Summary,
		"📝 Recommendation: Session appeared normal. Candidate can proceed to next stage.")
	assert.NotContains(t, got.Summary, "Anomaly breakdown:")
}

// ─── PROSE TRUNCATION VS STRUCTURED LIST ─────────────────────────────────────

func TestAggregate_ProseShowsAtMostThreeHighSeverity(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var anomalies []report.Anomaly
	for i, desc := range []string{"first", "second", "third", "fourth", "fifth"} {
		anomalies = append(anomalies, report.Anomaly{
			Type:        "object_phone",
			Severity:    anomaly.SeverityHigh,
			Description: desc,
			DetectedAt:  start.Add(time.Duration(i) * time.Minute),
		})
	}

	got := report.New(nil).Aggregate(sessionOf(start, 600), anomalies, report.EventSummary{})

	// Structured list is never truncated.
	require.Len(t, got.HighPriorityFlags, 5)
	assert.Equal(t, 5, got.Metrics.HighSeverityCount)

	// Prose quotes only the first three descriptions.
	assert.Contains(t, got.Summary, "⚠️  5 high-severity flags require attention:")
	assert.Contains(t, got.Summary, "  - third")
	assert.NotContains(t, got.Summary, "  - fourth")
	assert.NotContains(t, got.Summary, "  - fifth")

	// ≥3 high severity → follow-up discussion recommendation.
	assert.Contains(t, got.Summary,
		"Multiple high-severity flags detected. Recommend follow-up discussion with candidate.")
}

// ─── DURATION EDGE CASES ─────────────────────────────────────────────────────

func TestAggregate_MissingTimestampsYieldZeroDuration(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	cases := []report.Session{
		{},
		{StartedAt: timePtr(start)},
		{EndedAt: timePtr(start)},
	}
	for _, s := range cases {
		got := report.New(nil).Aggregate(s, nil, report.EventSummary{})
		assert.Zero(t, got.Metrics.DurationMinutes)
		assert.Contains(t, got.Summary, "duration of 0.0 minutes")
	}
}

func TestAggregate_EndBeforeStartYieldsNegativeDuration(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := report.Session{
		StartedAt: timePtr(start),
		EndedAt:   timePtr(start.Add(-30 * time.Minute)),
	}

	got := report.New(nil).Aggregate(s, nil, report.EventSummary{})

	// Not clamped: clock skew in the source rows surfaces in the report
	// instead of being silently hidden.
	assert.InDelta(t, -30.0, got.Metrics.DurationMinutes, 1e-9)
	assert.Contains(t, got.Summary, "duration of -30.0 minutes")
}

// ─── RECOMMENDATION POLICY ───────────────────────────────────────────────────

func TestSeverityCountPolicy(t *testing.T) {
	mk := func(severities ...anomaly.Severity) []report.Anomaly {
		out := make([]report.Anomaly, len(severities))
		for i, s := range severities {
			out[i] = report.Anomaly{Type: "object_phone", Severity: s}
		}
		return out
	}

	cases := []struct {
		name      string
		anomalies []report.Anomaly
		wantPart  string
	}{
		{"no anomalies", nil, "Session appeared normal"},
		{"only low", mk(anomaly.SeverityLow, anomaly.SeverityLow), "Minor flags detected"},
		{"only medium", mk(anomaly.SeverityMedium), "Minor flags detected"},
		{"one high", mk(anomaly.SeverityHigh), "Some concerns noted"},
		{"two high", mk(anomaly.SeverityHigh, anomaly.SeverityHigh, anomaly.SeverityLow), "Some concerns noted"},
		{"three high", mk(anomaly.SeverityHigh, anomaly.SeverityHigh, anomaly.SeverityHigh), "Multiple high-severity flags"},
	}

	policy := report.SeverityCountPolicy{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := policy.Recommend(tc.anomalies, 30)
			if !strings.Contains(got, tc.wantPart) {
				t.Errorf("Recommend() = %q, want substring %q", got, tc.wantPart)
			}
		})
	}
}

// ─── CUSTOM RECOMMENDER ──────────────────────────────────────────────────────

type fixedRecommender struct{ msg string }

func (f fixedRecommender) Recommend([]report.Anomaly, float64) string { return f.msg }

func TestAggregate_CustomRecommenderIsUsed(t *testing.T) {
	got := report.New(fixedRecommender{msg: "Escalate to hiring committee."}).
		Aggregate(report.Session{}, nil, report.EventSummary{})
	assert.Contains(t, got.Summary, "📝 Recommendation: Escalate to hiring committee.")
}

// ─── BREAKDOWN JSON ──────────────────────────────────────────────────────────

func TestBreakdown_JSONPreservesInsertionOrder(t *testing.T) {
	b := report.NewBreakdown()
	b.Add("off_screen_gaze")
	b.Add("object_phone")
	b.Add("off_screen_gaze")
	b.Add("face_absence")

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, `{"off_screen_gaze":2,"object_phone":1,"face_absence":1}`, string(data))

	var restored report.Breakdown
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, []string{"off_screen_gaze", "object_phone", "face_absence"}, restored.Types())
	assert.Equal(t, 4, restored.Total())
}

func TestMetrics_JSONShape(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sum := report.New(nil).Aggregate(
		sessionOf(start, 600),
		[]report.Anomaly{{Type: "multi_person", Severity: anomaly.SeverityLow, DetectedAt: start}},
		report.EventSummary{EventCount: 7},
	)

	data, err := json.Marshal(sum.Metrics)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"duration_minutes": 10,
		"total_anomalies": 1,
		"high_severity_count": 0,
		"anomaly_breakdown": {"multi_person": 1},
		"event_count": 7
	}`, string(data))
}
