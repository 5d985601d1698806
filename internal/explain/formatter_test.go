package explain_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nyashahama/interview-integrity-backend/internal/anomaly"
	"github.com/nyashahama/interview-integrity-backend/internal/explain"
)

func newFormatter() *explain.Formatter {
	return explain.New(nil)
}

// ─── METRIC SUBSTITUTION ─────────────────────────────────────────────────────

func TestExplain_ObjectPhone_SubstitutesDuration(t *testing.T) {
	out := newFormatter().Explain("object_phone",
		map[string]any{"duration_sec": 12.5}, "2026-03-01T10:15:00Z")

	if !strings.Contains(out.Explanation, "12.5 seconds") {
		t.Errorf("explanation missing duration: %q", out.Explanation)
	}
	if !strings.HasPrefix(out.Explanation, "A phone or mobile device was detected") {
		t.Errorf("unexpected explanation prefix: %q", out.Explanation)
	}
	if out.AnomalyType != "object_phone" {
		t.Errorf("anomaly type not echoed: %q", out.AnomalyType)
	}
}

func TestExplain_OffScreenGaze_RendersRateAsPercentage(t *testing.T) {
	out := newFormatter().Explain("off_screen_gaze",
		map[string]any{"off_screen_rate": 0.42, "window": "5min"}, "")

	if !strings.Contains(out.Explanation, "42%") {
		t.Errorf("rate not rendered as percentage: %q", out.Explanation)
	}
	if !strings.Contains(out.Explanation, "5min") {
		t.Errorf("window not substituted: %q", out.Explanation)
	}
}

func TestExplain_OffScreenGaze_WindowDefaultsToOneMinute(t *testing.T) {
	out := newFormatter().Explain("off_screen_gaze",
		map[string]any{"off_screen_rate": 0.3}, "")

	if !strings.Contains(out.Explanation, "1min") {
		t.Errorf("missing window default: %q", out.Explanation)
	}
}

func TestExplain_MultiPerson_CountIsInteger(t *testing.T) {
	// JSON decoding yields float64; the count must render as an integer.
	out := newFormatter().Explain("multi_person",
		map[string]any{"detection_count": float64(4)}, "")

	if !strings.Contains(out.Explanation, "frame 4 times") {
		t.Errorf("count not substituted as integer: %q", out.Explanation)
	}
}

func TestExplain_HeadMovement_SubstitutesBothAxes(t *testing.T) {
	out := newFormatter().Explain("excessive_head_movement",
		map[string]any{"yaw_std": 22.4, "pitch_std": 9.1}, "")

	if !strings.Contains(out.Explanation, "yaw σ=22.4°") ||
		!strings.Contains(out.Explanation, "pitch σ=9.1°") {
		t.Errorf("axes not substituted: %q", out.Explanation)
	}
}

// ─── DEGENERATE INPUTS ───────────────────────────────────────────────────────

func TestExplain_MissingMetricsDefaultToZero(t *testing.T) {
	out := newFormatter().Explain("face_absence", map[string]any{}, "")
	if !strings.Contains(out.Explanation, "0.0 seconds") {
		t.Errorf("missing duration should render as 0.0: %q", out.Explanation)
	}

	out = newFormatter().Explain("face_absence", nil, "")
	if !strings.Contains(out.Explanation, "0.0 seconds") {
		t.Errorf("nil metrics should render as 0.0: %q", out.Explanation)
	}
}

func TestExplain_WrongMetricTypeDefaultsToZero(t *testing.T) {
	out := newFormatter().Explain("object_paper",
		map[string]any{"duration_sec": "ten"}, "")
	if !strings.Contains(out.Explanation, "0.0 seconds") {
		t.Errorf("non-numeric duration should degrade to 0.0: %q", out.Explanation)
	}
}

func TestExplain_UnknownType_EmbedsLiteralString(t *testing.T) {
	out := newFormatter().Explain("gait_analysis", map[string]any{"x": 1}, "ts")

	want := "An anomaly of type 'gait_analysis' was detected. Please review the session data."
	if out.Explanation != want {
		t.Errorf("unknown-type explanation = %q, want %q", out.Explanation, want)
	}
	if !reflect.DeepEqual(out.SuggestedFollowup, []string{anomaly.GenericFollowup}) {
		t.Errorf("unknown-type followups = %v", out.SuggestedFollowup)
	}
}

// ─── OUTPUT SHAPE ────────────────────────────────────────────────────────────

func TestExplain_ConfidenceIsFixedDefault(t *testing.T) {
	out := newFormatter().Explain("object_phone", map[string]any{"duration_sec": 1.0}, "")
	if out.Confidence != explain.DefaultConfidence {
		t.Errorf("confidence = %v, want %v", out.Confidence, explain.DefaultConfidence)
	}
}

func TestExplain_CustomScorerOverridesConfidence(t *testing.T) {
	f := explain.New(explain.FixedConfidence{Value: 0.42})
	out := f.Explain("object_phone", map[string]any{"duration_sec": 1.0}, "")
	if out.Confidence != 0.42 {
		t.Errorf("confidence = %v, want 0.42", out.Confidence)
	}
}

func TestExplain_EvidenceBullets(t *testing.T) {
	out := newFormatter().Explain("object_phone",
		map[string]any{"duration_sec": 3.5}, "2026-03-01T10:15:00Z")

	if len(out.EvidenceBullets) != 2 {
		t.Fatalf("expected 2 evidence bullets, got %v", out.EvidenceBullets)
	}
	if out.EvidenceBullets[0] != "Detected at 2026-03-01T10:15:00Z" {
		t.Errorf("first bullet = %q", out.EvidenceBullets[0])
	}
	if !strings.HasPrefix(out.EvidenceBullets[1], "Metrics: {") ||
		!strings.Contains(out.EvidenceBullets[1], `"duration_sec":3.5`) {
		t.Errorf("second bullet = %q", out.EvidenceBullets[1])
	}
}

func TestExplain_NilMetricsSerialiseAsEmptyObject(t *testing.T) {
	out := newFormatter().Explain("object_phone", nil, "ts")
	if out.EvidenceBullets[1] != "Metrics: {}" {
		t.Errorf("nil metrics bullet = %q", out.EvidenceBullets[1])
	}
}

func TestExplain_Idempotent(t *testing.T) {
	f := newFormatter()
	metrics := map[string]any{"duration_sec": 7.25}
	first := f.Explain("object_phone", metrics, "ts")
	second := f.Explain("object_phone", metrics, "ts")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ:\n%+v\n%+v", first, second)
	}
}
