// Package explain turns a single anomaly record into a natural-language
// explanation with evidence bullets and suggested followup questions.
// It is a pure function over its inputs plus the static template registry —
// no I/O, no shared mutable state.
package explain

import (
	"encoding/json"
	"fmt"

	"github.com/nyashahama/interview-integrity-backend/internal/anomaly"
)

// Explanation is the formatter's output. Field names match the JSON the
// explanation surface returns.
type Explanation struct {
	AnomalyType       string   `json:"anomaly_type"`
	Explanation       string   `json:"explanation"`
	Confidence        float64  `json:"confidence"`
	EvidenceBullets   []string `json:"evidence_bullets"`
	SuggestedFollowup []string `json:"suggested_followup"`
}

// ConfidenceScorer supplies the confidence value attached to an explanation.
// The current production scorer is a fixed constant; the interface exists so
// a real per-type scoring model can replace it without touching the
// formatter. Implementations must be safe for concurrent use.
type ConfidenceScorer interface {
	Confidence(t anomaly.Type, metrics map[string]any) float64
}

// FixedConfidence returns the same confidence for every anomaly.
type FixedConfidence struct {
	Value float64
}

// Confidence implements ConfidenceScorer.
func (f FixedConfidence) Confidence(anomaly.Type, map[string]any) float64 {
	return f.Value
}

// DefaultConfidence is the placeholder confidence attached to every
// explanation until a real scorer exists.
const DefaultConfidence = 0.85

// Formatter renders explanations. The zero value is not usable; call New.
type Formatter struct {
	scorer ConfidenceScorer
}

// New constructs a Formatter. A nil scorer selects the fixed default.
func New(scorer ConfidenceScorer) *Formatter {
	if scorer == nil {
		scorer = FixedConfidence{Value: DefaultConfidence}
	}
	return &Formatter{scorer: scorer}
}

// Explain builds the explanation for one anomaly. It never fails: malformed
// or missing metrics degrade to defaults, and any substitution panic is
// absorbed into a minimal explanation carrying the literal type string.
//
// detectedAt is passed through verbatim into the evidence bullets — the
// formatter does not parse or validate it.
func (f *Formatter) Explain(anomalyType string, metrics map[string]any, detectedAt string) Explanation {
	t := anomaly.ParseType(anomalyType)

	return Explanation{
		AnomalyType:       anomalyType,
		Explanation:       renderExplanation(t, anomalyType, metrics),
		Confidence:        f.scorer.Confidence(t, metrics),
		EvidenceBullets:   evidenceBullets(metrics, detectedAt),
		SuggestedFollowup: anomaly.Followups(t),
	}
}

// renderExplanation substitutes the type-specific metric fields into the
// registry template. Substitution must never propagate a failure to the
// caller, so a panic here (defensive against future template edits) recovers
// to the minimal form.
func renderExplanation(t anomaly.Type, rawType string, metrics map[string]any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = "Anomaly detected: " + rawType
		}
	}()

	tpl := anomaly.TemplateFor(t)

	switch t {
	case anomaly.TypeOffScreenGaze:
		rate := metricFloat(metrics, "off_screen_rate")
		window := metricString(metrics, "window", "1min")
		return fmt.Sprintf(tpl, fmt.Sprintf("%.0f%%", rate*100), window)

	case anomaly.TypeObjectPhone, anomaly.TypeObjectPaper, anomaly.TypeFaceAbsence:
		return fmt.Sprintf(tpl, metricFloat(metrics, "duration_sec"))

	case anomaly.TypeMultiPerson:
		return fmt.Sprintf(tpl, metricInt(metrics, "detection_count"))

	case anomaly.TypeExcessiveHeadMovement:
		return fmt.Sprintf(tpl, metricFloat(metrics, "yaw_std"), metricFloat(metrics, "pitch_std"))

	case anomaly.TypeUnknown:
		return fmt.Sprintf(tpl, rawType)

	default:
		return fmt.Sprintf(anomaly.FallbackTemplate, rawType)
	}
}

// evidenceBullets always includes the detection timestamp and a serialised
// form of the full metrics mapping.
func evidenceBullets(metrics map[string]any, detectedAt string) []string {
	serialised := "{}"
	if b, err := json.Marshal(metrics); err == nil && metrics != nil {
		serialised = string(b)
	}
	return []string{
		"Detected at " + detectedAt,
		"Metrics: " + serialised,
	}
}

// ─── METRIC ACCESSORS ────────────────────────────────────────────────────────
// Metrics arrive as decoded JSON, so numbers are float64. Missing keys and
// wrong types default to the zero value rather than failing.

func metricFloat(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	default:
		return 0
	}
}

func metricInt(m map[string]any, key string) int {
	return int(metricFloat(m, key))
}

func metricString(m map[string]any, key, fallback string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
