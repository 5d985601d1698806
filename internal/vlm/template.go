package vlm

import (
	"context"
	"strings"
	"time"
)

// templateModel is a deterministic Model that answers from fixed response
// templates instead of running inference. It is the default when no remote
// model service is configured, and the fallback when one is configured but
// unreachable.
type templateModel struct {
	now func() time.Time
}

// NewTemplateModel returns a Model backed by fixed response templates.
// It never returns an error and has no external dependencies.
func NewTemplateModel() Model {
	return templateModel{now: time.Now}
}

const templateDescription = "Candidate visible in center frame, looking forward. " +
	"Desktop environment with laptop visible. No other people detected. " +
	"Standard interview setup."

// DescribeScene returns the standard scene description for any frame.
func (m templateModel) DescribeScene(_ context.Context, _, _ string) (SceneDescription, error) {
	return SceneDescription{
		Description: templateDescription,
		Confidence:  0.85,
		Timestamp:   m.now().UTC().Format(time.RFC3339),
	}, nil
}

// AnswerQuestion matches keywords in the question against a small set of
// canned answers. Unmatched questions get a low-confidence "unable to
// determine" response rather than an error.
func (templateModel) AnswerQuestion(_ context.Context, _, question string, frameIDs []string) (VQAAnswer, error) {
	q := strings.ToLower(question)

	answer := "Unable to determine from available frames."
	confidence := 0.5

	switch {
	case strings.Contains(q, "person"):
		answer = "No, only one person is visible in the analyzed frames."
		confidence = 0.92
	case strings.Contains(q, "phone"):
		answer = "A rectangular device consistent with a phone was detected in frame f-003452."
		confidence = 0.78
	case strings.Contains(q, "looking"):
		answer = "The candidate appears to be looking to the right and downward in multiple frames."
		confidence = 0.85
	}

	if frameIDs == nil {
		frameIDs = []string{}
	}

	return VQAAnswer{
		Question:        question,
		Answer:          answer,
		Confidence:      confidence,
		FrameReferences: frameIDs,
	}, nil
}
