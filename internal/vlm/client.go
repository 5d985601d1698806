// Package vlm defines the interface for vision-language scene analysis of
// recorded session frames and provides a deterministic template-backed
// implementation plus an HTTP client for a remote model service.
package vlm

import "context"

// SceneDescription is the structured output from a successful DescribeScene
// call.
type SceneDescription struct {
	// Description is the model's prose description of what is visible in the
	// referenced frame.
	Description string `json:"description"`

	// Confidence is the model's self-reported confidence in [0, 1].
	Confidence float64 `json:"confidence"`

	// Timestamp records when the description was produced, in RFC 3339 UTC.
	Timestamp string `json:"timestamp"`
}

// VQAAnswer is the structured output from a successful AnswerQuestion call.
type VQAAnswer struct {
	// Question echoes the question that was asked.
	Question string `json:"question"`

	// Answer is the model's answer text.
	Answer string `json:"answer"`

	// Confidence is the model's self-reported confidence in [0, 1].
	Confidence float64 `json:"confidence"`

	// FrameReferences echoes the frame ids the caller supplied. Never nil,
	// so it serialises as [] rather than null.
	FrameReferences []string `json:"frame_references"`
}

// Model is the interface handlers use for visual analysis.
// The concrete implementations live in template.go and remote.go.
// Tests inject a stub that returns canned responses.
type Model interface {
	// DescribeScene describes the frame at the given session timestamp.
	//
	// Implementations must be safe to call concurrently.
	DescribeScene(ctx context.Context, sessionID, timestamp string) (SceneDescription, error)

	// AnswerQuestion answers a free-form question about the session's
	// recorded frames. frameIDs narrows the question to specific frames and
	// may be nil.
	//
	// Implementations must be safe to call concurrently.
	AnswerQuestion(ctx context.Context, sessionID, question string, frameIDs []string) (VQAAnswer, error)
}
