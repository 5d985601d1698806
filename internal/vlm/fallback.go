package vlm

import (
	"context"
	"fmt"
	"log/slog"
)

// fallbackModel wraps two Model implementations. It calls the primary first;
// if that returns an error it logs the failure and tries the secondary.
// This gives you the remote inference service as the default with the
// template model as the safety net, so visual-analysis endpoints keep
// answering when the remote service is down.
type fallbackModel struct {
	primary   Model
	secondary Model
	logger    *slog.Logger
}

// NewFallbackModel returns a Model that calls primary and, on failure, falls
// back to secondary. Either argument may be nil — if primary is nil it goes
// straight to secondary; if secondary is nil and primary fails, the primary
// error is returned directly.
func NewFallbackModel(primary, secondary Model, logger *slog.Logger) Model {
	return &fallbackModel{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// DescribeScene tries the primary Model. If it fails and a secondary is
// configured, it logs the primary error and tries the secondary.
func (f *fallbackModel) DescribeScene(ctx context.Context, sessionID, timestamp string) (SceneDescription, error) {
	if f.primary != nil {
		result, err := f.primary.DescribeScene(ctx, sessionID, timestamp)
		if err == nil {
			return result, nil
		}
		f.logger.Warn("vlm: primary model failed on describe, trying secondary",
			"error", err,
			"session_id", sessionID,
		)
		if f.secondary == nil {
			return SceneDescription{}, fmt.Errorf("vlm: primary failed and no secondary configured: %w", err)
		}
	}

	return f.secondary.DescribeScene(ctx, sessionID, timestamp)
}

// AnswerQuestion tries the primary Model. If it fails and a secondary is
// configured, it logs the primary error and tries the secondary.
func (f *fallbackModel) AnswerQuestion(ctx context.Context, sessionID, question string, frameIDs []string) (VQAAnswer, error) {
	if f.primary != nil {
		result, err := f.primary.AnswerQuestion(ctx, sessionID, question, frameIDs)
		if err == nil {
			return result, nil
		}
		f.logger.Warn("vlm: primary model failed on vqa, trying secondary",
			"error", err,
			"session_id", sessionID,
		)
		if f.secondary == nil {
			return VQAAnswer{}, fmt.Errorf("vlm: primary failed and no secondary configured: %w", err)
		}
	}

	return f.secondary.AnswerQuestion(ctx, sessionID, question, frameIDs)
}
