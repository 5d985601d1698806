package vlm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// remoteModel is the concrete Model backed by an HTTP model-serving
// endpoint (LLaVA, Qwen-VL, or similar behind a thin JSON API).
type remoteModel struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemoteModel returns a Model that calls a remote inference service.
//   - baseURL: e.g. "http://vlm-inference:9000" (no trailing slash needed)
func NewRemoteModel(baseURL string) Model {
	return &remoteModel{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ─── REMOTE API SHAPES ────────────────────────────────────────────────────────

type describeRequest struct {
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

type vqaRequest struct {
	SessionID string   `json:"session_id"`
	Question  string   `json:"question"`
	FrameIDs  []string `json:"frame_ids,omitempty"`
}

type remoteError struct {
	Detail string `json:"detail"`
}

// ─── IMPLEMENTATION ───────────────────────────────────────────────────────────

// DescribeScene posts to the service's /describe endpoint.
func (c *remoteModel) DescribeScene(ctx context.Context, sessionID, timestamp string) (SceneDescription, error) {
	var out SceneDescription
	err := c.call(ctx, "/describe", describeRequest{
		SessionID: sessionID,
		Timestamp: timestamp,
	}, &out)
	if err != nil {
		return SceneDescription{}, err
	}
	return out, nil
}

// AnswerQuestion posts to the service's /vqa endpoint.
func (c *remoteModel) AnswerQuestion(ctx context.Context, sessionID, question string, frameIDs []string) (VQAAnswer, error) {
	var out VQAAnswer
	err := c.call(ctx, "/vqa", vqaRequest{
		SessionID: sessionID,
		Question:  question,
		FrameIDs:  frameIDs,
	}, &out)
	if err != nil {
		return VQAAnswer{}, err
	}
	if out.FrameReferences == nil {
		out.FrameReferences = []string{}
	}
	return out, nil
}

// call sends one JSON request to the remote service and decodes the JSON
// response into out.
func (c *remoteModel) call(ctx context.Context, path string, reqBody, out any) error {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("vlm: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path,
		bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return fmt.Errorf("vlm: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vlm: http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB cap
	if err != nil {
		return fmt.Errorf("vlm: read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var remoteErr remoteError
		if json.Unmarshal(respBytes, &remoteErr) == nil && remoteErr.Detail != "" {
			return fmt.Errorf("vlm: remote error %d: %s", resp.StatusCode, remoteErr.Detail)
		}
		return fmt.Errorf("vlm: unexpected status %d: %.200s", resp.StatusCode, string(respBytes))
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("vlm: unmarshal response: %w", err)
	}
	return nil
}
