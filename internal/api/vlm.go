package api

import (
	"fmt"
	"net/http"
)

// ─── POST /describe ──────────────────────────────────────────────────────────

type describeRequest struct {
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

// handleDescribe returns a scene description for the referenced frame.
func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	var req describeRequest
	if !decode(w, r, &req) {
		return
	}

	out, err := s.vlm.DescribeScene(r.Context(), req.SessionID, req.Timestamp)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("describe scene: %w", err))
		return
	}
	respond(w, http.StatusOK, out)
}

// ─── POST /vqa ───────────────────────────────────────────────────────────────

type vqaRequest struct {
	SessionID string   `json:"session_id"`
	Question  string   `json:"question"`
	FrameIDs  []string `json:"frame_ids"`
}

// handleVQA answers a free-form question about the session's frames.
func (s *Server) handleVQA(w http.ResponseWriter, r *http.Request) {
	var req vqaRequest
	if !decode(w, r, &req) {
		return
	}

	if req.Question == "" {
		respondErr(w, http.StatusBadRequest, "missing question")
		return
	}

	out, err := s.vlm.AnswerQuestion(r.Context(), req.SessionID, req.Question, req.FrameIDs)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("vqa: %w", err))
		return
	}
	respond(w, http.StatusOK, out)
}
