package api

import "net/http"

// ─── POST /explain ───────────────────────────────────────────────────────────

type explainRequest struct {
	AnomalyType string         `json:"anomaly_type"`
	Metrics     map[string]any `json:"metrics"`
	DetectedAt  string         `json:"detected_at"`
}

// handleExplain renders a natural-language explanation for one anomaly
// record. The formatter is total — every input, including unknown types and
// missing metrics, yields a usable explanation — so this handler has no
// failure path beyond request decoding.
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	if !decode(w, r, &req) {
		return
	}

	if req.AnomalyType == "" {
		respondErr(w, http.StatusBadRequest, "missing anomaly_type")
		return
	}

	out := s.formatter.Explain(req.AnomalyType, req.Metrics, req.DetectedAt)
	respond(w, http.StatusOK, out)
}
