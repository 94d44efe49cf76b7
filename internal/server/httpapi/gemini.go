package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

const geminiTimeout = 30 * time.Second

type geminiRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPayload struct {
	Contents []geminiContent `json:"contents"`
}

// handleGemini forwards the prompt to the upstream completion API and
// relays the upstream JSON verbatim. The API key never reaches the client.
func (a *API) handleGemini(w http.ResponseWriter, r *http.Request) {
	var req geminiRequest
	if err := a.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if a.gemini.APIKey == "" {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "API key not configured"})
		return
	}

	payload, err := json.Marshal(geminiPayload{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	upstream, err := http.NewRequestWithContext(r.Context(), http.MethodPost,
		a.gemini.Endpoint+"?key="+a.gemini.APIKey, bytes.NewReader(payload))
	if err != nil {
		writeError(w, err)
		return
	}
	upstream.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(upstream)
	if err != nil {
		a.logger.Error(r.Context(), "completion upstream unreachable", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream unavailable"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		a.logger.Error(r.Context(), "completion upstream error", "status", resp.StatusCode)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, resp.Body)
}
