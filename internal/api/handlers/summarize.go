package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Eriw/podcast-transcriber/internal/summarize"
)

// SummarizeHandler runs synchronous transcript summarization
type SummarizeHandler struct {
	service *summarize.Service
}

// NewSummarizeHandler creates a new summarize handler
func NewSummarizeHandler(service *summarize.Service) *SummarizeHandler {
	return &SummarizeHandler{service: service}
}

// Summarize handles POST /api/summarize
func (h *SummarizeHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transcript   string `json:"transcript"`
		Engine       string `json:"engine,omitempty"`
		Style        string `json:"style,omitempty"`
		CustomPrompt string `json:"custom_prompt,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Transcript) == "" {
		jsonError(w, "transcript is required", http.StatusBadRequest)
		return
	}

	summary, err := h.service.SummarizeWith(r.Context(), req.Engine, summarize.Request{
		Transcript:   req.Transcript,
		Style:        req.Style,
		CustomPrompt: req.CustomPrompt,
	})
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, map[string]string{"summary": summary}, http.StatusOK)
}

// Styles handles GET /api/summarize/styles
func (h *SummarizeHandler) Styles(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]interface{}{
		"styles":  summarize.Styles(),
		"engines": h.service.Engines(),
	}, http.StatusOK)
}
