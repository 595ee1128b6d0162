package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/Eriw/podcast-transcriber/internal/db"
	"github.com/Eriw/podcast-transcriber/internal/transcribe"
)

// TranscribeHandler runs synchronous transcriptions
type TranscribeHandler struct {
	db      *db.Database
	service *transcribe.Service
}

// NewTranscribeHandler creates a new transcribe handler
func NewTranscribeHandler(database *db.Database, service *transcribe.Service) *TranscribeHandler {
	return &TranscribeHandler{
		db:      database,
		service: service,
	}
}

// Transcribe handles POST /api/transcribe. Results are cached by audio
// URL; force re-runs the engine and replaces the cached transcript.
func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AudioURL string `json:"audio_url"`
		Engine   string `json:"engine,omitempty"`
		Force    bool   `json:"force,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.AudioURL) == "" {
		jsonError(w, "audio_url is required", http.StatusBadRequest)
		return
	}

	if !req.Force {
		cached, err := h.db.GetTranscriptByURL(req.AudioURL)
		if err != nil {
			log.Printf("[transcribe] cache lookup failed: %v", err)
		} else if cached != nil {
			log.Printf("[transcribe] cache hit for %s", req.AudioURL)
			jsonResponse(w, map[string]string{"transcript": cached.Transcript}, http.StatusOK)
			return
		}
	}

	result, err := h.service.TranscribeWith(r.Context(), req.Engine, req.AudioURL)
	if err != nil {
		se := transcribe.Classify(err)
		jsonError(w, se.Message, se.Code)
		return
	}

	if _, err := h.db.SaveTranscript(req.AudioURL, result.Transcript, result.Engine, result.DurationSecs); err != nil {
		log.Printf("[transcribe] cache write failed: %v", err)
	}

	jsonResponse(w, map[string]string{"transcript": result.Transcript}, http.StatusOK)
}
