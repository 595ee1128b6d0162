package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Eriw/podcast-transcriber/internal/db"
)

// TranscriptsHandler serves the stored transcript cache
type TranscriptsHandler struct {
	database *db.Database
}

// NewTranscriptsHandler creates a new transcripts handler
func NewTranscriptsHandler(database *db.Database) *TranscriptsHandler {
	return &TranscriptsHandler{database: database}
}

// List handles GET /api/transcripts
func (h *TranscriptsHandler) List(w http.ResponseWriter, r *http.Request) {
	transcripts, err := h.database.ListTranscripts()
	if err != nil {
		jsonError(w, "failed to list transcripts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	jsonResponse(w, transcripts, http.StatusOK)
}

// Get handles GET /api/transcripts/{id}
func (h *TranscriptsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, "invalid transcript ID", http.StatusBadRequest)
		return
	}

	t, err := h.database.GetTranscript(id)
	if err != nil {
		jsonError(w, "transcript not found", http.StatusNotFound)
		return
	}

	jsonResponse(w, t, http.StatusOK)
}

// Delete handles DELETE /api/transcripts/{id}
func (h *TranscriptsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		jsonError(w, "invalid transcript ID", http.StatusBadRequest)
		return
	}

	if err := h.database.DeleteTranscript(id); err != nil {
		jsonError(w, "failed to delete transcript: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
