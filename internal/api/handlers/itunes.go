package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Eriw/podcast-transcriber/internal/itunes"
)

// ITunesHandler proxies podcast and episode searches to the iTunes Search API
type ITunesHandler struct {
	client *itunes.Client
}

// NewITunesHandler creates a new iTunes handler
func NewITunesHandler(client *itunes.Client) *ITunesHandler {
	return &ITunesHandler{client: client}
}

// SearchPodcasts handles GET /api/itunes/podcasts
func (h *ITunesHandler) SearchPodcasts(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("query") {
		jsonError(w, "query parameter is required", http.StatusBadRequest)
		return
	}
	query := r.URL.Query().Get("query")

	limit, country, err := parseListParams(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.client.SearchPodcasts(r.Context(), query, limit, country)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, itunes.FormatResults(resp.Results), http.StatusOK)
}

// SearchEpisodes handles GET /api/itunes/episodes. With podcast_id set it
// lists that podcast's episodes via the lookup API; otherwise it searches
// episodes by the query text.
func (h *ITunesHandler) SearchEpisodes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	podcastIDRaw := r.URL.Query().Get("podcast_id")

	var podcastID int64
	if podcastIDRaw != "" {
		id, err := strconv.ParseInt(podcastIDRaw, 10, 64)
		if err != nil {
			jsonError(w, "podcast_id must be a number", http.StatusBadRequest)
			return
		}
		podcastID = id
	}

	if query == "" && podcastID == 0 {
		jsonError(w, "query or podcast_id is required", http.StatusBadRequest)
		return
	}

	limit, country, err := parseListParams(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var resp *itunes.Response
	if podcastID != 0 {
		resp, err = h.client.LookupEpisodes(r.Context(), podcastID, limit, country)
	} else {
		resp, err = h.client.SearchEpisodes(r.Context(), query, limit, country)
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, itunes.FormatResults(resp.Results), http.StatusOK)
}

// parseListParams reads the shared limit and country query parameters.
// Limit is clamped to 1-200 and defaults to 10; country must be a
// two-letter code and defaults to US.
func parseListParams(r *http.Request) (int, string, error) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, "", fmt.Errorf("limit must be a number")
		}
		if n < 1 {
			n = 1
		}
		if n > 200 {
			n = 200
		}
		limit = n
	}

	country := "US"
	if raw := r.URL.Query().Get("country"); raw != "" {
		if len(raw) != 2 {
			return 0, "", fmt.Errorf("country must be a two-letter code")
		}
		country = strings.ToUpper(raw)
	}

	return limit, country, nil
}
