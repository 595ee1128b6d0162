package handlers

import (
	"net/http"

	"github.com/Eriw/podcast-transcriber/internal/catalog"
)

// SearchHandler serves the curated episode catalog
type SearchHandler struct {
	catalog *catalog.Catalog
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(c *catalog.Catalog) *SearchHandler {
	return &SearchHandler{catalog: c}
}

// Search handles GET /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("query") {
		jsonError(w, "query parameter is required", http.StatusBadRequest)
		return
	}
	query := r.URL.Query().Get("query")

	results := h.catalog.Search(r.Context(), query)
	jsonResponse(w, results, http.StatusOK)
}
