package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/flickmark/flickmark-be/internal/models"
	"github.com/flickmark/flickmark-be/internal/services"
)

// CatalogHandler handles catalog listing requests.
type CatalogHandler struct {
	service services.CatalogServiceProvider
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service services.CatalogServiceProvider) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// List returns the catalog, optionally filtered by category and annotated
// with bookmark state for the userId query parameter.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	userID := r.URL.Query().Get("userId")

	items, err := h.service.ListCatalog(r.Context(), category, userID)
	if err != nil {
		var vErr *models.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"error":   vErr.Error(),
			})
		case errors.Is(err, models.ErrStoreUnavailable):
			log.Error().Err(err).Msg("Catalog store failure")
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"success": false,
				"error":   "Service temporarily unavailable",
			})
		default:
			log.Error().Err(err).Msg("Failed to fetch catalog items")
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"error":   "Failed to fetch catalog items",
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    items,
	})
}
