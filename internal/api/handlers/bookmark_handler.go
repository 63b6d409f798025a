package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/flickmark/flickmark-be/internal/auth"
	"github.com/flickmark/flickmark-be/internal/models"
	"github.com/flickmark/flickmark-be/internal/services"
)

// BookmarkHandler handles HTTP requests for the session user's bookmarks.
type BookmarkHandler struct {
	service services.BookmarkServiceProvider
}

// NewBookmarkHandler creates a new BookmarkHandler.
func NewBookmarkHandler(service services.BookmarkServiceProvider) *BookmarkHandler {
	return &BookmarkHandler{service: service}
}

type bookmarkPayload struct {
	MediaID string `json:"mediaId"`
}

// List returns the current bookmark list.
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.service.GetBookmarks(r.Context(), sessionClaims(r))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeBookmarks(w, "Bookmarks retrieved successfully", bookmarks)
}

// Add bookmarks a media id and returns the updated list.
func (h *BookmarkHandler) Add(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := h.decodeMediaID(w, r)
	if !ok {
		return
	}

	bookmarks, err := h.service.AddBookmark(r.Context(), sessionClaims(r), mediaID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeBookmarks(w, "Bookmark added successfully", bookmarks)
}

// Remove deletes a bookmarked media id and returns the updated list.
func (h *BookmarkHandler) Remove(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := h.decodeMediaID(w, r)
	if !ok {
		return
	}

	bookmarks, err := h.service.RemoveBookmark(r.Context(), sessionClaims(r), mediaID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeBookmarks(w, "Bookmark removed successfully", bookmarks)
}

func (h *BookmarkHandler) decodeMediaID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var payload bookmarkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return "", false
	}
	if payload.MediaID == "" {
		writeMessage(w, http.StatusBadRequest, false, "Media ID is required")
		return "", false
	}
	return payload.MediaID, true
}

func (h *BookmarkHandler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
	case errors.Is(err, models.ErrInvalidMediaID):
		writeMessage(w, http.StatusBadRequest, false, "Invalid media ID")
	case errors.Is(err, models.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, false, "User not found")
	case errors.Is(err, models.ErrStoreUnavailable):
		log.Error().Err(err).Msg("Bookmark store failure")
		writeMessage(w, http.StatusServiceUnavailable, false, "Service temporarily unavailable")
	default:
		log.Error().Err(err).Msg("Bookmark operation failed")
		writeMessage(w, http.StatusInternalServerError, false, "Operation failed")
	}
}

func writeBookmarks(w http.ResponseWriter, message string, bookmarks []models.BookmarkEntry) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   message,
		"bookmarks": bookmarks,
	})
}

// sessionClaims may return nil; the service rejects nil sessions with
// ErrUnauthenticated, which is the second guard behind the auth middleware.
func sessionClaims(r *http.Request) *auth.Claims {
	claims, _ := auth.ClaimsFromContext(r.Context())
	return claims
}
