package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/flickmark/flickmark-be/internal/auth"
	"github.com/flickmark/flickmark-be/internal/models"
	"github.com/flickmark/flickmark-be/internal/services"
)

// AuthHandler handles signup, signin and session introspection.
type AuthHandler struct {
	service       services.UserServiceProvider
	auth          *auth.Auth
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler. secureCookies should be true in
// production so the session cookie is HTTPS-only.
func NewAuthHandler(service services.UserServiceProvider, a *auth.Auth, secureCookies bool) *AuthHandler {
	return &AuthHandler{service: service, auth: a, secureCookies: secureCookies}
}

// CredentialsPayload defines the structure for signup and signin requests.
type CredentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles new account registration.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	user, err := h.service.SignUp(r.Context(), payload.Email, payload.Password)
	if err != nil {
		var vErr *models.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeMessage(w, http.StatusBadRequest, false, vErr.Error())
		case errors.Is(err, models.ErrAlreadyExists):
			writeMessage(w, http.StatusUnprocessableEntity, false, "User already exists")
		case errors.Is(err, models.ErrStoreUnavailable):
			log.Error().Err(err).Msg("Signup store failure")
			writeMessage(w, http.StatusServiceUnavailable, false, "Service temporarily unavailable")
		default:
			log.Error().Err(err).Msg("Failed to register user")
			writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "User created",
		"userId":  user.ID.Hex(),
	})
}

// Signin handles credential verification and session token issuance.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	user, err := h.service.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, models.ErrStoreUnavailable) {
			log.Error().Err(err).Msg("Signin store failure")
			writeMessage(w, http.StatusServiceUnavailable, false, "Service temporarily unavailable")
			return
		}
		// One message for every credential failure; the API never confirms
		// whether the email exists.
		log.Warn().Str("email", services.NormalizeEmail(payload.Email)).Msg("Failed authentication attempt")
		writeMessage(w, http.StatusUnauthorized, false, "Invalid credentials")
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("Failed to generate session token")
		writeMessage(w, http.StatusInternalServerError, false, "Failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Expires:  time.Now().Add(h.auth.TTL()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Signout clears the session cookie. The token itself stays valid until it
// expires; sessions are stateless and nothing is revoked server-side.
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	writeMessage(w, http.StatusOK, true, "Signed out")
}

// Me returns the account behind the current session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			writeMessage(w, http.StatusNotFound, false, "User not found")
			return
		}
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to load session user")
		writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}
