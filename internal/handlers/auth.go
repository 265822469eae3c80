package handlers

import (
	"net/http"

	"photo-album-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	auth       *services.AuthService
	sessions   *services.SessionService
	cookieName string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService, sessions *services.SessionService, cookieName string) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	user, err := h.auth.Register(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to register user")
		respondAppError(w, err)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("User registered")

	respondJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	user, err := h.auth.Authenticate(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	token, err := h.sessions.Create(r.Context(), user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create session")
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info().Str("user_id", user.ID).Msg("User logged in")

	respondJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/v1/auth/logout. Destroying an already-destroyed
// or malformed session is a no-op, so logout is always safe to repeat.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			log.Error().Err(err).Msg("Failed to destroy session")
			respondError(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}
