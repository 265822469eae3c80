package middleware

import (
	"context"
	"errors"
	"net/http"

	"photo-album-backend/internal/apperrors"
	"photo-album-backend/internal/models"
	"photo-album-backend/internal/services"

	"github.com/rs/zerolog/log"
)

type contextKey string

const userKey contextKey = "user"

// RequireUser creates a middleware that resolves the session cookie and
// rejects the request with 401 when no valid session is presented.
func RequireUser(sessions *services.SessionService, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				respondError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := sessions.Require(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, apperrors.ErrUnauthorized) {
					respondError(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				log.Error().Err(err).Msg("Failed to resolve session")
				respondError(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalUser creates a middleware that resolves the session cookie when
// present but lets the request through unauthenticated otherwise. Used for
// public reads that personalize output.
func OptionalUser(sessions *services.SessionService, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := sessions.Resolve(r.Context(), cookie.Value)
			if err != nil {
				log.Error().Err(err).Msg("Failed to resolve optional session")
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser extracts the authenticated user from context, or nil
func GetUser(ctx context.Context) *models.User {
	user, ok := ctx.Value(userKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
