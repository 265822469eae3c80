package handlers

import (
	"photo-album-backend/internal/middleware"
	"photo-album-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the full route tree. Listing and detail are public;
// upload and delete require a session; detail and list personalize output
// when a session happens to be present.
func NewRouter(
	authHandler *AuthHandler,
	photoHandler *PhotoHandler,
	sessions *services.SessionService,
	cookieName string,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		// Public reads, personalized when a session is present
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalUser(sessions, cookieName))
			r.Get("/photos", photoHandler.List)
			r.Get("/photos/{id}", photoHandler.Get)
		})

		// Mutations require an authenticated identity
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(sessions, cookieName))
			r.Post("/photos", photoHandler.Upload)
			r.Delete("/photos/{id}", photoHandler.Delete)
		})
	})

	r.Get("/media/{filename}", photoHandler.ServeMedia)

	return r
}
