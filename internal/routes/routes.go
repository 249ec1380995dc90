package routes

import (
	"log"

	"github.com/go-chi/chi/v5"

	"github.com/voicevault/voicevault-backend/internal/config"
	"github.com/voicevault/voicevault-backend/internal/handlers"
	"github.com/voicevault/voicevault-backend/internal/middleware"
	"github.com/voicevault/voicevault-backend/internal/services"
)

func SetupRoutes(r *chi.Mux, cfg *config.Config) {
	auth := middleware.RequireAuth([]byte(cfg.JWTSecret), services.FindUserByID)

	// Auth routes
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", handlers.Register)
		r.Post("/login", handlers.Login)
		r.Post("/logout", handlers.Logout)
		r.With(auth).Get("/me", handlers.Me)
	})

	// User management (admin-only CRU, no delete)
	r.Route("/api/users", func(r chi.Router) {
		r.Use(auth, middleware.RequireAdmin)
		r.Get("/", handlers.ListUsers)
		r.Post("/", handlers.CreateUser)
		r.Get("/{id}", handlers.GetUser)
		r.Put("/{id}", handlers.UpdateUser)
	})

	// Recording routes
	r.Route("/api/recordings", func(r chi.Router) {
		r.Use(auth)
		r.Post("/upload", handlers.UploadRecording)
		r.Get("/my-recordings", handlers.MyRecordings)
		r.With(middleware.RequireAdmin).Get("/all", handlers.AllRecordings)
		r.With(middleware.RequireAdmin).Get("/user/{userID}", handlers.UserRecordings)
		r.Delete("/{id}", handlers.DeleteRecording)
	})

	// Admin mirror of user and recording management. Historical deployments
	// exposed this without authentication; that only happens behind the
	// explicit ADMIN_API_OPEN flag, never by default.
	r.Route("/api/admin", func(r chi.Router) {
		if cfg.OpenAdminAPI {
			log.Println("⚠️  WARNING: ADMIN_API_OPEN=true — /api/admin/* is served WITHOUT authentication")
		} else {
			r.Use(auth, middleware.RequireAdmin)
		}
		r.Get("/users", handlers.ListUsers)
		r.Post("/users", handlers.CreateUser)
		r.Get("/users/{id}", handlers.GetUser)
		r.Put("/users/{id}", handlers.UpdateUser)
		r.Get("/recordings", handlers.AllRecordings)
		r.Get("/recordings/user/{userID}", handlers.UserRecordings)
	})
}
