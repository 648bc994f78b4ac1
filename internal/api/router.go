package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/localjobs/localjobs-api/internal/api/handlers"
	"github.com/localjobs/localjobs-api/internal/api/middleware"
	"github.com/localjobs/localjobs-api/internal/domain"
	"github.com/localjobs/localjobs-api/internal/service"
)

func NewRouter(services *service.Services, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS)
	r.Use(limiter.Middleware)

	// Health check
	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ping"}`))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	jobHandler := handlers.NewJobHandler(services.Job, services.Auth)
	adminHandler := handlers.NewAdminHandler(services.Admin)

	authOnly := middleware.Auth(services.Auth)

	// Auth routes
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authOnly)
			r.Get("/me", authHandler.Me)
		})
	})

	// Job routes
	r.Route("/api/jobs", func(r chi.Router) {
		// Public search and detail
		r.Get("/", jobHandler.List)
		r.Get("/{id}", jobHandler.Get)

		// Publishing requires a verified business (admins pass)
		r.Group(func(r chi.Router) {
			r.Use(authOnly)
			r.Use(middleware.RequireRole(services.Auth, domain.UserTypeBusiness, domain.UserTypeAdmin))
			r.Post("/", jobHandler.Create)
			r.Patch("/{id}", jobHandler.Update)
			r.Delete("/{id}", jobHandler.Delete)
		})

		// Saving is a job-seeker feature
		r.Group(func(r chi.Router) {
			r.Use(authOnly)
			r.Use(middleware.RequireRole(services.Auth, domain.UserTypeUser))
			r.Post("/save", jobHandler.Save)
			r.Delete("/{id}/save", jobHandler.Unsave)
		})
	})

	// Favorites
	r.Group(func(r chi.Router) {
		r.Use(authOnly)
		r.Get("/api/favorites", jobHandler.Favorites)
	})

	// Admin routes
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authOnly)
		r.Use(middleware.RequireRole(services.Auth, domain.UserTypeAdmin))

		r.Get("/users", adminHandler.ListUsers)
		r.Get("/users/{userId}", adminHandler.GetUser)
		r.Patch("/users/{userId}/verification", adminHandler.UpdateVerification)
		r.Patch("/users/{userId}/status", adminHandler.UpdateActiveStatus)
		r.Delete("/users/{userId}", adminHandler.DeleteUser)
	})

	return r
}
