package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ignite/fitness-api/internal/ratelimit"
)

// SetupRoutes configures the router and middleware stack. The limiter may be
// nil, which disables per-client rate limiting.
func SetupRoutes(h *Handlers, limiter ratelimit.Limiter) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check (never rate limited)
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(rateLimitMiddleware(limiter))
		}

		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", h.CreateContact)
			r.Get("/", h.ListContacts)
			r.Get("/{id}", h.GetContact)
			r.Post("/{id}/programs", h.LinkProgram)
		})

		r.Route("/programs", func(r chi.Router) {
			r.Post("/", h.CreateProgram)
			r.Get("/", h.ListPrograms)
			r.Get("/{id}", h.GetProgram)
		})

		r.Get("/weather", h.GetWeather)
		r.Get("/recipes", h.GetRecipes)
		r.Get("/dashboard", h.GetDashboard)
	})

	return r
}
