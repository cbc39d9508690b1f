package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// CORS - the ops dashboard runs on a separate origin in development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		// Plan generation
		r.Post("/plan", h.HandleGeneratePlan)

		// Saved plans
		r.Route("/plans", func(r chi.Router) {
			r.Post("/", h.HandleSavePlan)
			r.Get("/", h.HandleListPlans)
			r.Get("/{id}", h.HandleGetPlan)
			r.Put("/{id}/confirm", h.HandleConfirmPlan)
		})

		// Analytics
		r.Get("/leaderboard", h.HandleLeaderboard)
		r.Get("/forecast", h.HandleForecast)
		r.Get("/filter-options", h.HandleFilterOptions)
	})

	return r
}
