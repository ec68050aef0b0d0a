package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/Shamanth-8/drones/internal/api"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/middleware"
)

// Per-client request budget for the public API.
const (
	requestsPerSecond = 20
	requestBurst      = 40
)

// RegisterRoutes builds the chi router over already initialised dependencies.
func RegisterRoutes(deps *api.Dependencies, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(deps, upSince))

	handlers := api.NewHandlers(deps)
	jobsHandler := api.NewJobsHandler(deps.Jobs)
	limiter := middleware.NewRateLimiter(requestsPerSecond, requestBurst)

	RegisterAPIRoutes(r, handlers, jobsHandler, deps, limiter)

	return r
}
