package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Shamanth-8/drones/internal/api"
	"github.com/Shamanth-8/drones/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, jobsHandler *api.JobsHandler, deps *api.Dependencies, limiter *middleware.RateLimiter) {

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(limiter.Middleware)

		// Read-only queries
		v1.Get("/pilots/available", handlers.AvailablePilotsHandler())
		v1.Get("/pilots/{pilot_id}/cost", handlers.PilotCostHandler())
		v1.Get("/drones/available", handlers.AvailableDronesHandler())
		v1.Get("/drones/{drone_id}/weather", handlers.DroneWeatherHandler())
		v1.Post("/assignments/check", handlers.CheckAssignmentHandler())
		v1.Get("/conflicts", handlers.ConflictsHandler())
		v1.Get("/records/warnings", handlers.WarningsHandler())
		v1.Get("/tables/{table}", handlers.TableHandler())

		// Dispatcher tools
		v1.Route("/tools", func(tools chi.Router) {
			tools.Get("/check_availability", handlers.CheckAvailabilityTool())
			tools.Get("/check_drone_inventory", handlers.CheckDroneInventoryTool())
			tools.Get("/conflicts", handlers.ConflictsTool())

			tools.Group(func(mutating chi.Router) {
				mutating.Use(middleware.OperatorAuth(deps.Services.Tokens))
				mutating.Post("/update_pilot_status", handlers.UpdatePilotStatusTool())
				mutating.Post("/update_drone_status", handlers.UpdateDroneStatusTool())
			})
		})

		// Operator-only group
		v1.Group(func(operator chi.Router) {
			operator.Use(middleware.OperatorAuth(deps.Services.Tokens))

			operator.Post("/pilots/{pilot_id}/status", handlers.UpdatePilotStatusHandler())
			operator.Post("/drones/{drone_id}/status", handlers.UpdateDroneStatusHandler())
			operator.Post("/sync/push", handlers.SyncPushHandler())
			operator.Post("/sync/pull", handlers.SyncPullHandler())

			// Background jobs management
			operator.Post("/admin/jobs/sweep", jobsHandler.TriggerSweep())
			operator.Post("/admin/jobs/pull", jobsHandler.TriggerPull())
		})
	})
}
