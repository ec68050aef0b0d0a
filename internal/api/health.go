package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Shamanth-8/drones/internal/models/entities"
)

// HealthCheckHandler handles GET /healthCheck
//
// Reports the record store backend, the database when one is configured,
// in-memory table row counts and uptime.
func HealthCheckHandler(deps *Dependencies, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]entities.ServiceStatus)
		store := deps.Services.Store

		services["store"] = entities.ServiceStatus{
			Status:  "ok",
			Details: fmt.Sprintf("%s backend, revision %d", store.BackendName(), store.Revision()),
		}

		// Check database
		if stats := deps.Repo.Stats; stats != nil {
			dbStatus := "ok"
			dbDetails := "Database Connected"
			if err := stats.Ping(r.Context()); err != nil {
				dbStatus = "down"
				dbDetails = err.Error()
			} else if counts, err := stats.CountRows(r.Context()); err == nil {
				dbDetails = fmt.Sprintf("Database Connected, persisted rows %v", counts)
			}
			services["database"] = entities.ServiceStatus{
				Status:  dbStatus,
				Details: dbDetails,
			}
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Services:  services,
			Status:    overallStatus,
			TableRows: store.Counts(),
			UpSince:   upSince,
			Uptime:    uptime,
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
