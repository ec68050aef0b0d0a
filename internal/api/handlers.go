package api

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Shamanth-8/drones/internal/common"
	"github.com/Shamanth-8/drones/internal/models/dtos"
	"github.com/Shamanth-8/drones/internal/services"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// AvailablePilotsHandler handles GET /api/v1/pilots/available
func (h *Handlers) AvailablePilotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		pilots, err := h.deps.Services.Roster.AvailablePilots(services.PilotFilter{
			Location: q.Get("location"),
			Skill:    q.Get("skill"),
			Date:     q.Get("date"),
			Limit:    queryLimit(r, 0),
		})
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Available pilots fetched", dtos.PilotsResponse{
			Count:  len(pilots),
			Pilots: pilots,
		})
	}
}

// AvailableDronesHandler handles GET /api/v1/drones/available
func (h *Handlers) AvailableDronesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		drones, err := h.deps.Services.Fleet.AvailableDrones(services.DroneFilter{
			Location:   q.Get("location"),
			Capability: q.Get("capability"),
			Limit:      queryLimit(r, 0),
		})
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Available drones fetched", dtos.DronesResponse{
			Count:  len(drones),
			Drones: drones,
		})
	}
}

// PilotCostHandler handles GET /api/v1/pilots/{pilot_id}/cost?days=
func (h *Handlers) PilotCostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		pilotID := chi.URLParam(r, "pilot_id")

		days, err := strconv.Atoi(r.URL.Query().Get("days"))
		if err != nil || days < 0 {
			common.RespondError(w, initTime, nil, "days must be a non-negative integer", http.StatusBadRequest)
			return
		}

		est, err := h.deps.Services.Roster.EstimateCost(pilotID, days)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		if !est.Found {
			common.RespondError(w, initTime, nil, "Pilot "+pilotID+" not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Cost estimated", est)
	}
}

// DroneWeatherHandler handles GET /api/v1/drones/{drone_id}/weather?condition=
func (h *Handlers) DroneWeatherHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		condition := r.URL.Query().Get("condition")
		if strings.TrimSpace(condition) == "" {
			common.RespondError(w, initTime, nil, "condition is required", http.StatusBadRequest)
			return
		}

		verdict := h.deps.Services.Fleet.CheckWeather(chi.URLParam(r, "drone_id"), condition)
		common.RespondSuccess(w, initTime, "Weather compatibility checked", verdict)
	}
}

// TableHandler handles GET /api/v1/tables/{table}. Rows are capped by
// ?limit= or the configured result limit.
func (h *Handlers) TableHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		name := chi.URLParam(r, "table")

		if !slices.Contains(TableNames(), name) {
			common.RespondError(w, initTime, nil, "Unknown table "+name, http.StatusNotFound)
			return
		}

		t, err := h.deps.Services.Store.GetTable(name)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		total := len(t.Rows)
		if limit := queryLimit(r, h.deps.Services.Ops.Limit()); total > limit {
			t.Rows = t.Rows[:limit]
		}

		common.RespondSuccess(w, initTime, "Table fetched", map[string]any{
			"table":   t.Name,
			"columns": t.Columns,
			"rows":    t.Rows,
			"total":   total,
		})
	}
}
