package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Shamanth-8/drones/internal/common"
	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/models/dtos"
)

// CheckAssignmentHandler handles POST /api/v1/assignments/check
func (h *Handlers) CheckAssignmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CheckAssignmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, constants.MsgInvalidRequestBody, http.StatusBadRequest)
			return
		}
		if req.PilotID == "" || req.DroneID == "" || req.MissionID == "" {
			common.RespondError(w, initTime, nil, "pilot_id, drone_id and mission_id are required", http.StatusBadRequest)
			return
		}

		issues, err := h.deps.Services.Detector.CheckAssignmentInWeather(req.PilotID, req.DroneID, req.MissionID, req.Weather)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Assignment checked", dtos.AssignmentCheckResponse{
			PilotID:   req.PilotID,
			DroneID:   req.DroneID,
			MissionID: req.MissionID,
			Valid:     len(issues) == 0,
			Issues:    issues,
		})
	}
}

// ConflictsHandler handles GET /api/v1/conflicts
func (h *Handlers) ConflictsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		issues := h.deps.Services.Ops.ActiveConflicts()
		common.RespondSuccess(w, initTime, "Conflict sweep complete", dtos.ConflictsResponse{
			Revision: h.deps.Services.Store.Revision(),
			Count:    len(issues),
			Issues:   issues,
		})
	}
}

// WarningsHandler handles GET /api/v1/records/warnings
func (h *Handlers) WarningsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		warnings, err := h.deps.Services.Ops.LoadWarnings()
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Load warnings fetched", dtos.WarningsResponse{
			Count:    len(warnings),
			Warnings: warnings,
		})
	}
}
