package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Shamanth-8/drones/internal/auth"
	"github.com/Shamanth-8/drones/internal/common"
	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/models/dtos"
)

// Dispatcher tools always answer 200 with a text rendering; failures are
// part of the text.

// CheckAvailabilityTool handles GET /api/v1/tools/check_availability
func (h *Handlers) CheckAvailabilityTool() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		result := h.deps.Services.Ops.CheckAvailability(q.Get("location"), q.Get("skill"))
		common.RespondSuccess(w, initTime, "ok", dtos.ToolResponse{Tool: "check_availability", Result: result})
	}
}

// CheckDroneInventoryTool handles GET /api/v1/tools/check_drone_inventory
func (h *Handlers) CheckDroneInventoryTool() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		result := h.deps.Services.Ops.CheckDroneInventory(q.Get("location"), q.Get("capability"))
		common.RespondSuccess(w, initTime, "ok", dtos.ToolResponse{Tool: "check_drone_inventory", Result: result})
	}
}

// ConflictsTool handles GET /api/v1/tools/conflicts
func (h *Handlers) ConflictsTool() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		common.RespondSuccess(w, initTime, "ok", dtos.ToolResponse{Tool: "conflicts", Result: h.deps.Services.Ops.ConflictReport()})
	}
}

// UpdatePilotStatusTool handles POST /api/v1/tools/update_pilot_status
func (h *Handlers) UpdatePilotStatusTool() http.HandlerFunc {
	return h.statusTool("update_pilot_status", h.deps.Services.Ops.UpdatePilotStatus)
}

// UpdateDroneStatusTool handles POST /api/v1/tools/update_drone_status
func (h *Handlers) UpdateDroneStatusTool() http.HandlerFunc {
	return h.statusTool("update_drone_status", h.deps.Services.Ops.UpdateDroneStatus)
}

type statusUpdater func(ctx context.Context, id, status string) string

func (h *Handlers) statusTool(tool string, update statusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ToolStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, constants.MsgInvalidRequestBody, http.StatusBadRequest)
			return
		}

		result := update(r.Context(), req.ID, req.Status)
		common.RespondSuccess(w, initTime, "ok", dtos.ToolResponse{Tool: tool, Result: result})
	}
}

// UpdatePilotStatusHandler handles POST /api/v1/pilots/{pilot_id}/status
func (h *Handlers) UpdatePilotStatusHandler() http.HandlerFunc {
	return h.statusHandler("pilot_id", constants.MsgPilotNotFound, h.deps.Services.Status.UpdatePilotStatus)
}

// UpdateDroneStatusHandler handles POST /api/v1/drones/{drone_id}/status
func (h *Handlers) UpdateDroneStatusHandler() http.HandlerFunc {
	return h.statusHandler("drone_id", constants.MsgDroneNotFound, h.deps.Services.Status.UpdateDroneStatus)
}

func (h *Handlers) statusHandler(param, notFound string, update statusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		id := chi.URLParam(r, param)

		var req dtos.StatusUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, constants.MsgInvalidRequestBody, http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Status) == "" {
			common.RespondError(w, initTime, nil, "status is required", http.StatusBadRequest)
			return
		}

		result := update(r.Context(), id, req.Status)
		if result == fmt.Sprintf(notFound, id) {
			common.RespondError(w, initTime, nil, result, http.StatusNotFound)
			return
		}

		logging.Info("Status changed over HTTP", "id", id, "status", req.Status, "request_id", auth.GetRequestID(r.Context()))
		common.RespondSuccess(w, initTime, "Status updated", dtos.StatusUpdateResponse{
			ID:     id,
			Status: req.Status,
			Result: result,
		})
	}
}

// SyncPushHandler handles POST /api/v1/sync/push
func (h *Handlers) SyncPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		result := h.deps.Services.Sync.PushAll(r.Context())
		common.RespondSuccess(w, initTime, "Push complete", dtos.SyncResponse{Direction: "push", Result: result})
	}
}

// SyncPullHandler handles POST /api/v1/sync/pull
func (h *Handlers) SyncPullHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		result := h.deps.Services.Sync.PullAll(r.Context())
		common.RespondSuccess(w, initTime, "Pull complete", dtos.SyncResponse{Direction: "pull", Result: result})
	}
}
