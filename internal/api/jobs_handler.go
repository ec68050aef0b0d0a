package api

import (
	"net/http"
	"time"

	"github.com/Shamanth-8/drones/internal/auth"
	"github.com/Shamanth-8/drones/internal/common"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/models/dtos"
)

// JobsHandler handles manual job triggering endpoints
type JobsHandler struct {
	jobs *Jobs
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(jobs *Jobs) *JobsHandler {
	return &JobsHandler{
		jobs: jobs,
	}
}

// TriggerSweep runs the background conflict sweep now
// POST /api/v1/admin/jobs/sweep
func (h *JobsHandler) TriggerSweep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		claims := auth.GetUserClaims(r.Context())
		if claims != nil {
			logging.Info("Manual sweep triggered", "operator", claims.Subject())
		}

		issues := h.jobs.Sweep.Run(r.Context())
		common.RespondSuccess(w, start, "Sweep complete", dtos.ConflictsResponse{
			Count:  len(issues),
			Issues: issues,
		})
	}
}

// TriggerPull runs the scheduled remote pull now
// POST /api/v1/admin/jobs/pull
func (h *JobsHandler) TriggerPull() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		claims := auth.GetUserClaims(r.Context())
		if claims != nil {
			logging.Info("Manual pull triggered", "operator", claims.Subject())
		}

		report := h.jobs.Sync.Run(r.Context())
		common.RespondSuccess(w, start, "Pull complete", dtos.SyncResponse{Direction: "pull", Result: report})
	}
}
