package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Shamanth-8/drones/internal/common"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/models/entities"
)

// respondServiceError maps domain errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, initTime time.Time, err error) {
	var fieldErr *entities.FieldError

	switch {
	case errors.Is(err, entities.ErrNotFound):
		common.RespondError(w, initTime, err, "Not found", http.StatusNotFound)
	case errors.As(err, &fieldErr):
		// The stored record is bad, not the request.
		common.RespondError(w, initTime, err, "Malformed record", http.StatusUnprocessableEntity)
	default:
		logging.Error("Request failed", "error", err)
		common.RespondError(w, initTime, err, "An unexpected error occurred", http.StatusInternalServerError)
	}
}

// queryLimit reads ?limit=, falling back to def for missing, unparseable
// or non-positive values.
func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
