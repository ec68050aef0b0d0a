package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Shamanth-8/drones/internal/common"
	"github.com/Shamanth-8/drones/internal/config"
	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/metrics"
	"github.com/Shamanth-8/drones/internal/models/dtos"
	"github.com/Shamanth-8/drones/internal/models/entities"
	"github.com/Shamanth-8/drones/internal/recordstore"
)

func table(name string, rows ...[]string) entities.Table {
	cols := constants.DefaultColumns[name]
	t := entities.Table{Name: name, Columns: cols, Rows: []entities.Row{}}
	for _, values := range rows {
		row := entities.Row{}
		for i, c := range cols {
			row[c] = values[i]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// newTestDeps wires services over a small fleet: P001 idle, P002 on PRJ001
// (over budget and missing "Thermal Cert"), D001 idle, D002 on PRJ001.
func newTestDeps(t *testing.T) *Dependencies {
	t.Helper()

	store := recordstore.NewFromTables(recordstore.NewMemoryBackend(),
		table(constants.TablePilots,
			[]string{"P001", "Arjun", "Mapping, Survey", "DGCA, Night Ops", "Bangalore", "Available", "-", "2024-01-01", "1500"},
			[]string{"P002", "Neha", "Inspection", "DGCA", "Mumbai", "Assigned", "PRJ001", "2024-01-01", "3000"},
		),
		table(constants.TableDrones,
			[]string{"D001", "DJI M30", "Thermal, RGB", "Available", "Bangalore", "-", "IP43 (Rain)", "2024-12-01"},
			[]string{"D002", "Autel Evo", "RGB", "Deployed", "Mumbai", "PRJ001", "None", "2024-12-01"},
		),
		table(constants.TableMissions,
			[]string{"PRJ001", "Client A", "Mumbai", "Inspection", "DGCA, Thermal Cert", "2024-02-01", "2024-02-05", "High", "10000"},
		),
	)

	deps := &Dependencies{
		Config:  &config.Config{ResultLimit: 10, WeatherUnknownDrone: "open"},
		Metrics: metrics.NewMetricsRegistry(prometheus.NewRegistry()),
		Repo:    &Repositories{},
	}
	deps.buildServices(store, nil, common.NewCacheService(600, 600), &common.MemoryPublisher{})
	return deps
}

// testRouter mounts handlers on the same paths the server uses, without auth.
func testRouter(deps *Dependencies) http.Handler {
	h := NewHandlers(deps)
	r := chi.NewRouter()
	r.Get("/pilots/available", h.AvailablePilotsHandler())
	r.Get("/pilots/{pilot_id}/cost", h.PilotCostHandler())
	r.Get("/drones/available", h.AvailableDronesHandler())
	r.Get("/drones/{drone_id}/weather", h.DroneWeatherHandler())
	r.Post("/assignments/check", h.CheckAssignmentHandler())
	r.Get("/conflicts", h.ConflictsHandler())
	r.Get("/records/warnings", h.WarningsHandler())
	r.Get("/tables/{table}", h.TableHandler())
	r.Get("/tools/check_availability", h.CheckAvailabilityTool())
	r.Get("/tools/conflicts", h.ConflictsTool())
	r.Post("/tools/update_pilot_status", h.UpdatePilotStatusTool())
	r.Post("/pilots/{pilot_id}/status", h.UpdatePilotStatusHandler())
	r.Post("/drones/{drone_id}/status", h.UpdateDroneStatusHandler())
	r.Post("/sync/push", h.SyncPushHandler())
	r.Post("/admin/jobs/sweep", NewJobsHandler(deps.Jobs).TriggerSweep())
	return r
}

// do issues a request and decodes the envelope; data is re-decoded into out
// when out is non-nil.
func do(t *testing.T, h http.Handler, method, path string, body any, out any) (int, dtos.APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var resp dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if out != nil && resp.Data != nil {
		raw, _ := json.Marshal(resp.Data)
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("Failed to decode data: %v", err)
		}
	}
	return rr.Code, resp
}
