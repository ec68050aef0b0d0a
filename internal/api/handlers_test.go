package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/models/dtos"
	"github.com/Shamanth-8/drones/internal/models/entities"
	"github.com/Shamanth-8/drones/internal/services"
)

func TestAvailablePilotsHandler(t *testing.T) {
	h := testRouter(newTestDeps(t))

	var got dtos.PilotsResponse
	code, resp := do(t, h, http.MethodGet, "/pilots/available?location=bangalore", nil, &got)

	if code != http.StatusOK || resp.Status != "ok" {
		t.Fatalf("Expected 200 ok, got %d %s", code, resp.Status)
	}
	if got.Count != 1 || got.Pilots[0].ID != "P001" {
		t.Errorf("Expected only P001, got %+v", got)
	}
}

func TestAvailableDronesHandler(t *testing.T) {
	h := testRouter(newTestDeps(t))

	var got dtos.DronesResponse
	do(t, h, http.MethodGet, "/drones/available?capability=THERMAL", nil, &got)

	if got.Count != 1 || got.Drones[0].ID != "D001" {
		t.Errorf("Expected only D001, got %+v", got)
	}
}

func TestPilotCostHandler(t *testing.T) {
	h := testRouter(newTestDeps(t))

	tests := []struct {
		name   string
		path   string
		want   int
		amount float64
	}{
		{"known pilot", "/pilots/P002/cost?days=5", http.StatusOK, 15000},
		{"zero days", "/pilots/P001/cost?days=0", http.StatusOK, 0},
		{"unknown pilot", "/pilots/P999/cost?days=1", http.StatusNotFound, 0},
		{"bad days", "/pilots/P001/cost?days=abc", http.StatusBadRequest, 0},
		{"negative days", "/pilots/P001/cost?days=-2", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var est services.CostEstimate
			code, _ := do(t, h, http.MethodGet, tt.path, nil, &est)
			if code != tt.want {
				t.Fatalf("Expected status %d, got %d", tt.want, code)
			}
			if code == http.StatusOK && (est.Amount != tt.amount || !est.Found) {
				t.Errorf("Expected amount %v, got %+v", tt.amount, est)
			}
		})
	}
}

func TestDroneWeatherHandler(t *testing.T) {
	h := testRouter(newTestDeps(t))

	var v services.WeatherVerdict
	code, _ := do(t, h, http.MethodGet, "/drones/D002/weather?condition=Rainy", nil, &v)
	if code != http.StatusOK || v.Compatible || !v.DroneFound {
		t.Errorf("Expected D002 incompatible with rain, got %d %+v", code, v)
	}

	if code, _ := do(t, h, http.MethodGet, "/drones/D002/weather", nil, nil); code != http.StatusBadRequest {
		t.Errorf("Expected 400 without condition, got %d", code)
	}
}

func TestCheckAssignmentHandler(t *testing.T) {
	h := testRouter(newTestDeps(t))

	var got dtos.AssignmentCheckResponse
	code, _ := do(t, h, http.MethodPost, "/assignments/check", dtos.CheckAssignmentRequest{
		PilotID: "P002", DroneID: "D002", MissionID: "PRJ001", Weather: "Heavy Rain",
	}, &got)

	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	want := []string{
		"Budget Overrun: Pilot cost 15000 > Budget 10000",
		"Missing Certification: Pilot lacks Thermal Cert",
		"Weather Risk: Drone D002 not rated for Heavy Rain",
	}
	if got.Valid || len(got.Issues) != len(want) {
		t.Fatalf("Expected %d issues, got %+v", len(want), got)
	}
	for i := range want {
		if got.Issues[i] != want[i] {
			t.Errorf("Issue %d: expected %q, got %q", i, want[i], got.Issues[i])
		}
	}
}

func TestCheckAssignmentHandler_Errors(t *testing.T) {
	h := testRouter(newTestDeps(t))

	tests := []struct {
		name string
		body any
		want int
	}{
		{"unknown mission", dtos.CheckAssignmentRequest{PilotID: "P001", DroneID: "D001", MissionID: "PRJ404"}, http.StatusNotFound},
		{"missing ids", dtos.CheckAssignmentRequest{PilotID: "P001"}, http.StatusBadRequest},
		{"not json", "nope", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _ := do(t, h, http.MethodPost, "/assignments/check", tt.body, nil); code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, code)
			}
		})
	}
}

func TestConflictsHandler(t *testing.T) {
	h := testRouter(newTestDeps(t))

	var got dtos.ConflictsResponse
	do(t, h, http.MethodGet, "/conflicts", nil, &got)

	if got.Count != 2 {
		t.Fatalf("Expected 2 issues, got %+v", got)
	}
	if !strings.HasPrefix(got.Issues[0], "🚨 Mission PRJ001 Conflict: Budget Overrun") {
		t.Errorf("Unexpected first issue %q", got.Issues[0])
	}
}

func TestTableHandler(t *testing.T) {
	h := testRouter(newTestDeps(t))

	var got struct {
		Rows  []map[string]string `json:"rows"`
		Total int                 `json:"total"`
	}
	code, _ := do(t, h, http.MethodGet, "/tables/pilots?limit=1", nil, &got)
	if code != http.StatusOK || len(got.Rows) != 1 || got.Total != 2 {
		t.Errorf("Expected 1 of 2 rows, got %d %+v", code, got)
	}

	if code, _ := do(t, h, http.MethodGet, "/tables/users", nil, nil); code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown table, got %d", code)
	}
}

func TestWarningsHandler(t *testing.T) {
	h := testRouter(newTestDeps(t))

	var got dtos.WarningsResponse
	code, _ := do(t, h, http.MethodGet, "/records/warnings", nil, &got)
	if code != http.StatusOK || got.Count != 0 {
		t.Errorf("Expected clean records, got %d %+v", code, got)
	}
}

func TestTools(t *testing.T) {
	h := testRouter(newTestDeps(t))

	var tool dtos.ToolResponse
	do(t, h, http.MethodGet, "/tools/check_availability?location=Mumbai", nil, &tool)
	if tool.Result != constants.MsgNoPilotsAvailable {
		t.Errorf("Expected %q, got %q", constants.MsgNoPilotsAvailable, tool.Result)
	}

	do(t, h, http.MethodGet, "/tools/conflicts", nil, &tool)
	if !strings.HasPrefix(tool.Result, constants.MsgActiveConflicts) {
		t.Errorf("Expected conflict report, got %q", tool.Result)
	}

	code, _ := do(t, h, http.MethodPost, "/tools/update_pilot_status", dtos.ToolStatusRequest{ID: "P999", Status: "Available"}, &tool)
	if code != http.StatusOK || tool.Result != "Error: Pilot P999 not found." {
		t.Errorf("Expected rendered not-found text, got %d %q", code, tool.Result)
	}
}

func TestUpdateStatusHandlers(t *testing.T) {
	deps := newTestDeps(t)
	h := testRouter(deps)

	var got dtos.StatusUpdateResponse
	code, _ := do(t, h, http.MethodPost, "/pilots/P001/status", dtos.StatusUpdateRequest{Status: "On Leave"}, &got)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	want := "Updated P001 to On Leave. Sync Result: " + constants.MsgSyncNotConfigured
	if got.Result != want {
		t.Errorf("Expected %q, got %q", want, got.Result)
	}

	pilots, _ := deps.Services.Store.GetTable(constants.TablePilots)
	if pilots.Rows[0][constants.ColPilotStatus] != "On Leave" {
		t.Error("Expected P001 status persisted in the store")
	}

	if code, _ := do(t, h, http.MethodPost, "/drones/D404/status", dtos.StatusUpdateRequest{Status: "Available"}, nil); code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown drone, got %d", code)
	}
	if code, _ := do(t, h, http.MethodPost, "/drones/D001/status", dtos.StatusUpdateRequest{Status: "  "}, nil); code != http.StatusBadRequest {
		t.Errorf("Expected 400 for blank status, got %d", code)
	}
}

func TestSyncPushHandler_NotConfigured(t *testing.T) {
	h := testRouter(newTestDeps(t))

	var got dtos.SyncResponse
	do(t, h, http.MethodPost, "/sync/push", nil, &got)
	if got.Direction != "push" || got.Result != constants.MsgSyncNotConfigured {
		t.Errorf("Expected push not configured, got %+v", got)
	}
}

func TestTriggerSweep(t *testing.T) {
	deps := newTestDeps(t)
	h := testRouter(deps)

	var got dtos.ConflictsResponse
	do(t, h, http.MethodPost, "/admin/jobs/sweep", nil, &got)

	if got.Count != 2 {
		t.Errorf("Expected 2 issues, got %+v", got)
	}
	if v := testutil.ToFloat64(deps.Metrics.ActiveConflicts); v != 2 {
		t.Errorf("Expected active conflicts gauge 2, got %v", v)
	}
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &entities.NotFoundError{Entity: "pilot", ID: "P9"}, http.StatusNotFound},
		{"malformed", &entities.FieldError{Column: "daily_rate_inr", Kind: entities.ErrMalformedField}, http.StatusUnprocessableEntity},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			respondServiceError(rr, time.Now(), tt.err)
			if rr.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, rr.Code)
			}
		})
	}
}
