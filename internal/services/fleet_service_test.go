package services

import (
	"testing"

	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/recordstore"
)

func TestAvailableDrones_Filters(t *testing.T) {
	fleet := NewFleetService(fixtureStore(nil), UnknownDroneFailOpen)

	tests := []struct {
		name   string
		filter DroneFilter
		want   []string
	}{
		{"no filter", DroneFilter{}, []string{"D001", "D002"}},
		{"capability substring", DroneFilter{Capability: "lidar"}, []string{"D001"}},
		{"capability on unavailable drone", DroneFilter{Capability: "thermal"}, []string{}},
		{"location", DroneFilter{Location: "MUMBAI"}, []string{"D002"}},
		{"limit", DroneFilter{Limit: 1}, []string{"D001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fleet.AvailableDrones(tt.filter)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			ids := make([]string, len(got))
			for i, d := range got {
				ids[i] = d.ID
			}
			if !equalStrings(ids, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, ids)
			}
		})
	}
}

func TestCheckWeatherCompatibility(t *testing.T) {
	fleet := NewFleetService(fixtureStore(nil), UnknownDroneFailOpen)

	tests := []struct {
		droneID   string
		condition string
		want      bool
	}{
		{"D002", "Heavy Rain", false},
		{"D004", "light rain", false},
		{"D001", "Heavy Rain", true},
		{"D003", "Rainy", true},
		{"D002", "Clear", true},
		{"D002", "", true},
		{"D999", "Heavy Rain", true},
	}

	for _, tt := range tests {
		if got := fleet.CheckWeatherCompatibility(tt.droneID, tt.condition); got != tt.want {
			t.Errorf("CheckWeatherCompatibility(%q, %q) = %v, want %v", tt.droneID, tt.condition, got, tt.want)
		}
	}
}

func TestCheckWeather_FailClosedPolicy(t *testing.T) {
	fleet := NewFleetService(fixtureStore(nil), UnknownDroneFailClosed)

	v := fleet.CheckWeather("D999", "Clear")
	if v.Compatible || v.DroneFound {
		t.Errorf("Expected unknown drone to be incompatible under fail-closed, got %+v", v)
	}

	v = fleet.CheckWeather("D001", "Heavy Rain")
	if !v.Compatible || !v.DroneFound {
		t.Errorf("Expected known rated drone to be compatible, got %+v", v)
	}
}

func TestCheckWeather_MissingRatingColumnFollowsPolicy(t *testing.T) {
	drones := makeTable(constants.TableDrones, []string{"drone_id", "status"},
		[]string{"D001", "Available"},
	)
	store := recordstore.NewFromTables(recordstore.NewMemoryBackend(), drones)

	if !NewFleetService(store, UnknownDroneFailOpen).CheckWeatherCompatibility("D001", "Rain") {
		t.Error("Expected fail-open to report compatible")
	}
	if NewFleetService(store, UnknownDroneFailClosed).CheckWeatherCompatibility("D001", "Rain") {
		t.Error("Expected fail-closed to report incompatible")
	}
}

func TestParseUnknownDronePolicy(t *testing.T) {
	tests := map[string]UnknownDronePolicy{
		"closed":  UnknownDroneFailClosed,
		" CLOSED": UnknownDroneFailClosed,
		"open":    UnknownDroneFailOpen,
		"":        UnknownDroneFailOpen,
		"strict":  UnknownDroneFailOpen,
	}
	for in, want := range tests {
		if got := ParseUnknownDronePolicy(in); got != want {
			t.Errorf("ParseUnknownDronePolicy(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAvailableDrones_FlagsUnreadableFields(t *testing.T) {
	drones := makeTable(constants.TableDrones,
		[]string{"drone_id", "model", "capabilities", "status", "location", "current_assignment"},
		[]string{"D001", "DJI M300", "RGB", "Available", "Pune", "-"},
	)
	fleet := NewFleetService(recordstore.NewFromTables(recordstore.NewMemoryBackend(), drones), UnknownDroneFailOpen)

	got, err := fleet.AvailableDrones(DroneFilter{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 1 || got[0].ID != "D001" {
		t.Fatalf("Expected D001 listed, got %+v", got)
	}
	if got[0].DecodeWarning != "missing field weather_resistance" {
		t.Errorf("Expected weather_resistance warning, got %q", got[0].DecodeWarning)
	}
}
