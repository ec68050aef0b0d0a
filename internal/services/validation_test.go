package services

import (
	"strings"
	"testing"

	"github.com/Shamanth-8/drones/internal/models/entities"
	"github.com/Shamanth-8/drones/internal/recordstore"
)

func TestValidateTables_CleanFixture(t *testing.T) {
	warnings := ValidateTables(fixturePilots(), fixtureDrones(), fixtureMissions())
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

func TestValidateTables_CollectsProblems(t *testing.T) {
	pilots := pilotTable(
		[]string{"P1", "Asha", "Mapping", "DGCA", "Pune", "Available", "-", "2024-01-01", "cheap"},
		[]string{"P1", "Asha again", "Mapping", "DGCA", "Pune", "Available", "-", "2024-01-01", "1000"},
		[]string{"P2", "Ravi", "Mapping", "DGCA", "Pune", "Assigned", "M404", "2024-01-01", "1000"},
	)
	drones := droneTable(
		[]string{"D1", "DJI M300", "RGB", "Deployed", "Pune", "M405", "IP43", ""},
	)
	missions := missionTable(
		[]string{"M1", "Client", "Pune", "Mapping", "DGCA", "2024-01-05", "2024-01-01", "High", "10000"},
	)

	warnings := ValidateTables(pilots, drones, missions)

	want := []entities.LoadWarning{
		{Table: "missions", Row: 1, RecordID: "M1", Message: "end_date 2024-01-01 is before start_date 2024-01-05"},
		{Table: "pilots", Row: 1, RecordID: "P1"},
		{Table: "pilots", Row: 2, RecordID: "P1", Message: "duplicate pilot_id"},
		{Table: "pilots", Row: 3, RecordID: "P2", Message: "current_assignment M404 names no known mission"},
		{Table: "drones", Row: 1, RecordID: "D1", Message: "current_assignment M405 names no known mission"},
	}
	if len(warnings) != len(want) {
		t.Fatalf("Expected %d warnings, got %d: %v", len(want), len(warnings), warnings)
	}
	for i, w := range want {
		got := warnings[i]
		if got.Table != w.Table || got.Row != w.Row || got.RecordID != w.RecordID {
			t.Errorf("Warning %d: expected %s[%d] %s, got %v", i, w.Table, w.Row, w.RecordID, got)
		}
		if w.Message != "" && got.Message != w.Message {
			t.Errorf("Warning %d: expected message %q, got %q", i, w.Message, got.Message)
		}
	}
	if !strings.Contains(warnings[1].Message, "daily_rate_inr") {
		t.Errorf("Expected rate warning to name the column, got %q", warnings[1].Message)
	}
}

func TestLoadWarnings_FromStore(t *testing.T) {
	store := recordstore.NewFromTables(recordstore.NewMemoryBackend(),
		pilotTable([]string{"P1", "Asha", "Mapping", "DGCA", "Pune", "Assigned", "M9", "2024-01-01", "1000"}),
	)

	warnings, err := LoadWarnings(store)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(warnings) != 1 || warnings[0].RecordID != "P1" {
		t.Errorf("Expected one dangling assignment warning, got %v", warnings)
	}
}
