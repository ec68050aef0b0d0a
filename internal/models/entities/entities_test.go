package entities

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"five day window", "2024-01-01", "2024-01-05", 5},
		{"same day", "2024-03-10", "2024-03-10", 1},
		{"across month", "2024-01-30", "2024-02-02", 4},
		{"end before start", "2024-01-05", "2024-01-01", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := ParseDate(tt.start)
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.start, err)
			}
			end, err := ParseDate(tt.end)
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.end, err)
			}
			if got := InclusiveDays(start, end); got != tt.want {
				t.Errorf("InclusiveDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseDate_Layouts(t *testing.T) {
	want := time.Date(2024, 2, 6, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-02-06", "2024/02/06", "02/06/2024", " 2024-02-06 ", "Feb 6, 2024", "6 Feb 2024"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q) error: %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "soon", "2024-13-45"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q) expected error", in)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1000", 1000, false},
		{"1,500", 1500, false},
		{" 2500.5 ", 2500.5, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-10", 0, true},
		{"NaN", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAmount(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(6000); got != "6000" {
		t.Errorf("FormatAmount(6000) = %q, want %q", got, "6000")
	}
	if got := FormatAmount(2500.5); got != "2500.5" {
		t.Errorf("FormatAmount(2500.5) = %q, want %q", got, "2500.5")
	}
}

func TestRowAccessors_FieldErrors(t *testing.T) {
	row := Row{"daily_rate_inr": "lots", "start_date": "2024-01-01"}

	_, err := row.Text("status")
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("Expected ErrMissingField, got %v", err)
	}
	if err.Error() != "missing field status" {
		t.Errorf("Expected message %q, got %q", "missing field status", err.Error())
	}

	_, err = row.Amount("daily_rate_inr")
	if !errors.Is(err, ErrMalformedField) {
		t.Fatalf("Expected ErrMalformedField, got %v", err)
	}
	if !strings.Contains(err.Error(), "daily_rate_inr") {
		t.Errorf("Expected column name in %q", err.Error())
	}

	if _, err := row.Date("start_date"); err != nil {
		t.Errorf("Expected valid date, got %v", err)
	}
}

func TestNotFoundError(t *testing.T) {
	err := error(&NotFoundError{Entity: "mission", ID: "M9"})
	if !errors.Is(err, ErrNotFound) {
		t.Error("Expected NotFoundError to match ErrNotFound")
	}
	if err.Error() != "mission M9 not found" {
		t.Errorf("Expected %q, got %q", "mission M9 not found", err.Error())
	}
}

func TestPilotFromRow(t *testing.T) {
	row := Row{
		"pilot_id":           "P001",
		"name":               "Arjun",
		"skills":             "Mapping, Survey",
		"certifications":     "DGCA, Night Ops",
		"location":           "Bangalore",
		"status":             "Available",
		"current_assignment": "-",
		"available_from":     "2024-02-05",
		"daily_rate_inr":     "1500",
	}

	p, err := PilotFromRow(row)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.ID != "P001" || p.DailyRateINR != 1500 {
		t.Errorf("Unexpected pilot: %+v", p)
	}
	if p.AvailableFrom == nil || p.AvailableFrom.Day() != 5 {
		t.Errorf("Expected available_from day 5, got %v", p.AvailableFrom)
	}
	if p.IsAssigned() {
		t.Error("Expected sentinel assignment to be unassigned")
	}
}

func TestPilotFromRow_PartialDecode(t *testing.T) {
	row := Row{"pilot_id": "P002", "name": "Neha", "daily_rate_inr": "n/a"}

	p, err := PilotFromRow(row)
	if err == nil {
		t.Fatal("Expected decode error")
	}
	if p.ID != "P002" || p.Name != "Neha" {
		t.Errorf("Expected best-effort fields, got %+v", p)
	}
	if !errors.Is(err, ErrMissingField) || !errors.Is(err, ErrMalformedField) {
		t.Errorf("Expected both missing and malformed errors, got %v", err)
	}
}

func TestMissionFromRow(t *testing.T) {
	row := Row{
		"project_id":         "PRJ001",
		"required_certs":     "DGCA",
		"start_date":         "2024-01-01",
		"end_date":           "2024-01-05",
		"priority":           "High",
		"mission_budget_inr": "10000",
	}
	m, err := MissionFromRow(row)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if m.DurationDays() != 5 {
		t.Errorf("Expected 5 days, got %d", m.DurationDays())
	}
	if m.BudgetINR != 10000 {
		t.Errorf("Expected budget 10000, got %v", m.BudgetINR)
	}
}

func TestHasAssignment(t *testing.T) {
	cases := map[string]bool{"-": false, "": false, "  ": false, "PRJ001": true, " - ": false}
	for in, want := range cases {
		if got := HasAssignment(in); got != want {
			t.Errorf("HasAssignment(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTable_CloneIsDeep(t *testing.T) {
	orig := Table{Name: "pilots", Columns: []string{"pilot_id"}, Rows: []Row{{"pilot_id": "P1"}}}
	cp := orig.Clone()
	cp.Rows[0]["pilot_id"] = "P2"
	cp.Columns[0] = "x"
	if orig.Rows[0]["pilot_id"] != "P1" || orig.Columns[0] != "pilot_id" {
		t.Error("Clone shares state with original")
	}
	if orig.Find("pilot_id", "P1") != 0 || orig.Find("pilot_id", "P9") != -1 {
		t.Error("Find returned wrong index")
	}
}
