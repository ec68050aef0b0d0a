package services

import (
	"fmt"
	"strings"

	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/models/entities"
)

// ValidateTables decodes every row into its typed record and collects the
// problems found: undecodable fields, duplicate ids, missions that end before
// they start, and assignments naming no known mission. Rows stay in the
// store either way; warnings are advisory.
func ValidateTables(pilots, drones, missions entities.Table) []entities.LoadWarning {
	warnings := []entities.LoadWarning{}
	add := func(table string, i int, id, msg string) {
		warnings = append(warnings, entities.LoadWarning{Table: table, Row: i + 1, RecordID: id, Message: msg})
	}

	missionIDs := make(map[string]struct{})
	seen := make(map[string]struct{})
	for i, row := range missions.Rows {
		m, err := entities.MissionFromRow(row)
		for _, e := range flatten(err) {
			add(missions.Name, i, m.ID, e.Error())
		}
		if m.ID == "" {
			continue
		}
		if _, dup := seen[m.ID]; dup {
			add(missions.Name, i, m.ID, "duplicate project_id")
		}
		seen[m.ID] = struct{}{}
		missionIDs[strings.TrimSpace(m.ID)] = struct{}{}
		if err == nil && m.EndDate.Before(m.StartDate) {
			add(missions.Name, i, m.ID, fmt.Sprintf("end_date %s is before start_date %s",
				m.EndDate.Format("2006-01-02"), m.StartDate.Format("2006-01-02")))
		}
	}

	checkRef := func(table string, i int, id, assignment string) {
		if !entities.HasAssignment(assignment) {
			return
		}
		if _, ok := missionIDs[strings.TrimSpace(assignment)]; !ok {
			add(table, i, id, fmt.Sprintf("current_assignment %s names no known mission", strings.TrimSpace(assignment)))
		}
	}

	seen = make(map[string]struct{})
	for i, row := range pilots.Rows {
		p, err := entities.PilotFromRow(row)
		for _, e := range flatten(err) {
			add(pilots.Name, i, p.ID, e.Error())
		}
		if p.ID != "" {
			if _, dup := seen[p.ID]; dup {
				add(pilots.Name, i, p.ID, "duplicate pilot_id")
			}
			seen[p.ID] = struct{}{}
		}
		checkRef(pilots.Name, i, p.ID, p.CurrentAssignment)
	}

	seen = make(map[string]struct{})
	for i, row := range drones.Rows {
		d, err := entities.DroneFromRow(row)
		for _, e := range flatten(err) {
			add(drones.Name, i, d.ID, e.Error())
		}
		if d.ID != "" {
			if _, dup := seen[d.ID]; dup {
				add(drones.Name, i, d.ID, "duplicate drone_id")
			}
			seen[d.ID] = struct{}{}
		}
		checkRef(drones.Name, i, d.ID, d.CurrentAssignment)
	}

	return warnings
}

// flatten splits an errors.Join result into its parts.
func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}

// LoadWarnings validates the current tables of store.
func LoadWarnings(store TableReader) ([]entities.LoadWarning, error) {
	var tables [3]entities.Table
	for i, name := range []string{constants.TablePilots, constants.TableDrones, constants.TableMissions} {
		t, err := store.GetTable(name)
		if err != nil {
			return nil, err
		}
		tables[i] = t
	}
	return ValidateTables(tables[0], tables[1], tables[2]), nil
}
