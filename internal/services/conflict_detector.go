package services

import (
	"fmt"
	"strings"

	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/models/entities"
)

// ConflictDetector validates recorded pilot/drone/mission assignments.
type ConflictDetector struct {
	store  TableReader
	roster *RosterService
	fleet  *FleetService
}

func NewConflictDetector(store TableReader, roster *RosterService, fleet *FleetService) *ConflictDetector {
	return &ConflictDetector{store: store, roster: roster, fleet: fleet}
}

// CheckAssignment runs the budget and certification checks for one triple
// and returns every issue found, budget first. Unknown ids and malformed
// fields are returned as errors.
func (d *ConflictDetector) CheckAssignment(pilotID, droneID, missionID string) ([]string, error) {
	mission, err := d.lookup(constants.TableMissions, constants.ColMissionID, "mission", missionID)
	if err != nil {
		return nil, err
	}
	pilot, err := d.lookup(constants.TablePilots, constants.ColPilotID, "pilot", pilotID)
	if err != nil {
		return nil, err
	}
	// The drone takes no part in these checks but must exist.
	if _, err := d.lookup(constants.TableDrones, constants.ColDroneID, "drone", droneID); err != nil {
		return nil, err
	}

	issues := []string{}

	start, err := mission.Date(constants.ColMissionStart)
	if err != nil {
		return nil, err
	}
	end, err := mission.Date(constants.ColMissionEnd)
	if err != nil {
		return nil, err
	}
	budget, err := mission.Amount(constants.ColMissionBudgetINR)
	if err != nil {
		return nil, err
	}
	cost, err := d.roster.CalculateCost(pilotID, entities.InclusiveDays(start, end))
	if err != nil {
		return nil, err
	}
	if cost > budget {
		issues = append(issues, fmt.Sprintf("Budget Overrun: Pilot cost %s > Budget %s",
			entities.FormatAmount(cost), entities.FormatAmount(budget)))
	}

	required, err := mission.Text(constants.ColMissionRequiredCerts)
	if err != nil {
		return nil, err
	}
	held, err := pilot.Text(constants.ColPilotCerts)
	if err != nil {
		return nil, err
	}
	for _, cert := range splitList(required) {
		if !containsNormalized(held, cert) {
			issues = append(issues, fmt.Sprintf("Missing Certification: Pilot lacks %s", cert))
		}
	}

	return issues, nil
}

// CheckAssignmentInWeather is CheckAssignment plus the weather compatibility
// check for the given condition.
func (d *ConflictDetector) CheckAssignmentInWeather(pilotID, droneID, missionID, condition string) ([]string, error) {
	issues, err := d.CheckAssignment(pilotID, droneID, missionID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(condition) != "" && !d.fleet.CheckWeatherCompatibility(droneID, condition) {
		issues = append(issues, fmt.Sprintf("Weather Risk: Drone %s not rated for %s", droneID, condition))
	}
	return issues, nil
}

func (d *ConflictDetector) lookup(table, col, entity, id string) (entities.Row, error) {
	t, err := d.store.GetTable(table)
	if err != nil {
		return nil, err
	}
	row, err := findRow(t, col, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &entities.NotFoundError{Entity: entity, ID: id}
	}
	return row, nil
}

// pilotEntry is one row of the pilots table as seen by the sweep.
type pilotEntry struct {
	assignment entities.Assignment
	err        error
}

// BuildAssignments pairs every assigned pilot with the first drone in
// source order carrying the same mission id.
func (d *ConflictDetector) BuildAssignments() ([]entities.Assignment, error) {
	entries, err := d.assignmentIndex()
	if err != nil {
		return nil, err
	}
	out := make([]entities.Assignment, 0, len(entries))
	for _, e := range entries {
		if e.err == nil {
			out = append(out, e.assignment)
		}
	}
	return out, nil
}

func (d *ConflictDetector) assignmentIndex() ([]pilotEntry, error) {
	pilots, err := d.store.GetTable(constants.TablePilots)
	if err != nil {
		return nil, err
	}
	drones, err := d.store.GetTable(constants.TableDrones)
	if err != nil {
		return nil, err
	}

	dronesByMission := make(map[string]string)
	for _, row := range drones.Rows {
		mission := strings.TrimSpace(row[constants.ColDroneAssignment])
		if !entities.HasAssignment(mission) {
			continue
		}
		if _, taken := dronesByMission[mission]; !taken {
			dronesByMission[mission] = row[constants.ColDroneID]
		}
	}

	var entries []pilotEntry
	for _, row := range pilots.Rows {
		raw, err := row.Text(constants.ColPilotAssignment)
		if err != nil {
			entries = append(entries, pilotEntry{
				assignment: entities.Assignment{PilotID: row[constants.ColPilotID], PilotName: row[constants.ColPilotName]},
				err:        err,
			})
			continue
		}
		if !entities.HasAssignment(raw) {
			continue
		}
		mission := strings.TrimSpace(raw)
		a := entities.Assignment{
			MissionID: mission,
			PilotID:   row[constants.ColPilotID],
			PilotName: row[constants.ColPilotName],
		}
		droneID, matched := dronesByMission[mission]
		if matched && strings.TrimSpace(droneID) == "" {
			// A drone carries the mission but has no id to look up.
			entries = append(entries, pilotEntry{
				assignment: a,
				err:        &entities.FieldError{Column: constants.ColDroneID, Kind: entities.ErrMissingField},
			})
			continue
		}
		a.DroneID = droneID
		entries = append(entries, pilotEntry{assignment: a})
	}
	return entries, nil
}

// CheckAllActiveConflicts checks every assigned pilot and returns prefixed
// issues in pilot order. A failure on one pilot becomes an issue line and
// never stops the sweep.
func (d *ConflictDetector) CheckAllActiveConflicts() []string {
	issues := []string{}

	entries, err := d.assignmentIndex()
	if err != nil {
		logging.Error("Conflict sweep could not read tables", "error", err)
		return append(issues, fmt.Sprintf("⚠️ Error checking assignments: %v", err))
	}

	for _, e := range entries {
		a := e.assignment
		if e.err != nil {
			if a.MissionID != "" {
				issues = append(issues, fmt.Sprintf("⚠️ Error checking Mission %s: %v", a.MissionID, e.err))
			} else {
				// No mission id could be read from the pilot row.
				issues = append(issues, fmt.Sprintf("⚠️ Error checking Pilot %s: %v", a.PilotID, e.err))
			}
			continue
		}
		if !a.HasDrone() {
			issues = append(issues, fmt.Sprintf("⚠️ Mission %s: Pilot %s assigned but no Drone assigned.", a.MissionID, a.PilotName))
			continue
		}

		found, err := d.checkIsolated(a)
		if err != nil {
			issues = append(issues, fmt.Sprintf("⚠️ Error checking Mission %s: %v", a.MissionID, err))
			continue
		}
		for _, c := range found {
			issues = append(issues, fmt.Sprintf("🚨 Mission %s Conflict: %s", a.MissionID, c))
		}
	}
	return issues
}

// checkIsolated runs CheckAssignment, converting a panic on bad data into an error.
func (d *ConflictDetector) checkIsolated(a entities.Assignment) (issues []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Recovered during assignment check", "mission", a.MissionID, "pilot", a.PilotID, "panic", r)
			issues, err = nil, fmt.Errorf("%v", r)
		}
	}()
	return d.CheckAssignment(a.PilotID, a.DroneID, a.MissionID)
}
