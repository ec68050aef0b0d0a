package services

import (
	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/models/entities"
)

// UnknownDronePolicy decides the weather verdict when the drone or its
// rating cannot be found.
type UnknownDronePolicy int

const (
	UnknownDroneFailOpen UnknownDronePolicy = iota
	UnknownDroneFailClosed
)

// ParseUnknownDronePolicy maps "closed" to fail-closed; anything else is fail-open.
func ParseUnknownDronePolicy(s string) UnknownDronePolicy {
	if normalize(s) == "closed" {
		return UnknownDroneFailClosed
	}
	return UnknownDroneFailOpen
}

// DroneFilter narrows the available drone listing. Empty fields do not filter.
type DroneFilter struct {
	Location   string
	Capability string
	Limit      int
}

// WeatherVerdict is the result of a weather compatibility check.
type WeatherVerdict struct {
	DroneID    string `json:"drone_id"`
	Condition  string `json:"condition"`
	Compatible bool   `json:"compatible"`
	DroneFound bool   `json:"drone_found"`
}

// FleetService answers drone availability and compatibility questions.
type FleetService struct {
	store  TableReader
	policy UnknownDronePolicy
}

func NewFleetService(store TableReader, policy UnknownDronePolicy) *FleetService {
	return &FleetService{store: store, policy: policy}
}

// AvailableDrones returns drones with status exactly "Available" that match
// the filter, in source order.
func (s *FleetService) AvailableDrones(f DroneFilter) ([]entities.Drone, error) {
	t, err := s.AvailableDroneTable(f)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Drone, 0, len(t.Rows))
	for _, row := range t.Rows {
		d, err := entities.DroneFromRow(row)
		if err != nil {
			d.DecodeWarning = err.Error()
			logging.Debug("Listing drone with unreadable fields", "drone_id", d.ID, "error", err)
		}
		out = append(out, d)
	}
	return out, nil
}

// AvailableDroneTable is AvailableDrones keeping the raw rows and header.
func (s *FleetService) AvailableDroneTable(f DroneFilter) (entities.Table, error) {
	t, err := s.store.GetTable(constants.TableDrones)
	if err != nil {
		return entities.Table{}, err
	}
	result := entities.Table{Name: t.Name, Columns: t.Columns, Rows: []entities.Row{}}

	for _, row := range t.Rows {
		ok, err := matchDrone(row, f)
		if err != nil {
			return entities.Table{}, err
		}
		if ok {
			result.Rows = append(result.Rows, row)
		}
	}

	result.Rows = limitRows(result.Rows, f.Limit)
	return result, nil
}

func matchDrone(row entities.Row, f DroneFilter) (bool, error) {
	status, err := row.Text(constants.ColDroneStatus)
	if err != nil {
		return false, err
	}
	if status != constants.StatusAvailable {
		return false, nil
	}

	if f.Location != "" {
		loc, err := row.Text(constants.ColDroneLocation)
		if err != nil {
			return false, err
		}
		if normalize(loc) != normalize(f.Location) {
			return false, nil
		}
	}

	if f.Capability != "" {
		caps, err := row.Text(constants.ColDroneCapabilities)
		if err != nil {
			return false, err
		}
		if !containsNormalized(caps, f.Capability) {
			return false, nil
		}
	}
	return true, nil
}

// CheckWeatherCompatibility is false only when the condition mentions rain
// and the drone's rating mentions "none". Unknown drones follow the policy.
func (s *FleetService) CheckWeatherCompatibility(droneID, condition string) bool {
	return s.CheckWeather(droneID, condition).Compatible
}

// CheckWeather is CheckWeatherCompatibility with the lookup outcome.
func (s *FleetService) CheckWeather(droneID, condition string) WeatherVerdict {
	v := WeatherVerdict{DroneID: droneID, Condition: condition}

	resistance, found := s.weatherRating(droneID)
	v.DroneFound = found
	if !found {
		v.Compatible = s.policy == UnknownDroneFailOpen
		return v
	}

	v.Compatible = !(containsNormalized(condition, "rain") && containsNormalized(resistance, "none"))
	return v
}

func (s *FleetService) weatherRating(droneID string) (string, bool) {
	t, err := s.store.GetTable(constants.TableDrones)
	if err != nil {
		return "", false
	}
	row, err := findRow(t, constants.ColDroneID, droneID)
	if err != nil || row == nil {
		return "", false
	}
	resistance, err := row.Text(constants.ColDroneWeatherResist)
	if err != nil {
		return "", false
	}
	return resistance, true
}
