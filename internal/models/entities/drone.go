package entities

import (
	"errors"

	"github.com/Shamanth-8/drones/internal/constants"
)

// Drone is a typed drone fleet record.
type Drone struct {
	ID                string `json:"drone_id"`
	Model             string `json:"model"`
	Capabilities      string `json:"capabilities"`
	Status            string `json:"status"`
	Location          string `json:"location"`
	CurrentAssignment string `json:"current_assignment"`
	WeatherResistance string `json:"weather_resistance"`
	MaintenanceDue    string `json:"maintenance_due,omitempty"`

	// DecodeWarning is set when some fields could not be read from the row.
	DecodeWarning string `json:"decode_warning,omitempty"`
}

// DroneFromRow decodes a fleet row; maintenance_due is optional.
func DroneFromRow(row Row) (Drone, error) {
	var errs []error
	text := func(col string) string {
		v, err := row.Text(col)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	d := Drone{
		ID:                text(constants.ColDroneID),
		Model:             text(constants.ColDroneModel),
		Capabilities:      text(constants.ColDroneCapabilities),
		Status:            text(constants.ColDroneStatus),
		Location:          text(constants.ColDroneLocation),
		CurrentAssignment: text(constants.ColDroneAssignment),
		WeatherResistance: text(constants.ColDroneWeatherResist),
		MaintenanceDue:    row[constants.ColDroneMaintenanceDue],
	}
	return d, errors.Join(errs...)
}

// IsAssigned reports whether the drone carries a mission assignment.
func (d Drone) IsAssigned() bool {
	return HasAssignment(d.CurrentAssignment)
}
