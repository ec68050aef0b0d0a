package entities

// Assignment is a pilot/drone pairing reconstructed from the shared
// current_assignment mission id. DroneID is empty when no drone carries the
// pilot's mission.
type Assignment struct {
	MissionID string `json:"mission_id"`
	PilotID   string `json:"pilot_id"`
	PilotName string `json:"pilot_name"`
	DroneID   string `json:"drone_id,omitempty"`
}

// HasDrone reports whether a drone was found for the mission.
func (a Assignment) HasDrone() bool {
	return a.DroneID != ""
}
