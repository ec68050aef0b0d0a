package dtos

// CheckAssignmentRequest validates one pilot/drone/mission triple.
// Weather is optional; when set the weather compatibility check also runs.
type CheckAssignmentRequest struct {
	PilotID   string `json:"pilot_id"`
	DroneID   string `json:"drone_id"`
	MissionID string `json:"mission_id"`
	Weather   string `json:"weather,omitempty"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// ToolStatusRequest is the dispatcher form of a status update, id in the body.
type ToolStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
