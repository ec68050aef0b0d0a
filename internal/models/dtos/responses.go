package dtos

import "github.com/Shamanth-8/drones/internal/models/entities"

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// ToolResponse carries a bounded text rendering for the command dispatcher.
type ToolResponse struct {
	Tool   string `json:"tool"`
	Result string `json:"result"`
}

type PilotsResponse struct {
	Count  int              `json:"count"`
	Pilots []entities.Pilot `json:"pilots"`
}

type DronesResponse struct {
	Count  int              `json:"count"`
	Drones []entities.Drone `json:"drones"`
}

type AssignmentCheckResponse struct {
	PilotID   string   `json:"pilot_id"`
	DroneID   string   `json:"drone_id"`
	MissionID string   `json:"mission_id"`
	Valid     bool     `json:"valid"`
	Issues    []string `json:"issues"`
}

type ConflictsResponse struct {
	Revision int64    `json:"revision"`
	Count    int      `json:"count"`
	Issues   []string `json:"issues"`
}

type WarningsResponse struct {
	Count    int                    `json:"count"`
	Warnings []entities.LoadWarning `json:"warnings"`
}

type StatusUpdateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Result string `json:"result"`
}

type SyncResponse struct {
	Direction string `json:"direction"`
	Result    string `json:"result"`
}
