package constants

// Record store tables
const (
	TablePilots   = "pilots"
	TableDrones   = "drones"
	TableMissions = "missions"
)

// AllTables lists the record tables in load order.
var AllTables = []string{TablePilots, TableDrones, TableMissions}

// Pilot roster columns
const (
	ColPilotID           = "pilot_id"
	ColPilotName         = "name"
	ColPilotSkills       = "skills"
	ColPilotCerts        = "certifications"
	ColPilotLocation     = "location"
	ColPilotStatus       = "status"
	ColPilotAssignment   = "current_assignment"
	ColPilotAvailable    = "available_from"
	ColPilotDailyRateINR = "daily_rate_inr"
)

// Drone fleet columns
const (
	ColDroneID             = "drone_id"
	ColDroneModel          = "model"
	ColDroneCapabilities   = "capabilities"
	ColDroneStatus         = "status"
	ColDroneLocation       = "location"
	ColDroneAssignment     = "current_assignment"
	ColDroneWeatherResist  = "weather_resistance"
	ColDroneMaintenanceDue = "maintenance_due"
)

// Mission columns
const (
	ColMissionID             = "project_id"
	ColMissionClient         = "client"
	ColMissionLocation       = "location"
	ColMissionRequiredSkills = "required_skills"
	ColMissionRequiredCerts  = "required_certs"
	ColMissionStart          = "start_date"
	ColMissionEnd            = "end_date"
	ColMissionPriority       = "priority"
	ColMissionBudgetINR      = "mission_budget_inr"
)

// NoAssignment is the current_assignment sentinel for an idle pilot or drone.
const NoAssignment = "-"

// Statuses
const (
	StatusAvailable   = "Available"
	StatusAssigned    = "Assigned"
	StatusOnLeave     = "On Leave"
	StatusMaintenance = "Maintenance"
	StatusDeployed    = "Deployed"
)

// Mission priorities
const (
	PriorityNormal = "Normal"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// DefaultResultLimit caps rows in bounded renderings.
const DefaultResultLimit = 10

// DefaultColumns is the canonical header order per table, used when a
// source (Airtable, empty CSV) carries no column order of its own.
var DefaultColumns = map[string][]string{
	TablePilots: {
		ColPilotID, ColPilotName, ColPilotSkills, ColPilotCerts, ColPilotLocation,
		ColPilotStatus, ColPilotAssignment, ColPilotAvailable, ColPilotDailyRateINR,
	},
	TableDrones: {
		ColDroneID, ColDroneModel, ColDroneCapabilities, ColDroneStatus, ColDroneLocation,
		ColDroneAssignment, ColDroneWeatherResist, ColDroneMaintenanceDue,
	},
	TableMissions: {
		ColMissionID, ColMissionClient, ColMissionLocation, ColMissionRequiredSkills,
		ColMissionRequiredCerts, ColMissionStart, ColMissionEnd, ColMissionPriority, ColMissionBudgetINR,
	},
}

// IDColumns names the identifier column of each table.
var IDColumns = map[string]string{
	TablePilots:   ColPilotID,
	TableDrones:   ColDroneID,
	TableMissions: ColMissionID,
}
