package constants

const (
	MsgPilotNotFound      = "Error: Pilot %s not found."
	MsgDroneNotFound      = "Error: Drone %s not found."
	MsgStatusUpdated      = "Updated %s to %s. Sync Result: %s"
	MsgSyncNotConfigured  = "Remote sync not configured."
	MsgNoPilotsAvailable  = "No pilots available."
	MsgNoDronesAvailable  = "No drones available."
	MsgNoActiveConflicts  = "✅ **No active conflicts detected in current assignments.**"
	MsgActiveConflicts    = "**⚠️ Active Conflicts Detected:**"
	MsgLocalSaveFailed    = "Local save failed: %v"
	MsgInvalidRequestBody = "Invalid request body"
)
