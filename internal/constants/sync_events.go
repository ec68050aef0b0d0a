package constants

// Sync event types for the sync_history table
const (
	SyncEventPull = "TABLE_PULL"
	SyncEventPush = "TABLE_PUSH"
)

// Ops event types written to the event stream
const (
	EventPilotStatusChanged = "pilot_status_changed"
	EventDroneStatusChanged = "drone_status_changed"
	EventConflictSweep      = "conflict_sweep"
	EventTablePulled        = "table_pulled"
)
