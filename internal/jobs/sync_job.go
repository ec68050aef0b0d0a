package jobs

import (
	"context"
	"strings"
	"time"

	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/services"
)

// initialSyncStaleAfter is how old the last successful pull may be before a
// pull runs at startup.
const initialSyncStaleAfter = 4 * time.Hour

// SyncHistory reports the last successful sync of a table.
type SyncHistory interface {
	GetLastSyncTimeForEvent(ctx context.Context, table, event string) (*time.Time, error)
}

// SyncJob pulls every table from the remote provider into the record store
type SyncJob struct {
	sync    *services.SyncService
	history SyncHistory
	now     func() time.Time
}

// NewSyncJob creates a pull job. history may be nil, in which case the
// startup pull always runs.
func NewSyncJob(sync *services.SyncService, history SyncHistory) *SyncJob {
	return &SyncJob{sync: sync, history: history, now: time.Now}
}

// Run executes one pull and returns the per-table report
func (j *SyncJob) Run(ctx context.Context) string {
	start := j.now()
	logging.Info("Starting remote pull")

	report := j.sync.PullAll(ctx)

	failed := strings.Count(report, "❌")
	logging.Info("Remote pull finished",
		"duration", time.Since(start).Truncate(time.Millisecond).String(),
		"failed_tables", failed,
		"report", report,
	)
	return report
}

// ShouldRunInitialSync is true when any table has no successful pull
// recorded within initialSyncStaleAfter.
func (j *SyncJob) ShouldRunInitialSync(ctx context.Context) bool {
	if !j.sync.Configured() {
		return false
	}
	if j.history == nil {
		return true
	}

	for _, table := range constants.AllTables {
		last, err := j.history.GetLastSyncTimeForEvent(ctx, table, constants.SyncEventPull)
		if err != nil {
			logging.Warn("Error checking last sync time, running sync anyway", "table", table, "error", err)
			return true
		}
		if last == nil {
			logging.Info("No previous pull found, running initial sync", "table", table)
			return true
		}
		if age := j.now().Sub(*last); age > initialSyncStaleAfter {
			logging.Info("Last pull is stale, running initial sync", "table", table, "age", age.Truncate(time.Minute).String())
			return true
		}
	}

	logging.Info("Recent pull found, skipping initial sync")
	return false
}
