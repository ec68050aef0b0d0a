package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/Shamanth-8/drones/internal/logging"
)

// Schedules are cron specs; descriptors such as "@every 1h" are accepted.
type Schedules struct {
	Sync  string
	Sweep string
}

// Scheduler owns the cron runner for the background jobs
type Scheduler struct {
	cron *cron.Cron
}

// InitializeJobs registers the pull and sweep jobs and starts the scheduler.
// The pull job is only scheduled when a provider is configured; syncJob
// may be nil.
func InitializeJobs(ctx context.Context, schedules Schedules, syncJob *SyncJob, sweepJob *ConflictSweepJob) (*Scheduler, error) {
	c := cron.New()

	if syncJob != nil && syncJob.sync.Configured() {
		if _, err := c.AddFunc(schedules.Sync, func() { syncJob.Run(ctx) }); err != nil {
			return nil, fmt.Errorf("invalid sync schedule %q: %w", schedules.Sync, err)
		}
		logging.Info("Scheduled remote pull", "schedule", schedules.Sync)

		if syncJob.ShouldRunInitialSync(ctx) {
			go syncJob.Run(ctx)
		}
	}

	if sweepJob != nil {
		if _, err := c.AddFunc(schedules.Sweep, func() { sweepJob.Run(ctx) }); err != nil {
			return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedules.Sweep, err)
		}
		logging.Info("Scheduled conflict sweep", "schedule", schedules.Sweep)
	}

	c.Start()
	return &Scheduler{cron: c}, nil
}

// Stop halts scheduling and waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
