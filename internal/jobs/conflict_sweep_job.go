package jobs

import (
	"context"
	"strconv"
	"time"

	"github.com/Shamanth-8/drones/internal/common"
	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/metrics"
)

// ConflictSource produces the current sweep result
type ConflictSource interface {
	ActiveConflicts() []string
}

// ConflictSweepJob runs the global conflict sweep in the background and
// exports the result as a gauge and an ops event.
type ConflictSweepJob struct {
	source  ConflictSource
	events  common.EventPublisher
	metrics *metrics.MetricsRegistry
}

func NewConflictSweepJob(source ConflictSource, events common.EventPublisher, reg *metrics.MetricsRegistry) *ConflictSweepJob {
	if events == nil {
		events = common.NoopPublisher{}
	}
	return &ConflictSweepJob{source: source, events: events, metrics: reg}
}

// Run sweeps once and returns the issues found
func (j *ConflictSweepJob) Run(ctx context.Context) []string {
	start := time.Now()
	issues := j.source.ActiveConflicts()

	if j.metrics != nil {
		j.metrics.ConflictSweepsTotal.Inc()
		j.metrics.ActiveConflicts.Set(float64(len(issues)))
	}

	ev := common.OpsEvent{
		Type:   constants.EventConflictSweep,
		Source: "JOB",
		Fields: map[string]string{"issues": strconv.Itoa(len(issues))},
		At:     time.Now().UTC(),
	}
	if err := j.events.Publish(ctx, ev); err != nil {
		logging.Warn("Failed to publish sweep event", "error", err)
	}

	logging.Info("Conflict sweep finished", "issues", len(issues), "duration", time.Since(start).String())
	return issues
}
