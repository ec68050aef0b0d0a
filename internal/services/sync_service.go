package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Shamanth-8/drones/internal/common"
	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/metrics"
	"github.com/Shamanth-8/drones/internal/models/entities"
	"github.com/Shamanth-8/drones/internal/providers"
)

// TableStore is the record store as seen by services that write.
type TableStore interface {
	TableReader
	ReplaceTable(ctx context.Context, t entities.Table) error
	Update(ctx context.Context, name string, fn func(t *entities.Table) error) error
	Revision() int64
	Version() string
}

// SyncRecorder stores sync attempts; *repositories.SyncHistoryRepo satisfies it.
type SyncRecorder interface {
	RecordSync(ctx context.Context, table, event, provider string, rows int, syncErr error) error
}

// SyncService moves whole tables between the record store and the remote provider.
type SyncService struct {
	store    TableStore
	provider providers.DataProvider // nil when no remote is configured
	history  SyncRecorder           // optional
	events   common.EventPublisher
	metrics  *metrics.MetricsRegistry
}

func NewSyncService(
	store TableStore,
	provider providers.DataProvider,
	history SyncRecorder,
	events common.EventPublisher,
	reg *metrics.MetricsRegistry,
) *SyncService {
	if events == nil {
		events = common.NoopPublisher{}
	}
	return &SyncService{
		store:    store,
		provider: provider,
		history:  history,
		events:   events,
		metrics:  reg,
	}
}

// Configured reports whether a remote provider is set.
func (s *SyncService) Configured() bool {
	return s.provider != nil
}

// PushAll overwrites every remote table with the local copy and returns one
// report line per table. A read-only or missing provider is "not configured".
func (s *SyncService) PushAll(ctx context.Context) string {
	if s.provider == nil || !s.provider.CanWrite() {
		return constants.MsgSyncNotConfigured
	}
	started := time.Now()
	defer s.observeDuration(constants.SyncEventPush, started)

	var lines []string
	for _, name := range constants.AllTables {
		t, err := s.store.GetTable(name)
		if err == nil {
			err = s.provider.ReplaceTable(ctx, t)
		}
		if isUnmapped(err) {
			continue
		}
		s.record(ctx, name, constants.SyncEventPush, len(t.Rows), err)
		if err != nil {
			logging.Error("Push failed", "table", name, "provider", s.provider.GetProviderType(), "error", err)
			lines = append(lines, fmt.Sprintf("❌ Failed %s: %v", name, err))
			continue
		}
		lines = append(lines, fmt.Sprintf("✅ Synced %s", name))
	}
	return strings.Join(lines, "\n")
}

type pullResult struct {
	table entities.Table
	err   error
}

// PullAll fetches every mapped remote table concurrently, then replaces and
// persists each non-empty one in table order. Empty remote tables are skipped.
func (s *SyncService) PullAll(ctx context.Context) string {
	if s.provider == nil {
		return constants.MsgSyncNotConfigured
	}
	started := time.Now()
	defer s.observeDuration(constants.SyncEventPull, started)

	results := make([]pullResult, len(constants.AllTables))
	var g errgroup.Group
	g.SetLimit(len(constants.AllTables))
	for i, name := range constants.AllTables {
		g.Go(func() error {
			t, err := s.provider.FetchTable(ctx, name)
			results[i] = pullResult{table: t, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var lines []string
	for i, name := range constants.AllTables {
		res := results[i]
		if isUnmapped(res.err) {
			continue
		}
		if res.err != nil {
			s.record(ctx, name, constants.SyncEventPull, 0, res.err)
			logging.Error("Pull failed", "table", name, "provider", s.provider.GetProviderType(), "error", res.err)
			lines = append(lines, fmt.Sprintf("❌ Failed %s: %v", name, res.err))
			continue
		}
		if len(res.table.Rows) == 0 {
			continue
		}

		res.table.Name = name
		line := fmt.Sprintf("✅ Pulled %s", name)
		if err := s.store.ReplaceTable(ctx, res.table); err != nil {
			line += " (" + fmt.Sprintf(constants.MsgLocalSaveFailed, err) + ")"
		}
		s.record(ctx, name, constants.SyncEventPull, len(res.table.Rows), nil)
		s.publish(ctx, name, len(res.table.Rows))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (s *SyncService) record(ctx context.Context, table, event string, rows int, syncErr error) {
	if syncErr != nil && s.metrics != nil {
		s.metrics.SyncFailuresTotal.WithLabelValues(table, event).Inc()
	}
	if s.history == nil {
		return
	}
	if err := s.history.RecordSync(ctx, table, event, s.provider.GetProviderType(), rows, syncErr); err != nil {
		logging.Warn("Failed to record sync history", "table", table, "event", event, "error", err)
	}
}

func (s *SyncService) publish(ctx context.Context, table string, rows int) {
	ev := common.OpsEvent{
		Type:     constants.EventTablePulled,
		EntityID: table,
		Source:   s.provider.GetProviderType(),
		Fields:   map[string]string{"rows": fmt.Sprint(rows)},
		At:       time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		logging.Warn("Failed to publish event", "type", ev.Type, "error", err)
	}
}

func (s *SyncService) observeDuration(direction string, started time.Time) {
	if s.metrics != nil {
		s.metrics.SyncJobDuration.WithLabelValues(direction).Observe(time.Since(started).Seconds())
	}
}

func isUnmapped(err error) bool {
	var provErr *providers.ProviderError
	return errors.As(err, &provErr) && provErr.Code == constants.ErrCodeTableNotMapped
}
