package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Shamanth-8/drones/internal/common"
	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/metrics"
	"github.com/Shamanth-8/drones/internal/models/entities"
	"github.com/Shamanth-8/drones/internal/recordstore"
	"github.com/Shamanth-8/drones/internal/services"
)

type staticSource []string

func (s staticSource) ActiveConflicts() []string { return s }

func TestConflictSweepJob_Run(t *testing.T) {
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	events := &common.MemoryPublisher{}
	job := NewConflictSweepJob(staticSource{"a", "b"}, events, reg)

	issues := job.Run(context.Background())

	if len(issues) != 2 {
		t.Errorf("Expected 2 issues, got %d", len(issues))
	}
	if v := testutil.ToFloat64(reg.ActiveConflicts); v != 2 {
		t.Errorf("Expected active conflicts gauge 2, got %v", v)
	}
	if v := testutil.ToFloat64(reg.ConflictSweepsTotal); v != 1 {
		t.Errorf("Expected 1 sweep counted, got %v", v)
	}
	evs := events.Events()
	if len(evs) != 1 || evs[0].Type != constants.EventConflictSweep || evs[0].Fields["issues"] != "2" {
		t.Errorf("Expected one sweep event with 2 issues, got %+v", evs)
	}
}

// remote serves a single pilots table; other tables come back empty.
type remote struct{}

func (remote) FetchTable(_ context.Context, table string) (entities.Table, error) {
	if table != constants.TablePilots {
		return entities.Table{}, nil
	}
	return entities.Table{
		Columns: []string{constants.ColPilotID, constants.ColPilotName},
		Rows:    []entities.Row{{constants.ColPilotID: "P1", constants.ColPilotName: "Asha"}},
	}, nil
}
func (remote) ReplaceTable(context.Context, entities.Table) error { return nil }
func (remote) CanWrite() bool                                     { return false }
func (remote) GetProviderType() string                            { return "remote" }

func newSyncService() (*services.SyncService, *recordstore.Store) {
	store := recordstore.NewFromTables(recordstore.NewMemoryBackend())
	return services.NewSyncService(store, remote{}, nil, nil, nil), store
}

func TestSyncJob_Run(t *testing.T) {
	svc, store := newSyncService()

	if got := NewSyncJob(svc, nil).Run(context.Background()); got != "✅ Pulled pilots" {
		t.Errorf("Expected %q, got %q", "✅ Pulled pilots", got)
	}
	if counts := store.Counts(); counts[constants.TablePilots] != 1 {
		t.Errorf("Expected 1 pilot pulled, got %v", counts)
	}
}

type fakeHistory struct {
	last map[string]*time.Time
	err  error
}

func (f fakeHistory) GetLastSyncTimeForEvent(_ context.Context, table, _ string) (*time.Time, error) {
	return f.last[table], f.err
}

func TestShouldRunInitialSync(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-time.Hour)
	stale := now.Add(-5 * time.Hour)

	allAt := func(ts *time.Time) map[string]*time.Time {
		return map[string]*time.Time{
			constants.TablePilots:   ts,
			constants.TableDrones:   ts,
			constants.TableMissions: ts,
		}
	}

	tests := []struct {
		name    string
		history SyncHistory
		want    bool
	}{
		{"no history store", nil, true},
		{"never synced", fakeHistory{last: map[string]*time.Time{}}, true},
		{"all recent", fakeHistory{last: allAt(&recent)}, false},
		{"one stale", fakeHistory{last: map[string]*time.Time{
			constants.TablePilots:   &recent,
			constants.TableDrones:   &stale,
			constants.TableMissions: &recent,
		}}, true},
		{"lookup error", fakeHistory{err: errors.New("db down")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newSyncService()
			job := NewSyncJob(svc, tt.history)
			job.now = func() time.Time { return now }

			if got := job.ShouldRunInitialSync(context.Background()); got != tt.want {
				t.Errorf("ShouldRunInitialSync() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldRunInitialSync_NotConfigured(t *testing.T) {
	store := recordstore.NewFromTables(recordstore.NewMemoryBackend())
	job := NewSyncJob(services.NewSyncService(store, nil, nil, nil, nil), nil)

	if job.ShouldRunInitialSync(context.Background()) {
		t.Error("Expected no initial sync without a provider")
	}
}

func TestInitializeJobs_InvalidSchedule(t *testing.T) {
	sweep := NewConflictSweepJob(staticSource{}, nil, nil)

	if _, err := InitializeJobs(context.Background(), Schedules{Sweep: "not a schedule"}, nil, sweep); err == nil {
		t.Error("Expected error for invalid sweep schedule")
	}

	s, err := InitializeJobs(context.Background(), Schedules{Sweep: "@every 1h"}, nil, sweep)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	s.Stop()
}
