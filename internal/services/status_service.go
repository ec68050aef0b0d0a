package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shamanth-8/drones/internal/common"
	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/metrics"
	"github.com/Shamanth-8/drones/internal/models/entities"
	"github.com/Shamanth-8/drones/internal/recordstore"
)

// StatusService changes pilot and drone status. Every change rewrites the
// whole table, persists it and pushes the tables to the remote provider.
type StatusService struct {
	store   TableStore
	sync    *SyncService
	events  common.EventPublisher
	metrics *metrics.MetricsRegistry
	source  constants.RequestSource
}

func NewStatusService(store TableStore, sync *SyncService, events common.EventPublisher, reg *metrics.MetricsRegistry) *StatusService {
	if events == nil {
		events = common.NoopPublisher{}
	}
	return &StatusService{store: store, sync: sync, events: events, metrics: reg, source: constants.RequestSourceAPI}
}

// WithSource tags published events with the calling surface.
func (s *StatusService) WithSource(src constants.RequestSource) *StatusService {
	s.source = src
	return s
}

// UpdatePilotStatus sets the status of pilotID and returns a report line.
func (s *StatusService) UpdatePilotStatus(ctx context.Context, pilotID, status string) string {
	return s.update(ctx, statusTarget{
		entity:    "pilot",
		table:     constants.TablePilots,
		idCol:     constants.ColPilotID,
		statusCol: constants.ColPilotStatus,
		notFound:  constants.MsgPilotNotFound,
		event:     constants.EventPilotStatusChanged,
	}, pilotID, status)
}

// UpdateDroneStatus sets the status of droneID and returns a report line.
func (s *StatusService) UpdateDroneStatus(ctx context.Context, droneID, status string) string {
	return s.update(ctx, statusTarget{
		entity:    "drone",
		table:     constants.TableDrones,
		idCol:     constants.ColDroneID,
		statusCol: constants.ColDroneStatus,
		notFound:  constants.MsgDroneNotFound,
		event:     constants.EventDroneStatusChanged,
	}, droneID, status)
}

type statusTarget struct {
	entity    string
	table     string
	idCol     string
	statusCol string
	notFound  string
	event     string
}

func (s *StatusService) update(ctx context.Context, target statusTarget, id, status string) string {
	var previous string
	err := s.store.Update(ctx, target.table, func(t *entities.Table) error {
		i := t.Find(target.idCol, id)
		if i < 0 {
			return &entities.NotFoundError{Entity: target.entity, ID: id}
		}
		previous = t.Rows[i][target.statusCol]
		t.Rows[i][target.statusCol] = status
		if !t.HasColumn(target.statusCol) {
			t.Columns = append(t.Columns, target.statusCol)
		}
		return nil
	})

	if errors.Is(err, entities.ErrNotFound) {
		s.observe(target.entity, "not_found")
		return fmt.Sprintf(target.notFound, id)
	}
	var persistErr *recordstore.PersistError
	if err != nil && !errors.As(err, &persistErr) {
		s.observe(target.entity, "error")
		logging.Error("Status update failed", "entity", target.entity, "id", id, "error", err)
		return fmt.Sprintf("Error: %v", err)
	}

	// In-memory state is now authoritative even if the backend write failed.
	s.observe(target.entity, "updated")
	logging.Info("Status updated", "entity", target.entity, "id", id, "from", previous, "to", status)
	s.publish(ctx, target.event, id, previous, status)

	result := s.sync.PushAll(ctx)
	if err != nil {
		result += "\n" + fmt.Sprintf(constants.MsgLocalSaveFailed, err)
	}
	return fmt.Sprintf(constants.MsgStatusUpdated, id, status, result)
}

func (s *StatusService) observe(entity, outcome string) {
	if s.metrics != nil {
		s.metrics.StatusUpdatesTotal.WithLabelValues(entity, outcome).Inc()
	}
}

func (s *StatusService) publish(ctx context.Context, eventType, id, from, to string) {
	ev := common.OpsEvent{
		Type:     eventType,
		EntityID: id,
		Source:   string(s.source),
		Fields:   map[string]string{"from": from, "to": to},
		At:       time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		logging.Warn("Failed to publish event", "type", eventType, "error", err)
	}
}
