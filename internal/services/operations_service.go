package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Shamanth-8/drones/internal/common"
	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/metrics"
	"github.com/Shamanth-8/drones/internal/models/entities"
)

const derivedCacheTTL = 10 * time.Minute

// OperationsService is the command dispatcher surface. Failures are
// rendered into the returned text.
type OperationsService struct {
	store    TableStore
	roster   *RosterService
	fleet    *FleetService
	detector *ConflictDetector
	status   *StatusService
	cache    common.CacheInterface
	metrics  *metrics.MetricsRegistry
	limit    int
}

func NewOperationsService(
	store TableStore,
	roster *RosterService,
	fleet *FleetService,
	detector *ConflictDetector,
	status *StatusService,
	cache common.CacheInterface,
	reg *metrics.MetricsRegistry,
	limit int,
) *OperationsService {
	if limit <= 0 {
		limit = constants.DefaultResultLimit
	}
	return &OperationsService{
		store:    store,
		roster:   roster,
		fleet:    fleet,
		detector: detector,
		status:   status,
		cache:    cache,
		metrics:  reg,
		limit:    limit,
	}
}

// Limit is the row cap applied to renderings.
func (s *OperationsService) Limit() int { return s.limit }

// CheckAvailability renders available pilots, at most Limit rows.
func (s *OperationsService) CheckAvailability(location, skill string) string {
	t, err := s.roster.AvailablePilotTable(PilotFilter{Location: location, Skill: skill})
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if len(t.Rows) == 0 {
		return constants.MsgNoPilotsAvailable
	}
	return renderRows(t, headerOf(t), s.limit)
}

// CheckDroneInventory renders available drones, at most Limit rows.
func (s *OperationsService) CheckDroneInventory(location, capability string) string {
	t, err := s.fleet.AvailableDroneTable(DroneFilter{Location: location, Capability: capability})
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if len(t.Rows) == 0 {
		return constants.MsgNoDronesAvailable
	}
	return renderRows(t, headerOf(t), s.limit)
}

func (s *OperationsService) UpdatePilotStatus(ctx context.Context, pilotID, status string) string {
	return s.status.UpdatePilotStatus(ctx, pilotID, status)
}

func (s *OperationsService) UpdateDroneStatus(ctx context.Context, droneID, status string) string {
	return s.status.UpdateDroneStatus(ctx, droneID, status)
}

// ActiveConflicts runs the sweep, reusing the result while the store
// version is unchanged.
func (s *OperationsService) ActiveConflicts() []string {
	if s.cache == nil {
		return s.detector.CheckAllActiveConflicts()
	}

	key := common.CacheKey(constants.CachePrefixConflictSweep, s.store.Version())
	if v, ok := s.cache.Get(key); ok {
		if issues, ok := common.AsStrings(v); ok {
			s.observeCache(constants.CachePrefixConflictSweep, true)
			return append([]string{}, issues...)
		}
	}
	s.observeCache(constants.CachePrefixConflictSweep, false)

	issues := s.detector.CheckAllActiveConflicts()
	s.cache.Set(key, append([]string{}, issues...), derivedCacheTTL)
	return issues
}

// ConflictReport renders the sweep as a heading and bullet list.
func (s *OperationsService) ConflictReport() string {
	return FormatConflictReport(s.ActiveConflicts())
}

// FormatConflictReport renders sweep issues for display.
func FormatConflictReport(issues []string) string {
	if len(issues) == 0 {
		return constants.MsgNoActiveConflicts
	}
	var b strings.Builder
	b.WriteString(constants.MsgActiveConflicts)
	b.WriteString("\n\n")
	for _, issue := range issues {
		b.WriteString("- ")
		b.WriteString(issue)
		b.WriteString("\n")
	}
	return b.String()
}

// PilotListing renders available pilots with name, location and skills.
func (s *OperationsService) PilotListing() string {
	t, err := s.roster.AvailablePilotTable(PilotFilter{})
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if len(t.Rows) == 0 {
		return constants.MsgNoPilotsAvailable
	}
	cols := []string{constants.ColPilotName, constants.ColPilotLocation, constants.ColPilotSkills}
	return "**Here are the Available Pilots:**\n\n```\n" + renderRows(t, cols, s.limit) + "\n```"
}

// DroneListing renders available drones with model, location and capabilities.
func (s *OperationsService) DroneListing() string {
	t, err := s.fleet.AvailableDroneTable(DroneFilter{})
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if len(t.Rows) == 0 {
		return constants.MsgNoDronesAvailable
	}
	cols := []string{constants.ColDroneModel, constants.ColDroneLocation, constants.ColDroneCapabilities}
	return "**Here are the Available Drones:**\n\n```\n" + renderRows(t, cols, s.limit) + "\n```"
}

// SchemaInfo lists the columns of every non-empty table.
func (s *OperationsService) SchemaInfo() string {
	var lines []string
	for _, name := range constants.AllTables {
		t, err := s.store.GetTable(name)
		if err != nil || len(t.Rows) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("Table '%s' columns: %s", name, strings.Join(headerOf(t), ", ")))
	}
	return strings.Join(lines, "\n")
}

// LoadWarnings validates the current tables, caching by store version.
func (s *OperationsService) LoadWarnings() ([]entities.LoadWarning, error) {
	if s.cache == nil {
		return LoadWarnings(s.store)
	}

	key := common.CacheKey(constants.CachePrefixLoadWarnings, s.store.Version())
	if v, ok := s.cache.Get(key); ok {
		if raw, ok := v.(string); ok {
			var warnings []entities.LoadWarning
			if err := json.Unmarshal([]byte(raw), &warnings); err == nil {
				s.observeCache(constants.CachePrefixLoadWarnings, true)
				return warnings, nil
			}
		}
	}
	s.observeCache(constants.CachePrefixLoadWarnings, false)

	warnings, err := LoadWarnings(s.store)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(warnings); err == nil {
		s.cache.Set(key, string(data), derivedCacheTTL)
	} else {
		logging.Warn("Failed to cache load warnings", "error", err)
	}
	return warnings, nil
}

func (s *OperationsService) observeCache(prefix constants.CachePrefix, hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues(string(prefix)).Inc()
	} else {
		s.metrics.CacheMissesTotal.WithLabelValues(string(prefix)).Inc()
	}
}

// headerOf returns the table header, falling back to the canonical columns.
func headerOf(t entities.Table) []string {
	if len(t.Columns) > 0 {
		return t.Columns
	}
	return constants.DefaultColumns[t.Name]
}

// RenderRecords draws a whole table with its own header, capped at limit rows.
func RenderRecords(t entities.Table, limit int) string {
	return renderRows(t, headerOf(t), limit)
}

func renderRows(t entities.Table, cols []string, limit int) string {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = row[c]
		}
		rows = append(rows, cells)
	}
	return common.RenderTable(cols, rows, limit)
}
