package services

import (
	"time"

	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/models/entities"
)

// PilotFilter narrows the available pilot listing. Empty fields do not filter.
type PilotFilter struct {
	Location string
	Skill    string
	Date     string
	Limit    int // 0 means no cap
}

// CostEstimate distinguishes a zero cost from an unknown pilot.
type CostEstimate struct {
	PilotID string  `json:"pilot_id"`
	Days    int     `json:"days"`
	Amount  float64 `json:"amount"`
	Found   bool    `json:"found"`
}

// RosterService answers pilot availability and cost questions.
type RosterService struct {
	store TableReader
}

func NewRosterService(store TableReader) *RosterService {
	return &RosterService{store: store}
}

// AvailablePilots returns pilots with status exactly "Available" that match
// the filter, in source order.
func (s *RosterService) AvailablePilots(f PilotFilter) ([]entities.Pilot, error) {
	t, err := s.AvailablePilotTable(f)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Pilot, 0, len(t.Rows))
	for _, row := range t.Rows {
		// Listing keeps pilots with bad rate/date cells and flags them.
		p, err := entities.PilotFromRow(row)
		if err != nil {
			p.DecodeWarning = err.Error()
			logging.Debug("Listing pilot with unreadable fields", "pilot_id", p.ID, "error", err)
		}
		out = append(out, p)
	}
	return out, nil
}

// AvailablePilotTable is AvailablePilots keeping the raw rows and header.
// An unparseable filter date matches no pilots.
func (s *RosterService) AvailablePilotTable(f PilotFilter) (entities.Table, error) {
	t, err := s.store.GetTable(constants.TablePilots)
	if err != nil {
		return entities.Table{}, err
	}
	result := entities.Table{Name: t.Name, Columns: t.Columns, Rows: []entities.Row{}}

	var cutoff *time.Time
	if f.Date != "" {
		d, err := entities.ParseDate(f.Date)
		if err != nil {
			return result, nil
		}
		cutoff = &d
	}

	for _, row := range t.Rows {
		ok, err := matchPilot(row, f, cutoff)
		if err != nil {
			return entities.Table{}, err
		}
		if ok {
			result.Rows = append(result.Rows, row)
		}
	}

	result.Rows = limitRows(result.Rows, f.Limit)
	return result, nil
}

func matchPilot(row entities.Row, f PilotFilter, cutoff *time.Time) (bool, error) {
	status, err := row.Text(constants.ColPilotStatus)
	if err != nil {
		return false, err
	}
	if status != constants.StatusAvailable {
		return false, nil
	}

	if f.Location != "" {
		loc, err := row.Text(constants.ColPilotLocation)
		if err != nil {
			return false, err
		}
		if normalize(loc) != normalize(f.Location) {
			return false, nil
		}
	}

	if f.Skill != "" {
		skills, err := row.Text(constants.ColPilotSkills)
		if err != nil {
			return false, err
		}
		if !containsNormalized(skills, f.Skill) {
			return false, nil
		}
	}

	if cutoff != nil {
		raw, err := row.Text(constants.ColPilotAvailable)
		if err != nil {
			return false, err
		}
		from, err := entities.ParseDate(raw)
		if err != nil {
			// Unknown start date: cannot show the pilot is free by then.
			return false, nil
		}
		if from.After(*cutoff) {
			return false, nil
		}
	}
	return true, nil
}

// EstimateCost prices a pilot over durationDays. Found is false when the
// pilot does not exist; a malformed rate is an error.
func (s *RosterService) EstimateCost(pilotID string, durationDays int) (CostEstimate, error) {
	est := CostEstimate{PilotID: pilotID, Days: durationDays}

	t, err := s.store.GetTable(constants.TablePilots)
	if err != nil {
		return est, err
	}
	row, err := findRow(t, constants.ColPilotID, pilotID)
	if err != nil {
		return est, err
	}
	if row == nil {
		return est, nil
	}

	rate, err := row.Amount(constants.ColPilotDailyRateINR)
	if err != nil {
		return est, err
	}
	est.Found = true
	est.Amount = rate * float64(durationDays)
	return est, nil
}

// CalculateCost is rate × durationDays. An unknown pilot costs 0 with no
// error, so callers cannot tell it from a free pilot; use EstimateCost for that.
func (s *RosterService) CalculateCost(pilotID string, durationDays int) (float64, error) {
	est, err := s.EstimateCost(pilotID, durationDays)
	if err != nil {
		return 0, err
	}
	return est.Amount, nil
}
