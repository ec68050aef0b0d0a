package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/Shamanth-8/drones/internal/constants"
)

// Pilot is a typed pilot roster record.
type Pilot struct {
	ID                string     `json:"pilot_id"`
	Name              string     `json:"name"`
	Skills            string     `json:"skills"`
	Certifications    string     `json:"certifications"`
	Location          string     `json:"location"`
	Status            string     `json:"status"`
	CurrentAssignment string     `json:"current_assignment"`
	AvailableFrom     *time.Time `json:"available_from,omitempty"`
	DailyRateINR      float64    `json:"daily_rate_inr"`

	// DecodeWarning is set when some fields could not be read from the row.
	DecodeWarning string `json:"decode_warning,omitempty"`
}

// PilotFromRow decodes a roster row. The returned pilot is filled as far as
// the row allows; err joins every field problem found.
func PilotFromRow(row Row) (Pilot, error) {
	var errs []error
	text := func(col string) string {
		v, err := row.Text(col)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	p := Pilot{
		ID:                text(constants.ColPilotID),
		Name:              text(constants.ColPilotName),
		Skills:            text(constants.ColPilotSkills),
		Certifications:    text(constants.ColPilotCerts),
		Location:          text(constants.ColPilotLocation),
		Status:            text(constants.ColPilotStatus),
		CurrentAssignment: text(constants.ColPilotAssignment),
	}

	if rate, err := row.Amount(constants.ColPilotDailyRateINR); err != nil {
		errs = append(errs, err)
	} else {
		p.DailyRateINR = rate
	}

	if from, err := row.Date(constants.ColPilotAvailable); err != nil {
		errs = append(errs, err)
	} else {
		p.AvailableFrom = &from
	}

	return p, errors.Join(errs...)
}

// IsAssigned reports whether the pilot carries a mission assignment.
func (p Pilot) IsAssigned() bool {
	return HasAssignment(p.CurrentAssignment)
}

// HasAssignment reports whether a current_assignment value names a mission.
func HasAssignment(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != constants.NoAssignment
}
