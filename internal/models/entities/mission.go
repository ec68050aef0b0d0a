package entities

import (
	"errors"
	"time"

	"github.com/Shamanth-8/drones/internal/constants"
)

// Mission is a typed mission record.
type Mission struct {
	ID             string    `json:"project_id"`
	Client         string    `json:"client,omitempty"`
	Location       string    `json:"location,omitempty"`
	RequiredSkills string    `json:"required_skills,omitempty"`
	RequiredCerts  string    `json:"required_certs"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Priority       string    `json:"priority"`
	BudgetINR      float64   `json:"mission_budget_inr"`
}

// MissionFromRow decodes a mission row. client, location, required_skills
// and priority are descriptive and may be absent.
func MissionFromRow(row Row) (Mission, error) {
	var errs []error

	m := Mission{
		Client:         row[constants.ColMissionClient],
		Location:       row[constants.ColMissionLocation],
		RequiredSkills: row[constants.ColMissionRequiredSkills],
		Priority:       row[constants.ColMissionPriority],
	}

	var err error
	if m.ID, err = row.Text(constants.ColMissionID); err != nil {
		errs = append(errs, err)
	}
	if m.RequiredCerts, err = row.Text(constants.ColMissionRequiredCerts); err != nil {
		errs = append(errs, err)
	}
	if m.StartDate, err = row.Date(constants.ColMissionStart); err != nil {
		errs = append(errs, err)
	}
	if m.EndDate, err = row.Date(constants.ColMissionEnd); err != nil {
		errs = append(errs, err)
	}
	if m.BudgetINR, err = row.Amount(constants.ColMissionBudgetINR); err != nil {
		errs = append(errs, err)
	}
	return m, errors.Join(errs...)
}

// DurationDays is the inclusive day count of the mission window.
func (m Mission) DurationDays() int {
	return InclusiveDays(m.StartDate, m.EndDate)
}
