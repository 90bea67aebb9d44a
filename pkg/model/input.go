// Package model holds the validated, typed view of a solve request: store
// policy, crew, role metadata, demands, requirements, coverage windows and
// preferences (spec.md §3), plus the output document shape (spec.md §6).
package model

import (
	"fmt"

	"github.com/paiban/logbook/pkg/errors"
)

// Input is the full external input document (spec.md §6).
type Input struct {
	Date                string                  `json:"date"`
	Store               StorePolicy             `json:"store"`
	Crew                []Crew                  `json:"crew"`
	RoleMetadata        []RoleMetadata          `json:"roleMetadata"`
	HourlyRequirements  []HourlyDemand          `json:"hourlyRequirements"`
	CrewRoleRequirements []CrewRoleRequirement  `json:"crewRoleRequirements"`
	CoverageWindows     []CoverageWindow        `json:"coverageWindows"`
	Preferences         []Preference            `json:"preferences"`
	TimeLimitSeconds    int                     `json:"timeLimitSeconds"`
}

// Validate checks Input against the invariants of spec.md §3. It does not
// check solvability (that is the job of the variable builder and hard
// constraints, which fail early per spec.md §7.1); it only checks shape.
func (in *Input) Validate() *errors.ValidationErrors {
	ve := &errors.ValidationErrors{}

	if in.Store.BaseSlotMinutes <= 0 || 60%in.Store.BaseSlotMinutes != 0 {
		ve.Add("store.baseSlotMinutes", fmt.Sprintf("must be positive and divide 60, got %d", in.Store.BaseSlotMinutes))
	}
	if in.Store.OpenMinutesFromMidnight < 0 || in.Store.CloseMinutesFromMidnight > 1440 ||
		in.Store.OpenMinutesFromMidnight >= in.Store.CloseMinutesFromMidnight {
		ve.Add("store", "open must precede close within [0,1440]")
	}
	if in.Store.StartRegHour > in.Store.EndRegHour {
		ve.Add("store.startRegHour", "register window start must not exceed end")
	}

	roleSet := make(map[string]bool)
	for _, rm := range in.RoleMetadata {
		roleSet[rm.Role] = true
	}

	// Mirrors pkg/roles's default table for the four builtin roles, folding
	// in any isUniversal override, so eligibility checks below accept a
	// universal role regardless of a crew member's explicit eligibility
	// list (this package cannot import pkg/roles, which imports it back).
	universalRoles := map[string]bool{
		"REGISTER":     true,
		"PRODUCT":      true,
		"PARKING_HELM": true,
		"MEAL_BREAK":   true,
	}
	for _, rm := range in.RoleMetadata {
		if rm.IsUniversal != nil {
			universalRoles[rm.Role] = *rm.IsUniversal
		}
	}

	seenCrew := make(map[string]bool)
	for i, c := range in.Crew {
		if c.ID == "" {
			ve.Add(fmt.Sprintf("crew[%d].id", i), "must not be empty")
		}
		if seenCrew[c.ID] {
			ve.Add(fmt.Sprintf("crew[%d].id", i), "duplicate crew id")
		}
		seenCrew[c.ID] = true
		if c.ShiftStartMin < 0 || c.ShiftStartMin > 1440 || c.ShiftEndMin < 0 || c.ShiftEndMin > 1440 {
			ve.Add(fmt.Sprintf("crew[%d]", i), "shift bounds must be within [0,1440]")
		}
		if c.ShiftStartMin >= c.ShiftEndMin {
			ve.Add(fmt.Sprintf("crew[%d]", i), "shiftStartMin must precede shiftEndMin")
		}
		for _, r := range c.EligibleRoles {
			roleSet[r] = true
		}
	}

	for i, req := range in.CrewRoleRequirements {
		roleSet[req.Role] = true
		crew, ok := crewByID(in.Crew, req.CrewID)
		if !ok {
			ve.Add(fmt.Sprintf("crewRoleRequirements[%d].crewId", i), "unknown crew id")
			continue
		}
		if !crew.IsEligible(req.Role) && !universalRoles[req.Role] {
			ve.Add(fmt.Sprintf("crewRoleRequirements[%d]", i), "crew is not eligible for role and role is not universal")
		}
		shiftMinutes := crew.ShiftEndMin - crew.ShiftStartMin
		if int(req.RequiredHours*60) > shiftMinutes {
			ve.Add(fmt.Sprintf("crewRoleRequirements[%d].requiredHours", i), "exceeds shift length")
		}
	}

	for i, cw := range in.CoverageWindows {
		roleSet[cw.Role] = true
		if cw.StartHour < 0 || cw.EndHour > 24 || cw.StartHour >= cw.EndHour {
			ve.Add(fmt.Sprintf("coverageWindows[%d]", i), "startHour must precede endHour within [0,24]")
		}
	}

	for i, p := range in.Preferences {
		if p.Role != "" {
			roleSet[p.Role] = true
		}
		if _, ok := crewByID(in.Crew, p.CrewID); !ok {
			ve.Add(fmt.Sprintf("preferences[%d].crewId", i), "unknown crew id")
		}
	}

	roleSet["REGISTER"] = true
	roleSet["PRODUCT"] = true
	roleSet["PARKING_HELM"] = true

	if in.Store.StartRegHour*60 < in.Store.OpenMinutesFromMidnight ||
		in.Store.EndRegHour*60 > in.Store.CloseMinutesFromMidnight {
		// Register window need not be set; only check when non-trivial bounds given.
		if in.Store.EndRegHour > 0 {
			ve.Add("store.startRegHour", "register window must be a sub-interval of store-open hours")
		}
	}

	return ve
}

func crewByID(crew []Crew, id string) (*Crew, bool) {
	for i := range crew {
		if crew[i].ID == id {
			return &crew[i], true
		}
	}
	return nil, false
}
