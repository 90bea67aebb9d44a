package diagnostics

import (
	"fmt"

	"github.com/paiban/logbook/pkg/scheduler/hardconstraints"
)

// Checks returns the four built-in necessary-condition checks of
// spec.md §4.8, grounded on original_source/apps/solver-python/
// logbook_solver/diagnostics.py's detect_violations.
func Checks() []Check {
	return []Check{
		hourlyDemandCheck{},
		crewRoleRequirementCheck{},
		coverageWindowCheck{},
		mealBreakCheck{},
	}
}

// hourlyDemandCheck is diagnostics.py Check 1.
type hourlyDemandCheck struct{}

func (hourlyDemandCheck) Name() string { return "hourly_demand" }

func (hourlyDemandCheck) Evaluate(ctx *Context) []string {
	var msgs []string
	slotsPerHour := ctx.Grid.SlotsPerHour()
	for _, d := range ctx.Input.HourlyRequirements {
		start, end := ctx.Grid.HourSlots(d.Hour)
		_ = slotsPerHour
		for _, role := range []string{"REGISTER", "PRODUCT", "PARKING_HELM"} {
			required, _ := d.RequirementFor(role)
			if required <= 0 {
				continue
			}
			for k := start; k < end; k++ {
				available := len(ctx.Vars.CrewAt(k, role))
				if available < required {
					msgs = append(msgs, fmt.Sprintf(
						"Hour %d slot %d: need %d %s but only %d available",
						d.Hour, k, required, role, available))
				}
			}
		}
	}
	return msgs
}

// crewRoleRequirementCheck is diagnostics.py Check 2.
type crewRoleRequirementCheck struct{}

func (crewRoleRequirementCheck) Name() string { return "crew_role_requirement" }

func (crewRoleRequirementCheck) Evaluate(ctx *Context) []string {
	var msgs []string
	slotsPerHour := ctx.Grid.SlotsPerHour()
	for _, req := range ctx.Input.CrewRoleRequirements {
		neededSlots := int(req.RequiredHours * float64(slotsPerHour))
		available := len(ctx.Vars.SlotsFor(req.CrewID, req.Role))
		if available < neededSlots {
			msgs = append(msgs, fmt.Sprintf(
				"crew %s role %s: needs %d slots (%.2f hours) but only %d available",
				req.CrewID, req.Role, neededSlots, req.RequiredHours, available))
		}
	}
	return msgs
}

// coverageWindowCheck is diagnostics.py Check 3.
type coverageWindowCheck struct{}

func (coverageWindowCheck) Name() string { return "coverage_window" }

func (coverageWindowCheck) Evaluate(ctx *Context) []string {
	var msgs []string
	for _, cw := range ctx.Input.CoverageWindows {
		start, _ := ctx.Grid.HourSlots(cw.StartHour)
		_, end := ctx.Grid.HourSlots(cw.EndHour - 1)
		for k := start; k < end; k++ {
			available := len(ctx.Vars.CrewAt(k, cw.Role))
			if available < cw.RequiredPerHour {
				msgs = append(msgs, fmt.Sprintf(
					"coverage window %s slot %d: needs %d but only %d available",
					cw.Role, k, cw.RequiredPerHour, available))
			}
		}
	}
	return msgs
}

// mealBreakCheck is diagnostics.py Check 4.
type mealBreakCheck struct{}

func (mealBreakCheck) Name() string { return "meal_break" }

func (mealBreakCheck) Evaluate(ctx *Context) []string {
	breakRole, ok := ctx.Registry.FirstBreakRole()
	if !ok {
		return nil
	}
	store := ctx.Input.Store.WithDefaults()
	var msgs []string
	for _, c := range ctx.Input.Crew {
		if !c.MayBreak() {
			continue
		}
		if c.ShiftMinutes() < store.MinShiftMinutesForBreak {
			continue
		}
		start, end, ok := ctx.Vars.ShiftSlots(c.ID)
		if !ok {
			continue
		}
		earliest, latest, _ := hardconstraints.BreakWindow(start, end, store, ctx.Grid)
		inWindow := false
		for _, k := range ctx.Vars.SlotsFor(c.ID, breakRole) {
			if k >= earliest && k <= latest {
				inWindow = true
			}
		}
		if !inWindow {
			msgs = append(msgs, fmt.Sprintf(
				"crew %s: no break slot available within the break window", c.ID))
		}
	}
	return msgs
}
