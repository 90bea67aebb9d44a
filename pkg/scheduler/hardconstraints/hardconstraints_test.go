package hardconstraints

import (
	"testing"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/logbook/pkg/model"
	"github.com/paiban/logbook/pkg/roles"
	"github.com/paiban/logbook/pkg/scheduler/vars"
	"github.com/paiban/logbook/pkg/timegrid"
)

func build(t *testing.T, in *model.Input) (*cpmodel.CpModelBuilder, *vars.Table, *timegrid.Grid, *roles.Registry) {
	t.Helper()
	grid, err := timegrid.New(in.Store.BaseSlotMinutes)
	if err != nil {
		t.Fatalf("unexpected grid error: %v", err)
	}
	reg := roles.Build(in)
	b := cpmodel.NewCpModelBuilder()
	table := vars.Build(b, in, grid, reg)
	return b, table, grid, reg
}

func TestHourlyStaffing_ErrorsWhenNoCrewCanCoverDemand(t *testing.T) {
	in := &model.Input{
		Store: model.StorePolicy{BaseSlotMinutes: 60, OpenMinutesFromMidnight: 480, CloseMinutesFromMidnight: 1200, StartRegHour: 8, EndRegHour: 20},
		Crew: []model.Crew{
			{ID: "c1", ShiftStartMin: 600, ShiftEndMin: 720, EligibleRoles: []string{"REGISTER"}},
		},
		HourlyRequirements: []model.HourlyDemand{{Hour: 8, RequiredRegister: 1}},
	}
	b, table, grid, reg := build(t, in)
	if err := hourlyStaffing(b, table, in, grid, reg); err == nil {
		t.Error("expected a construction error when no crew is on shift during a demanded hour")
	}
}

func TestCrewRoleHours_ErrorsWhenCrewHasNoEligibleSlots(t *testing.T) {
	notUniversal := false
	in := &model.Input{
		Store: model.StorePolicy{BaseSlotMinutes: 60, OpenMinutesFromMidnight: 480, CloseMinutesFromMidnight: 1200, StartRegHour: 8, EndRegHour: 20},
		Crew: []model.Crew{
			{ID: "c1", ShiftStartMin: 480, ShiftEndMin: 600, EligibleRoles: []string{"PRODUCT"}},
		},
		RoleMetadata:         []model.RoleMetadata{{Role: "REGISTER", IsUniversal: &notUniversal}},
		CrewRoleRequirements: []model.CrewRoleRequirement{{CrewID: "c1", Role: "REGISTER", RequiredHours: 1}},
	}
	b, table, grid, reg := build(t, in)
	if err := crewRoleHours(b, table, in, grid, reg); err == nil {
		t.Error("expected a construction error when the crew member has no REGISTER slots at all")
	}
}

func TestCoverageWindows_NoErrorWhenUniversalRoleCoversWindow(t *testing.T) {
	in := &model.Input{
		Store: model.StorePolicy{BaseSlotMinutes: 60, OpenMinutesFromMidnight: 480, CloseMinutesFromMidnight: 1200, StartRegHour: 8, EndRegHour: 20},
		Crew: []model.Crew{
			{ID: "c1", ShiftStartMin: 480, ShiftEndMin: 600, EligibleRoles: []string{"REGISTER"}},
		},
		CoverageWindows: []model.CoverageWindow{{Role: "PARKING_HELM", StartHour: 8, EndHour: 9, RequiredPerHour: 1}},
	}
	b, table, grid, reg := build(t, in)
	if err := coverageWindows(b, table, in, grid, reg); err != nil {
		t.Errorf("did not expect an error since PARKING_HELM is universal by default: %v", err)
	}
}

func TestMealBreak_ErrorsWhenBreakWindowEmpty(t *testing.T) {
	in := &model.Input{
		Store: model.StorePolicy{
			BaseSlotMinutes: 60, OpenMinutesFromMidnight: 0, CloseMinutesFromMidnight: 1440,
			StartRegHour: 0, EndRegHour: 24,
			MinShiftMinutesForBreak:       120,
			BreakWindowStartOffsetMinutes: 600,
			BreakWindowEndOffsetMinutes:   700,
		},
		Crew: []model.Crew{
			{ID: "c1", ShiftStartMin: 480, ShiftEndMin: 600},
		},
	}
	b, table, grid, reg := build(t, in)
	if err := mealBreak(b, table, in, grid, reg); err == nil {
		t.Error("expected a construction error when the break window falls entirely outside the shift")
	}
}

func TestMealBreak_NoopWhenNoBreakRoleActive(t *testing.T) {
	in := &model.Input{
		Store: model.StorePolicy{BaseSlotMinutes: 60, OpenMinutesFromMidnight: 0, CloseMinutesFromMidnight: 1440, StartRegHour: 0, EndRegHour: 24},
		Crew:  []model.Crew{{ID: "c1", ShiftStartMin: 480, ShiftEndMin: 600}},
	}
	reg := &roles.Registry{}
	b, table, grid, _ := build(t, in)
	if err := mealBreak(b, table, in, grid, reg); err != nil {
		t.Errorf("expected no error when no break role is registered, got %v", err)
	}
}
