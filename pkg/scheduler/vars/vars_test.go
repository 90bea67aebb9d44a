package vars

import (
	"testing"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/logbook/pkg/model"
	"github.com/paiban/logbook/pkg/roles"
	"github.com/paiban/logbook/pkg/timegrid"
)

func baseInput() *model.Input {
	return &model.Input{
		Store: model.StorePolicy{
			BaseSlotMinutes:          60,
			OpenMinutesFromMidnight:  480,
			CloseMinutesFromMidnight: 1200,
			StartRegHour:             9,
			EndRegHour:               20,
		},
		Crew: []model.Crew{
			{ID: "c1", ShiftStartMin: 480, ShiftEndMin: 960, EligibleRoles: []string{"REGISTER", "PRODUCT"}},
		},
	}
}

func TestBuild_OnlyCreatesVarsWithinShiftWindow(t *testing.T) {
	in := baseInput()
	grid, _ := timegrid.New(in.Store.BaseSlotMinutes)
	reg := roles.Build(in)
	b := cpmodel.NewCpModelBuilder()
	table := Build(b, in, grid, reg)

	startSlot, endSlot, ok := table.ShiftSlots("c1")
	if !ok {
		t.Fatal("expected shift window for c1")
	}
	if table.Has("c1", startSlot-1, "PRODUCT") {
		t.Error("expected no variable before shift start")
	}
	if table.Has("c1", endSlot, "PRODUCT") {
		t.Error("expected no variable at or after shift end")
	}
	if !table.Has("c1", startSlot, "PRODUCT") {
		t.Error("expected a variable at shift start for an eligible role")
	}
}

func TestBuild_RegisterWindowRestrictsRegisterRoleOnly(t *testing.T) {
	in := baseInput()
	in.Store.StartRegHour = 10
	in.Store.EndRegHour = 11
	grid, _ := timegrid.New(in.Store.BaseSlotMinutes)
	reg := roles.Build(in)
	b := cpmodel.NewCpModelBuilder()
	table := Build(b, in, grid, reg)

	regSlot, _ := grid.HourSlots(10)
	outsideRegSlot, _ := grid.HourSlots(9)

	if !table.Has("c1", regSlot, "REGISTER") {
		t.Error("expected a REGISTER variable inside the register window")
	}
	if table.Has("c1", outsideRegSlot, "REGISTER") {
		t.Error("expected no REGISTER variable outside the register window")
	}
	if !table.Has("c1", outsideRegSlot, "PRODUCT") {
		t.Error("expected PRODUCT to be unaffected by the register window")
	}
}

func TestBuild_RegisterWindowDefaultsToStoreHoursWhenUnset(t *testing.T) {
	in := baseInput()
	in.Store.StartRegHour = 0
	in.Store.EndRegHour = 0
	grid, _ := timegrid.New(in.Store.BaseSlotMinutes)
	reg := roles.Build(in)
	b := cpmodel.NewCpModelBuilder()
	table := Build(b, in, grid, reg)

	startSlot, endSlot, ok := table.ShiftSlots("c1")
	if !ok {
		t.Fatal("expected a shift window for c1")
	}
	if !table.Has("c1", startSlot, "REGISTER") {
		t.Error("expected REGISTER to be available at shift start when the register window is left unset")
	}
	if !table.Has("c1", endSlot-1, "REGISTER") {
		t.Error("expected REGISTER to remain available through shift end when the register window is left unset")
	}
}

func TestBuild_NonUniversalRoleRequiresExplicitEligibility(t *testing.T) {
	in := baseInput()
	in.Crew[0].EligibleRoles = []string{"PRODUCT"}
	in.CrewRoleRequirements = []model.CrewRoleRequirement{} // STOCK observed only via role metadata below
	in.RoleMetadata = []model.RoleMetadata{{Role: "STOCK"}}
	grid, _ := timegrid.New(in.Store.BaseSlotMinutes)
	reg := roles.Build(in)
	b := cpmodel.NewCpModelBuilder()
	table := Build(b, in, grid, reg)

	if len(table.SlotsFor("c1", "STOCK")) != 0 {
		t.Error("expected no STOCK variables for a crew member not listed as eligible")
	}
}

func TestBuild_OutsideStoreHoursExcludedUnlessAllowed(t *testing.T) {
	in := baseInput()
	in.Crew[0].ShiftStartMin = 420
	in.Crew[0].ShiftEndMin = 1260
	in.RoleMetadata = []model.RoleMetadata{{Role: "PRODUCT", AllowOutsideStoreHours: boolPtr(false)}}
	grid, _ := timegrid.New(in.Store.BaseSlotMinutes)
	reg := roles.Build(in)
	b := cpmodel.NewCpModelBuilder()
	table := Build(b, in, grid, reg)

	beforeOpen, _ := grid.HourSlots(7)
	if table.Has("c1", beforeOpen, "PRODUCT") {
		t.Error("expected PRODUCT before store open to be excluded when outside-hours is disallowed")
	}
}

func boolPtr(b bool) *bool { return &b }
