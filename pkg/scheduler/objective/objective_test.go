package objective

import (
	"testing"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/logbook/pkg/model"
	"github.com/paiban/logbook/pkg/roles"
	"github.com/paiban/logbook/pkg/scheduler/vars"
	"github.com/paiban/logbook/pkg/timegrid"
)

func TestCoeff_ScalesAndRounds(t *testing.T) {
	if got := coeff(1.0); got != 1000 {
		t.Errorf("coeff(1.0) = %d, want 1000", got)
	}
	if got := coeff(0.0015); got != 2 {
		t.Errorf("coeff(0.0015) = %d, want 2 (round half away from zero)", got)
	}
}

func buildTable(t *testing.T, in *model.Input) (*vars.Table, *timegrid.Grid, *roles.Registry) {
	t.Helper()
	grid, err := timegrid.New(in.Store.BaseSlotMinutes)
	if err != nil {
		t.Fatalf("unexpected grid error: %v", err)
	}
	reg := roles.Build(in)
	b := cpmodel.NewCpModelBuilder()
	table := vars.Build(b, in, grid, reg)
	return table, grid, reg
}

func TestAddPreferenceTerm_DroppedWhenWeightNonPositive(t *testing.T) {
	in := &model.Input{
		Store: model.StorePolicy{BaseSlotMinutes: 60, OpenMinutesFromMidnight: 480, CloseMinutesFromMidnight: 1200, StartRegHour: 8, EndRegHour: 20},
		Crew:  []model.Crew{{ID: "c1", ShiftStartMin: 480, ShiftEndMin: 600, EligibleRoles: []string{"REGISTER"}}},
	}
	table, grid, reg := buildTable(t, in)
	b := cpmodel.NewCpModelBuilder()
	expr := cpmodel.NewLinearExpr()

	zero := 0.0
	pref := model.Preference{CrewID: "c1", Role: "REGISTER", PreferenceType: model.PreferenceFirstHour, BaseWeight: 5, CrewWeight: &zero}
	if addPreferenceTerm(b, expr, table, in, grid, reg, pref) {
		t.Error("expected a non-positive crew weight to drop the term entirely")
	}
}

func TestAddPreferenceTerm_FirstHourAddsTermWhenVariableExists(t *testing.T) {
	in := &model.Input{
		Store: model.StorePolicy{BaseSlotMinutes: 60, OpenMinutesFromMidnight: 480, CloseMinutesFromMidnight: 1200, StartRegHour: 8, EndRegHour: 20},
		Crew:  []model.Crew{{ID: "c1", ShiftStartMin: 480, ShiftEndMin: 600, EligibleRoles: []string{"REGISTER"}}},
	}
	table, grid, reg := buildTable(t, in)
	b := cpmodel.NewCpModelBuilder()
	expr := cpmodel.NewLinearExpr()

	pref := model.Preference{CrewID: "c1", Role: "REGISTER", PreferenceType: model.PreferenceFirstHour, BaseWeight: 5}
	if !addPreferenceTerm(b, expr, table, in, grid, reg, pref) {
		t.Error("expected the FIRST_HOUR term to be added when the shift-start variable exists")
	}
}

func TestAddPreferenceTerm_UnknownCrewIsIgnored(t *testing.T) {
	in := &model.Input{
		Store: model.StorePolicy{BaseSlotMinutes: 60, OpenMinutesFromMidnight: 480, CloseMinutesFromMidnight: 1200, StartRegHour: 8, EndRegHour: 20},
		Crew:  []model.Crew{{ID: "c1", ShiftStartMin: 480, ShiftEndMin: 600, EligibleRoles: []string{"REGISTER"}}},
	}
	table, grid, reg := buildTable(t, in)
	b := cpmodel.NewCpModelBuilder()
	expr := cpmodel.NewLinearExpr()

	pref := model.Preference{CrewID: "ghost", Role: "REGISTER", PreferenceType: model.PreferenceFavorite, BaseWeight: 5}
	if addPreferenceTerm(b, expr, table, in, grid, reg, pref) {
		t.Error("expected a preference referencing an unknown crew id to be silently dropped")
	}
}
