package model

import "testing"

func validInput() Input {
	return Input{
		Date: "2026-08-01",
		Store: StorePolicy{
			BaseSlotMinutes:          30,
			OpenMinutesFromMidnight:  480,
			CloseMinutesFromMidnight: 1200,
			StartRegHour:             9,
			EndRegHour:               18,
		},
		Crew: []Crew{
			{ID: "c1", Name: "Alice", ShiftStartMin: 480, ShiftEndMin: 960, EligibleRoles: []string{"REGISTER"}},
		},
	}
}

func TestValidate_AcceptsMinimalValidInput(t *testing.T) {
	in := validInput()
	if ve := in.Validate(); ve.HasErrors() {
		t.Errorf("expected no errors, got %v", ve)
	}
}

func TestValidate_RejectsBadSlotMinutes(t *testing.T) {
	in := validInput()
	in.Store.BaseSlotMinutes = 7
	if ve := in.Validate(); !ve.HasErrors() {
		t.Error("expected validation error for a slot length that does not divide 60")
	}
	in.Store.BaseSlotMinutes = 0
	if ve := in.Validate(); !ve.HasErrors() {
		t.Error("expected validation error for a non-positive slot length")
	}
}

func TestValidate_RejectsOpenAfterClose(t *testing.T) {
	in := validInput()
	in.Store.OpenMinutesFromMidnight = 1200
	in.Store.CloseMinutesFromMidnight = 480
	if ve := in.Validate(); !ve.HasErrors() {
		t.Error("expected validation error when open does not precede close")
	}
}

func TestValidate_RejectsDuplicateCrewIDs(t *testing.T) {
	in := validInput()
	in.Crew = append(in.Crew, in.Crew[0])
	if ve := in.Validate(); !ve.HasErrors() {
		t.Error("expected validation error for duplicate crew id")
	}
}

func TestValidate_RejectsBadShiftBounds(t *testing.T) {
	in := validInput()
	in.Crew[0].ShiftStartMin = 960
	in.Crew[0].ShiftEndMin = 480
	if ve := in.Validate(); !ve.HasErrors() {
		t.Error("expected validation error when shiftStartMin does not precede shiftEndMin")
	}
}

func TestValidate_CrewRoleRequirementUnknownCrew(t *testing.T) {
	in := validInput()
	in.CrewRoleRequirements = []CrewRoleRequirement{{CrewID: "ghost", Role: "REGISTER", RequiredHours: 2}}
	if ve := in.Validate(); !ve.HasErrors() {
		t.Error("expected validation error for unknown crew id in crewRoleRequirements")
	}
}

func TestValidate_CrewRoleRequirementIneligibleRole(t *testing.T) {
	in := validInput()
	in.CrewRoleRequirements = []CrewRoleRequirement{{CrewID: "c1", Role: "STOCK", RequiredHours: 2}}
	if ve := in.Validate(); !ve.HasErrors() {
		t.Error("expected validation error when crew is not eligible for a non-universal role")
	}
}

func TestValidate_CrewRoleRequirementAcceptsUniversalRoleWithoutEligibility(t *testing.T) {
	in := validInput()
	in.CrewRoleRequirements = []CrewRoleRequirement{{CrewID: "c1", Role: "PRODUCT", RequiredHours: 2}}
	if ve := in.Validate(); ve.HasErrors() {
		t.Errorf("expected PRODUCT to be accepted as a universal role regardless of eligibility, got %v", ve)
	}
}

func TestValidate_CrewRoleRequirementExceedsShiftLength(t *testing.T) {
	in := validInput()
	in.CrewRoleRequirements = []CrewRoleRequirement{{CrewID: "c1", Role: "REGISTER", RequiredHours: 100}}
	if ve := in.Validate(); !ve.HasErrors() {
		t.Error("expected validation error when requiredHours exceeds shift length")
	}
}

func TestValidate_CoverageWindowBadHours(t *testing.T) {
	in := validInput()
	in.CoverageWindows = []CoverageWindow{{Role: "REGISTER", StartHour: 18, EndHour: 9, RequiredPerHour: 1}}
	if ve := in.Validate(); !ve.HasErrors() {
		t.Error("expected validation error when startHour does not precede endHour")
	}
}

func TestValidate_PreferenceUnknownCrew(t *testing.T) {
	in := validInput()
	in.Preferences = []Preference{{CrewID: "ghost", PreferenceType: PreferenceFavorite, BaseWeight: 1}}
	if ve := in.Validate(); !ve.HasErrors() {
		t.Error("expected validation error for unknown crew id in preferences")
	}
}
