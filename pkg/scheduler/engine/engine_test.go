package engine

import (
	"testing"

	"github.com/paiban/logbook/pkg/model"
)

func TestMapStatus(t *testing.T) {
	cases := map[string]model.Status{
		"OPTIMAL":     model.StatusOptimal,
		"FEASIBLE":    model.StatusFeasible,
		"INFEASIBLE":  model.StatusInfeasible,
		"UNKNOWN":     model.StatusTimeLimit,
		"MODEL_INVALID": model.StatusError,
	}
	for native, want := range cases {
		if got := mapStatus(native); got != want {
			t.Errorf("mapStatus(%q) = %v, want %v", native, got, want)
		}
	}
}

func TestSolve_RejectsInvalidInputBeforeBuildingAModel(t *testing.T) {
	in := &model.Input{
		Store: model.StorePolicy{BaseSlotMinutes: 7}, // does not divide 60
	}
	out := Solve("test-run", in)
	if out.Success {
		t.Error("expected Success=false for an invalid input document")
	}
	if out.Metadata.Status != model.StatusError {
		t.Errorf("expected StatusError, got %v", out.Metadata.Status)
	}
	if len(out.Metadata.Violations) == 0 {
		t.Error("expected at least one violation message")
	}
	if out.Assignments == nil || len(out.Assignments) != 0 {
		t.Error("expected an empty, non-nil assignments slice")
	}
}

func TestSolve_RejectsZeroSlotMinutes(t *testing.T) {
	in := &model.Input{
		Store: model.StorePolicy{
			BaseSlotMinutes:          0,
			OpenMinutesFromMidnight:  480,
			CloseMinutesFromMidnight: 1200,
		},
	}
	out := Solve("test-run", in)
	if out.Success {
		t.Error("expected Success=false when the store policy fails validation")
	}
}
