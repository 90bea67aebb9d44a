package workload

import (
	"testing"

	"github.com/paiban/logbook/pkg/model"
)

func crew(ids ...string) []model.Crew {
	out := make([]model.Crew, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Crew{ID: id})
	}
	return out
}

func TestAnalyze_PerfectFairness(t *testing.T) {
	assignments := []model.Assignment{
		{CrewID: "c1", TaskType: "REGISTER"},
		{CrewID: "c2", TaskType: "REGISTER"},
	}
	report := Analyze(crew("c1", "c2"), assignments, 30)

	if report.HoursGini > 0.01 {
		t.Errorf("expected near-zero gini for equal hours, got %f", report.HoursGini)
	}
	if len(report.Crew) != 2 {
		t.Fatalf("expected 2 crew entries, got %d", len(report.Crew))
	}
}

func TestAnalyze_Skewed(t *testing.T) {
	assignments := []model.Assignment{
		{CrewID: "c1", TaskType: "REGISTER"},
		{CrewID: "c1", TaskType: "REGISTER"},
		{CrewID: "c1", TaskType: "PRODUCT"},
		{CrewID: "c2", TaskType: "PRODUCT"},
	}
	report := Analyze(crew("c1", "c2"), assignments, 30)

	if report.HoursGini <= 0 {
		t.Errorf("expected positive gini for uneven hours, got %f", report.HoursGini)
	}
	if report.RoleDistribution["REGISTER"] != 50 {
		t.Errorf("expected REGISTER to be 50%% of assignments, got %f", report.RoleDistribution["REGISTER"])
	}
}

func TestAnalyze_UnassignedCrewAppearsWithZeroHours(t *testing.T) {
	report := Analyze(crew("c1", "c2"), nil, 30)

	if len(report.Crew) != 2 {
		t.Fatalf("expected 2 crew entries even with no assignments, got %d", len(report.Crew))
	}
	for _, w := range report.Crew {
		if w.TotalHours != 0 {
			t.Errorf("expected zero hours for %s, got %f", w.CrewID, w.TotalHours)
		}
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	report := Analyze(nil, nil, 30)
	if report == nil {
		t.Fatal("expected non-nil report for empty input")
	}
	if len(report.Crew) != 0 {
		t.Errorf("expected no crew entries, got %d", len(report.Crew))
	}
}
