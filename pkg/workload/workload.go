// Package workload reports how evenly a solved schedule spreads hours and
// task types across crew. It is a post-hoc analysis over a solve's
// assignments, grounded on the gini/variance technique of
// pkg/stats/fairness.go in the teacher repo; it has no bearing on the
// solve itself and is never fed into the objective (spec.md §4.5 is
// driven only by preferences[] and the two fixed domain penalties).
package workload

import (
	"math"
	"sort"

	"github.com/paiban/logbook/pkg/model"
)

// CrewWorkload summarizes one crew member's assigned minutes and role mix.
type CrewWorkload struct {
	CrewID         string             `json:"crewId"`
	TotalMinutes   int                `json:"totalMinutes"`
	TotalHours     float64            `json:"totalHours"`
	SlotCount      int                `json:"slotCount"`
	RoleMinutes    map[string]int     `json:"roleMinutes"`
	DeviationPct   float64            `json:"deviationPct"`
}

// Report is the full workload breakdown for one solved schedule.
type Report struct {
	HoursGini        float64        `json:"hoursGini"`
	AvgHoursPerCrew  float64        `json:"avgHoursPerCrew"`
	MaxHours         float64        `json:"maxHours"`
	MinHours         float64        `json:"minHours"`
	RoleDistribution map[string]float64 `json:"roleDistribution"`
	Crew             []CrewWorkload `json:"crew"`
}

// Analyze builds a Report from a solved schedule's assignment list. Crew
// with no assignments (e.g. an unfilled shift on a TIME_LIMIT/ERROR
// result) still appear with zero totals, so the report always covers the
// full roster.
func Analyze(crew []model.Crew, assignments []model.Assignment, slotMinutes int) *Report {
	byID := make(map[string]*CrewWorkload, len(crew))
	for _, c := range crew {
		byID[c.ID] = &CrewWorkload{CrewID: c.ID, RoleMinutes: make(map[string]int)}
	}

	roleCounts := make(map[string]int)
	for _, a := range assignments {
		w, ok := byID[a.CrewID]
		if !ok {
			w = &CrewWorkload{CrewID: a.CrewID, RoleMinutes: make(map[string]int)}
			byID[a.CrewID] = w
		}
		w.TotalMinutes += slotMinutes
		w.SlotCount++
		w.RoleMinutes[a.TaskType] += slotMinutes
		roleCounts[a.TaskType]++
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	report := &Report{RoleDistribution: make(map[string]float64)}
	hours := make([]float64, 0, len(ids))
	result := make([]CrewWorkload, 0, len(ids))
	for _, id := range ids {
		w := byID[id]
		w.TotalHours = float64(w.TotalMinutes) / 60.0
		hours = append(hours, w.TotalHours)
		result = append(result, *w)
	}

	avg := mean(hours)
	for i := range result {
		if avg > 0 {
			result[i].DeviationPct = (result[i].TotalHours - avg) / avg * 100
		}
	}

	report.Crew = result
	report.AvgHoursPerCrew = avg
	report.HoursGini = gini(hours)
	report.MaxHours, report.MinHours = rangeOf(hours)

	totalAssignments := len(assignments)
	if totalAssignments > 0 {
		for role, count := range roleCounts {
			report.RoleDistribution[role] = float64(count) / float64(totalAssignments) * 100
		}
	}

	return report
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func rangeOf(values []float64) (max, min float64) {
	if len(values) == 0 {
		return 0, 0
	}
	max, min = values[0], values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return
}

// gini is the standard discrete Gini coefficient, 0 for perfectly even
// distribution and approaching 1 as one crew member absorbs all hours.
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	g := 0.0
	for i, v := range sorted {
		g += (2*float64(i+1) - float64(n) - 1) * v
	}
	g = g / (float64(n) * sum)
	return math.Max(0, math.Min(1, g))
}
