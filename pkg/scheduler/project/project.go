// Package project implements the result projector of spec.md §4.7: walk
// every decision variable fixed to 1 in a solved model and emit one
// assignment record per slot. No merging of adjacent identical
// assignments is performed, matching spec.md's explicit "no merging"
// clause — consumers merge if they need to.
package project

import (
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/logbook/pkg/model"
	"github.com/paiban/logbook/pkg/scheduler/vars"
	"github.com/paiban/logbook/pkg/timegrid"
)

// Assignments walks every (crew, slot, role) with a variable fixed to 1 in
// response and returns one model.Assignment per hit, sorted by crew id
// then start time for deterministic output.
func Assignments(response *cpmodel.CpSolverResponse, t *vars.Table, grid *timegrid.Grid) []model.Assignment {
	out := make([]model.Assignment, 0, len(t.AllKeys()))
	for _, k := range t.AllKeys() {
		if !cpmodel.SolutionBooleanValue(response, t.Var(k)) {
			continue
		}
		out = append(out, model.Assignment{
			CrewID:    k.Crew,
			TaskType:  k.Role,
			StartTime: grid.SlotStart(k.Slot),
			EndTime:   grid.SlotEnd(k.Slot),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CrewID != out[j].CrewID {
			return out[i].CrewID < out[j].CrewID
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}
