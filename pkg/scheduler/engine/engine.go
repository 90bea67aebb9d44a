// Package engine drives one solve end to end: validate input, build the
// decision-variable table, attach the hard constraint families and the
// objective, hand the model to CP-SAT with a wall-clock budget, and
// project the response into spec.md §6's output document. This is the
// state machine of spec.md §4.6
// (CONFIGURED -> VARIABLES_BUILT -> CONSTRAINED -> SOLVED/INFEASIBLE/ERROR).
package engine

import (
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	satparameters "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"

	"github.com/paiban/logbook/pkg/errors"
	"github.com/paiban/logbook/pkg/logger"
	"github.com/paiban/logbook/pkg/model"
	"github.com/paiban/logbook/pkg/roles"
	"github.com/paiban/logbook/pkg/scheduler/diagnostics"
	"github.com/paiban/logbook/pkg/scheduler/hardconstraints"
	"github.com/paiban/logbook/pkg/scheduler/objective"
	"github.com/paiban/logbook/pkg/scheduler/project"
	"github.com/paiban/logbook/pkg/scheduler/vars"
	"github.com/paiban/logbook/pkg/timegrid"
)

const defaultTimeLimit = 300 * time.Second

// Solve runs one complete solve for in and returns the spec.md §6 output
// document. RunID is used only for log correlation; it has no bearing on
// the solve itself (spec.md §5: a solve is a pure function of its input).
func Solve(runID string, in *model.Input) *model.Output {
	log := logger.NewSolverLogger()
	started := time.Now()

	if ve := in.Validate(); ve.HasErrors() {
		return errorOutput(log, runID, in, nil, ve.ToAppError(), started)
	}

	grid, err := timegrid.New(in.Store.BaseSlotMinutes)
	if err != nil {
		return errorOutput(log, runID, in, nil, errors.ConstructionError(err.Error()), started)
	}

	reg := roles.Build(in)

	b := cpmodel.NewCpModelBuilder()
	table := vars.Build(b, in, grid, reg)

	log.StartSolve(runID, len(in.Crew), grid.NumSlots())

	if err := hardconstraints.AttachAll(b, table, in, grid, reg); err != nil {
		return errorOutput(log, runID, in, grid, err, started)
	}
	objective.Attach(b, table, in, grid, reg)

	modelProto, err := b.Model()
	if err != nil {
		return errorOutput(log, runID, in, grid, errors.ConstructionError(err.Error()), started)
	}

	limit := time.Duration(in.TimeLimitSeconds) * time.Second
	if limit <= 0 {
		limit = defaultTimeLimit
	}
	params := &satparameters.SatParameters{
		MaxTimeInSeconds: proto.Float64(limit.Seconds()),
	}

	response, err := cpmodel.SolveCpModelWithParameters(modelProto, params)
	if err != nil {
		return errorOutput(log, runID, in, grid, errors.Wrap(err, errors.CodeInternal, "solve engine failure"), started)
	}

	runtime := time.Since(started)
	status := mapStatus(response.GetStatus().String())

	out := &model.Output{
		Metadata: model.Metadata{
			Status:      status,
			RuntimeMs:   runtime.Milliseconds(),
			NumCrew:     len(in.Crew),
			NumSlots:    grid.NumSlots(),
			SlotMinutes: grid.SlotMinutes(),
			Violations:  []string{},
		},
	}

	switch status {
	case model.StatusOptimal, model.StatusFeasible:
		assignments := project.Assignments(response, table, grid)
		out.Success = true
		out.Assignments = assignments
		out.Metadata.NumAssignments = len(assignments)
		objScore := int64(response.GetObjectiveValue())
		out.Metadata.ObjectiveScore = &objScore
		if status == model.StatusOptimal {
			gap := 0.0
			out.Metadata.MipGap = &gap
		}
	case model.StatusInfeasible:
		out.Success = false
		out.Assignments = []model.Assignment{}
		out.Metadata.Violations = diagnoseInfeasible(runID, in, grid, reg, table)
	default:
		// TIME_LIMIT with no solution found, or ERROR: no assignments.
		out.Success = false
		out.Assignments = []model.Assignment{}
	}

	log.SolveComplete(runID, string(status), runtime, metadataObjective(out), out.Metadata.NumAssignments)
	return out
}

func diagnoseInfeasible(runID string, in *model.Input, grid *timegrid.Grid, reg *roles.Registry, table *vars.Table) []string {
	mgr := diagnostics.NewManager()
	ctx := &diagnostics.Context{Input: in, Grid: grid, Registry: reg, Vars: table}
	violations := mgr.Evaluate(runID, ctx)
	if len(violations) == 0 {
		violations = []string{"model reported infeasible; no necessary-condition check identified a specific cause"}
	}
	return violations
}

// mapStatus mirrors original_source's _status_to_string exactly: CP-SAT's
// UNKNOWN means the time limit was hit before any solution was proven or
// found, which this system reports as TIME_LIMIT rather than ERROR.
func mapStatus(native string) model.Status {
	switch native {
	case "OPTIMAL":
		return model.StatusOptimal
	case "FEASIBLE":
		return model.StatusFeasible
	case "INFEASIBLE":
		return model.StatusInfeasible
	case "UNKNOWN":
		return model.StatusTimeLimit
	default:
		return model.StatusError
	}
}

// errorOutput builds the ERROR metadata document. NumCrew is always known
// from in; NumSlots/SlotMinutes are only known once timegrid.New has
// succeeded, so grid is nil for errors raised before that point.
func errorOutput(log *logger.SolverLogger, runID string, in *model.Input, grid *timegrid.Grid, err *errors.AppError, started time.Time) *model.Output {
	log.ConstructionRejected(runID, err.Error())
	metadata := model.Metadata{
		Status:     model.StatusError,
		RuntimeMs:  time.Since(started).Milliseconds(),
		NumCrew:    len(in.Crew),
		Violations: []string{err.Error()},
	}
	if grid != nil {
		metadata.NumSlots = grid.NumSlots()
		metadata.SlotMinutes = grid.SlotMinutes()
	}
	return &model.Output{
		Success:     false,
		Metadata:    metadata,
		Assignments: []model.Assignment{},
	}
}

func metadataObjective(out *model.Output) int64 {
	if out.Metadata.ObjectiveScore == nil {
		return 0
	}
	return *out.Metadata.ObjectiveScore
}
