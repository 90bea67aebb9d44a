// Package diagnostics implements spec.md §4.8: when the solver reports
// INFEASIBLE, re-check the necessary conditions independently of the
// engine and emit one human-readable reason per failing check. Adapted
// from the teacher's constraint.Constraint/Context evaluation registry
// (pkg/scheduler/constraint/constraint.go), trimmed to a single-day,
// read-only verification pass instead of a hard/soft scoring model.
package diagnostics

import (
	"github.com/paiban/logbook/pkg/model"
	"github.com/paiban/logbook/pkg/roles"
	"github.com/paiban/logbook/pkg/scheduler/vars"
	"github.com/paiban/logbook/pkg/timegrid"
)

// Context bundles everything a Check needs to re-derive necessary
// conditions without touching the solver engine.
type Context struct {
	Input    *model.Input
	Grid     *timegrid.Grid
	Registry *roles.Registry
	Vars     *vars.Table
}

// Check is one necessary-condition re-verification (spec.md §4.8 numbers
// the four built into Checks()).
type Check interface {
	// Name identifies the check for logging.
	Name() string
	// Evaluate returns one message per violation found. An empty slice
	// means the check found no problem.
	Evaluate(ctx *Context) []string
}
