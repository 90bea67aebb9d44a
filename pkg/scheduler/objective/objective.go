// Package objective implements the weighted preference objective of
// spec.md §4.5, grounded on
// original_source/apps/solver-python/logbook_solver/objective.py. Unlike
// the original, every preference term is driven by the input's
// preferences[] array (the Open Question resolution recorded in
// DESIGN.md) rather than legacy per-crew/per-store flat-weight fields.
package objective

import (
	"math"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/logbook/pkg/model"
	"github.com/paiban/logbook/pkg/roles"
	"github.com/paiban/logbook/pkg/scheduler/hardconstraints"
	"github.com/paiban/logbook/pkg/scheduler/vars"
	"github.com/paiban/logbook/pkg/timegrid"
)

// scale turns the fractional coefficients the spec describes (normalized
// ratios, weight products) into integer CP-SAT coefficients, as spec.md
// §4.5's closing paragraph asks for. Every term uses the same scale so the
// relative ordering of solutions is unaffected.
const scale = 1000

const parkingDistanceWeight = 50
const softConsecutiveWeight = 500

// Attach builds the maximization objective from in.Preferences plus the
// two fixed domain penalties (parking distance-from-start, soft
// consecutivity). If no term is produced, it falls back to maximizing the
// count of assignments, per spec.md §4.5's closing clause.
func Attach(b *cpmodel.CpModelBuilder, t *vars.Table, in *model.Input, grid *timegrid.Grid, reg *roles.Registry) {
	expr := cpmodel.NewLinearExpr()
	any := false

	for _, pref := range in.Preferences {
		if addPreferenceTerm(b, expr, t, in, grid, reg, pref) {
			any = true
		}
	}
	if addParkingDistance(expr, t, in, grid, reg) {
		any = true
	}
	if addSoftConsecutive(b, expr, t, in, reg) {
		any = true
	}

	if !any {
		fallback := cpmodel.NewLinearExpr()
		for _, k := range t.AllKeys() {
			fallback.Add(t.Var(k))
		}
		b.Maximize(fallback)
		return
	}
	b.Maximize(expr)
}

func addPreferenceTerm(b *cpmodel.CpModelBuilder, expr *cpmodel.LinearExpr, t *vars.Table, in *model.Input, grid *timegrid.Grid, reg *roles.Registry, pref model.Preference) bool {
	weight, ok := pref.EffectiveWeight()
	if !ok || weight == 0 {
		return false
	}

	start, end, ok := t.ShiftSlots(pref.CrewID)
	if !ok {
		return false
	}

	switch pref.PreferenceType {
	case model.PreferenceFirstHour:
		v, ok := t.Get(pref.CrewID, start, pref.Role)
		if !ok {
			return false
		}
		expr.AddTerm(v, coeff(weight))
		return true

	case model.PreferenceFavorite:
		added := false
		for k := start; k < end; k++ {
			if v, ok := t.Get(pref.CrewID, k, pref.Role); ok {
				expr.AddTerm(v, coeff(weight))
				added = true
			}
		}
		return added

	case model.PreferenceConsecutive:
		return addSwitchPenalty(b, expr, t, pref.CrewID, pref.Role, start, end, weight)

	case model.PreferenceTiming:
		return addTimingTerm(t, expr, reg, in, grid, pref, start, end, weight)
	}
	return false
}

// addSwitchPenalty encodes switch_k = |x[k] - x[k+1]| via the two
// inequalities of spec.md §4.5 and subtracts w*switch_k for every slot
// pair, penalizing gaps in an otherwise-consecutive role assignment.
func addSwitchPenalty(b *cpmodel.CpModelBuilder, expr *cpmodel.LinearExpr, t *vars.Table, crewID, role string, start, end int, weight float64) bool {
	added := false
	for k := start; k < end-1; k++ {
		vk, ok1 := t.Get(crewID, k, role)
		vk1, ok2 := t.Get(crewID, k+1, role)
		if !ok1 || !ok2 {
			continue
		}
		gap := gapVar(b, vk, vk1)
		expr.AddTerm(gap, -coeff(weight))
		added = true
	}
	return added
}

// gapVar returns a boolean that is forced to 1 whenever a and b disagree,
// via the XOR-as-two-inequalities encoding shared by the CONSECUTIVE
// preference and the soft-consecutivity penalty in this objective.
func gapVar(b *cpmodel.CpModelBuilder, a, bv cpmodel.BoolVar) cpmodel.BoolVar {
	gap := b.NewBoolVar()
	diff1 := cpmodel.NewLinearExpr()
	diff1.AddTerm(a, 1)
	diff1.AddTerm(bv, -1)
	b.AddGreaterOrEqual(asArg(gap), diff1)

	diff2 := cpmodel.NewLinearExpr()
	diff2.AddTerm(bv, 1)
	diff2.AddTerm(a, -1)
	b.AddGreaterOrEqual(asArg(gap), diff2)
	return gap
}

func asArg(v cpmodel.BoolVar) cpmodel.LinearArgument {
	e := cpmodel.NewLinearExpr()
	e.Add(v)
	return e
}

// addTimingTerm implements the TIMING preference: a linear ramp across the
// crew's meal-break window (the same [earliest,latest] window C8 enforces,
// not the full shift), direction given by pref.IntValue (+1 favors later
// slots, -1 favors earlier ones).
func addTimingTerm(t *vars.Table, expr *cpmodel.LinearExpr, reg *roles.Registry, in *model.Input, grid *timegrid.Grid, pref model.Preference, shiftStart, shiftEnd int, weight float64) bool {
	breakRole, ok := reg.FirstBreakRole()
	if !ok {
		return false
	}
	store := in.Store.WithDefaults()
	earliest, latest, ok := hardconstraints.BreakWindow(shiftStart, shiftEnd, store, grid)
	if !ok {
		return false
	}

	direction := 1
	if pref.IntValue != nil {
		direction = *pref.IntValue
	}

	maxOffset := latest - earliest
	if maxOffset <= 0 {
		return false
	}

	added := false
	for k := earliest; k <= latest; k++ {
		v, ok := t.Get(pref.CrewID, k, breakRole)
		if !ok {
			continue
		}
		offset := k - earliest
		var ratio float64
		if direction > 0 {
			ratio = float64(offset) / float64(maxOffset)
		} else {
			ratio = float64(maxOffset-offset) / float64(maxOffset)
		}
		expr.AddTerm(v, coeff(ratio*weight))
		added = true
	}
	return added
}

// addParkingDistance is the fixed domain penalty (spec.md §4.5 "Domain
// penalties"): for crew allowed to hold a parking role, later parking
// assignments score higher, encouraging parking toward the end of the
// shift rather than right after it opens.
func addParkingDistance(expr *cpmodel.LinearExpr, t *vars.Table, in *model.Input, grid *timegrid.Grid, reg *roles.Registry) bool {
	added := false
	for _, c := range in.Crew {
		if !c.MayParkingHelm() {
			continue
		}
		start, end, ok := t.ShiftSlots(c.ID)
		if !ok {
			continue
		}
		shiftLen := end - start
		if shiftLen <= 1 {
			continue
		}
		maxDistance := shiftLen - 1
		for _, role := range reg.Roles() {
			if !reg.IsParking(role) {
				continue
			}
			for k := start + 2; k < end; k++ {
				v, ok := t.Get(c.ID, k, role)
				if !ok {
					continue
				}
				distance := k - start
				ratio := float64(distance) / float64(maxDistance)
				expr.AddTerm(v, coeff(ratio*parkingDistanceWeight))
				added = true
			}
		}
	}
	return added
}

// addSoftConsecutive is the fixed domain penalty for roles marked
// isConsecutive=true in role metadata: distinct from the hard C10
// must-be-consecutive family, this only discourages gaps rather than
// forbidding them.
func addSoftConsecutive(b *cpmodel.CpModelBuilder, expr *cpmodel.LinearExpr, t *vars.Table, in *model.Input, reg *roles.Registry) bool {
	added := false
	for _, role := range reg.Roles() {
		if !reg.IsConsecutive(role) {
			continue
		}
		for _, c := range in.Crew {
			start, end, ok := t.ShiftSlots(c.ID)
			if !ok {
				continue
			}
			for k := start; k < end-1; k++ {
				vk, ok1 := t.Get(c.ID, k, role)
				vk1, ok2 := t.Get(c.ID, k+1, role)
				if !ok1 || !ok2 {
					continue
				}
				gap := gapVar(b, vk, vk1)
				expr.AddTerm(gap, -softConsecutiveWeight*scale)
				added = true
			}
		}
	}
	return added
}

func coeff(weight float64) int64 {
	return int64(math.Round(weight * scale))
}
