// Package vars implements the decision-variable builder of spec.md §4.3: it
// creates one boolean x[crew,slot,role] for every legal triple and exposes
// a fast lookup by (crew, slot, role), (crew, role) and (slot, role).
package vars

import (
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/logbook/pkg/model"
	"github.com/paiban/logbook/pkg/roles"
	"github.com/paiban/logbook/pkg/timegrid"
)

// Key identifies one decision variable.
type Key struct {
	Crew string
	Slot int
	Role string
}

type slotRoleKey struct {
	Slot int
	Role string
}

type crewRoleKey struct {
	Crew string
	Role string
}

// Table is the indexed lookup table of built variables (spec.md §4.3
// "Returns a fast lookup by (c,k,r)").
type Table struct {
	byKey      map[Key]cpmodel.BoolVar
	bySlotRole map[slotRoleKey][]string
	byCrewRole map[crewRoleKey][]int
	crewShift  map[string][2]int // [startSlot, endSlot)
	crewIDs    []string
}

// Build creates one BoolVar for every (crew, slot, role) triple that
// satisfies spec.md §4.3's legality rules:
//   - slot lies in the crew's shift window
//   - role is universal or in the crew's eligibility
//   - the slot is within store hours, or the role allows outside-hours
//   - if role is the register role, the slot is within the register window
//
// Variables that would violate any rule are never created.
func Build(b *cpmodel.CpModelBuilder, in *model.Input, grid *timegrid.Grid, reg *roles.Registry) *Table {
	t := &Table{
		byKey:      make(map[Key]cpmodel.BoolVar),
		bySlotRole: make(map[slotRoleKey][]string),
		byCrewRole: make(map[crewRoleKey][]int),
		crewShift:  make(map[string][2]int),
	}

	openSlot := grid.FloorToSlot(in.Store.OpenMinutesFromMidnight)
	closeSlot := grid.CeilToSlot(in.Store.CloseMinutesFromMidnight)
	regStart, regEnd := in.Store.RegisterWindowMinutes()
	regStartSlot, regEndSlot := grid.FloorToSlot(regStart), grid.CeilToSlot(regEnd)

	for _, c := range in.Crew {
		startSlot, endSlot := grid.ShiftSlots(c.ShiftStartMin, c.ShiftEndMin)
		t.crewShift[c.ID] = [2]int{startSlot, endSlot}
		t.crewIDs = append(t.crewIDs, c.ID)

		for _, role := range reg.Roles() {
			eligible := reg.IsUniversal(role) || c.IsEligible(role)
			if !eligible {
				continue
			}
			for k := startSlot; k < endSlot; k++ {
				if k < openSlot || k >= closeSlot {
					if !reg.AllowsOutsideHours(role) {
						continue
					}
				}
				if role == roles.Register {
					if k < regStartSlot || k >= regEndSlot {
						continue
					}
				}
				v := b.NewBoolVar()
				key := Key{Crew: c.ID, Slot: k, Role: role}
				t.byKey[key] = v
				sr := slotRoleKey{Slot: k, Role: role}
				t.bySlotRole[sr] = append(t.bySlotRole[sr], c.ID)
				cr := crewRoleKey{Crew: c.ID, Role: role}
				t.byCrewRole[cr] = append(t.byCrewRole[cr], k)
			}
		}
	}

	for k := range t.byCrewRole {
		sort.Ints(t.byCrewRole[k])
	}
	sort.Strings(t.crewIDs)

	return t
}

// Get returns the variable for (crew, slot, role), if it was created.
func (t *Table) Get(crew string, slot int, role string) (cpmodel.BoolVar, bool) {
	v, ok := t.byKey[Key{Crew: crew, Slot: slot, Role: role}]
	return v, ok
}

// Has reports whether a variable exists for (crew, slot, role).
func (t *Table) Has(crew string, slot int, role string) bool {
	_, ok := t.byKey[Key{Crew: crew, Slot: slot, Role: role}]
	return ok
}

// CrewIDs returns the id of every crew member in the input, sorted, whether
// or not any variable was created for them.
func (t *Table) CrewIDs() []string {
	return append([]string(nil), t.crewIDs...)
}

// ShiftSlots returns the [start, end) slot window built for crew.
func (t *Table) ShiftSlots(crew string) (start, end int, ok bool) {
	w, ok := t.crewShift[crew]
	if !ok {
		return 0, 0, false
	}
	return w[0], w[1], true
}

// SlotsFor returns, in ascending order, every slot that has a variable for
// (crew, role).
func (t *Table) SlotsFor(crew, role string) []int {
	return append([]int(nil), t.byCrewRole[crewRoleKey{Crew: crew, Role: role}]...)
}

// CrewAt returns every crew id with a variable at (slot, role).
func (t *Table) CrewAt(slot int, role string) []string {
	return append([]string(nil), t.bySlotRole[slotRoleKey{Slot: slot, Role: role}]...)
}

// AllKeys returns every (crew, slot, role) triple with a variable, in no
// particular order. Used by the result projector.
func (t *Table) AllKeys() []Key {
	keys := make([]Key, 0, len(t.byKey))
	for k := range t.byKey {
		keys = append(keys, k)
	}
	return keys
}

// Var returns the BoolVar for a known Key. For a key with no variable it
// returns the zero BoolVar; callers must only pass keys obtained from
// AllKeys/Get/Has.
func (t *Table) Var(k Key) cpmodel.BoolVar {
	return t.byKey[k]
}
