// Package roles implements the role registry of spec.md §4.2: it folds
// input role-metadata overrides over a default table and answers
// classification predicates for every role observed anywhere in the input.
package roles

import "github.com/paiban/logbook/pkg/model"

const (
	Register    = "REGISTER"
	Product     = "PRODUCT"
	ParkingHelm = "PARKING_HELM"
	MealBreak   = "MEAL_BREAK"
)

// meta is the fully-resolved metadata for one role.
type meta struct {
	universal            bool
	breakRole            bool
	parkingRole          bool
	allowOutsideHours    bool
	slotSizeMode         model.SlotSizeMode
	blockSize            int
	minSlots             int
	maxSlots             int
	mustBeConsecutive    bool
	isConsecutive        bool
}

func defaultMeta(role string) meta {
	m := meta{
		slotSizeMode: model.SlotSizeHalfOrFull,
		blockSize:    1,
		minSlots:     0,
		maxSlots:     1 << 30,
	}
	switch role {
	case Register:
		m.universal = true
		m.slotSizeMode = model.SlotSizeHourOnly
	case Product:
		m.universal = true
	case ParkingHelm:
		m.universal = true
		m.parkingRole = true
	case MealBreak:
		m.universal = true
		m.breakRole = true
	}
	return m
}

// Registry is the resolved role table for one solve.
type Registry struct {
	roles map[string]meta
	order []string
}

// Build folds overrides from input role-metadata over the default table for
// every role code observed anywhere in input, per spec.md §4.2.
func Build(in *model.Input) *Registry {
	r := &Registry{roles: make(map[string]meta)}

	observed := make(map[string]bool)
	observe := func(role string) {
		if !observed[role] {
			observed[role] = true
			r.order = append(r.order, role)
		}
	}
	for _, role := range []string{Register, Product, ParkingHelm, MealBreak} {
		observe(role)
	}
	for _, c := range in.Crew {
		for _, role := range c.EligibleRoles {
			observe(role)
		}
	}
	for _, rm := range in.RoleMetadata {
		observe(rm.Role)
	}
	for _, req := range in.CrewRoleRequirements {
		observe(req.Role)
	}
	for _, cw := range in.CoverageWindows {
		observe(cw.Role)
	}
	for _, p := range in.Preferences {
		if p.Role != "" {
			observe(p.Role)
		}
	}

	overrides := make(map[string]model.RoleMetadata)
	for _, rm := range in.RoleMetadata {
		overrides[rm.Role] = rm
	}

	for _, role := range r.order {
		m := defaultMeta(role)
		if ov, ok := overrides[role]; ok {
			applyOverride(&m, ov)
		}
		r.roles[role] = m
	}
	return r
}

func applyOverride(m *meta, ov model.RoleMetadata) {
	if ov.IsUniversal != nil {
		m.universal = *ov.IsUniversal
	}
	if ov.IsBreakRole != nil {
		m.breakRole = *ov.IsBreakRole
	}
	if ov.IsParkingRole != nil {
		m.parkingRole = *ov.IsParkingRole
	}
	if ov.AllowOutsideStoreHours != nil {
		m.allowOutsideHours = *ov.AllowOutsideStoreHours
	}
	if ov.SlotSizeMode != "" {
		m.slotSizeMode = ov.SlotSizeMode
	}
	if ov.BlockSize != nil && *ov.BlockSize > 0 {
		m.blockSize = *ov.BlockSize
	}
	if ov.MinSlots != nil {
		m.minSlots = *ov.MinSlots
	}
	if ov.MaxSlots != nil {
		m.maxSlots = *ov.MaxSlots
	}
	if ov.SlotsMustBeConsecutive != nil {
		m.mustBeConsecutive = *ov.SlotsMustBeConsecutive
	}
	if ov.IsConsecutive != nil {
		m.isConsecutive = *ov.IsConsecutive
	}
}

// Roles returns every role code in the active set, in discovery order.
func (r *Registry) Roles() []string {
	return append([]string(nil), r.order...)
}

// Has reports whether role is in the active set.
func (r *Registry) Has(role string) bool {
	_, ok := r.roles[role]
	return ok
}

func (r *Registry) IsUniversal(role string) bool        { return r.roles[role].universal }
func (r *Registry) IsBreak(role string) bool             { return r.roles[role].breakRole }
func (r *Registry) IsParking(role string) bool           { return r.roles[role].parkingRole }
func (r *Registry) AllowsOutsideHours(role string) bool  { return r.roles[role].allowOutsideHours }
func (r *Registry) BlockSize(role string) int            { return r.roles[role].blockSize }
func (r *Registry) MinSlots(role string) int             { return r.roles[role].minSlots }
func (r *Registry) MaxSlots(role string) int             { return r.roles[role].maxSlots }
func (r *Registry) MustBeConsecutive(role string) bool   { return r.roles[role].mustBeConsecutive }
func (r *Registry) IsConsecutive(role string) bool       { return r.roles[role].isConsecutive }
func (r *Registry) SlotSizeMode(role string) model.SlotSizeMode {
	return r.roles[role].slotSizeMode
}

// FirstBreakRole returns the first break-role in discovery order, and false
// if none is active (C8 uses "the first declared break-role").
func (r *Registry) FirstBreakRole() (string, bool) {
	for _, role := range r.order {
		if r.roles[role].breakRole {
			return role, true
		}
	}
	return "", false
}
