package model

// CrewRoleRequirement is a per-crew exact-hours requirement on one role
// (spec.md §3 "Per-crew role requirement").
type CrewRoleRequirement struct {
	CrewID        string  `json:"crewId"`
	Role          string  `json:"role"`
	RequiredHours float64 `json:"requiredHours"`
}
