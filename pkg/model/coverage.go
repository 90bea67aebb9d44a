package model

// CoverageWindow requires an exact per-slot crew count for a role across an
// hour range (spec.md §3 "Coverage window").
type CoverageWindow struct {
	Role            string `json:"role"`
	StartHour       int    `json:"startHour"`
	EndHour         int    `json:"endHour"`
	RequiredPerHour int    `json:"requiredPerHour"`
}
