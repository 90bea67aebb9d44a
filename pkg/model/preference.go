package model

// PreferenceKind enumerates the four preference shapes the objective builder
// understands (spec.md §3/§4.5).
type PreferenceKind string

const (
	PreferenceFirstHour  PreferenceKind = "FIRST_HOUR"
	PreferenceFavorite   PreferenceKind = "FAVORITE"
	PreferenceConsecutive PreferenceKind = "CONSECUTIVE"
	PreferenceTiming     PreferenceKind = "TIMING"
)

// Preference is one soft-objective term request (spec.md §3 "Preference",
// §6 "preferences").
type Preference struct {
	CrewID        string         `json:"crewId"`
	PreferenceType PreferenceKind `json:"preferenceType"`
	Role          string         `json:"role,omitempty"`
	BaseWeight    float64        `json:"baseWeight"`
	CrewWeight    *float64       `json:"crewWeight,omitempty"`
	AdaptiveBoost *float64       `json:"adaptiveBoost,omitempty"`
	IntValue      *int           `json:"intValue,omitempty"`
}

// EffectiveWeight combines base/crew/adaptive weights per the null and
// non-positive rules of spec.md §4.5. ok is false when the term must be
// dropped entirely (crew-weight present and <= 0).
func (p Preference) EffectiveWeight() (weight float64, ok bool) {
	adaptive := 1.0
	if p.AdaptiveBoost != nil {
		adaptive = *p.AdaptiveBoost
	}

	if p.CrewWeight == nil {
		// Crew-weight absent: default multiplier of 1.
		return p.BaseWeight * 1.0 * adaptive, true
	}
	if *p.CrewWeight <= 0 {
		return 0, false
	}
	if p.BaseWeight <= 0 {
		// Base absent/non-positive but an explicit crew-weight is present.
		return *p.CrewWeight * adaptive, true
	}
	return p.BaseWeight * (*p.CrewWeight) * adaptive, true
}
