package model

// StorePolicy is the per-day store policy (spec.md §3 "Store policy").
type StorePolicy struct {
	BaseSlotMinutes          int `json:"baseSlotMinutes"`
	OpenMinutesFromMidnight  int `json:"openMinutesFromMidnight"`
	CloseMinutesFromMidnight int `json:"closeMinutesFromMidnight"`

	// Register sub-window, expressed in whole hours.
	StartRegHour int `json:"startRegHour"`
	EndRegHour   int `json:"endRegHour"`

	MinShiftMinutesForBreak       int `json:"minShiftMinutesForBreak"`
	BreakWindowStartOffsetMinutes int `json:"breakWindowStartOffsetMinutes"`
	BreakWindowEndOffsetMinutes   int `json:"breakWindowEndOffsetMinutes"`
}

// WithDefaults returns a copy of the policy with spec.md §6 defaults applied
// to the break-policy fields when the input left them at their zero value.
func (s StorePolicy) WithDefaults() StorePolicy {
	if s.MinShiftMinutesForBreak == 0 {
		s.MinShiftMinutesForBreak = 360
	}
	if s.BreakWindowStartOffsetMinutes == 0 {
		s.BreakWindowStartOffsetMinutes = 180
	}
	if s.BreakWindowEndOffsetMinutes == 0 {
		s.BreakWindowEndOffsetMinutes = 270
	}
	return s
}

// RegisterWindowMinutes returns the register sub-window in
// minutes-from-midnight. The window is optional (spec.md §3): when both
// bounds are left at zero, it defaults to the full store-open window, the
// same rule original_source's core.py applies to its reg_start/reg_end
// (default to open/close, then clamp to [open,close] and bump a
// zero-or-negative-length window to one slot) before its own ×60
// conversion — this type keeps StartRegHour/EndRegHour as whole hours since
// that is the frozen external interface (spec.md §6), so the ×60 happens
// here instead of at the caller.
func (s StorePolicy) RegisterWindowMinutes() (start, end int) {
	if s.StartRegHour == 0 && s.EndRegHour == 0 {
		return s.OpenMinutesFromMidnight, s.CloseMinutesFromMidnight
	}
	start, end = s.StartRegHour*60, s.EndRegHour*60
	if start < s.OpenMinutesFromMidnight {
		start = s.OpenMinutesFromMidnight
	}
	if end > s.CloseMinutesFromMidnight {
		end = s.CloseMinutesFromMidnight
	}
	if end <= start {
		end = start + s.BaseSlotMinutes
	}
	return start, end
}
