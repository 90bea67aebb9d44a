package model

import "testing"

func TestRegisterWindowMinutes_DefaultsToStoreHoursWhenUnset(t *testing.T) {
	s := StorePolicy{BaseSlotMinutes: 30, OpenMinutesFromMidnight: 480, CloseMinutesFromMidnight: 1200}
	start, end := s.RegisterWindowMinutes()
	if start != 480 || end != 1200 {
		t.Errorf("expected (480, 1200), got (%d, %d)", start, end)
	}
}

func TestRegisterWindowMinutes_ExplicitWindowRespected(t *testing.T) {
	s := StorePolicy{BaseSlotMinutes: 30, OpenMinutesFromMidnight: 480, CloseMinutesFromMidnight: 1200, StartRegHour: 9, EndRegHour: 18}
	start, end := s.RegisterWindowMinutes()
	if start != 540 || end != 1080 {
		t.Errorf("expected (540, 1080), got (%d, %d)", start, end)
	}
}

func TestRegisterWindowMinutes_ClampedToStoreHours(t *testing.T) {
	s := StorePolicy{BaseSlotMinutes: 30, OpenMinutesFromMidnight: 480, CloseMinutesFromMidnight: 1200, StartRegHour: 6, EndRegHour: 23}
	start, end := s.RegisterWindowMinutes()
	if start != 480 {
		t.Errorf("expected start clamped to open (480), got %d", start)
	}
	if end != 1200 {
		t.Errorf("expected end clamped to close (1200), got %d", end)
	}
}

func TestRegisterWindowMinutes_ZeroLengthBumpedBySlot(t *testing.T) {
	s := StorePolicy{BaseSlotMinutes: 30, OpenMinutesFromMidnight: 480, CloseMinutesFromMidnight: 1200, StartRegHour: 10, EndRegHour: 10}
	start, end := s.RegisterWindowMinutes()
	if start != 600 || end != 630 {
		t.Errorf("expected a single-slot window (600, 630), got (%d, %d)", start, end)
	}
}
