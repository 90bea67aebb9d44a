package timegrid

import "testing"

func TestNew_RejectsNonPositive(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Error("expected error for zero slot length")
	}
	if _, err := New(-5); err == nil {
		t.Error("expected error for negative slot length")
	}
}

func TestNew_RejectsNonDivisor(t *testing.T) {
	if _, err := New(7); err == nil {
		t.Error("expected error for a slot length that does not divide 60")
	}
}

func TestNew_DerivedCounts(t *testing.T) {
	g, err := New(30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.NumSlots() != 48 {
		t.Errorf("expected 48 slots, got %d", g.NumSlots())
	}
	if g.SlotsPerHour() != 2 {
		t.Errorf("expected 2 slots per hour, got %d", g.SlotsPerHour())
	}
}

func TestSlotStartEnd(t *testing.T) {
	g, _ := New(15)
	if g.SlotStart(4) != 60 {
		t.Errorf("expected slot 4 to start at minute 60, got %d", g.SlotStart(4))
	}
	if g.SlotEnd(4) != 75 {
		t.Errorf("expected slot 4 to end at minute 75, got %d", g.SlotEnd(4))
	}
}

func TestFloorCeilToSlot(t *testing.T) {
	g, _ := New(30)
	if g.FloorToSlot(545) != 18 {
		t.Errorf("expected floor(545/30)=18, got %d", g.FloorToSlot(545))
	}
	if g.CeilToSlot(541) != 19 {
		t.Errorf("expected ceil(541/30)=19, got %d", g.CeilToSlot(541))
	}
	if g.CeilToSlot(1440) != g.NumSlots() {
		t.Errorf("expected ceil at day end to clamp to NumSlots")
	}
}

func TestHourSlotsAndHourOf(t *testing.T) {
	g, _ := New(15)
	start, end := g.HourSlots(9)
	if start != 36 || end != 40 {
		t.Errorf("expected hour 9 to span slots [36,40), got [%d,%d)", start, end)
	}
	if g.HourOf(37) != 9 {
		t.Errorf("expected slot 37 to belong to hour 9, got %d", g.HourOf(37))
	}
}

func TestShiftSlots(t *testing.T) {
	g, _ := New(30)
	start, end := g.ShiftSlots(545, 1020)
	if start != 18 {
		t.Errorf("expected shift start slot 18, got %d", start)
	}
	if end != 34 {
		t.Errorf("expected shift end slot 34, got %d", end)
	}
}
