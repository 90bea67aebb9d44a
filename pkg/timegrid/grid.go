// Package timegrid implements the day/slot/hour arithmetic of spec.md §4.1.
package timegrid

import (
	"fmt"
)

// Grid partitions a day into fixed-length slots.
type Grid struct {
	slotMinutes  int
	numSlots     int
	slotsPerHour int
}

// New builds a Grid for the given slot length in minutes. It rejects a
// non-positive slot length or one that does not divide 60, per spec.md §4.1.
func New(slotMinutes int) (*Grid, error) {
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("slot length must be positive, got %d", slotMinutes)
	}
	if 60%slotMinutes != 0 {
		return nil, fmt.Errorf("slot length %d does not divide 60", slotMinutes)
	}
	return &Grid{
		slotMinutes:  slotMinutes,
		numSlots:     1440 / slotMinutes,
		slotsPerHour: 60 / slotMinutes,
	}, nil
}

// SlotMinutes returns the configured slot length.
func (g *Grid) SlotMinutes() int { return g.slotMinutes }

// NumSlots returns the day's total slot count S = 1440/m.
func (g *Grid) NumSlots() int { return g.numSlots }

// SlotsPerHour returns 60/m.
func (g *Grid) SlotsPerHour() int { return g.slotsPerHour }

// SlotStart returns the first minute covered by slot k.
func (g *Grid) SlotStart(k int) int { return k * g.slotMinutes }

// SlotEnd returns the minute just past slot k's coverage.
func (g *Grid) SlotEnd(k int) int { return (k + 1) * g.slotMinutes }

// FloorToSlot converts a minute value to the slot it falls within, using
// floor (used for shift-start conversions per spec.md §4.1).
func (g *Grid) FloorToSlot(minute int) int {
	return minute / g.slotMinutes
}

// CeilToSlot converts a minute value to the slot boundary at or after it,
// using ceil and clamping to NumSlots (used for shift-end conversions).
func (g *Grid) CeilToSlot(minute int) int {
	k := (minute + g.slotMinutes - 1) / g.slotMinutes
	if k > g.numSlots {
		k = g.numSlots
	}
	return k
}

// HourSlots returns the half-open slot range [start, end) owned by hour H.
func (g *Grid) HourSlots(hour int) (start, end int) {
	start = hour * g.slotsPerHour
	end = (hour + 1) * g.slotsPerHour
	return
}

// HourOf returns the hour that owns slot k.
func (g *Grid) HourOf(k int) int {
	return k / g.slotsPerHour
}

// ShiftSlots returns the half-open slot range covering a crew's shift,
// converting minute bounds with floor/ceil as spec.md §4.1 requires.
func (g *Grid) ShiftSlots(shiftStartMin, shiftEndMin int) (start, end int) {
	return g.FloorToSlot(shiftStartMin), g.CeilToSlot(shiftEndMin)
}
