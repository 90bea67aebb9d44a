package model

import "testing"

func f(v float64) *float64 { return &v }

func TestEffectiveWeight_NoCrewWeight(t *testing.T) {
	p := Preference{BaseWeight: 2.0}
	w, ok := p.EffectiveWeight()
	if !ok || w != 2.0 {
		t.Errorf("expected (2.0, true), got (%v, %v)", w, ok)
	}
}

func TestEffectiveWeight_NonPositiveCrewWeightDropsTerm(t *testing.T) {
	p := Preference{BaseWeight: 2.0, CrewWeight: f(0)}
	if _, ok := p.EffectiveWeight(); ok {
		t.Error("expected term to be dropped for zero crew weight")
	}
	p.CrewWeight = f(-1)
	if _, ok := p.EffectiveWeight(); ok {
		t.Error("expected term to be dropped for negative crew weight")
	}
}

func TestEffectiveWeight_CrewWeightWithoutBase(t *testing.T) {
	p := Preference{BaseWeight: 0, CrewWeight: f(3.0)}
	w, ok := p.EffectiveWeight()
	if !ok || w != 3.0 {
		t.Errorf("expected (3.0, true), got (%v, %v)", w, ok)
	}
}

func TestEffectiveWeight_BaseAndCrewWeightMultiply(t *testing.T) {
	p := Preference{BaseWeight: 2.0, CrewWeight: f(3.0)}
	w, ok := p.EffectiveWeight()
	if !ok || w != 6.0 {
		t.Errorf("expected (6.0, true), got (%v, %v)", w, ok)
	}
}

func TestEffectiveWeight_AdaptiveBoostMultiplies(t *testing.T) {
	p := Preference{BaseWeight: 2.0, CrewWeight: f(3.0), AdaptiveBoost: f(2.0)}
	w, ok := p.EffectiveWeight()
	if !ok || w != 12.0 {
		t.Errorf("expected (12.0, true), got (%v, %v)", w, ok)
	}
}
