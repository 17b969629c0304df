package system

import (
	"math"
	"math/rand"
	"testing"

	"github.com/milk9111/zombietown/prefabs"
)

func prefabsTuning(t *testing.T) *prefabs.Tuning {
	t.Helper()
	return prefabs.DefaultTuning()
}

func TestArmoredChance(t *testing.T) {
	r := FormulaRoster{Spec: prefabsTuning(t).Waves}
	cases := []struct {
		wave int
		want int
	}{
		{wave: 1, want: 0},
		{wave: 10, want: 0},
		{wave: 11, want: 15},
		{wave: 12, want: 20},
		{wave: 30, want: 50},
		{wave: 60, want: 100},
		{wave: 300, want: 100},
	}
	for _, tc := range cases {
		if got := r.ArmoredChance(tc.wave); got != tc.want {
			t.Fatalf("wave %d: chance %d, want %d", tc.wave, got, tc.want)
		}
	}
}

func TestFormulaRosterRanges(t *testing.T) {
	spec := prefabsTuning(t).Waves
	r := FormulaRoster{Spec: spec}

	if got := r.BaseStrength(1); got != 2 {
		t.Fatalf("base strength wave 1: %d", got)
	}
	if got := r.BaseStrength(51); got != 3 {
		t.Fatalf("base strength wave 51: %d", got)
	}

	plain := r.Roll(5, RosterRolls{0.5, 0.99, 0.5})
	if plain.Armored || plain.Health != 1 {
		t.Fatalf("wave 5 should never be armored: %+v", plain)
	}
	lo, hi := spec.SpeedMin+spec.SpeedShift*5, spec.SpeedMax+spec.SpeedWiden*5
	if plain.Speed < lo || plain.Speed > hi {
		t.Fatalf("speed %v outside [%v, %v]", plain.Speed, lo, hi)
	}

	armored := r.Roll(60, RosterRolls{0, 0, 0.99})
	if !armored.Armored {
		t.Fatalf("wave 60 roll 0 should be armored")
	}
	if armored.Health < spec.ArmoredHealthMin || armored.Health > spec.ArmoredHealthMax {
		t.Fatalf("armored health %d", armored.Health)
	}
	if armored.Strength != r.BaseStrength(60)*2+1 {
		t.Fatalf("armored strength %d", armored.Strength)
	}
	base := spec.SpeedMin + spec.SpeedShift*60
	if math.Abs(armored.Speed-base*spec.ArmoredSpeedFactor) > 1e-9 {
		t.Fatalf("armored speed %v", armored.Speed)
	}
}

func TestScriptRosterMatchesFormula(t *testing.T) {
	spec := prefabsTuning(t).Waves
	script, err := NewScriptRoster("roster.tengo", spec)
	if err != nil {
		t.Fatalf("NewScriptRoster: %v", err)
	}
	formula := FormulaRoster{Spec: spec}

	rng := rand.New(rand.NewSource(11))
	for _, wave := range []int{1, 3, 10, 11, 25, 60} {
		for i := 0; i < 20; i++ {
			rolls := RosterRolls{rng.Float64(), rng.Float64(), rng.Float64()}
			got := script.Roll(wave, rolls)
			want := formula.Roll(wave, rolls)
			if got.Health != want.Health || got.Strength != want.Strength || got.Armored != want.Armored {
				t.Fatalf("wave %d rolls %v: script %+v formula %+v", wave, rolls, got, want)
			}
			if math.Abs(got.Speed-want.Speed) > 1e-9 {
				t.Fatalf("wave %d speed: script %v formula %v", wave, got.Speed, want.Speed)
			}
		}
	}
}

func TestScriptRosterRejectsIncompleteScript(t *testing.T) {
	spec := prefabsTuning(t).Waves
	if _, err := compileRoster("bad.tengo", []byte(`speed := 1.0`), spec); err == nil {
		t.Fatalf("expected missing outputs to be rejected")
	}
	if _, err := compileRoster("broken.tengo", []byte(`speed := (`), spec); err == nil {
		t.Fatalf("expected a compile error")
	}
}
