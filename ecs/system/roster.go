package system

import (
	"math"

	"github.com/milk9111/zombietown/prefabs"
)

// RosterRolls are the uniform [0,1) draws behind one agent: speed within
// its band, the armored check, and armored health.
type RosterRolls [3]float64

// Roster turns a wave number and pre-drawn randomness into agent stats.
type Roster interface {
	Roll(wave int, rolls RosterRolls) AgentStats
}

// FormulaRoster implements the stock scaling rules.
type FormulaRoster struct {
	Spec prefabs.WaveSpec
}

// ArmoredChance is the percent chance of an armored agent on wave.
func (r FormulaRoster) ArmoredChance(wave int) int {
	if wave <= r.Spec.ArmoredAfterWave || r.Spec.ArmoredChanceEvery <= 0 {
		return 0
	}
	chance := (wave / r.Spec.ArmoredChanceEvery) * r.Spec.ArmoredChanceStep
	if chance > 100 {
		chance = 100
	}
	return chance
}

func (r FormulaRoster) BaseStrength(wave int) int {
	step := r.Spec.StrengthStep
	if step <= 0 {
		step = 1
	}
	return 1 + int(math.Ceil(float64(wave)/float64(step)))
}

func (r FormulaRoster) Roll(wave int, rolls RosterRolls) AgentStats {
	lo := r.Spec.SpeedMin + r.Spec.SpeedShift*float64(wave)
	hi := r.Spec.SpeedMax + r.Spec.SpeedWiden*float64(wave)
	stats := AgentStats{
		Speed:    lo + (hi-lo)*rolls[0],
		Health:   1,
		Strength: r.BaseStrength(wave),
	}

	if rolls[1]*100 < float64(r.ArmoredChance(wave)) {
		span := r.Spec.ArmoredHealthMax - r.Spec.ArmoredHealthMin + 1
		health := r.Spec.ArmoredHealthMin + int(rolls[2]*float64(span))
		if health > r.Spec.ArmoredHealthMax {
			health = r.Spec.ArmoredHealthMax
		}
		stats.Armored = true
		stats.Health = health
		stats.Speed *= r.Spec.ArmoredSpeedFactor
		stats.Strength = stats.Strength*2 + 1
	}
	return stats
}
