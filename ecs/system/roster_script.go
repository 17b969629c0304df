package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/zombietown/prefabs"
)

// ScriptRoster evaluates a tengo script per agent. The script sees wave,
// rolls and cfg and must define speed, health, strength and armored. Any
// script failure falls back to the formula roster.
type ScriptRoster struct {
	path     string
	compiled *tengo.Compiled
	fallback FormulaRoster
}

func NewScriptRoster(path string, spec prefabs.WaveSpec) (*ScriptRoster, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("roster: load %s: %w", path, err)
	}
	return compileRoster(path, src, spec)
}

func compileRoster(path string, src []byte, spec prefabs.WaveSpec) (*ScriptRoster, error) {
	script := tengo.NewScript(src)
	_ = script.Add("wave", 0)
	_ = script.Add("rolls", []interface{}{0.0, 0.0, 0.0})
	_ = script.Add("cfg", rosterConfig(spec))
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("roster: compile %s: %w", path, err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("roster: run %s: %w", path, err)
	}
	for _, name := range []string{"speed", "health", "strength", "armored"} {
		if !compiled.IsDefined(name) {
			return nil, fmt.Errorf("roster: %s does not define %q", path, name)
		}
	}
	return &ScriptRoster{path: path, compiled: compiled, fallback: FormulaRoster{Spec: spec}}, nil
}

func rosterConfig(spec prefabs.WaveSpec) map[string]interface{} {
	return map[string]interface{}{
		"speed_min":            spec.SpeedMin,
		"speed_max":            spec.SpeedMax,
		"speed_shift":          spec.SpeedShift,
		"speed_widen":          spec.SpeedWiden,
		"strength_step":        spec.StrengthStep,
		"armored_after_wave":   spec.ArmoredAfterWave,
		"armored_chance_step":  spec.ArmoredChanceStep,
		"armored_chance_every": spec.ArmoredChanceEvery,
		"armored_health_min":   spec.ArmoredHealthMin,
		"armored_health_max":   spec.ArmoredHealthMax,
		"armored_speed_factor": spec.ArmoredSpeedFactor,
	}
}

func (r *ScriptRoster) Roll(wave int, rolls RosterRolls) AgentStats {
	stats, err := r.run(wave, rolls)
	if err != nil {
		log.Printf("roster: %s wave %d: %v", r.path, wave, err)
		return r.fallback.Roll(wave, rolls)
	}
	return stats
}

func (r *ScriptRoster) run(wave int, rolls RosterRolls) (AgentStats, error) {
	if err := r.compiled.Set("wave", wave); err != nil {
		return AgentStats{}, err
	}
	if err := r.compiled.Set("rolls", []interface{}{rolls[0], rolls[1], rolls[2]}); err != nil {
		return AgentStats{}, err
	}
	if err := r.compiled.Run(); err != nil {
		return AgentStats{}, err
	}
	return AgentStats{
		Speed:    r.compiled.Get("speed").Float(),
		Health:   r.compiled.Get("health").Int(),
		Strength: r.compiled.Get("strength").Int(),
		Armored:  r.compiled.Get("armored").Bool(),
	}, nil
}
