package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultTuningMatchesShippedValues(t *testing.T) {
	tu := DefaultTuning()

	if tu.Defender.MaxHealth != 10 || tu.Defender.Magazine != 6 || tu.Defender.Reserve != 30 {
		t.Fatalf("unexpected defender defaults: %+v", tu.Defender)
	}
	if tu.Defender.ReloadTime != 1500*time.Millisecond {
		t.Fatalf("expected 1500ms reload, got %v", tu.Defender.ReloadTime)
	}
	if tu.Agents.ContactInterval != 500*time.Millisecond {
		t.Fatalf("expected 500ms contact interval, got %v", tu.Agents.ContactInterval)
	}
	if tu.Agents.FadeDuration != time.Second {
		t.Fatalf("expected 1s fade, got %v", tu.Agents.FadeDuration)
	}
	if tu.Spawner.Ammo.Interval != 30*time.Second || tu.Spawner.Health.Interval != time.Minute {
		t.Fatalf("unexpected spawner intervals: %+v", tu.Spawner)
	}
	if len(tu.Shop) != 4 {
		t.Fatalf("expected 4 shop items, got %d", len(tu.Shop))
	}
	hires := 0
	for _, item := range tu.Shop {
		if item.IsHire() {
			hires++
			if item.HirePrice != 10 {
				t.Fatalf("expected hire price 10, got %d", item.HirePrice)
			}
		}
	}
	if hires != 1 {
		t.Fatalf("expected one hire item, got %d", hires)
	}
}

func TestValidateRejectsBrokenTuning(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"no_max_health", func(t *Tuning) { t.Defender.MaxHealth = 0 }},
		{"wander_band_inverted", func(t *Tuning) { t.Agents.WanderMaxRadius = t.Agents.WanderMinRadius - 1 }},
		{"no_wander_timeout", func(t *Tuning) { t.Agents.WanderTimeout = 0 }},
		{"no_agents_per_wave", func(t *Tuning) { t.Waves.AgentsPerWave = 0 }},
		{"armored_health_inverted", func(t *Tuning) { t.Waves.ArmoredHealthMax = 1 }},
		{"duplicate_item", func(t *Tuning) { t.Shop = append(t.Shop, t.Shop[0]) }},
		{"negative_price", func(t *Tuning) { t.Shop[0].Cost = -1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tu := DefaultTuning()
			c.mutate(tu)
			if err := tu.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadPrefersDiskOverride(t *testing.T) {
	dir := t.TempDir()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })

	data, err := PrefabsFS.ReadFile(GameFile)
	if err != nil {
		t.Fatalf("read embedded: %v", err)
	}
	tu, err := ParseTuning(data)
	if err != nil {
		t.Fatalf("parse embedded: %v", err)
	}
	if tu.Projectile.Speed != 600 {
		t.Fatalf("unexpected embedded projectile speed %v", tu.Projectile.Speed)
	}

	override := []byte("name: override\ndefender: {max_health: 3, magazine: 2}\nagents: {radius: 4, contact_interval: 1s}\nwaves: {agents_per_wave: 1, strength_step: 1, armored_chance_every: 1}\nspawner: {attempts: 1}\n")
	if err := os.WriteFile(filepath.Join(dir, GameFile), override, 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	got, err := LoadTuning(GameFile)
	if err != nil {
		t.Fatalf("load override: %v", err)
	}
	if got.Name != "override" || got.Defender.MaxHealth != 3 {
		t.Fatalf("disk override not used: %+v", got)
	}
}

func TestLoadScriptFallsBackToEmbedded(t *testing.T) {
	prev := Dir
	Dir = t.TempDir()
	t.Cleanup(func() { Dir = prev })

	for _, name := range []string{"roster.tengo", "scripts/roster.tengo", "prefabs/scripts/roster.tengo"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("LoadScript(%q) returned empty script", name)
		}
	}
}
