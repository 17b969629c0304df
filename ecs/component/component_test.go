package component

import "testing"

func TestCanDamageTable(t *testing.T) {
	cases := []struct {
		attacker Faction
		target   Faction
		want     bool
	}{
		{FactionPlayer, FactionHostile, true},
		{FactionAlly, FactionHostile, true},
		{FactionHostile, FactionPlayer, true},
		{FactionHostile, FactionAlly, true},
		{FactionPlayer, FactionAlly, false},
		{FactionPlayer, FactionPlayer, false},
		{FactionHostile, FactionHostile, false},
		{FactionHostile, FactionPickup, false},
		{FactionEnvironment, FactionPlayer, false},
		{FactionPickup, FactionPlayer, false},
	}
	for _, c := range cases {
		t.Run(c.attacker.String()+"_"+c.target.String(), func(t *testing.T) {
			if got := CanDamage(c.attacker, c.target); got != c.want {
				t.Fatalf("CanDamage(%s, %s) = %v, want %v", c.attacker, c.target, got, c.want)
			}
		})
	}
}

func TestBlocksSightOnlyForEnvironment(t *testing.T) {
	for _, f := range []Faction{FactionNone, FactionPlayer, FactionHostile, FactionPickup, FactionAlly, FactionEnvironment} {
		want := f == FactionEnvironment
		if got := BlocksSight(f); got != want {
			t.Fatalf("BlocksSight(%s) = %v, want %v", f, got, want)
		}
	}
	if !CanCollect(FactionPlayer) || CanCollect(FactionAlly) || CanCollect(FactionHostile) {
		t.Fatalf("only the player may collect pickups")
	}
}

func TestFactionMask(t *testing.T) {
	m := MaskAll.Without(FactionPickup)
	if m.Has(FactionPickup) {
		t.Fatalf("mask should exclude pickups")
	}
	if !m.Has(FactionEnvironment) || !m.Has(FactionPlayer) {
		t.Fatalf("mask should keep other factions")
	}
	if MaskOf(FactionHostile).Has(FactionPlayer) {
		t.Fatalf("single-faction mask leaked")
	}
	if FactionNone.Category() != 0 {
		t.Fatalf("none faction should have no category")
	}
}

func TestHealthHealAndDisplay(t *testing.T) {
	h := &Health{Current: 4, Max: 10}
	h.Heal(3)
	if h.Current != 7 {
		t.Fatalf("expected 7, got %d", h.Current)
	}
	h.Heal(50)
	if h.Current != 10 {
		t.Fatalf("heal should cap at max, got %d", h.Current)
	}
	h.IncreaseMax(10)
	if h.Max != 20 || h.Current != 10 {
		t.Fatalf("IncreaseMax should raise only the cap, got %d/%d", h.Current, h.Max)
	}
	h.Current = -3
	if h.Display() != 0 {
		t.Fatalf("display should floor at zero, got %d", h.Display())
	}
	h.Dead = true
	h.Heal(5)
	if h.Current != -3 {
		t.Fatalf("dead entities must not heal")
	}
}

func TestDefenderSpendClampsAtZero(t *testing.T) {
	d := &Defender{Currency: 3}
	d.Spend(5)
	if d.Currency != 0 {
		t.Fatalf("expected 0, got %d", d.Currency)
	}
	d.AddAmmo(-4)
	d.AddAmmo(12)
	if d.Ammo.Reserve != 12 {
		t.Fatalf("expected reserve 12, got %d", d.Ammo.Reserve)
	}
}
