package system

import (
	"testing"

	"github.com/milk9111/zombietown/storage"
)

func TestSaveSystemWritesChanges(t *testing.T) {
	w, tuning := newTestWorld(t)
	store := storage.NewMemoryStore()
	save := NewSaveSystem(store)

	e := SpawnDefender(w, tuning.Defender, 0, 0)
	save.Update(w)

	if v, ok := storage.LoadInt(store, storage.KeyPlayerHealth); !ok || v != tuning.Defender.MaxHealth {
		t.Fatalf("health not saved: %v %v", v, ok)
	}
	raw, ok := store.Load(storage.KeyPlayerAmmo)
	if !ok || raw != `{"total":30,"current":6}` {
		t.Fatalf("ammo not saved: %q", raw)
	}

	d := defenderOf(t, w, e)
	d.Currency = 7
	healthOf(t, w, e).Current = 3
	save.Update(w)
	if v, _ := storage.LoadInt(store, storage.KeyPlayerTokens); v != 7 {
		t.Fatalf("tokens %d", v)
	}
	if v, _ := storage.LoadInt(store, storage.KeyPlayerHealth); v != 3 {
		t.Fatalf("health %d", v)
	}
}

func TestLoadDefenderRestoresState(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = storage.SaveInt(store, storage.KeyPlayerHealth, 4)
	_ = storage.SaveInt(store, storage.KeyPlayerTokens, 12)
	_ = store.Save(storage.KeyPlayerAmmo, `{"total":9,"current":2}`)

	w, tuning := newTestWorld(t)
	e := SpawnDefender(w, tuning.Defender, 0, 0)
	LoadDefender(store, w, e)

	d := defenderOf(t, w, e)
	if d.Currency != 12 || d.Ammo.Current != 2 || d.Ammo.Reserve != 9 {
		t.Fatalf("defender not restored: %+v", d)
	}
	if h := healthOf(t, w, e); h.Current != 4 {
		t.Fatalf("health %d", h.Current)
	}

	ClearDefender(store)
	if store.Len() != 0 {
		t.Fatalf("expected an empty store, got %d keys", store.Len())
	}
}

func TestLoadDefenderIgnoresGarbage(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = store.Save(storage.KeyPlayerHealth, "lots")
	_ = store.Save(storage.KeyPlayerAmmo, "{")

	w, tuning := newTestWorld(t)
	e := SpawnDefender(w, tuning.Defender, 0, 0)
	LoadDefender(store, w, e)

	d := defenderOf(t, w, e)
	if d.Ammo.Current != tuning.Defender.Magazine || d.Ammo.Reserve != tuning.Defender.Reserve {
		t.Fatalf("garbage changed ammo: %+v", d.Ammo)
	}
	if h := healthOf(t, w, e); h.Current != tuning.Defender.Health {
		t.Fatalf("garbage changed health: %d", h.Current)
	}
}
