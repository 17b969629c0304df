package system

import (
	"encoding/json"
	"log"

	"github.com/milk9111/zombietown/common"
	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
	"github.com/milk9111/zombietown/storage"
)

type savedAmmo struct {
	Total   int `json:"total"`
	Current int `json:"current"`
}

type defenderRecord struct {
	health   int
	ammo     savedAmmo
	currency int
}

// SaveSystem writes the defender's health, ammo and currency to the store
// whenever one of them changes.
type SaveSystem struct {
	store storage.Store
	last  defenderRecord
	seen  bool
}

func NewSaveSystem(store storage.Store) *SaveSystem {
	return &SaveSystem{store: store}
}

func (s *SaveSystem) Update(w *ecs.World) {
	if s == nil || s.store == nil || w == nil {
		return
	}
	e, ok := ecs.First(w, component.DefenderComponent.Kind())
	if !ok {
		return
	}
	d, _ := ecs.Get(w, e, component.DefenderComponent.Kind())
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || h.Dead {
		return
	}

	rec := defenderRecord{
		health:   h.Display(),
		ammo:     savedAmmo{Total: d.Ammo.Reserve, Current: d.Ammo.Current},
		currency: d.Currency,
	}
	if s.seen && rec == s.last {
		return
	}

	if !s.seen || rec.health != s.last.health {
		s.write(storage.KeyPlayerHealth, storage.SaveInt(s.store, storage.KeyPlayerHealth, rec.health))
	}
	if !s.seen || rec.ammo != s.last.ammo {
		raw, err := json.Marshal(rec.ammo)
		if err == nil {
			err = s.store.Save(storage.KeyPlayerAmmo, string(raw))
		}
		s.write(storage.KeyPlayerAmmo, err)
	}
	if !s.seen || rec.currency != s.last.currency {
		s.write(storage.KeyPlayerTokens, storage.SaveInt(s.store, storage.KeyPlayerTokens, rec.currency))
	}
	s.last = rec
	s.seen = true
}

func (s *SaveSystem) write(key string, err error) {
	if err != nil {
		log.Printf("save: %s: %v", key, err)
	}
}

// Forget makes the next Update write every key again.
func (s *SaveSystem) Forget() {
	if s == nil {
		return
	}
	s.seen = false
	s.last = defenderRecord{}
}

// LoadDefender restores persisted health, ammo and currency onto e. Missing
// or malformed keys keep the spawn defaults.
func LoadDefender(store storage.Store, w *ecs.World, e ecs.Entity) {
	if store == nil || w == nil {
		return
	}
	d, ok := ecs.Get(w, e, component.DefenderComponent.Kind())
	if !ok {
		return
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		if v, ok := storage.LoadInt(store, storage.KeyPlayerHealth); ok && v > 0 {
			h.Current = common.ClampInt(v, 1, h.Max)
		}
	}
	if raw, ok := store.Load(storage.KeyPlayerAmmo); ok {
		var ammo savedAmmo
		if err := json.Unmarshal([]byte(raw), &ammo); err != nil {
			log.Printf("save: %s: %v", storage.KeyPlayerAmmo, err)
		} else if ammo.Total >= 0 && ammo.Current >= 0 {
			d.Ammo.Current = common.ClampInt(ammo.Current, 0, d.Ammo.Magazine)
			d.Ammo.Reserve = ammo.Total
		}
	}
	if v, ok := storage.LoadInt(store, storage.KeyPlayerTokens); ok && v >= 0 {
		d.Currency = v
	}
}

// ClearDefender erases the persisted defender keys.
func ClearDefender(store storage.Store) {
	if store == nil {
		return
	}
	for _, key := range []string{storage.KeyPlayerHealth, storage.KeyPlayerAmmo, storage.KeyPlayerTokens} {
		if err := store.Delete(key); err != nil {
			log.Printf("save: clear %s: %v", key, err)
		}
	}
}
