package economy

import (
	"encoding/json"
	"fmt"
	"log"
	"maps"
	"slices"

	"github.com/milk9111/zombietown/ecs"
	"github.com/milk9111/zombietown/ecs/component"
	"github.com/milk9111/zombietown/storage"
)

// AllyFactory places the ally leased through itemID into the world.
type AllyFactory func(w *ecs.World, itemID string) ecs.Entity

// Ledger tracks permanent unlocks and per-wave hire leases. Leases are
// always a subset of the purchased set.
type Ledger struct {
	catalog *Catalog
	store   storage.Store
	reward  int

	purchased map[string]struct{}
	leased    map[string]struct{}
	actors    map[string]ecs.Entity

	factories map[string]AllyFactory
}

// NewLedger restores purchases and leases from store.
func NewLedger(catalog *Catalog, store storage.Store, reward int) *Ledger {
	l := &Ledger{
		catalog:   catalog,
		store:     store,
		reward:    reward,
		purchased: make(map[string]struct{}),
		leased:    make(map[string]struct{}),
		actors:    make(map[string]ecs.Entity),
		factories: make(map[string]AllyFactory),
	}
	l.load()
	return l
}

// RegisterAlly binds the ally kind named by hire items to a factory.
func (l *Ledger) RegisterAlly(kind string, factory AllyFactory) {
	if l == nil || factory == nil {
		return
	}
	l.factories[kind] = factory
}

func (l *Ledger) Catalog() *Catalog { return l.catalog }

func (l *Ledger) IsPurchased(id string) bool {
	_, ok := l.purchased[id]
	return ok
}

func (l *Ledger) IsLeased(id string) bool {
	_, ok := l.leased[id]
	return ok
}

// Purchased returns the unlocked item ids, sorted.
func (l *Ledger) Purchased() []string { return sortedKeys(l.purchased) }

// Leased returns the ids hired for the current wave, sorted.
func (l *Ledger) Leased() []string { return sortedKeys(l.leased) }

func (l *Ledger) checkPurchase(id string, b Buyer) (Item, error) {
	item, ok := l.catalog.Lookup(id)
	if !ok {
		return Item{}, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	if item.OneTime && l.IsPurchased(id) {
		return Item{}, fmt.Errorf("%w: %q", ErrAlreadyOwned, id)
	}
	if b == nil || b.Currency() < item.Cost {
		return Item{}, fmt.Errorf("%w: %q costs %d", ErrInsufficientFunds, id, item.Cost)
	}
	return item, nil
}

func (l *Ledger) CanPurchase(id string, b Buyer) bool {
	_, err := l.checkPurchase(id, b)
	return err == nil
}

// TryPurchase charges b for id and applies its effect. One-time items are
// recorded as purchased.
func (l *Ledger) TryPurchase(id string, b Buyer) error {
	item, err := l.checkPurchase(id, b)
	if err != nil {
		return err
	}
	b.Spend(item.Cost)
	item.Apply(b)
	if item.OneTime {
		l.purchased[id] = struct{}{}
		l.persist()
	}
	log.Printf("economy: purchase %s (-%d)", id, item.Cost)
	return nil
}

func (l *Ledger) Purchase(id string, b Buyer) bool {
	return l.TryPurchase(id, b) == nil
}

func (l *Ledger) checkHire(id string, b Buyer) (Item, error) {
	item, ok := l.catalog.Lookup(id)
	if !ok {
		return Item{}, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	if !item.IsHire() {
		return Item{}, fmt.Errorf("%w: %q", ErrNotHireable, id)
	}
	if !l.IsPurchased(id) {
		return Item{}, fmt.Errorf("%w: %q", ErrNotUnlocked, id)
	}
	if l.IsLeased(id) {
		return Item{}, fmt.Errorf("%w: %q", ErrAlreadyLeased, id)
	}
	if b == nil || b.Currency() < item.HirePrice {
		return Item{}, fmt.Errorf("%w: %q hires for %d", ErrInsufficientFunds, id, item.HirePrice)
	}
	return item, nil
}

func (l *Ledger) CanHire(id string, b Buyer) bool {
	_, err := l.checkHire(id, b)
	return err == nil
}

// TryHire leases an unlocked ally for the next wave.
func (l *Ledger) TryHire(id string, b Buyer) error {
	item, err := l.checkHire(id, b)
	if err != nil {
		return err
	}
	b.Spend(item.HirePrice)
	l.leased[id] = struct{}{}
	l.persist()
	log.Printf("economy: hire %s (-%d)", id, item.HirePrice)
	return nil
}

func (l *Ledger) Hire(id string, b Buyer) bool {
	return l.TryHire(id, b) == nil
}

// OnWaveStart spawns one ally per active lease.
func (l *Ledger) OnWaveStart(w *ecs.World) {
	if l == nil || w == nil {
		return
	}
	for _, id := range l.Leased() {
		if e, ok := l.actors[id]; ok && ecs.IsAlive(w, e) {
			continue
		}
		item, ok := l.catalog.Lookup(id)
		if !ok {
			continue
		}
		factory := l.factories[item.Ally]
		if factory == nil {
			log.Printf("economy: no factory for ally %q (%s)", item.Ally, id)
			continue
		}
		l.actors[id] = factory(w, id)
	}
}

// OnWaveEnd removes every leased ally still in the world and clears the
// leases. Unlocks are kept.
func (l *Ledger) OnWaveEnd(w *ecs.World) {
	if l == nil {
		return
	}
	for id, e := range l.actors {
		if w != nil && ecs.IsAlive(w, e) {
			ecs.DestroyEntity(w, e)
		}
		delete(l.actors, id)
	}
	clear(l.leased)
	l.persist()
}

// OnKilled credits the defender for every hostile removed from the world.
func (l *Ledger) OnKilled(w *ecs.World, sig ecs.Signal) {
	if l == nil || w == nil || sig.Faction != component.FactionHostile || l.reward <= 0 {
		return
	}
	e, ok := ecs.First(w, component.DefenderComponent.Kind())
	if !ok {
		return
	}
	d, _ := ecs.Get(w, e, component.DefenderComponent.Kind())
	d.Currency += l.reward
}

// ApplyPurchasedPerks applies every owned non-hire item to the defender e.
// It runs at most once per defender entity.
func (l *Ledger) ApplyPurchasedPerks(w *ecs.World, e ecs.Entity) int {
	d, ok := ecs.Get(w, e, component.DefenderComponent.Kind())
	if !ok || d.PerksApplied {
		return 0
	}
	d.PerksApplied = true
	b := BuyerFor(w, e)
	applied := 0
	for _, id := range l.Purchased() {
		item, ok := l.catalog.Lookup(id)
		if !ok || item.IsHire() {
			continue
		}
		item.Apply(b)
		applied++
	}
	return applied
}

// Reset forgets every purchase and lease and erases the persisted state.
// Tracked allies are left to the caller.
func (l *Ledger) Reset() {
	if l == nil {
		return
	}
	clear(l.purchased)
	clear(l.leased)
	clear(l.actors)
	if l.store == nil {
		return
	}
	for _, key := range []string{storage.KeyShopPurchases, storage.KeyActiveHires} {
		if err := l.store.Delete(key); err != nil {
			log.Printf("economy: clear %s: %v", key, err)
		}
	}
}

func (l *Ledger) load() {
	for _, id := range l.loadSet(storage.KeyShopPurchases) {
		if _, ok := l.catalog.Lookup(id); ok {
			l.purchased[id] = struct{}{}
		}
	}
	for _, id := range l.loadSet(storage.KeyActiveHires) {
		if l.IsPurchased(id) {
			l.leased[id] = struct{}{}
		}
	}
}

func (l *Ledger) loadSet(key string) []string {
	if l.store == nil {
		return nil
	}
	raw, ok := l.store.Load(key)
	if !ok {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Printf("economy: load %s: %v", key, err)
		return nil
	}
	return ids
}

func (l *Ledger) persist() {
	if l.store == nil {
		return
	}
	l.saveSet(storage.KeyShopPurchases, l.Purchased())
	l.saveSet(storage.KeyActiveHires, l.Leased())
}

func (l *Ledger) saveSet(key string, ids []string) {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err == nil {
		err = l.store.Save(key, string(raw))
	}
	if err != nil {
		log.Printf("economy: save %s: %v", key, err)
	}
}

func sortedKeys(set map[string]struct{}) []string {
	return slices.Sorted(maps.Keys(set))
}
