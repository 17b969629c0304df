package economy

import (
	"errors"
	"fmt"

	"github.com/milk9111/zombietown/prefabs"
)

var (
	ErrUnknownItem       = errors.New("economy: unknown item")
	ErrAlreadyOwned      = errors.New("economy: one-time item already purchased")
	ErrInsufficientFunds = errors.New("economy: insufficient currency")
	ErrNotHireable       = errors.New("economy: item cannot be hired")
	ErrNotUnlocked       = errors.New("economy: hire not unlocked")
	ErrAlreadyLeased     = errors.New("economy: already hired for this wave")
	ErrWaveActive        = errors.New("economy: wave in progress")
)

// Effect applies a purchased item to the buyer.
type Effect func(b Buyer, amount int)

var effects = map[string]Effect{
	"":           func(Buyer, int) {},
	"unlock":     func(Buyer, int) {},
	"add_ammo":   func(b Buyer, n int) { b.AddAmmo(n) },
	"heal":       func(b Buyer, n int) { b.Heal(n) },
	"max_health": func(b Buyer, n int) { b.IncreaseMaxHealth(n) },
}

// Item is one catalog entry with its effect resolved.
type Item struct {
	prefabs.ShopItemSpec
	apply Effect
}

func (it Item) Apply(b Buyer) {
	if it.apply != nil && b != nil {
		it.apply(b, it.Amount)
	}
}

// Catalog is the ordered, immutable list of shop items.
type Catalog struct {
	items []Item
	byID  map[string]int
}

func NewCatalog(specs []prefabs.ShopItemSpec) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(specs))}
	for _, spec := range specs {
		if spec.ID == "" {
			return nil, fmt.Errorf("economy: item without id")
		}
		if _, dup := c.byID[spec.ID]; dup {
			return nil, fmt.Errorf("economy: item %q listed twice", spec.ID)
		}
		effect, ok := effects[spec.Effect]
		if !ok {
			return nil, fmt.Errorf("economy: item %q: unknown effect %q", spec.ID, spec.Effect)
		}
		c.byID[spec.ID] = len(c.items)
		c.items = append(c.items, Item{ShopItemSpec: spec, apply: effect})
	}
	return c, nil
}

func (c *Catalog) Lookup(id string) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Items returns the catalog in declaration order.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}
