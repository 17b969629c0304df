package component

// Faction tags every simulated entity with the side it plays for.
type Faction uint8

const (
	FactionNone Faction = iota
	FactionPlayer
	FactionHostile
	FactionPickup
	FactionAlly
	FactionEnvironment
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionHostile:
		return "hostile"
	case FactionPickup:
		return "neutralPickup"
	case FactionAlly:
		return "ally"
	case FactionEnvironment:
		return "environment"
	default:
		return "none"
	}
}

// Category is the Chipmunk shape filter category bit for the faction.
func (f Faction) Category() uint {
	if f == FactionNone {
		return 0
	}
	return 1 << uint(f-1)
}

// FactionMask selects a set of factions for world queries.
type FactionMask uint

const MaskAll = FactionMask(^uint(0))

func MaskOf(factions ...Faction) FactionMask {
	var m FactionMask
	for _, f := range factions {
		m |= FactionMask(f.Category())
	}
	return m
}

func (m FactionMask) Has(f Faction) bool {
	return uint(m)&f.Category() != 0
}

func (m FactionMask) Without(factions ...Faction) FactionMask {
	return m &^ MaskOf(factions...)
}

// damageTable[attacker][target]
var damageTable = map[Faction]map[Faction]bool{
	FactionPlayer:  {FactionHostile: true},
	FactionAlly:    {FactionHostile: true},
	FactionHostile: {FactionPlayer: true, FactionAlly: true},
}

// CanDamage reports whether an attack from attacker may hurt target.
func CanDamage(attacker, target Faction) bool {
	return damageTable[attacker][target]
}

// BlocksSight reports whether geometry of the faction stops a sight ray.
// Buildings are environment geometry, so they block too.
func BlocksSight(f Faction) bool {
	return f == FactionEnvironment
}

// CanCollect reports whether collector may pick up neutral pickups.
func CanCollect(collector Faction) bool {
	return collector == FactionPlayer
}

type FactionTag struct {
	Faction Faction
}

var FactionComponent = NewComponent[FactionTag]()
