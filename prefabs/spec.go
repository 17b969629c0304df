package prefabs

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameFile is the tuning file loaded by default.
const GameFile = "game.yaml"

// Tuning holds every gameplay constant of the simulation.
type Tuning struct {
	Name       string         `yaml:"name"`
	Defender   DefenderSpec   `yaml:"defender"`
	Agents     AgentSpec      `yaml:"agents"`
	Waves      WaveSpec       `yaml:"waves"`
	Spawner    SpawnerSpec    `yaml:"spawner"`
	Projectile ProjectileSpec `yaml:"projectile"`
	Ally       AllySpec       `yaml:"ally"`
	Shop       []ShopItemSpec `yaml:"shop"`
}

type DefenderSpec struct {
	Health       int           `yaml:"health"`
	MaxHealth    int           `yaml:"max_health"`
	Speed        float64       `yaml:"speed"`
	Radius       float64       `yaml:"radius"`
	ShotCooldown time.Duration `yaml:"shot_cooldown"`
	Magazine     int           `yaml:"magazine"`
	Reserve      int           `yaml:"reserve"`
	ReloadTime   time.Duration `yaml:"reload_time"`
	GunOffsetX   float64       `yaml:"gun_offset_x"`
	GunOffsetY   float64       `yaml:"gun_offset_y"`
}

type AgentSpec struct {
	Radius            float64       `yaml:"radius"`
	SightDistance     float64       `yaml:"sight_distance"`
	RotationSpeed     float64       `yaml:"rotation_speed"`
	WanderMinRadius   float64       `yaml:"wander_min_radius"`
	WanderMaxRadius   float64       `yaml:"wander_max_radius"`
	WanderTimeout     time.Duration `yaml:"wander_timeout"`
	WanderSpeedFactor float64       `yaml:"wander_speed_factor"`
	ArrivalRadius     float64       `yaml:"arrival_radius"`
	ProbeDistance     float64       `yaml:"probe_distance"`
	ContactInterval   time.Duration `yaml:"contact_interval"`
	FadeDuration      time.Duration `yaml:"fade_duration"`
	Reward            int           `yaml:"reward"`
}

// WaveSpec parameterises the roster formulas. Speeds are drawn from
// [SpeedMin+SpeedShift*wave, SpeedMax+SpeedWiden*wave].
type WaveSpec struct {
	AgentsPerWave      int     `yaml:"agents_per_wave"`
	SpeedMin           float64 `yaml:"speed_min"`
	SpeedMax           float64 `yaml:"speed_max"`
	SpeedShift         float64 `yaml:"speed_shift"`
	SpeedWiden         float64 `yaml:"speed_widen"`
	StrengthStep       int     `yaml:"strength_step"`
	ArmoredAfterWave   int     `yaml:"armored_after_wave"`
	ArmoredChanceStep  int     `yaml:"armored_chance_step"`
	ArmoredChanceEvery int     `yaml:"armored_chance_every"`
	ArmoredHealthMin   int     `yaml:"armored_health_min"`
	ArmoredHealthMax   int     `yaml:"armored_health_max"`
	ArmoredSpeedFactor float64 `yaml:"armored_speed_factor"`
	EdgeOffset         float64 `yaml:"edge_offset"`
	BandBase           float64 `yaml:"band_base"`
	BandGrowth         float64 `yaml:"band_growth"`
	BandMax            float64 `yaml:"band_max"`
	RosterScript       string  `yaml:"roster_script"`
}

type SpawnerSpec struct {
	Attempts         int            `yaml:"attempts"`
	RegionHalfExtent float64        `yaml:"region_half_extent"`
	Ammo             PickupTimeSpec `yaml:"ammo"`
	Health           PickupTimeSpec `yaml:"health"`
}

type PickupTimeSpec struct {
	Interval time.Duration `yaml:"interval"`
	Amount   int           `yaml:"amount"`
	Width    float64       `yaml:"width"`
	Height   float64       `yaml:"height"`
}

type ProjectileSpec struct {
	Speed    float64       `yaml:"speed"`
	Lifetime time.Duration `yaml:"lifetime"`
	Damage   int           `yaml:"damage"`
}

type AllySpec struct {
	Health         int           `yaml:"health"`
	Radius         float64       `yaml:"radius"`
	Range          float64       `yaml:"range"`
	Cooldown       time.Duration `yaml:"cooldown"`
	Dialog         string        `yaml:"dialog"`
	DialogDuration time.Duration `yaml:"dialog_duration"`
}

// ShopItemSpec describes one catalog entry. Items with a hire price are
// leasable allies; the rest apply Effect with Amount to the defender.
type ShopItemSpec struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Cost      int    `yaml:"cost"`
	OneTime   bool   `yaml:"one_time"`
	Effect    string `yaml:"effect"`
	Amount    int    `yaml:"amount"`
	HirePrice int    `yaml:"hire_price"`
	Ally      string `yaml:"ally"`
}

func (s ShopItemSpec) IsHire() bool {
	return s.HirePrice > 0 || s.Ally != ""
}

// LoadTuning reads and validates a tuning file.
func LoadTuning(filename string) (*Tuning, error) {
	t, err := LoadSpec[Tuning](filename)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &t, nil
}

// ParseTuning decodes and validates tuning from raw yaml.
func ParseTuning(data []byte) (*Tuning, error) {
	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// DefaultTuning loads the embedded game.yaml and panics if it is broken.
func DefaultTuning() *Tuning {
	data, err := PrefabsFS.ReadFile(GameFile)
	if err != nil {
		panic("prefabs: embedded " + GameFile + ": " + err.Error())
	}
	t, err := ParseTuning(data)
	if err != nil {
		panic("prefabs: embedded " + GameFile + ": " + err.Error())
	}
	return t
}

func (t *Tuning) Validate() error {
	if t == nil {
		return fmt.Errorf("tuning is nil")
	}
	switch {
	case t.Defender.MaxHealth <= 0:
		return fmt.Errorf("defender.max_health must be positive")
	case t.Defender.Magazine <= 0:
		return fmt.Errorf("defender.magazine must be positive")
	case t.Agents.Radius <= 0:
		return fmt.Errorf("agents.radius must be positive")
	case t.Agents.WanderMaxRadius < t.Agents.WanderMinRadius:
		return fmt.Errorf("agents.wander_max_radius below wander_min_radius")
	case t.Agents.WanderTimeout <= 0:
		return fmt.Errorf("agents.wander_timeout must be positive")
	case t.Agents.ContactInterval <= 0:
		return fmt.Errorf("agents.contact_interval must be positive")
	case t.Waves.AgentsPerWave <= 0:
		return fmt.Errorf("waves.agents_per_wave must be positive")
	case t.Waves.StrengthStep <= 0:
		return fmt.Errorf("waves.strength_step must be positive")
	case t.Waves.ArmoredChanceEvery <= 0:
		return fmt.Errorf("waves.armored_chance_every must be positive")
	case t.Waves.ArmoredHealthMax < t.Waves.ArmoredHealthMin:
		return fmt.Errorf("waves.armored_health_max below armored_health_min")
	case t.Spawner.Attempts <= 0:
		return fmt.Errorf("spawner.attempts must be positive")
	}
	seen := make(map[string]struct{}, len(t.Shop))
	for _, item := range t.Shop {
		if item.ID == "" {
			return fmt.Errorf("shop item without id")
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("shop item %q listed twice", item.ID)
		}
		seen[item.ID] = struct{}{}
		if item.Cost < 0 || item.HirePrice < 0 {
			return fmt.Errorf("shop item %q has a negative price", item.ID)
		}
	}
	return nil
}
