package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is the static layout of an arena: its size, where the defender and
// hired help appear, and the obstacles that block movement and sight.
type Level struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Entities []Entity `json:"entities,omitempty"`
}

type Entity struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

const (
	EntityDefender  = "defender"
	EntityAllySpawn = "ally_spawn"
	EntityBuilding  = "building"
	EntityCactus    = "cactus"
)

func (l *Level) Center() (float64, float64) {
	if l == nil {
		return 0, 0
	}
	return float64(l.Width) / 2, float64(l.Height) / 2
}

// Find returns the first entity of the given type.
func (l *Level) Find(typ string) (Entity, bool) {
	if l == nil {
		return Entity{}, false
	}
	for _, e := range l.Entities {
		if e.Type == typ {
			return e, true
		}
	}
	return Entity{}, false
}

// Obstacles returns every blocking entity of the level.
func (l *Level) Obstacles() []Entity {
	if l == nil {
		return nil
	}
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == EntityBuilding || e.Type == EntityCactus {
			out = append(out, e)
		}
	}
	return out
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return ParseLevel(data)
}

func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("level %q: invalid size %dx%d", lvl.Name, lvl.Width, lvl.Height)
	}
	for i, e := range lvl.Entities {
		if (e.Type == EntityBuilding || e.Type == EntityCactus) && (e.Width <= 0 || e.Height <= 0) {
			return nil, fmt.Errorf("level %q: entity %d (%s) has no footprint", lvl.Name, i, e.Type)
		}
	}
	return &lvl, nil
}
