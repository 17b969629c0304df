package component

// Obstacle is static level geometry: buildings, cacti and walls.
type Obstacle struct {
	Kind   string
	Width  float64
	Height float64
}

var ObstacleComponent = NewComponent[Obstacle]()
