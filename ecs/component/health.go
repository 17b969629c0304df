package component

// Health is carried by anything that can be damaged. Current may go below
// zero internally; Display clamps it for presentation.
type Health struct {
	Current int
	Max     int

	// DeathTriggered is set once, the first time Current drops to zero or
	// below, and guards the death sequence against repeat hits.
	DeathTriggered bool
	Dead           bool
}

func (h *Health) Display() int {
	if h == nil || h.Current < 0 {
		return 0
	}
	return h.Current
}

// Heal raises Current by n, capped at Max. Dead entities stay dead.
func (h *Health) Heal(n int) {
	if h == nil || h.Dead || n <= 0 {
		return
	}
	h.Current += n
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// IncreaseMax raises the cap only.
func (h *Health) IncreaseMax(n int) {
	if h == nil || n <= 0 {
		return
	}
	h.Max += n
}

var HealthComponent = NewComponent[Health]()
