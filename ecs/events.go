package ecs

import "github.com/milk9111/zombietown/ecs/component"

// SignalKind identifies simulation signals.
type SignalKind string

const (
	SignalKilled        SignalKind = "killed"
	SignalWaveCompleted SignalKind = "wavecompleted"
	SignalDefeated      SignalKind = "defeated"
)

// Signal is a fire-once notification. Killed carries Entity and Faction,
// WaveCompleted carries Wave, Defeated carries nothing.
type Signal struct {
	Kind    SignalKind
	Entity  Entity
	Faction component.Faction
	Wave    int
}

type SignalHandler func(Signal)

// Signals dispatches synchronously to subscribers in subscription order.
type Signals struct {
	handlers map[SignalKind][]SignalHandler
}

func (s *Signals) Subscribe(kind SignalKind, h SignalHandler) {
	if s == nil || h == nil {
		return
	}
	if s.handlers == nil {
		s.handlers = make(map[SignalKind][]SignalHandler)
	}
	s.handlers[kind] = append(s.handlers[kind], h)
}

func (s *Signals) Emit(sig Signal) {
	if s == nil {
		return
	}
	for _, h := range s.handlers[sig.Kind] {
		h(sig)
	}
}
