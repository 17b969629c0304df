package ecs

import (
	"container/heap"
	"time"
)

// TimelineEventKind identifies delayed work scheduled against an entity.
type TimelineEventKind int

const (
	TimelineDeathFade TimelineEventKind = iota + 1
	TimelineReload
	TimelineDialogTimeout
)

func (k TimelineEventKind) String() string {
	switch k {
	case TimelineDeathFade:
		return "death-fade"
	case TimelineReload:
		return "reload"
	case TimelineDialogTimeout:
		return "dialog-timeout"
	default:
		return "unknown"
	}
}

type TimelineEvent struct {
	At     time.Duration
	Kind   TimelineEventKind
	Entity Entity
	seq    uint64
}

// Timeline is a queue of events keyed by logical time. Events due at the
// same instant come out in scheduling order.
type Timeline struct {
	items timelineHeap
	seq   uint64
}

func (t *Timeline) Schedule(at time.Duration, kind TimelineEventKind, e Entity) {
	if t == nil {
		return
	}
	t.seq++
	heap.Push(&t.items, TimelineEvent{At: at, Kind: kind, Entity: e, seq: t.seq})
}

// Due pops every event with At <= now.
func (t *Timeline) Due(now time.Duration) []TimelineEvent {
	if t == nil {
		return nil
	}
	var out []TimelineEvent
	for len(t.items) > 0 && t.items[0].At <= now {
		out = append(out, heap.Pop(&t.items).(TimelineEvent))
	}
	return out
}

// Cancel drops pending events for e and reports how many were removed.
func (t *Timeline) Cancel(e Entity) int {
	return t.cancelWhere(func(evt TimelineEvent) bool { return evt.Entity == e })
}

// CancelKind drops pending events of kind for e.
func (t *Timeline) CancelKind(e Entity, kind TimelineEventKind) int {
	return t.cancelWhere(func(evt TimelineEvent) bool { return evt.Entity == e && evt.Kind == kind })
}

func (t *Timeline) cancelWhere(match func(TimelineEvent) bool) int {
	if t == nil || len(t.items) == 0 {
		return 0
	}
	kept := t.items[:0]
	removed := 0
	for _, evt := range t.items {
		if match(evt) {
			removed++
			continue
		}
		kept = append(kept, evt)
	}
	t.items = kept
	if removed > 0 {
		heap.Init(&t.items)
	}
	return removed
}

// Pending reports whether e has an event of kind queued.
func (t *Timeline) Pending(e Entity, kind TimelineEventKind) bool {
	if t == nil {
		return false
	}
	for _, evt := range t.items {
		if evt.Entity == e && evt.Kind == kind {
			return true
		}
	}
	return false
}

func (t *Timeline) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

func (t *Timeline) Reset() {
	if t == nil {
		return
	}
	t.items = nil
}

type timelineHeap []TimelineEvent

func (h timelineHeap) Len() int { return len(h) }

func (h timelineHeap) Less(i, j int) bool {
	if h[i].At != h[j].At {
		return h[i].At < h[j].At
	}
	return h[i].seq < h[j].seq
}

func (h timelineHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timelineHeap) Push(x any) { *h = append(*h, x.(TimelineEvent)) }

func (h *timelineHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
