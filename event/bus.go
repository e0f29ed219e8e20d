// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

// Bus owns one ring buffer per event kind, the suppression set, and
// the passive/reactive subscriber lists. All state is pre-allocated
// at construction; memory usage never grows with factory size
// (spec.md §4.10).
type Bus struct {
	rings      [numKinds]*ring
	suppressed [numKinds]bool

	passive  []PassiveHandler
	reactive []ReactiveHandler
}

// Capacities maps a Kind to its ring buffer's pre-allocated size.
// Kinds absent from the map default to defaultCapacity.
type Capacities map[Kind]int

const defaultCapacity = 4096

// NewBus allocates a Bus with per-kind capacities from caps (falling
// back to defaultCapacity) and the given kinds pre-suppressed.
func NewBus(caps Capacities, suppress []Kind) *Bus {
	b := &Bus{}
	for k := Kind(0); k < numKinds; k++ {
		cap := defaultCapacity
		if c, ok := caps[k]; ok {
			cap = c
		}
		b.rings[k] = newRing(cap)
	}
	for _, k := range suppress {
		if k < numKinds {
			b.suppressed[k] = true
		}
	}
	return b
}

// Suppress disables a kind: subsequent Emit calls for it allocate
// nothing. Must be called at construction or between passes, never
// mid-tick (spec.md §4.10).
func (b *Bus) Suppress(k Kind) {
	if k < numKinds {
		b.suppressed[k] = true
	}
}

// Unsuppress re-enables a previously suppressed kind.
func (b *Bus) Unsuppress(k Kind) {
	if k < numKinds {
		b.suppressed[k] = false
	}
}

// Suppressed reports whether k is currently suppressed.
func (b *Bus) Suppressed(k Kind) bool {
	return k < numKinds && b.suppressed[k]
}

// Subscribe registers a passive handler, invoked in phase 5 in
// registration order.
func (b *Bus) Subscribe(h PassiveHandler) {
	b.passive = append(b.passive, h)
}

// SubscribeReactive registers a reactive handler.
func (b *Bus) SubscribeReactive(h ReactiveHandler) {
	b.reactive = append(b.reactive, h)
}

// Emit appends e to its kind's ring buffer unless that kind is
// suppressed. When the push overwrites an undelivered entry, the ring
// counts the drop; Drain reports it as an EventsDropped entry.
func (b *Bus) Emit(e Event) {
	if b.Suppressed(e.Kind) {
		return
	}
	b.rings[e.Kind].push(e)
}

// Drain drains every non-suppressed kind's ring buffer into a single
// slice (kind-ascending, oldest-first within a kind), appending one
// EventsDropped entry per kind that lost entries since the last
// drain. Call during phase 5; the returned slice is the game's
// pull-buffer for this pass.
func (b *Bus) Drain(tick int64) []Event {
	var out []Event
	var drops []Event
	for k := Kind(0); k < numKinds; k++ {
		if k == EventsDropped {
			continue
		}
		entries, dropped := b.rings[k].drain()
		out = append(out, entries...)
		if dropped > 0 {
			drops = append(drops, Event{Kind: EventsDropped, Tick: tick, DroppedKind: k, DroppedCount: dropped})
		}
	}
	for _, d := range drops {
		b.rings[EventsDropped].push(d)
	}
	dropEntries, _ := b.rings[EventsDropped].drain()
	out = append(out, dropEntries...)
	return out
}

// DispatchPassive invokes every passive subscriber, in registration
// order, once per event in entries.
func (b *Bus) DispatchPassive(entries []Event) {
	for _, e := range entries {
		for _, h := range b.passive {
			h(e)
		}
	}
}

// DispatchReactive invokes every reactive subscriber once per event
// in entries and returns the mutations produced, in subscriber-major
// order, for the orchestrator to enqueue for the next pass's phase 1.
func (b *Bus) DispatchReactive(entries []Event) []Mutation {
	var muts []Mutation
	for _, h := range b.reactive {
		for _, e := range entries {
			if m, ok := h(e); ok {
				muts = append(muts, m)
			}
		}
	}
	return muts
}

// Pending reports how many buffered entries a kind currently holds,
// for diagnostics and tests.
func (b *Bus) Pending(k Kind) int {
	if k >= numKinds {
		return 0
	}
	return b.rings[k].count()
}
