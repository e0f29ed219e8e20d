// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package item

import (
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/registry"
)

// Slot holds an ordered list of item stacks under one shared capacity
// pool: the sum of every stack's quantity must never exceed Capacity
// (spec.md §4.4 "Entities": "capacity (sum of quantities across all
// types)").
type Slot struct {
	Capacity int64
	stacks   []Stack
}

// NewSlot returns an empty slot with the given capacity.
func NewSlot(capacity int64) *Slot {
	return &Slot{Capacity: capacity}
}

// Total returns the sum of quantities across every stack in the slot.
func (s *Slot) Total() int64 {
	var total int64
	for _, st := range s.stacks {
		total += st.Quantity
	}
	return total
}

// FreeCapacity returns the remaining room in the slot before it hits
// Capacity.
func (s *Slot) FreeCapacity() int64 {
	room := s.Capacity - s.Total()
	if room < 0 {
		return 0
	}
	return room
}

// Quantity returns the total quantity of item across every stack that
// carries it.
func (s *Slot) Quantity(item registry.ItemTypeID) int64 {
	var total int64
	for _, st := range s.stacks {
		if st.Item == item {
			total += st.Quantity
		}
	}
	return total
}

// Add inserts quantity occurrences of item, capped by remaining
// capacity, and returns the overflow (the amount that did not fit).
// For fungible items (h is handle.Nil), quantity merges into the
// slot's existing fungible stack for item, if any. For stateful items
// (h non-nil), Add always opens a new, separate sub-stack: distinct
// stateful occurrences are never merged by Slot itself (spec.md §4.4
// option (c)); callers wanting option (a)/(b) merge semantics should
// use MergeStateful before calling Add.
func (s *Slot) Add(it registry.ItemTypeID, quantity int64, h handle.Handle) int64 {
	if quantity <= 0 {
		return 0
	}
	room := s.Capacity - s.Total()
	if room <= 0 {
		return quantity
	}
	added := quantity
	overflow := int64(0)
	if added > room {
		overflow = added - room
		added = room
	}

	if h.IsNil() {
		for i := range s.stacks {
			if s.stacks[i].Item == it && s.stacks[i].Handle.IsNil() {
				s.stacks[i].Quantity += added
				return overflow
			}
		}
	}
	s.stacks = append(s.stacks, Stack{Item: it, Quantity: added, Handle: h})
	return overflow
}

// Remove drains up to quantity occurrences of item from the slot's
// stacks in insertion order, returning the amount actually removed
// and the handles of any stateful stacks fully drained (their
// representative handle, one per fully-consumed stack).
func (s *Slot) Remove(it registry.ItemTypeID, quantity int64) (int64, []handle.Handle) {
	if quantity <= 0 {
		return 0, nil
	}
	var removed int64
	var drained []handle.Handle
	kept := s.stacks[:0]
	for _, st := range s.stacks {
		if st.Item != it || removed >= quantity {
			kept = append(kept, st)
			continue
		}
		remaining := quantity - removed
		if st.Quantity <= remaining {
			removed += st.Quantity
			if st.stateful() {
				drained = append(drained, st.Handle)
			}
			continue // drop this stack entirely
		}
		st.Quantity -= remaining
		removed += remaining
		kept = append(kept, st)
	}
	s.stacks = kept
	return removed, drained
}

// Contents returns a copy of the slot's current stacks in order, for
// callers that need to enumerate arbitrary contents rather than query
// a known item type (e.g. a passthrough processor forwarding whatever
// arrives).
func (s *Slot) Contents() []Stack {
	out := make([]Stack, len(s.stacks))
	copy(out, s.stacks)
	return out
}

// Peek returns the same value as Quantity; provided as a distinct
// name for read-only call sites that never intend to mutate the slot
// (spec.md §4.4: "peek operations").
func (s *Slot) Peek(it registry.ItemTypeID) int64 {
	return s.Quantity(it)
}

// MergeStateful attempts to fold newHandle's record into an existing
// stateful stack of the same item type using eq to compare records.
// On a match, it increments that stack's quantity by delta and
// reports true; the caller is responsible for freeing newHandle's
// arena entry since it is superseded. On no match, it reports false
// and the caller should Add newHandle as its own sub-stack.
func (s *Slot) MergeStateful(it registry.ItemTypeID, newHandle handle.Handle, delta int64, eq func(a, b handle.Handle) bool) bool {
	for i := range s.stacks {
		st := &s.stacks[i]
		if st.Item == it && st.stateful() && eq(st.Handle, newHandle) {
			st.Quantity += delta
			return true
		}
	}
	return false
}
