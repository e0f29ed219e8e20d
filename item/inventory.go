// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package item

import (
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/registry"
)

// Half is one side (input or output) of an Inventory: a fixed number
// of independently capacitied slots. A single-slot Half holds mixed
// contents; a multi-slot Half is the type-segregated configuration,
// where the caller is responsible for routing each item type to its
// dedicated slot.
type Half struct {
	Slots []*Slot
}

// NewHalf returns a Half with one slot per entry in slotCapacities.
func NewHalf(slotCapacities []int64) *Half {
	slots := make([]*Slot, len(slotCapacities))
	for i, c := range slotCapacities {
		slots[i] = NewSlot(c)
	}
	return &Half{Slots: slots}
}

// Quantity sums item's quantity across every slot (spec.md §4.4:
// "quantity(type) sums across slots").
func (h *Half) Quantity(it registry.ItemTypeID) int64 {
	var total int64
	for _, s := range h.Slots {
		total += s.Quantity(it)
	}
	return total
}

// Total sums every slot's contents regardless of type (spec.md §4.4:
// "total() sums all types").
func (h *Half) Total() int64 {
	var total int64
	for _, s := range h.Slots {
		total += s.Total()
	}
	return total
}

// FreeCapacity sums the remaining room across every slot in the half.
func (h *Half) FreeCapacity() int64 {
	var total int64
	for _, s := range h.Slots {
		total += s.FreeCapacity()
	}
	return total
}

// Add distributes quantity occurrences of it into the half's slots in
// order, returning the overflow that did not fit anywhere (spec.md
// §4.4: "add(type, n) distributes into slots in order and returns
// overflow").
func (h *Half) Add(it registry.ItemTypeID, quantity int64, stateHandle handle.Handle) int64 {
	remaining := quantity
	for _, s := range h.Slots {
		if remaining <= 0 {
			break
		}
		before := remaining
		remaining = s.Add(it, remaining, stateHandle)
		// Only the first slot that accepts any of a stateful single
		// occurrence should receive it; stateful Adds never split
		// across slots since a handle denotes one indivisible record.
		if !stateHandle.IsNil() && remaining < before {
			break
		}
	}
	return remaining
}

// Remove drains up to quantity occurrences of it across the half's
// slots in order, returning the amount actually removed and any
// stateful handles drained (spec.md §4.4: "remove(type, n) drains
// across slots in order and returns actual removed").
func (h *Half) Remove(it registry.ItemTypeID, quantity int64) (int64, []handle.Handle) {
	var removed int64
	var drained []handle.Handle
	for _, s := range h.Slots {
		if removed >= quantity {
			break
		}
		got, hs := s.Remove(it, quantity-removed)
		removed += got
		drained = append(drained, hs...)
	}
	return removed, drained
}

// Inventory is attached to a node and owns its input and output
// halves independently (spec.md "Entities": "Inventory... holds two
// independent halves: input slots and output slots").
type Inventory struct {
	Input  *Half
	Output *Half
}

// NewInventory builds an Inventory from per-slot capacity lists for
// each half.
func NewInventory(inputCapacities, outputCapacities []int64) *Inventory {
	return &Inventory{
		Input:  NewHalf(inputCapacities),
		Output: NewHalf(outputCapacities),
	}
}
