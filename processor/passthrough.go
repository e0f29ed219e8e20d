// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package processor

import (
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/item"
	"github.com/zakkeown/factorial/procstate"
)

// ProcessPassthrough forwards whatever sits in inv's input half
// straight to its output half, unmodified, one slot at a time (spec.md
// §4.7: Passthrough performs no transformation and no rate limiting
// of its own; throughput is bounded only by transport and inventory
// capacity). Stateful stacks carry their handle across unchanged.
func ProcessPassthrough(cfg *PassthroughConfig, inv *item.Inventory) (Result, procstate.State) {
	var consumedEntries []ConsumedEntry
	var producedEntries []ProducedEntry
	sawAny := false
	movedAny := false

	for _, slot := range inv.Input.Slots {
		for _, st := range slot.Contents() {
			if st.Quantity <= 0 {
				continue
			}
			sawAny = true
			removed, drained := slot.Remove(st.Item, st.Quantity)
			if removed == 0 {
				continue
			}
			var h handle.Handle
			if len(drained) > 0 {
				h = drained[0]
			}
			overflow := inv.Output.Add(st.Item, removed, h)
			moved := removed - overflow
			if overflow > 0 {
				slot.Add(st.Item, overflow, h)
			}
			if moved > 0 {
				movedAny = true
				consumedEntries = append(consumedEntries, ConsumedEntry{Item: st.Item, Quantity: moved})
				producedEntries = append(producedEntries, ProducedEntry{Item: st.Item, Quantity: moved})
			}
		}
	}

	if !sawAny {
		return Result{}, procstate.NewIdle()
	}
	if !movedAny {
		return Result{}, procstate.NewStalled(procstate.OutputFull)
	}
	return Result{Consumed: consumedEntries, Produced: producedEntries, StateChanged: true}, procstate.NewIdle()
}
