// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transport

import (
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/item"
)

func firstHandle(hs []handle.Handle) handle.Handle {
	if len(hs) > 0 {
		return hs[0]
	}
	return handle.Nil
}

// ProcessBatch advances a Batch edge by one tick: a cycle counter
// increments each tick; once it reaches CycleTime, up to BatchSize
// items transfer in one instantaneous step, bounded by source
// availability and destination capacity, and the counter resets
// (spec.md §4.6). A cycle that fires but finds nothing to move still
// resets, since the batch window has elapsed regardless of content.
func ProcessBatch(cfg *BatchConfig, state *BatchState, src, dst *item.Inventory, filter Filter) Result {
	state.Counter++
	if state.Counter < cfg.CycleTime {
		return Result{}
	}
	state.Counter = 0

	cap := cfg.BatchSize
	if room := dst.Input.FreeCapacity(); cap > room {
		cap = room
	}
	if cap <= 0 {
		return Result{Saturated: true}
	}

	var delivered []MovedEntry
	moved := int64(0)
	for _, slot := range src.Output.Slots {
		if moved >= cap {
			break
		}
		for _, st := range slot.Contents() {
			if moved >= cap {
				break
			}
			if filter.Has && st.Item != filter.Item {
				continue
			}
			want := cap - moved
			if want > st.Quantity {
				want = st.Quantity
			}
			removed, drained := slot.Remove(st.Item, want)
			if removed == 0 {
				continue
			}
			handleVal := firstHandle(drained)
			overflow := dst.Input.Add(st.Item, removed, handleVal)
			got := removed - overflow
			if overflow > 0 {
				slot.Add(st.Item, overflow, handleVal)
			}
			if got > 0 {
				delivered = append(delivered, MovedEntry{Item: st.Item, Quantity: got})
				moved += got
			}
		}
	}

	return Result{Delivered: delivered, StateChanged: moved > 0, Saturated: moved < cfg.BatchSize}
}
