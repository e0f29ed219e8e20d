// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transport

import (
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/item"
)

// ProcessBelt advances an Item-belt edge by one tick. Each lane is a
// fixed-length slot array, pre-allocated at edge creation and never
// reallocated here. At Speed <= 1 the belt advances at most one slot
// this tick; at Speed > 1 a fractional accumulator decides how many
// whole slot-advances happen this tick, applied uniformly across every
// lane (lanes carry independent contents but share one timing). Each
// advance shifts from the tail backward so an occupied slot never
// overwrites another before it has moved (spec.md §4.6).
func ProcessBelt(cfg *BeltConfig, state *BeltState, src, dst *item.Inventory, filter Filter) Result {
	var delivered []MovedEntry
	changed := false

	newAcc, _ := fixedpoint.AddFixed64(state.Accumulator, cfg.Speed)
	steps := newAcc.Int()
	if steps < 1 {
		state.Accumulator = newAcc
		return Result{}
	}
	state.Accumulator, _ = fixedpoint.SubFixed64(newAcc, fixedpoint.Fixed64FromInt(steps))

	for s := int64(0); s < steps; s++ {
		for laneIdx := range state.Lanes {
			lane := state.Lanes[laneIdx]
			if len(lane) == 0 {
				continue
			}
			tail := len(lane) - 1
			if lane[tail].Occupied {
				overflow := dst.Input.Add(lane[tail].Item, 1, lane[tail].Handle)
				if overflow == 0 {
					delivered = append(delivered, MovedEntry{Item: lane[tail].Item, Quantity: 1})
					changed = true
					lane[tail] = BeltSlot{}
				}
			}
			for idx := tail - 1; idx >= 0; idx-- {
				if lane[idx].Occupied && !lane[idx+1].Occupied {
					lane[idx+1] = lane[idx]
					lane[idx] = BeltSlot{}
					changed = true
				}
			}
			if !lane[0].Occupied {
				if loadLaneHead(&lane[0], src, filter) {
					changed = true
				}
			}
		}
	}

	saturated := false
	for _, lane := range state.Lanes {
		if len(lane) > 0 && lane[len(lane)-1].Occupied {
			saturated = true
			break
		}
	}

	return Result{Delivered: delivered, StateChanged: changed, Saturated: saturated}
}

func loadLaneHead(slot *BeltSlot, src *item.Inventory, filter Filter) bool {
	for _, s := range src.Output.Slots {
		for _, st := range s.Contents() {
			if st.Quantity <= 0 {
				continue
			}
			if filter.Has && st.Item != filter.Item {
				continue
			}
			removed, drained := s.Remove(st.Item, 1)
			if removed == 0 {
				continue
			}
			var h handle.Handle
			if len(drained) > 0 {
				h = drained[0]
			}
			*slot = BeltSlot{Occupied: true, Item: st.Item, Handle: h}
			return true
		}
	}
	return false
}
