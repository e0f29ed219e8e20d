// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transport

import (
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/item"
)

// ProcessFlow advances a Flow edge by one tick (spec.md §4.6: "move up
// to rate x satisfaction x enabled items... respecting both sides'
// capacity"). Budget, when non-negative, further caps the amount
// pulled this tick (the orchestrator's pre-computed per-edge share of
// a multi-output source, spec.md "Edge budgets"); a negative budget
// means no cap beyond the edge's own rate. Items queue for Latency
// ticks before becoming eligible for delivery; a queued item that
// cannot fit in the destination on its ready tick stays queued and is
// retried every subsequent tick, giving the "items back up" behavior
// the spec requires without ever dropping in-flight quantity.
func ProcessFlow(cfg *FlowConfig, state *FlowState, src, dst *item.Inventory, filter Filter, budget int64, tick int64, satisfaction fixedpoint.Fixed64, enabled bool) Result {
	var delivered []MovedEntry
	changed := false

	if cfg.Latency > 0 {
		delivered, changed = releaseQueue(state, dst, tick)
	}

	rate := cfg.Rate
	if !enabled {
		rate = 0
	} else {
		rate, _ = fixedpoint.MulFixed64(rate, satisfaction)
	}
	newAcc, _ := fixedpoint.AddFixed64(state.Accumulator, rate)
	whole := newAcc.Int()
	if whole <= 0 {
		state.Accumulator = newAcc
		return Result{Delivered: delivered, StateChanged: changed}
	}

	cap := whole
	if budget >= 0 && cap > budget {
		cap = budget
	}
	if cfg.Latency == 0 {
		if room := dst.Input.FreeCapacity(); cap > room {
			cap = room
		}
	}
	if cap <= 0 {
		state.Accumulator = newAcc
		return Result{Delivered: delivered, StateChanged: changed, Saturated: whole > 0}
	}

	moved := int64(0)
	for _, slot := range src.Output.Slots {
		if moved >= cap {
			break
		}
		for _, st := range slot.Contents() {
			if moved >= cap {
				break
			}
			if st.Quantity <= 0 {
				continue
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
			moved += removed
			var h handle.Handle
			if len(drained) > 0 {
				h = drained[0]
			}
			if cfg.Latency > 0 {
				state.Queue = append(state.Queue, queuedTransfer{Item: st.Item, Quantity: removed, Handle: h, Ready: tick + cfg.Latency})
				changed = true
				continue
			}
			overflow := dst.Input.Add(st.Item, removed, h)
			got := removed - overflow
			if overflow > 0 {
				// Pre-clamped by FreeCapacity above; only reachable if the
				// destination has more than one slot with uneven capacity.
				slot.Add(st.Item, overflow, h)
			}
			if got > 0 {
				delivered = append(delivered, MovedEntry{Item: st.Item, Quantity: got})
				changed = true
			}
		}
	}

	state.Accumulator, _ = fixedpoint.SubFixed64(newAcc, fixedpoint.Fixed64FromInt(moved))
	return Result{Delivered: delivered, StateChanged: changed, Saturated: moved < cap}
}

// releaseQueue attempts to deliver every queued transfer whose latency
// has elapsed, in FIFO order; an entry that cannot fully fit is kept
// at the front of the queue with its remaining quantity, and nothing
// after it is attempted this tick (a blocked item backs up the lane
// behind it, matching Flow's "items back up" behavior).
func releaseQueue(state *FlowState, dst *item.Inventory, tick int64) ([]MovedEntry, bool) {
	var delivered []MovedEntry
	changed := false
	i := 0
	for ; i < len(state.Queue); i++ {
		q := &state.Queue[i]
		if q.Ready > tick {
			break
		}
		overflow := dst.Input.Add(q.Item, q.Quantity, q.Handle)
		got := q.Quantity - overflow
		if got > 0 {
			delivered = append(delivered, MovedEntry{Item: q.Item, Quantity: got})
			changed = true
		}
		if overflow > 0 {
			q.Quantity = overflow
			break
		}
	}
	state.Queue = state.Queue[i:]
	return delivered, changed
}
