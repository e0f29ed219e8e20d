// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transport

import (
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/item"
)

// ProcessVehicle advances a Vehicle edge by one tick. Each vehicle's
// position cycles 0..TravelTime*2: it advances every tick, loads
// cargo from the source at position 0, delivers to the destination at
// TravelTime, and restarts the return leg at TravelTime*2 (spec.md
// §4.6). Vehicles act independently; a vehicle that cannot load (empty
// source) or deliver (full destination) simply holds position rather
// than advancing, so backed-up cargo is never lost.
func ProcessVehicle(cfg *VehicleConfig, state *VehicleState, src, dst *item.Inventory, filter Filter) Result {
	var delivered []MovedEntry
	changed := false

	for i := range state.Vehicles {
		v := &state.Vehicles[i]

		switch v.Position {
		case 0:
			if len(v.Cargo) == 0 {
				if loadVehicle(v, src, filter, cfg.Capacity) {
					changed = true
				} else {
					continue // nothing to haul yet; hold at the source
				}
			}
		case cfg.TravelTime:
			if !unloadVehicle(v, dst) {
				continue // destination full; hold until it has room
			}
			for _, e := range v.Cargo {
				delivered = append(delivered, e)
			}
			v.Cargo = nil
			changed = true
		}

		v.Position++
		if v.Position >= cfg.TravelTime*2 {
			v.Position = 0
		}
	}

	return Result{Delivered: delivered, StateChanged: changed}
}

func loadVehicle(v *VehicleRecord, src *item.Inventory, filter Filter, capacity int64) bool {
	remaining := capacity
	loaded := false
	for _, slot := range src.Output.Slots {
		if remaining <= 0 {
			break
		}
		for _, st := range slot.Contents() {
			if remaining <= 0 {
				break
			}
			if filter.Has && st.Item != filter.Item {
				continue
			}
			want := remaining
			if want > st.Quantity {
				want = st.Quantity
			}
			removed, drained := slot.Remove(st.Item, want)
			if removed == 0 {
				continue
			}
			var h handle.Handle
			if len(drained) > 0 {
				h = drained[0]
			}
			v.Cargo = append(v.Cargo, MovedEntry{Item: st.Item, Quantity: removed, Handle: h})
			remaining -= removed
			loaded = true
		}
	}
	return loaded
}

func unloadVehicle(v *VehicleRecord, dst *item.Inventory) bool {
	for _, e := range v.Cargo {
		if dst.Input.FreeCapacity() < e.Quantity {
			return false
		}
	}
	for _, e := range v.Cargo {
		dst.Input.Add(e.Item, e.Quantity, e.Handle)
	}
	return true
}
