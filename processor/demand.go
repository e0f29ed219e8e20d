// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package processor

import (
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/item"
	"github.com/zakkeown/factorial/procstate"
	"github.com/zakkeown/factorial/registry"
)

// acceptedOrder returns the item types a Demand processor draws from,
// primary first, in the order a shortfall should be backfilled.
func (cfg *DemandConfig) acceptedOrder() []registry.ItemTypeID {
	order := make([]registry.ItemTypeID, 0, 1+len(cfg.AcceptedTypes))
	order = append(order, cfg.PrimaryInput)
	order = append(order, cfg.AcceptedTypes...)
	return order
}

// ProcessDemand advances a Demand processor by one tick: a pure sink
// that consumes at base_rate x speed x productivity, preferring
// PrimaryInput and falling back across AcceptedTypes for any
// remainder it cannot satisfy from the primary alone (spec.md §4.7).
// Unlike Source and Fixed, a Demand processor never produces output.
func ProcessDemand(cfg *DemandConfig, inv *item.Inventory, speed, productivity fixedpoint.Fixed64) (Result, procstate.State) {
	rate, _ := fixedpoint.MulFixed64(cfg.BaseRate, speed)
	rate, _ = fixedpoint.MulFixed64(rate, productivity)

	newAcc, _ := fixedpoint.AddFixed64(cfg.Accumulator, rate)
	whole := newAcc.Int()
	if whole <= 0 {
		cfg.Accumulator = newAcc
		return Result{}, procstate.NewIdle()
	}

	needed := whole
	var consumed []ConsumedEntry
	for _, t := range cfg.acceptedOrder() {
		if needed <= 0 {
			break
		}
		got, _ := inv.Input.Remove(t, needed)
		if got > 0 {
			consumed = append(consumed, ConsumedEntry{Item: t, Quantity: got})
			needed -= got
		}
	}

	totalConsumed := whole - needed
	cfg.LifetimeConsumed += totalConsumed
	cfg.Accumulator, _ = fixedpoint.SubFixed64(newAcc, fixedpoint.Fixed64FromInt(totalConsumed))

	if totalConsumed == 0 {
		return Result{}, procstate.NewStalled(procstate.MissingInputs)
	}

	result := Result{Consumed: consumed, StateChanged: true, ProgressDelta: totalConsumed, Saturated: needed > 0}
	if needed > 0 {
		return result, procstate.NewStalled(procstate.MissingInputs)
	}
	return result, procstate.NewIdle()
}
