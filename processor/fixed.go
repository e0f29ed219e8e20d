// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package processor

import (
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/item"
	"github.com/zakkeown/factorial/procstate"
	"github.com/zakkeown/factorial/registry"
)

// ProcessFixed advances a Fixed-recipe processor by one tick. A cycle
// has three stages tracked on cfg across calls: not started (inputs
// not yet consumed), in progress (accumulating speed-scaled ticks
// toward the recipe's Duration), and flushing (outputs owed but
// blocked by output capacity, retried each tick until all fit).
// Inputs are consumed atomically at the start of a cycle; outputs are
// computed once, scaled by productivity, when progress first reaches
// Duration, and are never recomputed mid-flush so a stalled partial
// flush cannot double-produce (spec.md §4.7).
func ProcessFixed(cfg *FixedConfig, reg *registry.Registry, inv *item.Inventory, speed, productivity fixedpoint.Fixed64) (Result, procstate.State) {
	recipe, ok := reg.RecipeByID(cfg.Recipe)
	if !ok {
		return Result{}, procstate.NewStalled(procstate.MissingInputs)
	}

	if !cfg.Started {
		for _, in := range recipe.Inputs {
			if inv.Input.Quantity(in.Item) < in.Quantity {
				return Result{}, procstate.NewStalled(procstate.MissingInputs)
			}
		}
		consumed := make([]ConsumedEntry, 0, len(recipe.Inputs))
		for _, in := range recipe.Inputs {
			removed, _ := inv.Input.Remove(in.Item, in.Quantity)
			consumed = append(consumed, ConsumedEntry{Item: in.Item, Quantity: removed})
		}
		cfg.Started = true
		cfg.Progress = 0
		cfg.Accumulator = 0
		return Result{Consumed: consumed, StateChanged: true}, procstate.NewWorking(0)
	}

	if cfg.Progress < recipe.Duration {
		cfg.Accumulator, _ = fixedpoint.AddFixed64(cfg.Accumulator, speed)
		whole := cfg.Accumulator.Int()
		if whole > 0 {
			cfg.Accumulator, _ = fixedpoint.SubFixed64(cfg.Accumulator, fixedpoint.Fixed64FromInt(whole))
			cfg.Progress += whole
		}
		if cfg.Progress < recipe.Duration {
			return Result{ProgressDelta: whole}, procstate.NewWorking(cfg.Progress)
		}
	}

	if cfg.PendingOutputs == nil {
		cfg.PendingOutputs = make([]ProducedEntry, 0, len(recipe.Outputs))
		for _, out := range recipe.Outputs {
			scaled, _ := fixedpoint.MulFixed64(fixedpoint.Fixed64FromInt(out.Quantity), productivity)
			amount := scaled.Int()
			if amount < 1 {
				amount = 1
			}
			cfg.PendingOutputs = append(cfg.PendingOutputs, ProducedEntry{Item: out.Item, Quantity: amount})
		}
	}

	var produced []ProducedEntry
	newPending := make([]ProducedEntry, 0, len(cfg.PendingOutputs))
	allFit := true
	for _, pe := range cfg.PendingOutputs {
		if pe.Quantity <= 0 {
			continue
		}
		overflow := inv.Output.Add(pe.Item, pe.Quantity, handle.Nil)
		got := pe.Quantity - overflow
		if got > 0 {
			produced = append(produced, ProducedEntry{Item: pe.Item, Quantity: got})
		}
		if overflow > 0 {
			allFit = false
			newPending = append(newPending, ProducedEntry{Item: pe.Item, Quantity: overflow})
		}
	}

	if !allFit {
		cfg.PendingOutputs = newPending
		return Result{Produced: produced, StateChanged: len(produced) > 0, Saturated: true}, procstate.NewStalled(procstate.OutputFull)
	}

	cfg.PendingOutputs = nil
	cfg.Started = false
	cfg.Progress = 0
	return Result{Produced: produced, StateChanged: true}, procstate.NewIdle()
}
