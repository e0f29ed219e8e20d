// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package processor

import (
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/item"
	"github.com/zakkeown/factorial/procstate"
)

// effectiveRate computes base x speed x productivity x depletion
// factor. Decaying depletion applies fixedpoint.Pow2Neg over
// tick/HalfLife; Infinite and Finite depletion apply no additional
// factor (Finite's exhaustion is tracked by Remaining instead).
func effectiveRate(base, speed, productivity fixedpoint.Fixed64, depletion Depletion, tick int64) fixedpoint.Fixed64 {
	rate, _ := fixedpoint.MulFixed64(base, speed)
	rate, _ = fixedpoint.MulFixed64(rate, productivity)
	if depletion.Kind == Decaying && depletion.HalfLife > 0 {
		exponent, _ := fixedpoint.DivFixed64(fixedpoint.Fixed64FromInt(tick), fixedpoint.Fixed64FromInt(depletion.HalfLife))
		factor := fixedpoint.Pow2Neg(exponent)
		rate, _ = fixedpoint.MulFixed64(rate, factor)
	}
	return rate
}

// ProcessSource advances a Source processor by one tick: it
// accumulates fractional production into cfg.Accumulator, extracts
// the whole amount ready, and attempts to place it into inv's output
// half. Only the amount that actually fit is debited from the
// accumulator and, for Finite depletion, from Remaining, so a partial
// or total output-full stall leaves exactly the un-produced fraction
// to retry next tick instead of discarding it (spec.md §4.7).
func ProcessSource(cfg *SourceConfig, inv *item.Inventory, props *item.PropertyArenas, speed, productivity fixedpoint.Fixed64, tick int64) (Result, procstate.State) {
	if cfg.Depletion.Kind == Finite && cfg.Depletion.Remaining <= 0 {
		return Result{}, procstate.NewStalled(procstate.Depleted)
	}

	rate := effectiveRate(cfg.BaseRate, speed, productivity, cfg.Depletion, tick)
	newAcc, _ := fixedpoint.AddFixed64(cfg.Accumulator, rate)
	whole := newAcc.Int()
	if whole <= 0 {
		cfg.Accumulator = newAcc
		return Result{}, procstate.NewIdle()
	}

	attempt := whole
	if cfg.Depletion.Kind == Finite && attempt > cfg.Depletion.Remaining {
		attempt = cfg.Depletion.Remaining
	}

	var stateHandle handle.Handle
	if cfg.StampInitialProps {
		stateHandle = props.Alloc(cfg.OutputType, cfg.InitialProperties)
	}

	overflow := inv.Output.Add(cfg.OutputType, attempt, stateHandle)
	produced := attempt - overflow

	if produced == 0 && stateHandle != handle.Nil {
		props.Free(cfg.OutputType, stateHandle)
	}

	cfg.Accumulator, _ = fixedpoint.SubFixed64(newAcc, fixedpoint.Fixed64FromInt(produced))
	if cfg.Depletion.Kind == Finite {
		cfg.Depletion.Remaining -= produced
	}

	if produced == 0 {
		return Result{}, procstate.NewStalled(procstate.OutputFull)
	}

	result := Result{
		Produced:      []ProducedEntry{{Item: cfg.OutputType, Quantity: produced}},
		StateChanged:  true,
		ProgressDelta: produced,
		Saturated:     produced < attempt,
	}
	if produced < attempt {
		return result, procstate.NewStalled(procstate.OutputFull)
	}
	if cfg.Depletion.Kind == Finite && cfg.Depletion.Remaining <= 0 {
		return result, procstate.NewStalled(procstate.Depleted)
	}
	return result, procstate.NewWorking(0)
}
