// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package query

import (
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/item"
	"github.com/zakkeown/factorial/modifier"
	"github.com/zakkeown/factorial/processor"
	"github.com/zakkeown/factorial/registry"
	"github.com/zakkeown/factorial/tick"
	"github.com/zakkeown/factorial/transport"
)

const (
	speedModifierKind        = modifier.Speed
	productivityModifierKind = modifier.Productivity
)

func countsOf(h *item.Half) InventoryCounts {
	counts := InventoryCounts{Quantities: make(map[registry.ItemTypeID]int64)}
	if h == nil {
		return counts
	}
	for _, slot := range h.Slots {
		for _, stack := range slot.Contents() {
			counts.Quantities[stack.Item] += stack.Quantity
		}
	}
	return counts
}

// progressFraction converts a Working state's tick-denominated
// progress into a [0,1] fraction of the node's configured recipe
// duration, when the node runs a Fixed-recipe processor; otherwise 0.
func progressFraction(o *tick.Orchestrator, rec *tick.NodeRecord) fixedpoint.Fixed64 {
	if !rec.State.IsWorking() || rec.Proc == nil {
		return 0
	}
	recipe, ok := recipeOf(o.Registry(), rec)
	if !ok {
		return 0
	}
	frac, _ := fixedpoint.DivFixed64(fixedpoint.Fixed64FromInt(rec.State.Progress), fixedpoint.Fixed64FromInt(recipe.Duration))
	return frac
}

func recipeOf(reg *registry.Registry, rec *tick.NodeRecord) (registry.Recipe, bool) {
	if rec.Proc == nil || rec.Proc.Kind != processor.Fixed || rec.Proc.Fixed == nil {
		return registry.Recipe{}, false
	}
	return reg.RecipeByID(rec.Proc.Fixed.Recipe)
}

func utilizationOf(used, free int64) fixedpoint.Fixed64 {
	total := used + free
	if total == 0 {
		return 0
	}
	util, _ := fixedpoint.DivFixed64(fixedpoint.Fixed64FromInt(used), fixedpoint.Fixed64FromInt(total))
	return util
}

func foldKind(rec *tick.NodeRecord, alloc *modifier.Allocator, kind modifier.Kind) fixedpoint.Fixed64 {
	return modifier.Fold(rec.Modifiers, kind, alloc)
}

func beltKind(strat *transport.Strategy) transport.Kind { return transport.Belt }

// edgeUtilization reports an edge's transport utilization and
// in-flight quantity, one implementation per variant.
func edgeUtilization(rec *tick.EdgeRecord) (util fixedpoint.Fixed64, inFlight int64) {
	strat := rec.Transport
	switch strat.Kind {
	case transport.Flow:
		if strat.FlowConfig == nil || strat.FlowConfig.Capacity == 0 {
			return 0, 0
		}
		for _, q := range strat.FlowState.Queue {
			inFlight += q.Quantity
		}
		util, _ = fixedpoint.DivFixed64(fixedpoint.Fixed64FromInt(inFlight), fixedpoint.Fixed64FromInt(strat.FlowConfig.Capacity))
		return util, inFlight
	case transport.Belt:
		var occupied, total int64
		for _, lane := range strat.BeltState.Lanes {
			for _, slot := range lane {
				total++
				if slot.Occupied {
					occupied++
					inFlight++
				}
			}
		}
		util = utilizationOf(occupied, total-occupied)
		return util, inFlight
	case transport.Batch:
		if strat.BatchConfig == nil || strat.BatchConfig.CycleTime == 0 {
			return 0, 0
		}
		util, _ = fixedpoint.DivFixed64(fixedpoint.Fixed64FromInt(strat.BatchState.Counter), fixedpoint.Fixed64FromInt(strat.BatchConfig.CycleTime))
		return util, 0
	case transport.Vehicle:
		var loaded int64
		for _, v := range strat.VehicleState.Vehicles {
			if len(v.Cargo) > 0 {
				loaded++
				for _, c := range v.Cargo {
					inFlight += c.Quantity
				}
			}
		}
		if strat.VehicleConfig == nil || len(strat.VehicleState.Vehicles) == 0 {
			return 0, inFlight
		}
		util, _ = fixedpoint.DivFixed64(fixedpoint.Fixed64FromInt(loaded), fixedpoint.Fixed64FromInt(int64(len(strat.VehicleState.Vehicles))))
		return util, inFlight
	default:
		return 0, 0
	}
}
