// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tick

import (
	"sort"

	"github.com/zakkeown/factorial/event"
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/graph"
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/junction"
	"github.com/zakkeown/factorial/modifier"
	"github.com/zakkeown/factorial/procstate"
	"github.com/zakkeown/factorial/processor"
	"github.com/zakkeown/factorial/transport"
)

// Step runs exactly one pipeline pass. Returns false without side
// effects if paused (spec.md §4.9).
func (o *Orchestrator) Step() bool {
	if o.paused {
		return false
	}
	o.runPass()
	return true
}

// Advance implements the Delta strategy: dtTicks adds to an integer
// accumulator; while it is >= FixedTimestep, subtract and run one
// pass. The remainder carries forward.
func (o *Orchestrator) Advance(dtTicks int64) int {
	if o.paused {
		return 0
	}
	step := o.cfg.FixedTimestep
	if step < 1 {
		step = 1
	}
	o.deltaAccumulator += dtTicks
	passes := 0
	for o.deltaAccumulator >= step {
		o.deltaAccumulator -= step
		o.runPass()
		passes++
	}
	return passes
}

// AdvanceTo implements the Event strategy by running one full pass per
// tick until the tick counter reaches targetTick (spec.md §4.9). It
// does not compute or skip ahead to the next state-change tick, and
// the presence of an Item-belt edge does not change the loop.
func (o *Orchestrator) AdvanceTo(targetTick int64) int {
	if o.paused {
		return 0
	}
	passes := 0
	for o.tickCount < targetTick {
		if o.hasBeltEdge() {
			o.runPass()
			passes++
			continue
		}
		o.runPass()
		passes++
	}
	return passes
}

func (o *Orchestrator) hasBeltEdge() bool {
	for _, id := range o.edges.Keys() {
		rec, ok := o.edges.Get(id)
		if ok && rec.Transport != nil && rec.Transport.Kind == transport.Belt {
			return true
		}
	}
	return false
}

// runPass executes the six ordered phases of spec.md §4.9 once.
func (o *Orchestrator) runPass() {
	if o.poisoned {
		o.log.Debug("pass skipped, engine poisoned", "tick", o.tickCount)
		return
	}
	o.log.Debug("pass starting", "tick", o.tickCount)

	// Phase 1: pre-tick.
	o.applyGraphMutations()
	o.drainReactiveMutations()
	order, back := o.g.CachedTopoOrder()
	o.topoOrder = order
	o.backEdges = back

	// Phase 2: transport.
	o.runTransportPhase()

	// Phase 3: process.
	o.runProcessPhase()

	// Phase 4: component.
	o.runComponentPhase()

	// Phase 5: post-tick.
	entries := o.bus.Drain(o.tickCount)
	o.bus.DispatchPassive(entries)
	muts := o.bus.DispatchReactive(entries)
	o.reactiveQueue = append(o.reactiveQueue, muts...)

	// Phase 6: bookkeeping.
	o.tickCount++
	o.dirt.MarkBookkeeping()
	o.recomputeSubsystemHashes()
	o.dirt.MarkClean()
	o.commitEdgeBudgets()
}

func (o *Orchestrator) drainReactiveMutations() {
	queue := o.reactiveQueue
	o.reactiveQueue = nil
	for _, m := range queue {
		m()
	}
}

// runTransportPhase iterates edges in ascending identifier order,
// applying last pass's computed budget (default even-split, or
// junction-overridden), and executing each edge's strategy.
func (o *Orchestrator) runTransportPhase() {
	edgeIDs := o.sortedEdgeIDs()
	for _, id := range edgeIDs {
		rec, ok := o.edges.Get(id)
		if !ok || rec.Transport == nil {
			continue
		}
		from, to, ok := o.g.EdgeEndpoints(id)
		if !ok {
			continue
		}
		srcRec, ok1 := o.nodes.Get(from)
		dstRec, ok2 := o.nodes.Get(to)
		if !ok1 || !ok2 || srcRec.Inventory == nil || dstRec.Inventory == nil {
			continue
		}

		budget := int64(-1)
		if rec.HasBudget {
			budget = rec.Budget
		}

		var result transport.Result
		switch rec.Transport.Kind {
		case transport.Flow:
			result = transport.ProcessFlow(rec.Transport.FlowConfig, rec.Transport.FlowState, srcRec.Inventory, dstRec.Inventory, rec.Filter, budget, o.tickCount, fixedpoint.Fixed64FromInt(1), true)
		case transport.Belt:
			result = transport.ProcessBelt(rec.Transport.BeltConfig, rec.Transport.BeltState, srcRec.Inventory, dstRec.Inventory, rec.Filter)
		case transport.Batch:
			result = transport.ProcessBatch(rec.Transport.BatchConfig, rec.Transport.BatchState, srcRec.Inventory, dstRec.Inventory, rec.Filter)
		case transport.Vehicle:
			result = transport.ProcessVehicle(rec.Transport.VehicleConfig, rec.Transport.VehicleState, srcRec.Inventory, dstRec.Inventory, rec.Filter)
		default:
			continue
		}

		if result.StateChanged {
			o.dirt.MarkEdge(id)
		}
		for _, d := range result.Delivered {
			o.bus.Emit(event.Event{Kind: event.ItemDelivered, Tick: o.tickCount, Edge: id, Item: d.Item, Quantity: d.Quantity})
		}
		if result.Saturated {
			o.bus.Emit(event.Event{Kind: event.TransportFull, Tick: o.tickCount, Edge: id})
		}
	}
	o.dirt.MarkTransportPhase()
}

// matchedCustomHook returns the first registered phase hook whose
// predicate matches id, if any. A matched entity is skipped by the
// phase's default dispatch and handled exclusively by the hook
// (spec.md §4.14: "the orchestrator skips its default dispatch for
// those entities").
func (o *Orchestrator) matchedCustomHook(phase int, id graph.NodeID) (customHook, bool) {
	for _, hook := range o.customHooks[phase] {
		if hook.predicate(id) {
			return hook, true
		}
	}
	return customHook{}, false
}

func (o *Orchestrator) sortedEdgeIDs() []graph.EdgeID {
	ids := o.edges.Keys()
	sort.Slice(ids, func(i, j int) bool {
		return handle.Less(handle.Handle(ids[i]), handle.Handle(ids[j]))
	})
	return ids
}

// runProcessPhase iterates nodes in the cached topological order,
// dispatching each node's processor.
func (o *Orchestrator) runProcessPhase() {
	for _, id := range o.topoOrder {
		rec, ok := o.nodes.Get(id)
		if !ok || rec.Proc == nil || rec.Inventory == nil {
			continue
		}
		if hook, matched := o.matchedCustomHook(3, id); matched {
			hook.callback(o, id)
			continue
		}

		speed := modifier.Fold(rec.Modifiers, modifier.Speed, o.modAlloc)
		productivity := modifier.Fold(rec.Modifiers, modifier.Productivity, o.modAlloc)

		prevState := rec.State
		var result processor.Result
		var newState procstate.State

		switch rec.Proc.Kind {
		case processor.Source:
			result, newState = processor.ProcessSource(rec.Proc.Source, rec.Inventory, rec.Props, speed, productivity, o.tickCount)
		case processor.Fixed:
			result, newState = processor.ProcessFixed(rec.Proc.Fixed, o.reg, rec.Inventory, speed, productivity)
		case processor.Property:
			result, newState = processor.ProcessProperty(rec.Proc.Property, o.reg, rec.Inventory, rec.Props)
		case processor.Demand:
			result, newState = processor.ProcessDemand(rec.Proc.Demand, rec.Inventory, speed, productivity)
		case processor.Passthrough:
			result, newState = processor.ProcessPassthrough(rec.Proc.Passthrough, rec.Inventory)
		default:
			continue
		}

		rec.State = newState
		if result.StateChanged || newState.Kind != prevState.Kind {
			o.dirt.MarkNode(id)
		}

		for _, c := range result.Consumed {
			o.bus.Emit(event.Event{Kind: event.ItemConsumed, Tick: o.tickCount, Node: id, Item: c.Item, Quantity: c.Quantity})
		}
		for _, p := range result.Produced {
			o.bus.Emit(event.Event{Kind: event.ItemProduced, Tick: o.tickCount, Node: id, Item: p.Item, Quantity: p.Quantity})
		}
		if result.Saturated {
			o.bus.Emit(event.Event{Kind: event.InventoryFull, Tick: o.tickCount, Node: id})
		}

		reason, nowStalled := newState.IsStalled()
		_, wasStalled := prevState.IsStalled()
		if nowStalled && !wasStalled {
			o.bus.Emit(event.Event{Kind: event.BuildingStalled, Tick: o.tickCount, Node: id, Reason: reason})
			o.log.Debug("node stalled", "tick", o.tickCount, "node", id, "reason", reason)
		} else if wasStalled && !nowStalled {
			o.bus.Emit(event.Event{Kind: event.BuildingResumed, Tick: o.tickCount, Node: id})
			o.log.Debug("node resumed", "tick", o.tickCount, "node", id)
		}
	}
	o.dirt.MarkProcessPhase()
}

// runComponentPhase recomputes per-edge budgets for Splitter nodes,
// runs Inserter transfers, and dispatches registered custom-system
// hooks for this phase.
func (o *Orchestrator) runComponentPhase() {
	for _, id := range o.nodes.Keys() {
		rec, ok := o.nodes.Get(id)
		if !ok {
			continue
		}
		if hook, matched := o.matchedCustomHook(4, id); matched {
			hook.callback(o, id)
			continue
		}
		switch rec.junctionKind {
		case splitterJunction:
			o.runSplitter(id, rec)
		case inserterJunction:
			o.runInserter(id, rec)
		default:
			o.runDefaultBudgetSplit(id, rec)
		}
	}
	o.dirt.MarkComponentPhase()
}

func (o *Orchestrator) runSplitter(id graph.NodeID, rec *NodeRecord) {
	if rec.Inventory == nil {
		return
	}
	outbound := o.g.Outputs(id)
	total := rec.Inventory.Output.Total()
	if rec.splitterCfg.Has {
		total = rec.Inventory.Output.Quantity(rec.splitterCfg.Filter)
	}
	caps := make([]int64, len(outbound))
	for i, e := range outbound {
		if _, to, ok := o.g.EdgeEndpoints(e); ok {
			if dstRec, ok := o.nodes.Get(to); ok && dstRec.Inventory != nil {
				caps[i] = dstRec.Inventory.Input.FreeCapacity()
				continue
			}
		}
		caps[i] = 0
	}
	budgets := junction.ComputeBudgets(rec.splitterSt, total, outbound, caps)
	for _, b := range budgets {
		if edgeRec, ok := o.edges.Get(b.Edge); ok {
			edgeRec.NextBudget = b.Quantity
			edgeRec.HasBudget = true
		}
	}
}

// runDefaultBudgetSplit applies spec.md §4.9's default edge-budget
// rule for a non-junction node with fan-out: even-split across
// outbound edges, remainder to the numerically smallest edge
// identifier -- the same rule junction.EvenSplit implements, reused
// here via an ephemeral stateless instance.
func (o *Orchestrator) runDefaultBudgetSplit(id graph.NodeID, rec *NodeRecord) {
	if rec.Inventory == nil {
		return
	}
	outbound := o.g.Outputs(id)
	if len(outbound) <= 1 {
		return
	}
	total := rec.Inventory.Output.Total()
	caps := make([]int64, len(outbound))
	_, st := junction.NewSplitter(junction.SplitterConfig{Policy: junction.EvenSplit})
	budgets := junction.ComputeBudgets(st, total, outbound, caps)
	for _, b := range budgets {
		if edgeRec, ok := o.edges.Get(b.Edge); ok {
			edgeRec.NextBudget = b.Quantity
			edgeRec.HasBudget = true
		}
	}
}

func (o *Orchestrator) runInserter(id graph.NodeID, rec *NodeRecord) {
	if !rec.hasInserterDst || rec.Inventory == nil {
		return
	}
	dstRec, ok := o.nodes.Get(rec.inserterDst)
	if !ok || dstRec.Inventory == nil {
		return
	}
	result := junction.ProcessInserter(rec.inserterCfg, rec.inserterSt, rec.Inventory, dstRec.Inventory)
	if result.StateChanged {
		o.dirt.MarkNode(id)
	}
	for _, d := range result.Delivered {
		o.bus.Emit(event.Event{Kind: event.ItemDelivered, Tick: o.tickCount, Node: id, Item: d.Item, Quantity: d.Quantity})
	}
}

// RegisterCustomHook registers an external component's phase
// override (spec.md §4.14). phase must be 2, 3, or 4; only the process
// (3) and component (4) phases dispatch hooks, so a phase-2
// registration is stored but never invoked.
func (o *Orchestrator) RegisterCustomHook(phase int, predicate func(graph.NodeID) bool, callback func(*Orchestrator, graph.NodeID)) {
	o.customHooks[phase] = append(o.customHooks[phase], customHook{predicate: predicate, callback: callback})
}

// commitEdgeBudgets rolls NextBudget (computed this pass's component
// phase) into Budget for the following pass's transport phase.
func (o *Orchestrator) commitEdgeBudgets() {
	for _, id := range o.edges.Keys() {
		rec, ok := o.edges.Get(id)
		if !ok {
			continue
		}
		if rec.HasBudget {
			rec.Budget = rec.NextBudget
		}
	}
}
