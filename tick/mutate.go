// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tick

import (
	"github.com/zakkeown/factorial/event"
	"github.com/zakkeown/factorial/graph"
	"github.com/zakkeown/factorial/item"
	"github.com/zakkeown/factorial/junction"
	"github.com/zakkeown/factorial/modifier"
	"github.com/zakkeown/factorial/processor"
	"github.com/zakkeown/factorial/registry"
	"github.com/zakkeown/factorial/transport"
)

// QueueAddNode enqueues a node for creation at the next pass's phase
// 1. The node's record (inventory, processor, etc.) is created empty;
// configure it via the Set* methods once the real NodeID is known
// from the ApplyResult bubbled up by step()/advance().
func (o *Orchestrator) QueueAddNode(buildingType registry.BuildingID) graph.PendingNodeID {
	return o.g.QueueAddNode(buildingType)
}

// QueueRemoveNode enqueues node removal.
func (o *Orchestrator) QueueRemoveNode(node graph.NodeID) {
	o.g.QueueRemoveNode(node)
}

// QueueConnect enqueues an unfiltered edge.
func (o *Orchestrator) QueueConnect(from, to graph.NodeID) graph.PendingEdgeID {
	return o.g.QueueConnect(from, to)
}

// QueueConnectFiltered enqueues a filtered edge.
func (o *Orchestrator) QueueConnectFiltered(from, to graph.NodeID, filter registry.ItemTypeID) graph.PendingEdgeID {
	return o.g.QueueConnectFiltered(from, to, filter)
}

// QueueDisconnect enqueues edge removal.
func (o *Orchestrator) QueueDisconnect(edge graph.EdgeID) {
	o.g.QueueDisconnect(edge)
}

// applyGraphMutations runs phase 1: apply queued graph mutations,
// reconcile the orchestrator's own node/edge records against the
// result, and emit MutationRejected for anything Apply dropped
// (spec.md §7).
func (o *Orchestrator) applyGraphMutations() {
	result := o.g.Apply()
	o.lastApply = result

	for id := range result.Nodes {
		nodeID := result.Nodes[id]
		if _, exists := o.nodes.Get(nodeID); !exists {
			bt, _ := o.g.BuildingType(nodeID)
			o.nodes.Put(nodeID, &NodeRecord{BuildingType: bt, Inventory: item.NewInventory(nil, nil)})
			o.dirt.MarkNode(nodeID)
			o.bus.Emit(event.Event{Kind: event.NodeAdded, Tick: o.tickCount, Node: nodeID})
		}
	}
	for id := range result.Edges {
		edgeID := result.Edges[id]
		if _, exists := o.edges.Get(edgeID); !exists {
			o.edges.Put(edgeID, &EdgeRecord{})
			o.dirt.MarkEdge(edgeID)
			o.bus.Emit(event.Event{Kind: event.EdgeAdded, Tick: o.tickCount, Edge: edgeID})
		}
	}
	if len(result.Nodes) > 0 || len(result.Edges) > 0 || len(result.Dropped) > 0 {
		o.dirt.MarkGraph()
	}
	for range result.Dropped {
		o.bus.Emit(event.Event{Kind: event.MutationRejected, Tick: o.tickCount})
	}
	o.pruneRemoved()
}

// pruneRemoved drops orchestrator-side records for nodes/edges the
// graph no longer considers live (removed by a queued
// remove/disconnect), and emits NodeRemoved/EdgeRemoved.
func (o *Orchestrator) pruneRemoved() {
	for _, id := range o.nodes.Keys() {
		if !o.g.NodeExists(id) {
			o.nodes.Delete(id)
			o.dirt.MarkNode(id)
			o.bus.Emit(event.Event{Kind: event.NodeRemoved, Tick: o.tickCount, Node: id})
		}
	}
	for _, id := range o.edges.Keys() {
		if !o.g.EdgeExists(id) {
			o.edges.Delete(id)
			o.dirt.MarkEdge(id)
			o.bus.Emit(event.Event{Kind: event.EdgeRemoved, Tick: o.tickCount, Edge: id})
		}
	}
}

// SetInventoryCapacity configures a node's input/output slot
// capacities. Immediate, called outside the tick (spec.md §6).
func (o *Orchestrator) SetInventoryCapacity(node graph.NodeID, inputCaps, outputCaps []int64) bool {
	rec, ok := o.nodes.Get(node)
	if !ok {
		return false
	}
	rec.Inventory = item.NewInventory(inputCaps, outputCaps)
	if rec.Props == nil {
		rec.Props = item.NewPropertyArenas()
	}
	o.dirt.MarkNode(node)
	return true
}

// SetProcessor configures a node's processor. Immediate.
func (o *Orchestrator) SetProcessor(node graph.NodeID, proc *processor.Processor) bool {
	rec, ok := o.nodes.Get(node)
	if !ok {
		return false
	}
	rec.Proc = proc
	o.dirt.MarkNode(node)
	return true
}

// SetModifiers configures a node's modifier instance list. It stores a
// copy sorted by ID ascending per spec.md invariant 2
// (modifier.SortInstances); the caller's slice is not reordered.
func (o *Orchestrator) SetModifiers(node graph.NodeID, instances []modifier.Instance) bool {
	rec, ok := o.nodes.Get(node)
	if !ok {
		return false
	}
	sorted := append([]modifier.Instance(nil), instances...)
	modifier.SortInstances(sorted)
	rec.Modifiers = sorted
	o.dirt.MarkNode(node)
	return true
}

// SetJunctionSplitter configures a node as a Splitter for phase 4.
func (o *Orchestrator) SetJunctionSplitter(node graph.NodeID, cfg junction.SplitterConfig) bool {
	rec, ok := o.nodes.Get(node)
	if !ok {
		return false
	}
	splitterCfg, splitterSt := junction.NewSplitter(cfg)
	rec.junctionKind = splitterJunction
	rec.splitterCfg = splitterCfg
	rec.splitterSt = splitterSt
	o.dirt.MarkNode(node)
	return true
}

// SetJunctionInserter configures a node as an Inserter transferring
// into dst for phase 4.
func (o *Orchestrator) SetJunctionInserter(node, dst graph.NodeID, cfg junction.InserterConfig) bool {
	rec, ok := o.nodes.Get(node)
	if !ok {
		return false
	}
	inserterCfg, inserterSt := junction.NewInserter(cfg)
	rec.junctionKind = inserterJunction
	rec.inserterCfg = inserterCfg
	rec.inserterSt = inserterSt
	rec.inserterDst = dst
	rec.hasInserterDst = true
	o.dirt.MarkNode(node)
	return true
}

// SetTransport configures an edge's transport strategy. Immediate.
func (o *Orchestrator) SetTransport(edge graph.EdgeID, strat *transport.Strategy, filter transport.Filter) bool {
	rec, ok := o.edges.Get(edge)
	if !ok {
		return false
	}
	rec.Transport = strat
	rec.Filter = filter
	o.dirt.MarkEdge(edge)
	return true
}
