// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package query implements the read-only query API of spec.md §4.11:
// snapshots, progress, utilization, adjacency, and diagnostics over a
// *tick.Orchestrator. No query mutates engine state; slices returned
// by the adjacency accessors are borrows valid until the next step or
// advance, matching the teacher's GetStatus/IsAccepted read-accessor
// shape (engine/engine.go) generalized from a single status lookup to
// a full snapshot surface.
package query

import (
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/graph"
	"github.com/zakkeown/factorial/procstate"
	"github.com/zakkeown/factorial/registry"
	"github.com/zakkeown/factorial/tick"
)

// InventoryCounts is one half (input or output) of a node's inventory
// contents at snapshot time.
type InventoryCounts struct {
	Quantities map[registry.ItemTypeID]int64
}

// NodeSnapshot is a point-in-time copy of one node's observable state
// (spec.md §4.11).
type NodeSnapshot struct {
	Node         graph.NodeID
	BuildingType registry.BuildingID
	State        procstate.State
	Progress     fixedpoint.Fixed64
	Inputs       InventoryCounts
	Outputs      InventoryCounts
	InboundEdges []graph.EdgeID
	OutboundEdges []graph.EdgeID
}

// TransportSnapshot is a point-in-time copy of one edge's transport
// state (spec.md §4.11).
type TransportSnapshot struct {
	Edge        graph.EdgeID
	From        graph.NodeID
	To          graph.NodeID
	Utilization fixedpoint.Fixed64
	InFlight    int64
	BeltSlots   func() [][]bool // nil unless the edge is an Item-belt; lazy view over lane occupancy
}

// DiagnosticInfo is diagnostic detail for one node (spec.md §4.11).
type DiagnosticInfo struct {
	Node                graph.NodeID
	Stalled             bool
	StallReason         procstate.StallReason
	InputUtilization    fixedpoint.Fixed64
	OutputUtilization   fixedpoint.Fixed64
	EffectiveSpeed      fixedpoint.Fixed64
	EffectiveProductivity fixedpoint.Fixed64
}

// SnapshotNode returns node's full snapshot, or false if it does not
// exist.
func SnapshotNode(o *tick.Orchestrator, node graph.NodeID) (NodeSnapshot, bool) {
	rec, ok := o.Node(node)
	if !ok {
		return NodeSnapshot{}, false
	}
	bt, _ := o.Graph().BuildingType(node)
	snap := NodeSnapshot{
		Node:          node,
		BuildingType:  bt,
		State:         rec.State,
		Progress:      progressFraction(o, rec),
		InboundEdges:  o.Graph().Inputs(node),
		OutboundEdges: o.Graph().Outputs(node),
	}
	if rec.Inventory != nil {
		snap.Inputs = countsOf(rec.Inventory.Input)
		snap.Outputs = countsOf(rec.Inventory.Output)
	}
	return snap, true
}

// SnapshotAllNodes returns a snapshot for every live node, in
// ascending node-identifier order (graph.AllNodeIDs).
func SnapshotAllNodes(o *tick.Orchestrator) []NodeSnapshot {
	ids := o.Graph().AllNodeIDs()
	out := make([]NodeSnapshot, 0, len(ids))
	for _, id := range ids {
		if snap, ok := SnapshotNode(o, id); ok {
			out = append(out, snap)
		}
	}
	return out
}

// SnapshotTransport returns edge's transport snapshot, or false if
// the edge does not exist or carries no configured transport.
func SnapshotTransport(o *tick.Orchestrator, edge graph.EdgeID) (TransportSnapshot, bool) {
	rec, ok := o.Edge(edge)
	if !ok || rec.Transport == nil {
		return TransportSnapshot{}, false
	}
	from, to, ok := o.Graph().EdgeEndpoints(edge)
	if !ok {
		return TransportSnapshot{}, false
	}
	snap := TransportSnapshot{Edge: edge, From: from, To: to}
	snap.Utilization, snap.InFlight = edgeUtilization(rec)
	if rec.Transport.Kind == beltKind(rec.Transport) && rec.Transport.BeltState != nil {
		lanes := rec.Transport.BeltState.Lanes
		snap.BeltSlots = func() [][]bool {
			view := make([][]bool, len(lanes))
			for i, lane := range lanes {
				row := make([]bool, len(lane))
				for j, slot := range lane {
					row[j] = slot.Occupied
				}
				view[i] = row
			}
			return view
		}
	}
	return snap, true
}

// GetProcessorProgress returns node's Fixed-recipe processor progress
// as a fraction in [0,1] (0 while the node is not Working), or false
// if the node does not exist, has no processor, or is not a
// Fixed-recipe processor.
func GetProcessorProgress(o *tick.Orchestrator, node graph.NodeID) (fixedpoint.Fixed64, bool) {
	rec, ok := o.Node(node)
	if !ok || rec.Proc == nil {
		return 0, false
	}
	reg := o.Registry()
	recipe, ok := recipeOf(reg, rec)
	if !ok {
		return 0, false
	}
	if !rec.State.IsWorking() {
		return fixedpoint.Fixed64FromInt(0), true
	}
	frac, _ := fixedpoint.DivFixed64(fixedpoint.Fixed64FromInt(rec.State.Progress), fixedpoint.Fixed64FromInt(recipe.Duration))
	return frac, true
}

// GetEdgeUtilization returns edge's utilization fraction, or false if
// the edge does not exist or has no configured transport.
func GetEdgeUtilization(o *tick.Orchestrator, edge graph.EdgeID) (fixedpoint.Fixed64, bool) {
	rec, ok := o.Edge(edge)
	if !ok || rec.Transport == nil {
		return 0, false
	}
	util, _ := edgeUtilization(rec)
	return util, true
}

// NodeCount returns the number of live nodes.
func NodeCount(o *tick.Orchestrator) int { return o.Graph().NodeCount() }

// EdgeCount returns the number of live edges.
func EdgeCount(o *tick.Orchestrator) int { return o.Graph().EdgeCount() }

// GetInputs returns node's inbound edges, a zero-allocation borrow
// valid until the next step/advance (spec.md §6).
func GetInputs(o *tick.Orchestrator, node graph.NodeID) []graph.EdgeID {
	return o.Graph().Inputs(node)
}

// GetOutputs returns node's outbound edges, a zero-allocation borrow
// valid until the next step/advance (spec.md §6).
func GetOutputs(o *tick.Orchestrator, node graph.NodeID) []graph.EdgeID {
	return o.Graph().Outputs(node)
}

// DiagnoseNode returns diagnostic detail for node, or false if it
// does not exist (spec.md §4.11).
func DiagnoseNode(o *tick.Orchestrator, node graph.NodeID) (DiagnosticInfo, bool) {
	rec, ok := o.Node(node)
	if !ok {
		return DiagnosticInfo{}, false
	}
	info := DiagnosticInfo{Node: node}
	if reason, stalled := rec.State.IsStalled(); stalled {
		info.Stalled = true
		info.StallReason = reason
	}
	if rec.Inventory != nil {
		info.InputUtilization = utilizationOf(rec.Inventory.Input.Total(), rec.Inventory.Input.FreeCapacity())
		info.OutputUtilization = utilizationOf(rec.Inventory.Output.Total(), rec.Inventory.Output.FreeCapacity())
	}
	alloc := o.ModifierAllocator()
	info.EffectiveSpeed = foldKind(rec, alloc, speedModifierKind)
	info.EffectiveProductivity = foldKind(rec, alloc, productivityModifierKind)
	return info, true
}
