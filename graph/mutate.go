// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package graph

import (
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/registry"
)

type opKind uint8

const (
	opAddNode opKind = iota
	opRemoveNode
	opConnect
	opConnectFiltered
	opDisconnect
)

type pendingOp struct {
	kind opKind

	// opAddNode
	pendingNode  PendingNodeID
	buildingType registry.BuildingID

	// opRemoveNode
	removeNode NodeID

	// opConnect / opConnectFiltered
	pendingEdge PendingEdgeID
	from, to    NodeID
	filter      registry.ItemTypeID
	hasFilter   bool

	// opDisconnect
	disconnectEdge EdgeID
}

// DropReason explains why a queued mutation was rejected during
// Apply, per spec.md §7 ("Mutation errors... the operation is
// silently dropped and a MutationRejected event is emitted"). Graph
// itself does not emit events; it reports drops so the tick
// orchestrator can.
type DropReason uint8

const (
	DropFromNotFound DropReason = iota
	DropToNotFound
	DropEdgeNotFound
	DropNodeNotFound
)

// DroppedMutation is one queued operation that Apply could not carry
// out because an endpoint no longer existed by the time phase 1 ran.
type DroppedMutation struct {
	Reason DropReason
}

// ApplyResult maps each pending identifier issued this batch to its
// resolved real identifier, and lists any operations dropped because
// an endpoint had vanished.
type ApplyResult struct {
	Nodes   map[PendingNodeID]NodeID
	Edges   map[PendingEdgeID]EdgeID
	Dropped []DroppedMutation
}

// QueueAddNode enqueues creation of a node with the given building
// type, effective at the next Apply().
func (g *Graph) QueueAddNode(buildingType registry.BuildingID) PendingNodeID {
	id := PendingNodeID(len(g.queue))
	g.queue = append(g.queue, pendingOp{kind: opAddNode, pendingNode: id, buildingType: buildingType})
	return id
}

// QueueRemoveNode enqueues removal of node, cascading to its incident
// edges, effective at the next Apply().
func (g *Graph) QueueRemoveNode(node NodeID) {
	g.queue = append(g.queue, pendingOp{kind: opRemoveNode, removeNode: node})
}

// QueueConnect enqueues an unfiltered edge from -> to, effective at
// the next Apply().
func (g *Graph) QueueConnect(from, to NodeID) PendingEdgeID {
	id := PendingEdgeID(len(g.queue))
	g.queue = append(g.queue, pendingOp{kind: opConnect, pendingEdge: id, from: from, to: to})
	return id
}

// QueueConnectFiltered enqueues a filtered edge from -> to, effective
// at the next Apply().
func (g *Graph) QueueConnectFiltered(from, to NodeID, filter registry.ItemTypeID) PendingEdgeID {
	id := PendingEdgeID(len(g.queue))
	g.queue = append(g.queue, pendingOp{kind: opConnectFiltered, pendingEdge: id, from: from, to: to, filter: filter, hasFilter: true})
	return id
}

// QueueDisconnect enqueues removal of edge, effective at the next
// Apply().
func (g *Graph) QueueDisconnect(edge EdgeID) {
	g.queue = append(g.queue, pendingOp{kind: opDisconnect, disconnectEdge: edge})
}

// Apply executes every queued mutation in FIFO order, atomically.
// This is tick phase 1 (spec.md §4.9). It never leaves the graph in a
// partially-applied state from the caller's perspective: all queued
// ops run to completion in one call.
func (g *Graph) Apply() ApplyResult {
	result := ApplyResult{
		Nodes: make(map[PendingNodeID]NodeID),
		Edges: make(map[PendingEdgeID]EdgeID),
	}

	ops := g.queue
	g.queue = nil

	for _, op := range ops {
		switch op.kind {
		case opAddNode:
			h := g.nodes.Alloc(nodeRecord{buildingType: op.buildingType})
			id := NodeID(h)
			g.nodes.Set(h, nodeRecord{id: id, buildingType: op.buildingType})
			result.Nodes[op.pendingNode] = id
			g.dirty = true

		case opRemoveNode:
			g.applyRemoveNode(op.removeNode)
			g.dirty = true

		case opConnect, opConnectFiltered:
			if !g.NodeExists(op.from) {
				result.Dropped = append(result.Dropped, DroppedMutation{Reason: DropFromNotFound})
				continue
			}
			if !g.NodeExists(op.to) {
				result.Dropped = append(result.Dropped, DroppedMutation{Reason: DropToNotFound})
				continue
			}
			h := g.edges.Alloc(edgeRecord{})
			id := EdgeID(h)
			g.edges.Set(h, edgeRecord{id: id, from: op.from, to: op.to, filter: op.filter, hasFilter: op.hasFilter})
			g.attachEdge(id, op.from, op.to)
			result.Edges[op.pendingEdge] = id
			g.dirty = true

		case opDisconnect:
			if !g.EdgeExists(op.disconnectEdge) {
				result.Dropped = append(result.Dropped, DroppedMutation{Reason: DropEdgeNotFound})
				continue
			}
			g.applyDisconnect(op.disconnectEdge)
			g.dirty = true
		}
	}

	return result
}

func (g *Graph) attachEdge(id EdgeID, from, to NodeID) {
	if p := g.nodes.GetPtr(handle.Handle(from)); p != nil {
		p.outbound = insertSortedEdgeID(p.outbound, id)
	}
	if p := g.nodes.GetPtr(handle.Handle(to)); p != nil {
		p.inbound = insertSortedEdgeID(p.inbound, id)
	}
}

func (g *Graph) applyDisconnect(id EdgeID) {
	rec, ok := g.edges.Get(handle.Handle(id))
	if !ok {
		return
	}
	if p := g.nodes.GetPtr(handle.Handle(rec.from)); p != nil {
		p.outbound = removeEdgeID(p.outbound, id)
	}
	if p := g.nodes.GetPtr(handle.Handle(rec.to)); p != nil {
		p.inbound = removeEdgeID(p.inbound, id)
	}
	g.edges.Free(handle.Handle(id))
}

func (g *Graph) applyRemoveNode(id NodeID) {
	rec, ok := g.nodes.Get(handle.Handle(id))
	if !ok {
		return
	}
	incident := make([]EdgeID, 0, len(rec.inbound)+len(rec.outbound))
	incident = append(incident, rec.inbound...)
	incident = append(incident, rec.outbound...)
	for _, e := range incident {
		g.applyDisconnect(e)
	}
	g.nodes.Free(handle.Handle(id))
}
