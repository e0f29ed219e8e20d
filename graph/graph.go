// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package graph

import (
	"errors"
	"sort"

	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/registry"
)

// ErrNodeNotFound names a lookup against a stale or unknown NodeID.
// Graph's own lookups report that case with a false or nil return,
// not with this error.
var ErrNodeNotFound = errors.New("graph: node not found")

// ErrEdgeNotFound names a lookup against a stale or unknown EdgeID.
// Graph's own lookups report that case with a false or nil return,
// not with this error.
var ErrEdgeNotFound = errors.New("graph: edge not found")

// ErrCycleDetected is returned by the strict topological sort when
// the graph contains a cycle.
var ErrCycleDetected = errors.New("graph: cycle detected")

type nodeRecord struct {
	id           NodeID
	buildingType registry.BuildingID
	inbound      []EdgeID
	outbound     []EdgeID
}

type edgeRecord struct {
	id        EdgeID
	from, to  NodeID
	filter    registry.ItemTypeID
	hasFilter bool
}

// Graph is the arena-backed production graph. All mutations go
// through the Queue* methods and take effect only inside Apply().
type Graph struct {
	nodes *handle.Arena[nodeRecord]
	edges *handle.Arena[edgeRecord]

	queue []pendingOp

	dirty          bool
	cachedOrder    []NodeID
	cachedBackEdge map[EdgeID]bool
}

// New returns an empty Graph with arenas pre-sized to the given
// capacity hints.
func New(nodeCapacity, edgeCapacity int) *Graph {
	return &Graph{
		nodes: handle.NewArena[nodeRecord](nodeCapacity),
		edges: handle.NewArena[edgeRecord](edgeCapacity),
		dirty: true,
	}
}

// NodeExists reports whether id references a live node.
func (g *Graph) NodeExists(id NodeID) bool {
	return g.nodes.Contains(handle.Handle(id))
}

// EdgeExists reports whether id references a live edge.
func (g *Graph) EdgeExists(id EdgeID) bool {
	return g.edges.Contains(handle.Handle(id))
}

// BuildingType returns the building-type identifier of a node.
func (g *Graph) BuildingType(id NodeID) (registry.BuildingID, bool) {
	rec, ok := g.nodes.Get(handle.Handle(id))
	if !ok {
		return registry.BuildingID{}, false
	}
	return rec.buildingType, true
}

// Inputs returns the edge identifiers terminating at id, sorted
// ascending, as a zero-allocation borrow valid until the next Apply.
func (g *Graph) Inputs(id NodeID) []EdgeID {
	rec, ok := g.nodes.Get(handle.Handle(id))
	if !ok {
		return nil
	}
	return rec.inbound
}

// Outputs returns the edge identifiers originating at id, sorted
// ascending, as a zero-allocation borrow valid until the next Apply.
func (g *Graph) Outputs(id NodeID) []EdgeID {
	rec, ok := g.nodes.Get(handle.Handle(id))
	if !ok {
		return nil
	}
	return rec.outbound
}

// EdgeEndpoints returns the (from, to) nodes of an edge.
func (g *Graph) EdgeEndpoints(id EdgeID) (from, to NodeID, ok bool) {
	rec, exists := g.edges.Get(handle.Handle(id))
	if !exists {
		return NodeID{}, NodeID{}, false
	}
	return rec.from, rec.to, true
}

// EdgeFilter returns an edge's item-type filter, if configured.
func (g *Graph) EdgeFilter(id EdgeID) (registry.ItemTypeID, bool) {
	rec, ok := g.edges.Get(handle.Handle(id))
	if !ok || !rec.hasFilter {
		return registry.ItemTypeID{}, false
	}
	return rec.filter, true
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int { return g.nodes.Len() }

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int { return g.edges.Len() }

// AllNodeIDs returns every live node identifier in ascending order.
func (g *Graph) AllNodeIDs() []NodeID {
	handles := g.nodes.Handles()
	out := make([]NodeID, len(handles))
	for i, h := range handles {
		out[i] = NodeID(h)
	}
	sort.Slice(out, func(i, j int) bool { return nodeIDLess(out[i], out[j]) })
	return out
}

// AllEdgeIDs returns every live edge identifier in ascending order.
func (g *Graph) AllEdgeIDs() []EdgeID {
	handles := g.edges.Handles()
	out := make([]EdgeID, len(handles))
	for i, h := range handles {
		out[i] = EdgeID(h)
	}
	sort.Slice(out, func(i, j int) bool { return handle.Less(handle.Handle(out[i]), handle.Handle(out[j])) })
	return out
}

func insertSortedEdgeID(list []EdgeID, id EdgeID) []EdgeID {
	i := sort.Search(len(list), func(i int) bool {
		return handle.Less(handle.Handle(id), handle.Handle(list[i])) || handle.Handle(id) == handle.Handle(list[i])
	})
	list = append(list, EdgeID{})
	copy(list[i+1:], list[i:])
	list[i] = id
	return list
}

func removeEdgeID(list []EdgeID, id EdgeID) []EdgeID {
	for i, e := range list {
		if e == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
