// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package graph

import "container/heap"

// nodeHeap is a min-heap of NodeID ordered by the ascending-identifier
// tie-break rule, used to pick the next zero-indegree node
// deterministically during Kahn's algorithm.
type nodeHeap []NodeID

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return nodeIDLess(h[i], h[j]) }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(NodeID)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// kahn runs Kahn's algorithm and returns the nodes it could fully
// order plus whatever nodes remained stuck (non-empty only when the
// graph is cyclic), in ascending-identifier order.
func kahn(g *Graph) (processed, cyclic []NodeID) {
	nodes := g.AllNodeIDs()
	indegree := make(map[NodeID]int, len(nodes))
	for _, n := range nodes {
		indegree[n] = len(g.Inputs(n))
	}

	h := &nodeHeap{}
	for _, n := range nodes {
		if indegree[n] == 0 {
			*h = append(*h, n)
		}
	}
	heap.Init(h)

	visited := make(map[NodeID]bool, len(nodes))
	processed = make([]NodeID, 0, len(nodes))
	for h.Len() > 0 {
		n := heap.Pop(h).(NodeID)
		processed = append(processed, n)
		visited[n] = true
		for _, e := range g.Outputs(n) {
			_, to, ok := g.EdgeEndpoints(e)
			if !ok {
				continue
			}
			indegree[to]--
			if indegree[to] == 0 {
				heap.Push(h, to)
			}
		}
	}

	if len(processed) == len(nodes) {
		return processed, nil
	}
	for _, n := range nodes {
		if !visited[n] {
			cyclic = append(cyclic, n)
		}
	}
	return processed, cyclic
}

// KahnStrict returns a full topological order or ErrCycleDetected if
// the graph contains a cycle.
func KahnStrict(g *Graph) ([]NodeID, error) {
	processed, cyclic := kahn(g)
	if len(cyclic) > 0 {
		return nil, ErrCycleDetected
	}
	return processed, nil
}

// KahnTolerant returns an order covering every node, with cycle
// members appended at the end in ascending-identifier order, plus the
// set of back-edges: edges whose destination precedes their source in
// the returned order (spec.md §4.5).
func KahnTolerant(g *Graph) (order []NodeID, backEdges []EdgeID) {
	processed, cyclic := kahn(g)
	order = append(processed, cyclic...)

	pos := make(map[NodeID]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	for _, n := range order {
		for _, e := range g.Outputs(n) {
			from, to, ok := g.EdgeEndpoints(e)
			if !ok {
				continue
			}
			if pos[to] < pos[from] {
				backEdges = append(backEdges, e)
			}
		}
	}
	return order, backEdges
}

// CachedTopoOrder returns the feedback-tolerant topological order,
// recomputing it only if a mutation has applied since the last call
// (spec.md §4.5: "Cached; recomputed lazily when a mutation applies").
// This is the variant the tick orchestrator uses for phase 3.
func (g *Graph) CachedTopoOrder() ([]NodeID, []EdgeID) {
	if g.dirty {
		order, backEdges := KahnTolerant(g)
		g.cachedOrder = order
		g.cachedBackEdge = make(map[EdgeID]bool, len(backEdges))
		for _, e := range backEdges {
			g.cachedBackEdge[e] = true
		}
		g.dirty = false
	}
	backEdges := make([]EdgeID, 0, len(g.cachedBackEdge))
	for _, n := range g.cachedOrder {
		for _, e := range g.Outputs(n) {
			if g.cachedBackEdge[e] {
				backEdges = append(backEdges, e)
			}
		}
	}
	return g.cachedOrder, backEdges
}

// IsBackEdge reports whether edge was classified as a back-edge in
// the most recently cached topological order.
func (g *Graph) IsBackEdge(e EdgeID) bool {
	g.CachedTopoOrder()
	return g.cachedBackEdge[e]
}
