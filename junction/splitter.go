// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package junction

import "github.com/zakkeown/factorial/graph"

type roundRobinFactory struct{}

func (roundRobinFactory) New() SplitPolicy { return &roundRobinPolicy{} }

// roundRobinPolicy gives every edge an equal share, with the
// remainder going to the edge at the current rotating index, which
// then advances (spec.md §4.8).
type roundRobinPolicy struct {
	index int
}

func (p *roundRobinPolicy) Split(total int64, edges []graph.EdgeID, caps []int64) []EdgeBudget {
	n := int64(len(edges))
	out := make([]EdgeBudget, len(edges))
	if n == 0 {
		return out
	}
	share := total / n
	remainder := total % n
	for i, e := range edges {
		out[i] = EdgeBudget{Edge: e, Quantity: share}
	}
	if remainder > 0 && len(edges) > 0 {
		idx := p.index % len(edges)
		out[idx].Quantity += remainder
	}
	if len(edges) > 0 {
		p.index = (p.index + 1) % len(edges)
	}
	return out
}

type priorityFactory struct{}

func (priorityFactory) New() SplitPolicy { return priorityPolicy{} }

// priorityPolicy assigns the total to the first edge up to its
// destination's capacity; overflow spills to the next edge, and so on
// (spec.md §4.8). Edges beyond where the total is exhausted get zero.
type priorityPolicy struct{}

func (priorityPolicy) Split(total int64, edges []graph.EdgeID, caps []int64) []EdgeBudget {
	out := make([]EdgeBudget, len(edges))
	remaining := total
	for i, e := range edges {
		cap := int64(0)
		if i < len(caps) {
			cap = caps[i]
		}
		assign := remaining
		if assign > cap {
			assign = cap
		}
		if assign < 0 {
			assign = 0
		}
		out[i] = EdgeBudget{Edge: e, Quantity: assign}
		remaining -= assign
	}
	return out
}

type evenSplitFactory struct{}

func (evenSplitFactory) New() SplitPolicy { return evenSplitPolicy{} }

// evenSplitPolicy divides the total evenly, with the remainder going
// to the numerically smallest edge identifier (spec.md §4.8). Edges
// are supplied in ascending-identifier order, so the remainder always
// lands on index 0.
type evenSplitPolicy struct{}

func (evenSplitPolicy) Split(total int64, edges []graph.EdgeID, caps []int64) []EdgeBudget {
	n := int64(len(edges))
	out := make([]EdgeBudget, len(edges))
	if n == 0 {
		return out
	}
	share := total / n
	remainder := total % n
	for i, e := range edges {
		out[i] = EdgeBudget{Edge: e, Quantity: share}
	}
	out[0].Quantity += remainder
	return out
}

// ComputeBudgets runs a Splitter node's policy for one tick, given the
// total quantity available in its output inventory for the
// configured filter and its outbound edges in ascending-identifier
// order with their destinations' current free capacity. Results are
// meant to be written into the edge-budget table the transport phase
// reads during the following tick's phase 2 (spec.md §4.9).
func ComputeBudgets(state *SplitterState, total int64, edges []graph.EdgeID, caps []int64) []EdgeBudget {
	return state.policy.Split(total, edges, caps)
}
