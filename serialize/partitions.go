// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serialize

import (
	"github.com/zakkeown/factorial/graph"
	"github.com/zakkeown/factorial/item"
	"github.com/zakkeown/factorial/junction"
	"github.com/zakkeown/factorial/modifier"
	"github.com/zakkeown/factorial/procstate"
	"github.com/zakkeown/factorial/processor"
	"github.com/zakkeown/factorial/registry"
	"github.com/zakkeown/factorial/tick"
	"github.com/zakkeown/factorial/transport"
)

// graphPartition is partition 0: topology, tick counter, pause flag,
// strategy (spec.md §4.12's partition table).
type graphPartition struct {
	Tick     int64
	Paused   bool
	Strategy tick.Strategy
	Nodes    []graphNode
	Edges    []graphEdge
}

type graphNode struct {
	ID           graph.NodeID
	BuildingType registry.BuildingID
}

type graphEdge struct {
	ID       graph.EdgeID
	From     graph.NodeID
	To       graph.NodeID
	Filter   registry.ItemTypeID
	HasFilter bool
}

// processorsPartition is partition 1: per-node processor
// configuration, processor state, and modifiers.
type processorsPartition struct {
	Nodes []processorNode
}

type processorNode struct {
	ID        graph.NodeID
	Proc      *processor.Processor
	State     procstate.State
	Modifiers []modifier.Instance
}

// inventoriesPartition is partition 2: per-node input and output
// inventories. Item property-arena contents are not carried (spec.md
// names no requirement to persist dynamic item properties across a
// snapshot boundary, and the arena's internals are private to the
// item package); a restored node's properties start empty, which only
// affects nodes actively using per-occurrence properties across a
// save/load boundary.
type inventoriesPartition struct {
	Nodes []inventoryNode
}

type inventoryNode struct {
	ID     graph.NodeID
	Input  []item.Stack
	Output []item.Stack
	// InputCaps/OutputCaps record each half's per-slot capacity so
	// deserialize can rebuild equivalently shaped Halves before
	// re-adding stacks.
	InputCaps  []int64
	OutputCaps []int64
}

// transportsPartition is partition 3: per-edge transport
// configuration and state.
type transportsPartition struct {
	Edges []transportEdge
}

type transportEdge struct {
	ID         graph.EdgeID
	Transport  *transport.Strategy
	Filter     transport.Filter
	Budget     int64
	HasBudget  bool
}

// junctionsPartition is partition 4: per-node junction configuration
// and state. SplitterState's internal policy (e.g. a round-robin
// index) is not gob-encodable since it is an unexported interface
// value; deserialize reconstructs a fresh SplitterState from
// SplitterCfg instead, which is semantically valid (the policy is
// still correct from that point on) but restarts round-robin rotation
// at index 0 rather than preserving the exact pre-snapshot phase.
type junctionsPartition struct {
	Nodes []junctionNode
}

type junctionNode struct {
	ID             graph.NodeID
	HasSplitter    bool
	SplitterCfg    junction.SplitterConfig
	HasInserter    bool
	InserterCfg    junction.InserterConfig
	InserterState  junction.InserterState
	InserterDst    graph.NodeID
	HasInserterDst bool
}

func buildGraphPartition(o *tick.Orchestrator) graphPartition {
	g := o.Graph()
	nodeIDs := g.AllNodeIDs()
	edgeIDs := g.AllEdgeIDs()
	p := graphPartition{
		Tick:     o.Tick(),
		Paused:   o.Paused(),
		Strategy: o.StrategyKind(),
		Nodes:    make([]graphNode, 0, len(nodeIDs)),
		Edges:    make([]graphEdge, 0, len(edgeIDs)),
	}
	for _, id := range nodeIDs {
		bt, _ := g.BuildingType(id)
		p.Nodes = append(p.Nodes, graphNode{ID: id, BuildingType: bt})
	}
	for _, id := range edgeIDs {
		from, to, _ := g.EdgeEndpoints(id)
		filter, hasFilter := g.EdgeFilter(id)
		p.Edges = append(p.Edges, graphEdge{ID: id, From: from, To: to, Filter: filter, HasFilter: hasFilter})
	}
	return p
}

func buildProcessorsPartition(o *tick.Orchestrator) processorsPartition {
	ids := o.Graph().AllNodeIDs()
	p := processorsPartition{Nodes: make([]processorNode, 0, len(ids))}
	for _, id := range ids {
		rec, ok := o.Node(id)
		if !ok {
			continue
		}
		p.Nodes = append(p.Nodes, processorNode{ID: id, Proc: rec.Proc, State: rec.State, Modifiers: rec.Modifiers})
	}
	return p
}

func buildInventoriesPartition(o *tick.Orchestrator) inventoriesPartition {
	ids := o.Graph().AllNodeIDs()
	p := inventoriesPartition{Nodes: make([]inventoryNode, 0, len(ids))}
	for _, id := range ids {
		rec, ok := o.Node(id)
		if !ok || rec.Inventory == nil {
			continue
		}
		n := inventoryNode{ID: id}
		for _, slot := range rec.Inventory.Input.Slots {
			n.InputCaps = append(n.InputCaps, slot.Capacity)
			n.Input = append(n.Input, slot.Contents()...)
		}
		for _, slot := range rec.Inventory.Output.Slots {
			n.OutputCaps = append(n.OutputCaps, slot.Capacity)
			n.Output = append(n.Output, slot.Contents()...)
		}
		p.Nodes = append(p.Nodes, n)
	}
	return p
}

func buildTransportsPartition(o *tick.Orchestrator) transportsPartition {
	ids := o.Graph().AllEdgeIDs()
	p := transportsPartition{Edges: make([]transportEdge, 0, len(ids))}
	for _, id := range ids {
		rec, ok := o.Edge(id)
		if !ok {
			continue
		}
		p.Edges = append(p.Edges, transportEdge{
			ID: id, Transport: rec.Transport, Filter: rec.Filter,
			Budget: rec.Budget, HasBudget: rec.HasBudget,
		})
	}
	return p
}

func buildJunctionsPartition(o *tick.Orchestrator) junctionsPartition {
	ids := o.Graph().AllNodeIDs()
	p := junctionsPartition{Nodes: make([]junctionNode, 0, len(ids))}
	for _, id := range ids {
		snap, ok := o.JunctionOf(id)
		if !ok || snap.Kind == tick.NoJunction {
			continue
		}
		n := junctionNode{ID: id}
		switch snap.Kind {
		case tick.SplitterJunction:
			n.HasSplitter = true
			if snap.SplitterCfg != nil {
				n.SplitterCfg = *snap.SplitterCfg
			}
		case tick.InserterJunction:
			n.HasInserter = true
			if snap.InserterCfg != nil {
				n.InserterCfg = *snap.InserterCfg
			}
			if snap.InserterState != nil {
				n.InserterState = *snap.InserterState
			}
			n.InserterDst = snap.InserterDst
			n.HasInserterDst = snap.HasInserterDst
		}
		p.Nodes = append(p.Nodes, n)
	}
	return p
}
