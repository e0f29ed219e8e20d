// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dirty implements the three-level dirty tracking of spec.md
// §4.13: per-entity flags, per-partition flags inferred from entity
// marks and phase writes, and the mark-clean / serialize-incremental
// reset points. Grounded on the teacher's convention of small
// boolean-flag fields updated by plain setter methods, seen throughout
// engine/engine.go's status-map bookkeeping -- generalized here from
// ad hoc bool fields to a dedicated Tracker since this engine has five
// independent partitions to keep consistent rather than one.
package dirty

import (
	"github.com/zakkeown/factorial/graph"
	"github.com/zakkeown/factorial/ordered"
)

// Partition indexes the five serialization partitions of spec.md
// §4.12.
type Partition uint8

const (
	Graph Partition = iota
	Processors
	Inventories
	Transports
	Junctions

	numPartitions
)

// Tracker holds per-entity and per-partition dirty state for one
// engine instance.
type Tracker struct {
	partitions [numPartitions]bool

	nodes *ordered.Hashmap[graph.NodeID, struct{}]
	edges *ordered.Hashmap[graph.EdgeID, struct{}]
	graph bool
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{
		nodes: ordered.NewHashmap[graph.NodeID, struct{}](),
		edges: ordered.NewHashmap[graph.EdgeID, struct{}](),
	}
}

// MarkNode flags node as dirty. Per spec.md §4.13, a dirty node also
// dirties the Processors and Inventories partitions.
func (t *Tracker) MarkNode(node graph.NodeID) {
	t.nodes.Put(node, struct{}{})
	t.partitions[Processors] = true
	t.partitions[Inventories] = true
}

// MarkEdge flags edge as dirty, which dirties the Transports
// partition.
func (t *Tracker) MarkEdge(edge graph.EdgeID) {
	t.edges.Put(edge, struct{}{})
	t.partitions[Transports] = true
}

// MarkGraph flags the topology itself as dirty, which dirties the
// Graph partition.
func (t *Tracker) MarkGraph() {
	t.graph = true
	t.partitions[Graph] = true
}

// MarkPartition dirties a partition directly, for the pipeline
// phases' own-write rules: transport-phase writes mark Transports and
// Inventories; process-phase writes mark Processors and Inventories;
// component-phase writes mark Junctions; bookkeeping always marks
// Graph (spec.md §4.13).
func (t *Tracker) MarkPartition(p Partition) {
	if p < numPartitions {
		t.partitions[p] = true
	}
}

// MarkTransportPhase applies the transport phase's own-write rule.
func (t *Tracker) MarkTransportPhase() {
	t.partitions[Transports] = true
	t.partitions[Inventories] = true
}

// MarkProcessPhase applies the process phase's own-write rule.
func (t *Tracker) MarkProcessPhase() {
	t.partitions[Processors] = true
	t.partitions[Inventories] = true
}

// MarkComponentPhase applies the component phase's own-write rule.
func (t *Tracker) MarkComponentPhase() {
	t.partitions[Junctions] = true
}

// MarkBookkeeping applies bookkeeping's own-write rule: the tick
// counter and global state hash always advance.
func (t *Tracker) MarkBookkeeping() {
	t.partitions[Graph] = true
}

// DirtyNodes returns every node marked dirty since the last
// MarkClean, in mark order.
func (t *Tracker) DirtyNodes() []graph.NodeID {
	return t.nodes.Keys()
}

// DirtyEdges returns every edge marked dirty since the last
// MarkClean, in mark order.
func (t *Tracker) DirtyEdges() []graph.EdgeID {
	return t.edges.Keys()
}

// GraphDirty reports whether the topology itself changed since the
// last MarkClean.
func (t *Tracker) GraphDirty() bool {
	return t.graph
}

// PartitionDirty reports whether a partition has unserialized
// changes.
func (t *Tracker) PartitionDirty(p Partition) bool {
	return p < numPartitions && t.partitions[p]
}

// MarkClean clears per-entity dirty flags after the caller has
// finished rendering them (e.g. recomputing subsystem hashes for the
// dirty set). Per-partition flags are untouched; they persist until
// ClearPartition / serialize_incremental.
func (t *Tracker) MarkClean() {
	t.nodes = ordered.NewHashmap[graph.NodeID, struct{}]()
	t.edges = ordered.NewHashmap[graph.EdgeID, struct{}]()
	t.graph = false
}

// ClearPartition resets one partition's dirty flag, called after
// serialize_incremental successfully re-encodes (or reuses) that
// partition's blob.
func (t *Tracker) ClearPartition(p Partition) {
	if p < numPartitions {
		t.partitions[p] = false
	}
}

// ClearAllPartitions resets every partition's dirty flag.
func (t *Tracker) ClearAllPartitions() {
	for p := range t.partitions {
		t.partitions[p] = false
	}
}
