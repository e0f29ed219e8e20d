// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tick

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/zakkeown/factorial/dirty"
	"github.com/zakkeown/factorial/graph"
)

// partitionHasher maintains an order-independent, incrementally
// updatable 64-bit hash of a partition's entity set: the XOR-fold of
// each entity's own content hash. XOR-fold lets bookkeeping update one
// entity's contribution (XOR out the stale value, XOR in the fresh
// one) without re-hashing the untouched majority, which is what
// spec.md §4.9's "only dirty entities contribute re-hashing" requires.
type partitionHasher struct {
	fold       uint64
	nodeHashes map[graph.NodeID]uint64
	edgeHashes map[graph.EdgeID]uint64
}

func newPartitionHasher() *partitionHasher {
	return &partitionHasher{
		nodeHashes: make(map[graph.NodeID]uint64),
		edgeHashes: make(map[graph.EdgeID]uint64),
	}
}

func (p *partitionHasher) updateNode(id graph.NodeID, content string) {
	newHash := xxhash.Sum64String(content)
	if old, ok := p.nodeHashes[id]; ok {
		p.fold ^= old
	}
	p.nodeHashes[id] = newHash
	p.fold ^= newHash
}

func (p *partitionHasher) removeNode(id graph.NodeID) {
	if old, ok := p.nodeHashes[id]; ok {
		p.fold ^= old
		delete(p.nodeHashes, id)
	}
}

func (p *partitionHasher) updateEdge(id graph.EdgeID, content string) {
	newHash := xxhash.Sum64String(content)
	if old, ok := p.edgeHashes[id]; ok {
		p.fold ^= old
	}
	p.edgeHashes[id] = newHash
	p.fold ^= newHash
}

func (p *partitionHasher) removeEdge(id graph.EdgeID) {
	if old, ok := p.edgeHashes[id]; ok {
		p.fold ^= old
		delete(p.edgeHashes, id)
	}
}

// recomputeDirty re-hashes every node/edge marked dirty this pass into
// the processors/inventories/transports/junctions hashers.
func (o *Orchestrator) recomputeDirty() {
	for _, id := range o.dirt.DirtyNodes() {
		rec, ok := o.nodes.Get(id)
		if !ok {
			o.procHasher.removeNode(id)
			o.invHasher.removeNode(id)
			o.junctionHasher.removeNode(id)
			continue
		}
		o.procHasher.updateNode(id, procContent(rec))
		o.invHasher.updateNode(id, invContent(rec))
		if rec.junctionKind != noJunction {
			o.junctionHasher.updateNode(id, junctionContent(rec))
		} else {
			o.junctionHasher.removeNode(id)
		}
	}
	for _, id := range o.dirt.DirtyEdges() {
		rec, ok := o.edges.Get(id)
		if !ok {
			o.transHasher.removeEdge(id)
			continue
		}
		o.transHasher.updateEdge(id, transContent(rec))
	}
}

func procContent(rec *NodeRecord) string {
	return fmt.Sprintf("%v|%v|%v", rec.BuildingType, rec.Proc, rec.State)
}

func invContent(rec *NodeRecord) string {
	if rec.Inventory == nil {
		return ""
	}
	return fmt.Sprintf("%v", rec.Inventory)
}

func transContent(rec *EdgeRecord) string {
	return fmt.Sprintf("%v|%v|%d", rec.Transport, rec.Filter, rec.Budget)
}

func junctionContent(rec *NodeRecord) string {
	return fmt.Sprintf("%v|%v|%v|%v", rec.junctionKind, rec.splitterCfg, rec.inserterCfg, rec.inserterSt)
}

// graphContent serializes the topology for the Graph partition's hash
// (recomputed fully when the graph itself is dirty; topology changes
// are comparatively rare).
func (o *Orchestrator) graphContent() string {
	ids := o.g.AllNodeIDs()
	s := fmt.Sprintf("tick=%d pause=%v strategy=%d nodes=%d", o.tickCount, o.paused, o.cfg.Strategy, len(ids))
	for _, id := range ids {
		s += fmt.Sprintf("|%v:%v", id, o.g.Outputs(id))
	}
	return s
}

// recomputeSubsystemHashes folds this pass's dirty updates into the
// five partition hashes and the global state hash (spec.md §4.9:
// "global state hash is a deterministic fold of subsystem hashes and
// the tick counter").
func (o *Orchestrator) recomputeSubsystemHashes() {
	o.recomputeDirty()
	if o.dirt.GraphDirty() || o.subsystemHashes[int(dirty.Graph)] == 0 {
		o.subsystemHashes[int(dirty.Graph)] = xxhash.Sum64String(o.graphContent())
	}
	o.subsystemHashes[int(dirty.Processors)] = o.procHasher.fold
	o.subsystemHashes[int(dirty.Inventories)] = o.invHasher.fold
	o.subsystemHashes[int(dirty.Transports)] = o.transHasher.fold
	o.subsystemHashes[int(dirty.Junctions)] = o.junctionHasher.fold

	global := uint64(o.tickCount)
	for _, h := range o.subsystemHashes {
		global ^= h
		global = global*0x100000001B3 + 0xCBF29CE484222325
	}
	o.globalHash = global
}

// StateHash returns the current global state hash.
func (o *Orchestrator) StateHash() uint64 { return o.globalHash }

// SubsystemHashes returns the five partition hashes, indexed by
// dirty.Partition.
func (o *Orchestrator) SubsystemHashes() [5]uint64 { return o.subsystemHashes }
