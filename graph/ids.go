// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package graph implements the production graph of spec.md §4.5: an
// arena-backed directed graph whose topology changes are queued and
// applied atomically at the start of each tick, plus cached
// topological ordering via Kahn's algorithm. Grounded structurally on
// the teacher's dag.New/AddBlock map-backed store (dag/dag.go),
// generalized from an append-only block DAG to a mutable, queued-
// mutation, cycle-tolerant graph; the teacher's sync.RWMutex is
// dropped since spec.md §5 makes the whole engine single-threaded.
package graph

import "github.com/zakkeown/factorial/handle"

// NodeID identifies a node (building site) in the production graph.
type NodeID handle.Handle

func (id NodeID) String() string { return handle.Handle(id).String() }

// EdgeID identifies a directed edge (transport link) in the
// production graph.
type EdgeID handle.Handle

// PendingNodeID identifies a QueueAddNode call until Apply() resolves
// it to a real NodeID.
type PendingNodeID int

// PendingEdgeID identifies a QueueConnect/QueueConnectFiltered call
// until Apply() resolves it to a real EdgeID.
type PendingEdgeID int

func (id EdgeID) String() string { return handle.Handle(id).String() }

// nodeIDLess orders NodeIDs ascending by allocation order, the tie-
// break rule used by topological sort and event emission.
func nodeIDLess(a, b NodeID) bool {
	return handle.Less(handle.Handle(a), handle.Handle(b))
}
