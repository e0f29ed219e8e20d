// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package junction implements the component-phase node behaviors of
// spec.md §4.8: Splitter (budget partitioning across a node's outbound
// edges), Merger (a labeling no-op; the transport phase already
// combines incoming edges), and Inserter (throughput-limited timed
// transfer). Splitter policies are dispatched through a small
// Factory/instance pair, one per PolicyKind, mirroring the teacher's
// poll.Factory/poll.Poll split between policy selection and
// per-request instance state (poll/poll.go) -- a deliberate departure
// from the Kind-tag dispatch used in processor and transport, since a
// splitter carries no variant-specific configuration worth a tagged
// union (round-robin's rotating index lives inside its policy
// instance).
package junction

import (
	"github.com/zakkeown/factorial/graph"
	"github.com/zakkeown/factorial/registry"
)

// PolicyKind selects a Splitter's budget-partitioning rule.
type PolicyKind uint8

const (
	RoundRobin PolicyKind = iota
	Priority
	EvenSplit
)

// EdgeBudget is one outbound edge's allotment for the next tick's
// transport phase.
type EdgeBudget struct {
	Edge     graph.EdgeID
	Quantity int64
}

// SplitPolicy partitions a total quantity across a node's outbound
// edges, each bounded by its destination's remaining capacity. Caps
// and edges are parallel slices in ascending edge-identifier order.
type SplitPolicy interface {
	Split(total int64, edges []graph.EdgeID, caps []int64) []EdgeBudget
}

// Factory constructs a SplitPolicy instance for a splitter node.
// Separating Factory from SplitPolicy lets stateful policies (round-
// robin's rotating index) carry state across ticks while stateless
// ones (priority, even-split) share one instance.
type Factory interface {
	New() SplitPolicy
}

// NewPolicyFactory returns the Factory for kind.
func NewPolicyFactory(kind PolicyKind) Factory {
	switch kind {
	case Priority:
		return priorityFactory{}
	case EvenSplit:
		return evenSplitFactory{}
	default:
		return roundRobinFactory{}
	}
}

// SplitterConfig is a Splitter node's static configuration.
type SplitterConfig struct {
	Policy PolicyKind
	Filter registry.ItemTypeID
	Has    bool
}

// SplitterState is a Splitter node's running state: the chosen
// policy's instance, which may itself carry state (e.g. round-robin's
// rotating index).
type SplitterState struct {
	policy SplitPolicy
}

// NewSplitter returns a Splitter node's config/state pair.
func NewSplitter(cfg SplitterConfig) (*SplitterConfig, *SplitterState) {
	return &cfg, &SplitterState{policy: NewPolicyFactory(cfg.Policy).New()}
}

// MergerConfig marks a node as a labeling-only merge point. The
// transport phase already combines every inbound edge's delivery into
// the node's input inventory on its own; Merger carries no behavior of
// its own (spec.md §4.8).
type MergerConfig struct{}

// InserterConfig is an Inserter node's static configuration: a
// throughput-limited, timed transfer between a configured source and
// destination.
type InserterConfig struct {
	CycleTime int64
	StackSize int64
	Filter    registry.ItemTypeID
	Has       bool
}

// InserterState is an Inserter node's running state.
type InserterState struct {
	Counter int64
}

// NewInserter returns an Inserter node's config/state pair.
func NewInserter(cfg InserterConfig) (*InserterConfig, *InserterState) {
	return &cfg, &InserterState{}
}
