// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tick implements the pipeline orchestrator of spec.md §4.9:
// three cadence strategies (Tick/Delta/Event), six ordered phases per
// pass, a pause flag, incremental per-partition state hashing, and the
// custom-system hook. Grounded on the teacher's top-level engine
// lifecycle shape (engine/engine.go's Chain.Add/RecordVote/Start/Stop
// sequencing and its phase-ordered dispatch), generalized from a
// single-phase consensus round to this engine's six-phase production
// pass.
package tick

import (
	"github.com/zakkeown/factorial/dirty"
	"github.com/zakkeown/factorial/event"
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/graph"
	"github.com/zakkeown/factorial/item"
	"github.com/zakkeown/factorial/junction"
	"github.com/zakkeown/factorial/log"
	"github.com/zakkeown/factorial/modifier"
	"github.com/zakkeown/factorial/ordered"
	"github.com/zakkeown/factorial/procstate"
	"github.com/zakkeown/factorial/processor"
	"github.com/zakkeown/factorial/registry"
	"github.com/zakkeown/factorial/transport"
)

// Strategy selects how step/advance cadence maps to pipeline passes.
type Strategy uint8

const (
	// TickStrategy runs exactly one pass per step() call.
	TickStrategy Strategy = iota
	// DeltaStrategy accumulates dt_ticks and runs one pass per
	// fixed_timestep crossed; the remainder carries forward. Not
	// suitable for multiplayer unless clients pin identical
	// accumulator sequences (spec.md §4.9).
	DeltaStrategy
	// EventStrategy advances to a target tick through AdvanceTo, one
	// pass per tick; it does not skip ahead to the next state-change
	// tick.
	EventStrategy
)

// Config configures an Orchestrator at construction (spec.md §6).
type Config struct {
	Strategy              Strategy
	FixedTimestep         int64
	EventBufferCapacities event.Capacities
	SuppressedEventKinds  []event.Kind
	ReactiveQueueCapacity int
	InitialRNGSeed        uint64
	SnapshotRingCapacity  int
}

// DefaultConfig returns spec.md §6's documented defaults.
func DefaultConfig() Config {
	return Config{
		Strategy:              TickStrategy,
		FixedTimestep:         1,
		ReactiveQueueCapacity: 1024,
		SnapshotRingCapacity:  0,
	}
}

// nodeJunctionKind tags which (if any) junction behavior a node runs
// during phase 4.
type nodeJunctionKind uint8

const (
	noJunction nodeJunctionKind = iota
	splitterJunction
	inserterJunction
)

// NodeRecord is everything the orchestrator keeps per graph node
// beyond the graph's own topology record.
type NodeRecord struct {
	BuildingType registry.BuildingID
	Inventory    *item.Inventory
	Props        *item.PropertyArenas
	Proc         *processor.Processor
	Modifiers    []modifier.Instance
	State        procstate.State

	junctionKind nodeJunctionKind
	splitterCfg  *junction.SplitterConfig
	splitterSt   *junction.SplitterState
	inserterCfg  *junction.InserterConfig
	inserterSt   *junction.InserterState
	inserterDst  graph.NodeID
	hasInserterDst bool
}

// EdgeRecord is everything the orchestrator keeps per graph edge
// beyond the graph's own topology record.
type EdgeRecord struct {
	Transport   *transport.Strategy
	Filter      transport.Filter
	Budget      int64 // this tick's budget, computed last pass
	NextBudget  int64 // budget to apply next pass
	HasBudget   bool  // false = unbounded (no junction/default cap applied yet)
}

// Orchestrator is the tick engine: the production graph plus every
// node/edge's processor, transport, modifier, and junction state, run
// through the spec.md §4.9 pipeline.
type Orchestrator struct {
	cfg Config
	log log.Logger

	reg      *registry.Registry
	g        *graph.Graph
	modAlloc *modifier.Allocator
	bus      *event.Bus
	dirt     *dirty.Tracker

	nodes *ordered.Hashmap[graph.NodeID, *NodeRecord]
	edges *ordered.Hashmap[graph.EdgeID, *EdgeRecord]

	tickCount int64
	paused    bool
	poisoned  bool

	deltaAccumulator int64

	rng *rng

	topoOrder []graph.NodeID
	backEdges []graph.EdgeID

	subsystemHashes [5]uint64
	globalHash      uint64
	procHasher      *partitionHasher
	invHasher       *partitionHasher
	transHasher     *partitionHasher
	junctionHasher  *partitionHasher

	reactiveQueue []event.Mutation

	customHooks map[int][]customHook

	lastApply graph.ApplyResult

	fixedpointZero fixedpoint.Fixed64
}

type customHook struct {
	predicate func(graph.NodeID) bool
	callback  func(*Orchestrator, graph.NodeID)
}

// New constructs an Orchestrator over reg and an empty graph, with
// arenas pre-sized to the given capacity hints.
func New(cfg Config, reg *registry.Registry, nodeCapacity, edgeCapacity int) *Orchestrator {
	return &Orchestrator{
		cfg:         cfg,
		log:         log.NewNoOp(),
		reg:         reg,
		g:           graph.New(nodeCapacity, edgeCapacity),
		modAlloc:    modifier.NewAllocator(64),
		bus:         event.NewBus(cfg.EventBufferCapacities, cfg.SuppressedEventKinds),
		dirt:        dirty.New(),
		nodes:       ordered.NewHashmap[graph.NodeID, *NodeRecord](),
		edges:       ordered.NewHashmap[graph.EdgeID, *EdgeRecord](),
		rng:            newRNG(cfg.InitialRNGSeed),
		customHooks:    make(map[int][]customHook),
		procHasher:     newPartitionHasher(),
		invHasher:      newPartitionHasher(),
		transHasher:    newPartitionHasher(),
		junctionHasher: newPartitionHasher(),
	}
}

// Graph returns the underlying production graph for direct topology
// queries (query package use).
func (o *Orchestrator) Graph() *graph.Graph { return o.g }

// Registry returns the immutable registry this orchestrator was built
// against.
func (o *Orchestrator) Registry() *registry.Registry { return o.reg }

// Bus returns the event bus, for subscription and poll.
func (o *Orchestrator) Bus() *event.Bus { return o.bus }

// SetLogger replaces the orchestrator's logger. Defaults to a no-op
// logger at construction, matching the teacher's components that
// accept a log.Logger but never require one to function.
func (o *Orchestrator) SetLogger(l log.Logger) { o.log = l }

// Dirty returns the partition dirty tracker, for serialize_incremental
// to inspect and clear per-partition flags.
func (o *Orchestrator) Dirty() *dirty.Tracker { return o.dirt }

// ModifierAllocator returns the modifier definition arena, for
// registering new modifier kinds before attaching instances to nodes.
func (o *Orchestrator) ModifierAllocator() *modifier.Allocator { return o.modAlloc }

// Tick returns the current tick count.
func (o *Orchestrator) Tick() int64 { return o.tickCount }

// StrategyKind returns the configured cadence strategy.
func (o *Orchestrator) StrategyKind() Strategy { return o.cfg.Strategy }

// RestoreTick force-sets the tick counter, for use only by the
// serialize package when reconstructing an Orchestrator from a
// snapshot; callers outside a deserialize path should never need it.
func (o *Orchestrator) RestoreTick(t int64) { o.tickCount = t }

// Paused reports the pause flag.
func (o *Orchestrator) Paused() bool { return o.paused }

// SetPaused sets the pause flag. When paused, step/advance return
// immediately with no side effects (spec.md §4.9).
func (o *Orchestrator) SetPaused(p bool) { o.paused = p }

// Poisoned reports whether an internal invariant violation has set
// the poisoned flag (spec.md §7).
func (o *Orchestrator) Poisoned() bool { return o.poisoned }

// ResetPoisoned explicitly clears the poisoned flag.
func (o *Orchestrator) ResetPoisoned() { o.poisoned = false }

// Node returns the orchestrator's record for id, if present.
func (o *Orchestrator) Node(id graph.NodeID) (*NodeRecord, bool) {
	return o.nodes.Get(id)
}

// Edge returns the orchestrator's record for id, if present.
func (o *Orchestrator) Edge(id graph.EdgeID) (*EdgeRecord, bool) {
	return o.edges.Get(id)
}

// LastApply returns the graph.ApplyResult from the most recent pass's
// phase 1, so callers can resolve the PendingNodeID/PendingEdgeID
// returned by QueueAddNode/QueueConnect into real identifiers.
func (o *Orchestrator) LastApply() graph.ApplyResult {
	return o.lastApply
}

// JunctionSnapshot is node's junction configuration and running state,
// exported for the serialize package's Junctions partition (NodeRecord
// itself keeps this unexported since phase 4 dispatch has no need to
// name the variant outside this package).
type JunctionSnapshot struct {
	Kind           nodeJunctionKind
	SplitterCfg    *junction.SplitterConfig
	SplitterState  *junction.SplitterState
	InserterCfg    *junction.InserterConfig
	InserterState  *junction.InserterState
	InserterDst    graph.NodeID
	HasInserterDst bool
}

// JunctionOf returns node's junction snapshot, or false if it does
// not exist. Kind is noJunction when the node runs no junction
// behavior; callers should check that rather than any pointer field.
func (o *Orchestrator) JunctionOf(node graph.NodeID) (JunctionSnapshot, bool) {
	rec, ok := o.nodes.Get(node)
	if !ok {
		return JunctionSnapshot{}, false
	}
	return JunctionSnapshot{
		Kind:           rec.junctionKind,
		SplitterCfg:    rec.splitterCfg,
		SplitterState:  rec.splitterSt,
		InserterCfg:    rec.inserterCfg,
		InserterState:  rec.inserterSt,
		InserterDst:    rec.inserterDst,
		HasInserterDst: rec.hasInserterDst,
	}, true
}

// NoJunction, SplitterJunction, and InserterJunction are the exported
// names for nodeJunctionKind's values, for callers outside this
// package that need to branch on JunctionSnapshot.Kind.
const (
	NoJunction       = noJunction
	SplitterJunction = splitterJunction
	InserterJunction = inserterJunction
)
