// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factorial

import (
	"github.com/zakkeown/factorial/config"
	"github.com/zakkeown/factorial/event"
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/graph"
	flog "github.com/zakkeown/factorial/log"
	"github.com/zakkeown/factorial/metrics"
	"github.com/zakkeown/factorial/modifier"
	"github.com/zakkeown/factorial/processor"
	"github.com/zakkeown/factorial/query"
	"github.com/zakkeown/factorial/registry"
	"github.com/zakkeown/factorial/serialize"
	"github.com/zakkeown/factorial/tick"
	"github.com/zakkeown/factorial/transport"

	"github.com/zakkeown/factorial/junction"
)

// Type aliases for a clean single-import experience, following the
// teacher's top-level consensus.go re-export pattern.
type (
	NodeID    = graph.NodeID
	EdgeID    = graph.EdgeID
	Strategy  = tick.Strategy
	Options   = config.Options
	Snapshot  = serialize.Snapshot
	EventKind = event.Kind
)

// Re-exported strategy constants.
const (
	TickStrategy  = tick.TickStrategy
	DeltaStrategy = tick.DeltaStrategy
	EventStrategy = tick.EventStrategy
)

// Engine is the game-to-core API surface of spec.md §6: a single type
// wrapping *tick.Orchestrator plus the logging, metrics, and module
// registries that ride alongside it.
type Engine struct {
	o       *tick.Orchestrator
	log     flog.Logger
	metrics *metrics.Collectors
	modules *serialize.ModuleRegistry
	ring    *serialize.SnapshotRing
	eventLog [event.NumKinds][]event.Event
}

// New constructs an Engine from the given registry and options
// (spec.md §6 "new(strategy, registry)"/"new_with_registry_and_capacity").
func New(reg *registry.Registry, opts Options) *Engine {
	return NewWithCapacity(reg, opts, 0, 0)
}

// NewWithCapacity is New with pre-sized node/edge arenas.
func NewWithCapacity(reg *registry.Registry, opts Options, nodeCapacity, edgeCapacity int) *Engine {
	e := &Engine{
		log:     flog.NewNoOp(),
		modules: serialize.NewModuleRegistry(),
		ring:    serialize.NewSnapshotRing(opts.SnapshotRingCapacity),
	}
	e.o = tick.New(opts.ToConfig(), reg, nodeCapacity, edgeCapacity)
	e.o.Bus().Subscribe(e.recordEvent)
	return e
}

// WithLogger replaces the engine's logger, returning the Engine for
// chaining (grounded on the teacher's functional-option-free With*
// setter style used throughout poll/poll.go's constructors). The
// orchestrator's own logger is replaced too, so pass-start, poisoning,
// and stall-transition messages logged from tick/phases.go route
// through the same logger as Engine-level messages.
func (e *Engine) WithLogger(l flog.Logger) *Engine {
	e.log = l
	e.o.SetLogger(l)
	return e
}

// WithMetrics attaches a metrics.Collectors set, returning the Engine
// for chaining.
func (e *Engine) WithMetrics(m *metrics.Collectors) *Engine {
	e.metrics = m
	return e
}

func (e *Engine) recordEvent(ev event.Event) {
	e.eventLog[ev.Kind] = append(e.eventLog[ev.Kind], ev)
	switch ev.Kind {
	case event.EventsDropped:
		if e.metrics != nil {
			e.metrics.EventsDropped.Add(float64(ev.DroppedCount))
		}
		e.log.Warn("event ring overflowed, entries dropped", "tick", ev.Tick, "kind", ev.DroppedKind, "count", ev.DroppedCount)
	case event.ArithmeticSaturated:
		if e.metrics != nil {
			e.metrics.Saturations.Inc()
		}
		e.log.Debug("fixed-point operation saturated", "tick", ev.Tick, "node", ev.Node)
	case event.MutationRejected:
		e.log.Debug("queued mutation rejected at apply time", "tick", ev.Tick)
	}
}

// Orchestrator exposes the underlying *tick.Orchestrator for code that
// needs lower-level access than this facade provides (query/serialize
// free functions, custom-system hook registration).
func (e *Engine) Orchestrator() *tick.Orchestrator { return e.o }

// --- Mutation (queued) ---

func (e *Engine) QueueAddNode(buildingType registry.BuildingID) graph.PendingNodeID {
	return e.o.QueueAddNode(buildingType)
}

func (e *Engine) QueueRemoveNode(node NodeID) { e.o.QueueRemoveNode(node) }

func (e *Engine) QueueConnect(from, to NodeID) graph.PendingEdgeID {
	return e.o.QueueConnect(from, to)
}

func (e *Engine) QueueConnectFiltered(from, to NodeID, filter registry.ItemTypeID) graph.PendingEdgeID {
	return e.o.QueueConnectFiltered(from, to, filter)
}

func (e *Engine) QueueDisconnect(edge EdgeID) { e.o.QueueDisconnect(edge) }

// LastApply returns the pending-to-live identifier map from the most
// recent phase 1 (spec.md §4.5 "Mutation").
func (e *Engine) LastApply() graph.ApplyResult { return e.o.LastApply() }

// --- Configuration (immediate) ---
//
// Every setter below checks Poisoned first (spec.md §7: "subsequent
// public operations fail with Poisoned"); a false first return
// otherwise means the identifier named a removed or never-issued
// entity, per the lookup-error branch of the same taxonomy.

func (e *Engine) SetInventoryCapacity(node NodeID, inputCaps, outputCaps []int64) (bool, error) {
	if e.o.Poisoned() {
		return false, Poisoned
	}
	return e.o.SetInventoryCapacity(node, inputCaps, outputCaps), nil
}

func (e *Engine) SetProcessor(node NodeID, proc *processor.Processor) (bool, error) {
	if e.o.Poisoned() {
		return false, Poisoned
	}
	return e.o.SetProcessor(node, proc), nil
}

func (e *Engine) SetModifiers(node NodeID, instances []modifier.Instance) (bool, error) {
	if e.o.Poisoned() {
		return false, Poisoned
	}
	return e.o.SetModifiers(node, instances), nil
}

func (e *Engine) SetJunctionSplitter(node NodeID, cfg junction.SplitterConfig) (bool, error) {
	if e.o.Poisoned() {
		return false, Poisoned
	}
	return e.o.SetJunctionSplitter(node, cfg), nil
}

func (e *Engine) SetJunctionInserter(node, dst NodeID, cfg junction.InserterConfig) (bool, error) {
	if e.o.Poisoned() {
		return false, Poisoned
	}
	return e.o.SetJunctionInserter(node, dst, cfg), nil
}

func (e *Engine) SetTransport(edge EdgeID, strat *transport.Strategy, filter transport.Filter) (bool, error) {
	if e.o.Poisoned() {
		return false, Poisoned
	}
	return e.o.SetTransport(edge, strat, filter), nil
}

func (e *Engine) SetPaused(paused bool) { e.o.SetPaused(paused) }

func (e *Engine) Paused() bool { return e.o.Paused() }

// RegisterCustomHook wires an external high-scale system into phase
// 3 or 4 for matching nodes (spec.md §4.14). Phase 2 is accepted but
// the transport phase never invokes hooks.
func (e *Engine) RegisterCustomHook(phase int, predicate func(NodeID) bool, callback func(*tick.Orchestrator, NodeID)) {
	e.o.RegisterCustomHook(phase, predicate, callback)
}

// --- Stepping ---
//
// A poisoned engine's pass already no-ops inside the orchestrator
// (spec.md §4.9's runPass returns immediately), so these return
// Poisoned alongside the otherwise-unchanged result rather than
// silently reporting success.

func (e *Engine) Step() (bool, error) {
	ran := e.o.Step()
	if e.o.Poisoned() {
		return ran, Poisoned
	}
	return ran, nil
}

func (e *Engine) Advance(dtTicks int64) (int, error) {
	passes := e.o.Advance(dtTicks)
	if e.o.Poisoned() {
		return passes, Poisoned
	}
	return passes, nil
}

func (e *Engine) AdvanceTo(targetTick int64) (int, error) {
	passes := e.o.AdvanceTo(targetTick)
	if e.o.Poisoned() {
		return passes, Poisoned
	}
	return passes, nil
}

func (e *Engine) Tick() int64 { return e.o.Tick() }

// --- Subsystem hashing ---

func (e *Engine) StateHash() uint64 { return e.o.StateHash() }

func (e *Engine) SubsystemHashes() [5]uint64 { return e.o.SubsystemHashes() }

func (e *Engine) MarkClean() { e.o.Dirty().MarkClean() }

// --- Poisoning ---

func (e *Engine) Poisoned() bool { return e.o.Poisoned() }

func (e *Engine) ResetPoisoned() { e.o.ResetPoisoned() }

// --- Queries ---

func (e *Engine) SnapshotNode(node NodeID) (query.NodeSnapshot, bool) {
	return query.SnapshotNode(e.o, node)
}

func (e *Engine) SnapshotAllNodes() []query.NodeSnapshot { return query.SnapshotAllNodes(e.o) }

func (e *Engine) SnapshotTransport(edge EdgeID) (query.TransportSnapshot, bool) {
	return query.SnapshotTransport(e.o, edge)
}

func (e *Engine) GetProcessorProgress(node NodeID) (fixedpoint.Fixed64, bool) {
	return query.GetProcessorProgress(e.o, node)
}

func (e *Engine) GetEdgeUtilization(edge EdgeID) (fixedpoint.Fixed64, bool) {
	return query.GetEdgeUtilization(e.o, edge)
}

func (e *Engine) NodeCount() int { return query.NodeCount(e.o) }

func (e *Engine) EdgeCount() int { return query.EdgeCount(e.o) }

func (e *Engine) GetInputs(node NodeID) []EdgeID { return query.GetInputs(e.o, node) }

func (e *Engine) GetOutputs(node NodeID) []EdgeID { return query.GetOutputs(e.o, node) }

func (e *Engine) DiagnoseNode(node NodeID) (query.DiagnosticInfo, bool) {
	return query.DiagnoseNode(e.o, node)
}
