// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factorial

import (
	"github.com/zakkeown/factorial/event"
	"github.com/zakkeown/factorial/graph"
	"github.com/zakkeown/factorial/serialize"
	"github.com/zakkeown/factorial/tick"
)

// Module is an external component embedded alongside the core engine
// (spec.md §6: "a module is a tuple (name, on_tick, on_event,
// serialize, deserialize, state_hash)"). OnTick runs during phase 4
// for nodes its Predicate matches, in place of the orchestrator's
// default per-node dispatch; OnEvent runs during phase 5 for every
// kind in Kinds; the serialization fields round-trip the module's own
// state alongside the engine's five partitions.
type Module struct {
	Name      string
	Predicate func(NodeID) bool
	OnTick    func(*Engine, NodeID)
	Kinds     []EventKind
	OnEvent   func(*Engine, event.Event)

	Version     uint32
	Serialize   func() ([]byte, error)
	Deserialize func([]byte) error
	StateHash   func() uint64
}

// RegisterModule wires m's on_tick hook into phase 4 (via
// RegisterCustomHook), subscribes OnEvent to every kind in m.Kinds,
// and registers m's serialize/deserialize/state_hash contract with
// the engine's module registry so Serialize/Deserialize round-trip
// its state with the rest of the snapshot.
//
// Per spec.md §4.14, a module's on_tick runs instead of the
// orchestrator's default dispatch for any node it claims; a module
// may request further mutations through the same queued/immediate
// mutation API exposed on Engine, exactly as game code would.
func (e *Engine) RegisterModule(m Module) {
	if m.OnTick != nil && m.Predicate != nil {
		e.o.RegisterCustomHook(4, m.Predicate, func(_ *tick.Orchestrator, id graph.NodeID) {
			m.OnTick(e, id)
		})
	}
	if m.OnEvent != nil {
		for _, k := range m.Kinds {
			kind := k
			e.o.Bus().Subscribe(func(ev event.Event) {
				if ev.Kind == kind {
					m.OnEvent(e, ev)
				}
			})
		}
	}
	if m.Serialize != nil && m.Deserialize != nil {
		e.modules.Register(serialize.ModuleHook{
			Name:        m.Name,
			Version:     m.Version,
			Serialize:   m.Serialize,
			Deserialize: m.Deserialize,
			StateHash:   m.StateHash,
		})
	}
}
