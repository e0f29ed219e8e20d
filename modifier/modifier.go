// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package modifier implements the per-node modifier stack of spec.md
// §4.7: a sorted list of (identifier, kind, stacking rule, magnitude)
// instances folded left-to-right per kind into a single effective
// Fixed64 multiplier. Folding is grounded on the teacher's
// confidence.binaryThreshold.RecordPoll left-to-right accumulation
// loop (confidence/threshold.go), repurposed here from poll-confidence
// accumulation to multiplier folding.
package modifier

import (
	"sort"

	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/handle"
)

// ID identifies a registered modifier definition.
type ID handle.Handle

func (id ID) String() string { return handle.Handle(id).String() }

// Kind is the dimension of a processor's behavior a modifier affects.
type Kind uint8

const (
	Speed Kind = iota
	Productivity
	Efficiency
)

// StackingRule governs how multiple modifiers of the same Kind
// combine into one effective multiplier.
type StackingRule uint8

const (
	Multiplicative StackingRule = iota
	Additive
	Diminishing
	Capped
)

// Definition is the immutable, registered shape of a modifier
// identifier: its kind, its stacking rule, and (for Capped only) the
// ceiling effective multiplier.
type Definition struct {
	ID       ID
	Kind     Kind
	Stacking StackingRule
	Cap      fixedpoint.Fixed64 // only consulted when Stacking == Capped
}

// Allocator owns the arena of registered modifier definitions, the
// identifier on each Definition (and thus the sort key used
// everywhere else) is assigned at Define time.
type Allocator struct {
	arena *handle.Arena[Definition]
}

// NewAllocator returns an empty Allocator pre-sized to capacity.
func NewAllocator(capacity int) *Allocator {
	return &Allocator{arena: handle.NewArena[Definition](capacity)}
}

// Define registers a new modifier definition and returns its ID.
func (a *Allocator) Define(kind Kind, rule StackingRule, capValue fixedpoint.Fixed64) ID {
	h := a.arena.Alloc(Definition{})
	id := ID(h)
	a.arena.Set(h, Definition{ID: id, Kind: kind, Stacking: rule, Cap: capValue})
	return id
}

// Get returns a modifier's definition.
func (a *Allocator) Get(id ID) (Definition, bool) {
	return a.arena.Get(handle.Handle(id))
}

// Instance is one modifier attached to a node: a reference to a
// Definition plus this attachment's magnitude.
type Instance struct {
	ID        ID
	Magnitude fixedpoint.Fixed64
}

// SortInstances sorts a node's modifier list by identifier ascending,
// the canonical order required before folding (spec.md invariant 2).
func SortInstances(instances []Instance) {
	sort.Slice(instances, func(i, j int) bool {
		return handle.Less(handle.Handle(instances[i].ID), handle.Handle(instances[j].ID))
	})
}
