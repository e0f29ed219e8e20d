// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package event implements the fixed-memory event system of spec.md
// §4.10: one pre-allocated bounded ring buffer per event kind, passive
// and reactive subscribers, kind suppression, and bulk pull. The ring
// buffer's pre-allocated-slot, head/tail arithmetic shape is grounded
// on the pack's lock-free ring buffer example (gsingh-ds-go-lock-free-
// ring-buffer, node_based.go), simplified from its CAS-based
// multi-producer/multi-consumer form to plain index arithmetic since
// the engine's determinism contract (spec.md §5) forbids concurrent
// access in the first place.
package event

import (
	"github.com/zakkeown/factorial/graph"
	"github.com/zakkeown/factorial/procstate"
	"github.com/zakkeown/factorial/registry"
)

// Kind discriminates the seventeen event kinds: the thirteen core
// kinds ItemProduced through EdgeRemoved, the EventsDropped overflow
// notice, and the MutationRejected, ArithmeticSaturated and
// CapacityExceeded engine signals.
type Kind uint8

const (
	ItemProduced Kind = iota
	ItemConsumed
	RecipeStarted
	RecipeCompleted
	BuildingStalled
	BuildingResumed
	ItemDelivered
	TransportFull
	InventoryFull
	NodeAdded
	NodeRemoved
	EdgeAdded
	EdgeRemoved
	EventsDropped
	MutationRejected
	ArithmeticSaturated
	CapacityExceeded

	numKinds
)

// NumKinds is the number of distinct event kinds, exported so callers
// can size their own per-kind tables (e.g. a poll buffer).
const NumKinds = int(numKinds)

func (k Kind) String() string {
	switch k {
	case ItemProduced:
		return "ItemProduced"
	case ItemConsumed:
		return "ItemConsumed"
	case RecipeStarted:
		return "RecipeStarted"
	case RecipeCompleted:
		return "RecipeCompleted"
	case BuildingStalled:
		return "BuildingStalled"
	case BuildingResumed:
		return "BuildingResumed"
	case ItemDelivered:
		return "ItemDelivered"
	case TransportFull:
		return "TransportFull"
	case InventoryFull:
		return "InventoryFull"
	case NodeAdded:
		return "NodeAdded"
	case NodeRemoved:
		return "NodeRemoved"
	case EdgeAdded:
		return "EdgeAdded"
	case EdgeRemoved:
		return "EdgeRemoved"
	case EventsDropped:
		return "EventsDropped"
	case MutationRejected:
		return "MutationRejected"
	case ArithmeticSaturated:
		return "ArithmeticSaturated"
	case CapacityExceeded:
		return "CapacityExceeded"
	default:
		return "Invalid"
	}
}

// Event is the single record type shared by every kind. Only the
// fields relevant to Kind are meaningful; the rest are zero.
type Event struct {
	Kind Kind
	Tick int64

	Node graph.NodeID
	Edge graph.EdgeID
	Item registry.ItemTypeID

	Quantity int64
	Reason   procstate.StallReason

	DroppedKind  Kind
	DroppedCount int
}

// Mutation is an opaque, engine-queued side effect returned by a
// reactive subscriber. The event package does not know the shape of
// graph or inventory mutations; it only carries the closure for the
// orchestrator to invoke during the next pass's pre-tick phase (spec.md
// §4.10).
type Mutation func()

// PassiveHandler observes an event read-only. Passive handlers run in
// phase 5, in subscription order, and must not mutate engine state.
type PassiveHandler func(Event)

// ReactiveHandler observes an event and may return a Mutation to be
// enqueued for the next pass's phase 1. The returned bool reports
// whether a mutation was produced.
type ReactiveHandler func(Event) (Mutation, bool)
