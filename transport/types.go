// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package transport implements the four edge-transport strategies of
// spec.md §4.6 (Flow, Item-belt, Batch, Vehicle) plus a Custom escape
// hatch, as one tagged union dispatched by Kind — matching the
// "tagged variants, not dynamic polymorphism" design note used
// throughout this engine (processor, procstate).
package transport

import (
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/registry"
)

// Kind discriminates the five transport strategies.
type Kind uint8

const (
	Flow Kind = iota
	Belt
	Batch
	Vehicle
	Custom
)

// Filter restricts a strategy to moving only one item type. The zero
// value has Has == false, meaning unfiltered.
type Filter struct {
	Item registry.ItemTypeID
	Has  bool
}

// MovedEntry records one item type and quantity a transport step
// delivered to its destination inventory. Handle is set only for a
// stateful occurrence fully captured by the move (e.g. vehicle cargo
// awaiting unload); fungible entries leave it Nil.
type MovedEntry struct {
	Item     registry.ItemTypeID
	Quantity int64
	Handle   handle.Handle
}

// Result is returned by every variant's per-tick step. Deliveries are
// reported distinctly from processor.Result's Produced/Consumed:
// transport moves existing items rather than producing new ones, so
// the orchestrator emits ItemDelivered rather than ItemProduced for
// entries here (spec.md §4.10).
type Result struct {
	Delivered    []MovedEntry
	StateChanged bool
	Saturated    bool
}

// queuedTransfer is one in-flight Flow delivery waiting out its
// latency before it can be offered to the destination.
type queuedTransfer struct {
	Item     registry.ItemTypeID
	Quantity int64
	Handle   handle.Handle
	Ready    int64 // tick at which this transfer may be delivered
}

// FlowConfig is a Flow edge's static configuration.
type FlowConfig struct {
	Rate     fixedpoint.Fixed64
	Capacity int64 // advisory; actual capacity enforcement is the destination inventory's
	Latency  int64 // ticks a moved item spends in flight before delivery; 0 = immediate
}

// FlowState is a Flow edge's running state.
type FlowState struct {
	Accumulator fixedpoint.Fixed64
	Queue       []queuedTransfer
}

// NewFlow returns a zeroed Flow strategy.
func NewFlow(cfg FlowConfig) *Strategy {
	return &Strategy{Kind: Flow, FlowConfig: &cfg, FlowState: &FlowState{}}
}

// BeltSlot is one occupied or empty position on an Item-belt lane.
type BeltSlot struct {
	Occupied bool
	Item     registry.ItemTypeID
	Handle   handle.Handle
}

// BeltConfig is an Item-belt edge's static configuration.
type BeltConfig struct {
	SlotCount int
	LaneCount int
	Speed     fixedpoint.Fixed64 // slots/tick; values > 1 advance multiple slots per tick via accumulation
}

// BeltState is an Item-belt edge's running state: one slot array per
// lane, pre-allocated at edge creation and never reallocated during
// the tick pipeline (spec.md §4.6).
type BeltState struct {
	Lanes       [][]BeltSlot
	Accumulator fixedpoint.Fixed64
}

// NewBelt returns a Belt strategy with its lane/slot arrays
// pre-allocated to cfg.LaneCount x cfg.SlotCount.
func NewBelt(cfg BeltConfig) *Strategy {
	lanes := make([][]BeltSlot, cfg.LaneCount)
	for i := range lanes {
		lanes[i] = make([]BeltSlot, cfg.SlotCount)
	}
	return &Strategy{Kind: Belt, BeltConfig: &cfg, BeltState: &BeltState{Lanes: lanes}}
}

// BatchConfig is a Batch edge's static configuration.
type BatchConfig struct {
	BatchSize int64
	CycleTime int64
}

// BatchState is a Batch edge's running state.
type BatchState struct {
	Counter int64
}

// NewBatch returns a zeroed Batch strategy.
func NewBatch(cfg BatchConfig) *Strategy {
	return &Strategy{Kind: Batch, BatchConfig: &cfg, BatchState: &BatchState{}}
}

// VehicleRecord is one vehicle's position and cargo on a Vehicle
// edge's schedule.
type VehicleRecord struct {
	Position int64 // 0..TravelTime*2; TravelTime reached = delivering, 2*TravelTime reached = loading
	Cargo    []MovedEntry
}

// VehicleConfig is a Vehicle edge's static configuration.
type VehicleConfig struct {
	Capacity   int64
	TravelTime int64
	Schedule   string
}

// VehicleState is a Vehicle edge's running state: the fleet of
// vehicles cycling between source and destination.
type VehicleState struct {
	Vehicles []VehicleRecord
}

// NewVehicle returns a Vehicle strategy with n vehicles starting at
// position 0 (at the source, ready to load).
func NewVehicle(cfg VehicleConfig, n int) *Strategy {
	vehicles := make([]VehicleRecord, n)
	return &Strategy{Kind: Vehicle, VehicleConfig: &cfg, VehicleState: &VehicleState{Vehicles: vehicles}}
}

// CustomConfig names an externally registered transport behavior; the
// engine itself does not interpret Name, leaving custom strategies to
// the embedding game's own module hook (spec.md §4.14).
type CustomConfig struct {
	Name string
}

// CustomState is opaque payload a custom strategy's external handler
// manages; the engine only stores and serializes it.
type CustomState struct {
	Payload []byte
}

// NewCustom returns a Custom strategy naming an externally registered
// behavior.
func NewCustom(name string) *Strategy {
	return &Strategy{Kind: Custom, CustomConfig: &CustomConfig{Name: name}, CustomState: &CustomState{}}
}

// Strategy is the tagged union of the five transport variants.
// Exactly one Config/State pair is meaningful, selected by Kind.
type Strategy struct {
	Kind Kind

	FlowConfig *FlowConfig
	FlowState  *FlowState

	BeltConfig *BeltConfig
	BeltState  *BeltState

	BatchConfig *BatchConfig
	BatchState  *BatchState

	VehicleConfig *VehicleConfig
	VehicleState  *VehicleState

	CustomConfig *CustomConfig
	CustomState  *CustomState
}
