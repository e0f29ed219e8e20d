// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package processor implements the five processor variants of
// spec.md §4.7 (Source, Fixed, Property, Demand, Passthrough) as a
// tagged union dispatched by Kind, matching the teacher's explicit
// "tagged variants, not dynamic polymorphism" design note (spec.md
// §9, DESIGN NOTES).
package processor

import (
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/item"
	"github.com/zakkeown/factorial/registry"
)

// Kind discriminates the five processor variants.
type Kind uint8

const (
	Source Kind = iota
	Fixed
	Property
	Demand
	Passthrough
)

// DepletionKind discriminates a Source processor's output-exhaustion
// policy.
type DepletionKind uint8

const (
	Infinite DepletionKind = iota
	Finite
	Decaying
)

// Depletion configures how a Source processor's output tapers off.
type Depletion struct {
	Kind      DepletionKind
	Remaining int64 // Finite: whole items left to produce
	HalfLife  int64 // Decaying: ticks for output to halve
}

// SourceConfig is a Source processor's configuration and running
// accumulator state.
type SourceConfig struct {
	OutputType         registry.ItemTypeID
	BaseRate           fixedpoint.Fixed64
	Depletion          Depletion
	Accumulator        fixedpoint.Fixed64
	InitialProperties  item.PropertyRecord
	StampInitialProps  bool
}

// NewSource returns a Source processor configuration.
func NewSource(outputType registry.ItemTypeID, baseRate fixedpoint.Fixed64, depletion Depletion) *SourceConfig {
	return &SourceConfig{OutputType: outputType, BaseRate: baseRate, Depletion: depletion}
}

// FixedConfig is a Fixed-recipe processor's configuration: a
// reference to a registered recipe. Inputs, outputs, and duration are
// looked up from the registry rather than duplicated here, so the
// registry remains the single source of truth for recipe data.
type FixedConfig struct {
	Recipe         registry.RecipeID
	Accumulator    fixedpoint.Fixed64 // fractional tick progress carried between steps
	Progress       int64              // whole ticks completed into the current cycle
	Started        bool               // inputs already consumed for the current cycle
	PendingOutputs []ProducedEntry    // outputs still owed after a stalled flush attempt
}

// NewFixed returns a Fixed-recipe processor configuration.
func NewFixed(recipe registry.RecipeID) *FixedConfig {
	return &FixedConfig{Recipe: recipe}
}

// TransformKind discriminates a Property processor's transform.
type TransformKind uint8

const (
	Set TransformKind = iota
	Add
	Multiply
)

// Transform mutates one property slot (by position in the item
// type's property declaration list) of the item passing through a
// Property processor.
type Transform struct {
	PropertyIndex int
	Kind          TransformKind
	UseFixed64    bool
	OperandFixed32 fixedpoint.Fixed32
	OperandFixed64 fixedpoint.Fixed64
}

// PropertyConfig is a Property processor's configuration.
type PropertyConfig struct {
	InputType  registry.ItemTypeID
	OutputType registry.ItemTypeID
	Transform  Transform
}

// NewProperty returns a Property processor configuration.
func NewProperty(inputType, outputType registry.ItemTypeID, transform Transform) *PropertyConfig {
	return &PropertyConfig{InputType: inputType, OutputType: outputType, Transform: transform}
}

// DemandConfig is a Demand processor's configuration and running
// accumulator/counter state.
type DemandConfig struct {
	PrimaryInput     registry.ItemTypeID
	BaseRate         fixedpoint.Fixed64
	Accumulator      fixedpoint.Fixed64
	LifetimeConsumed int64
	AcceptedTypes    []registry.ItemTypeID
}

// NewDemand returns a Demand processor configuration.
func NewDemand(primaryInput registry.ItemTypeID, baseRate fixedpoint.Fixed64) *DemandConfig {
	return &DemandConfig{PrimaryInput: primaryInput, BaseRate: baseRate}
}

// PassthroughConfig is a Passthrough processor's configuration; it
// has no parameters.
type PassthroughConfig struct{}

// Processor is the tagged union of the five variants. Exactly one of
// the variant fields is meaningful, selected by Kind.
type Processor struct {
	Kind        Kind
	Source      *SourceConfig
	Fixed       *FixedConfig
	Property    *PropertyConfig
	Demand      *DemandConfig
	Passthrough *PassthroughConfig
}

// ConsumedEntry records one item type and quantity a processor step
// removed from its input inventory.
type ConsumedEntry struct {
	Item     registry.ItemTypeID
	Quantity int64
}

// ProducedEntry records one item type and quantity a processor step
// added to its output inventory.
type ProducedEntry struct {
	Item     registry.ItemTypeID
	Quantity int64
}

// Result is returned by every variant's dispatch routine for the
// orchestrator's event emission and state-hash contribution (spec.md
// §4.7: "ProcessorResult{consumed, produced, state_changed,
// progress_delta}").
type Result struct {
	Consumed      []ConsumedEntry
	Produced      []ProducedEntry
	StateChanged  bool
	ProgressDelta int64
	Saturated     bool
}
