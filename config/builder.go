// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config builds the construction-time options of spec.md §6
// (tick strategy, per-kind event buffer capacities, suppressed event
// kinds, reactive mutation queue capacity, RNG seed, snapshot ring
// buffer capacity) behind a fluent Builder, the way the teacher's
// config.Builder accumulates a validation error across calls instead
// of returning one from each setter.
package config

import (
	"fmt"

	"github.com/zakkeown/factorial/event"
	"github.com/zakkeown/factorial/tick"
)

// Options holds every recognized construction-time option.
type Options struct {
	Strategy              tick.Strategy
	FixedTimestep         int64
	EventBufferCapacities event.Capacities
	SuppressedEventKinds  []event.Kind
	ReactiveQueueCapacity int
	InitialRNGSeed        uint64
	SnapshotRingCapacity  int
}

// ToConfig converts Options into the tick.Config the orchestrator
// constructor expects.
func (o Options) ToConfig() tick.Config {
	return tick.Config{
		Strategy:              o.Strategy,
		FixedTimestep:         o.FixedTimestep,
		EventBufferCapacities: o.EventBufferCapacities,
		SuppressedEventKinds:  o.SuppressedEventKinds,
		ReactiveQueueCapacity: o.ReactiveQueueCapacity,
		InitialRNGSeed:        o.InitialRNGSeed,
		SnapshotRingCapacity:  o.SnapshotRingCapacity,
	}
}

// Builder provides a fluent interface for constructing Options,
// accumulating the first validation failure instead of returning an
// error from every call (grounded on config.Builder in the teacher's
// config/builder.go).
type Builder struct {
	opts Options
	err  error
}

// NewBuilder starts from spec.md §6's documented defaults.
func NewBuilder() *Builder {
	def := tick.DefaultConfig()
	return &Builder{
		opts: Options{
			Strategy:              def.Strategy,
			FixedTimestep:         def.FixedTimestep,
			ReactiveQueueCapacity: def.ReactiveQueueCapacity,
			SnapshotRingCapacity:  def.SnapshotRingCapacity,
		},
	}
}

// FromPreset loads a named preset as the Builder's starting point.
func (b *Builder) FromPreset(preset Options) *Builder {
	if b.err != nil {
		return b
	}
	b.opts = preset
	return b
}

// WithStrategy selects the tick-advancement strategy.
func (b *Builder) WithStrategy(s tick.Strategy) *Builder {
	if b.err != nil {
		return b
	}
	if s != tick.TickStrategy && s != tick.DeltaStrategy && s != tick.EventStrategy {
		b.err = fmt.Errorf("%w: %d", ErrInvalidStrategy, s)
		return b
	}
	b.opts.Strategy = s
	return b
}

// WithFixedTimestep sets how many ticks a single Advance pass covers.
func (b *Builder) WithFixedTimestep(n int64) *Builder {
	if b.err != nil {
		return b
	}
	if n < 1 {
		b.err = fmt.Errorf("%w: got %d", ErrInvalidFixedTimestep, n)
		return b
	}
	b.opts.FixedTimestep = n
	return b
}

// WithEventBufferCapacity sets kind's ring buffer capacity.
func (b *Builder) WithEventBufferCapacity(kind event.Kind, capacity int) *Builder {
	if b.err != nil {
		return b
	}
	if capacity < 0 {
		b.err = fmt.Errorf("%w: got %d for kind %d", ErrNegativeBufferCap, capacity, kind)
		return b
	}
	if b.opts.EventBufferCapacities == nil {
		b.opts.EventBufferCapacities = make(event.Capacities)
	}
	b.opts.EventBufferCapacities[kind] = capacity
	return b
}

// WithSuppressedKinds replaces the set of event kinds that are never
// recorded or delivered.
func (b *Builder) WithSuppressedKinds(kinds ...event.Kind) *Builder {
	if b.err != nil {
		return b
	}
	b.opts.SuppressedEventKinds = append([]event.Kind(nil), kinds...)
	return b
}

// WithReactiveQueueCapacity sets the reactive-strategy mutation queue
// depth.
func (b *Builder) WithReactiveQueueCapacity(capacity int) *Builder {
	if b.err != nil {
		return b
	}
	if capacity < 0 {
		b.err = fmt.Errorf("%w: got %d", ErrInvalidReactiveQueue, capacity)
		return b
	}
	b.opts.ReactiveQueueCapacity = capacity
	return b
}

// WithRNGSeed sets the deterministic RNG seed used for every draw the
// engine makes (splitter round-robin ties, etc).
func (b *Builder) WithRNGSeed(seed uint64) *Builder {
	if b.err != nil {
		return b
	}
	b.opts.InitialRNGSeed = seed
	return b
}

// WithSnapshotRingCapacity sets how many snapshots the undo/replay
// ring retains; 0 disables it.
func (b *Builder) WithSnapshotRingCapacity(capacity int) *Builder {
	if b.err != nil {
		return b
	}
	if capacity < 0 {
		b.err = fmt.Errorf("%w: got %d", ErrInvalidRingCapacity, capacity)
		return b
	}
	b.opts.SnapshotRingCapacity = capacity
	return b
}

// Build returns the final Options, or the first validation error
// encountered while building it.
func (b *Builder) Build() (Options, error) {
	if b.err != nil {
		return Options{}, b.err
	}
	return b.opts, nil
}
