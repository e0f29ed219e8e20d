// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "github.com/zakkeown/factorial/tick"

// Named presets, grounded on the teacher's config/presets.go
// MainnetConfig/TestnetConfig/LocalConfig pattern: Default mirrors
// spec.md §6's documented defaults, HighThroughput favors
// DeltaStrategy batching and a deep reactive queue for the spec's
// 5,000-entity budget (event buffers stay at the default size), and
// Deterministic pins everything needed for bit-identical
// replay across runs (fixed RNG seed, TickStrategy, no snapshot ring).

// Default returns spec.md §6's documented defaults.
func Default() Options {
	def := tick.DefaultConfig()
	return Options{
		Strategy:              def.Strategy,
		FixedTimestep:         def.FixedTimestep,
		ReactiveQueueCapacity: def.ReactiveQueueCapacity,
		SnapshotRingCapacity:  def.SnapshotRingCapacity,
	}
}

// HighThroughput favors large factories: DeltaStrategy batches
// several ticks per Advance call and the reactive queue is sized for
// heavy mutation bursts.
func HighThroughput() Options {
	return Options{
		Strategy:              tick.DeltaStrategy,
		FixedTimestep:         4,
		ReactiveQueueCapacity: 8192,
		SnapshotRingCapacity:  0,
	}
}

// Deterministic pins a fixed RNG seed, the per-tick TickStrategy, and
// disables the snapshot ring, for lockstep replay and golden-trace
// tests where every draw and event ordering must reproduce exactly.
func Deterministic(seed uint64) Options {
	return Options{
		Strategy:              tick.TickStrategy,
		FixedTimestep:         1,
		ReactiveQueueCapacity: 1024,
		InitialRNGSeed:        seed,
		SnapshotRingCapacity:  0,
	}
}
