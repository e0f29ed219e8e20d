// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tick

// rng is the engine-owned deterministic generator of spec.md §4.9:
// seed is part of engine state, and draws are strictly ordered by
// caller. A splitmix64 step, the same construction math/rand/v2 uses
// to seed its own generators, wrapped the way the teacher's
// utils/sampler/source.go wraps rand.Source behind a narrow
// domain-specific interface rather than exposing math/rand directly.
type rng struct {
	state uint64
	draws uint64
}

func newRNG(seed uint64) *rng {
	return &rng{state: seed}
}

// Next returns the next deterministic uint64 and increments the draw
// counter.
func (r *rng) Next() uint64 {
	r.draws++
	r.state += 0x9E3779B97F4A7C15
	z := r.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Seed returns the generator's current internal state, for
// serialization.
func (r *rng) Seed() uint64 { return r.state }

// Draws returns the number of values drawn so far, for the
// determinism-audit log.
func (r *rng) Draws() uint64 { return r.draws }

// RNGSeed returns the orchestrator's RNG's current internal state.
func (o *Orchestrator) RNGSeed() uint64 { return o.rng.Seed() }

// RNGDraws returns how many values the orchestrator's RNG has
// produced so far.
func (o *Orchestrator) RNGDraws() uint64 { return o.rng.Draws() }
