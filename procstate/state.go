// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package procstate implements a node's observable processor state
// (spec.md §4.7: "Idle, Working {progress}, Stalled {reason}").
// Grounded on the teacher's choices.Status enum-with-methods idiom
// (choices/status.go), generalized here from a flat status enum to a
// tagged union: Working and Stalled carry payload data the plain enum
// never needed.
package procstate

import "fmt"

// Kind discriminates the tagged variants of State.
type Kind uint8

const (
	Idle Kind = iota
	Working
	Stalled
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "Idle"
	case Working:
		return "Working"
	case Stalled:
		return "Stalled"
	default:
		return "Invalid"
	}
}

// StallReason enumerates why a processor is Stalled.
type StallReason uint8

const (
	MissingInputs StallReason = iota
	OutputFull
	NoPower
	Depleted
)

func (r StallReason) String() string {
	switch r {
	case MissingInputs:
		return "MissingInputs"
	case OutputFull:
		return "OutputFull"
	case NoPower:
		return "NoPower"
	case Depleted:
		return "Depleted"
	default:
		return "Invalid"
	}
}

// State is a node's processor state for the current tick: exactly one
// of Idle, Working{Progress}, or Stalled{Reason}. Derived freshly
// every tick from inventory contents, processor configuration,
// modifiers, and component-phase inputs (spec.md invariant 3).
type State struct {
	Kind     Kind
	Progress int64 // valid only when Kind == Working
	Reason   StallReason // valid only when Kind == Stalled
}

// NewIdle returns the Idle state.
func NewIdle() State { return State{Kind: Idle} }

// NewWorking returns a Working state with the given progress in
// ticks.
func NewWorking(progress int64) State { return State{Kind: Working, Progress: progress} }

// NewStalled returns a Stalled state with the given reason.
func NewStalled(reason StallReason) State { return State{Kind: Stalled, Reason: reason} }

// IsIdle reports whether the state is Idle.
func (s State) IsIdle() bool { return s.Kind == Idle }

// IsWorking reports whether the state is Working.
func (s State) IsWorking() bool { return s.Kind == Working }

// IsStalled reports whether the state is Stalled, and if so with what
// reason.
func (s State) IsStalled() (StallReason, bool) {
	if s.Kind != Stalled {
		return 0, false
	}
	return s.Reason, true
}

func (s State) String() string {
	switch s.Kind {
	case Working:
		return fmt.Sprintf("Working{progress=%d}", s.Progress)
	case Stalled:
		return fmt.Sprintf("Stalled{%s}", s.Reason)
	default:
		return s.Kind.String()
	}
}
