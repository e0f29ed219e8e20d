// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factorial

import "errors"

// Poisoned is returned by the Engine's setters and by Step, Advance
// and AdvanceTo once the orchestrator's internal invariant-violation
// flag is set (spec.md §7 "Internal invariant violation"); it is
// cleared by an explicit call to ResetPoisoned. The flag is not part
// of the serialized state, so a deserialized engine starts unpoisoned.
var Poisoned = errors.New("factorial: engine is poisoned")

// Sentinel errors for the remaining taxonomy of spec.md §7, declared
// per-package the way the teacher declares them in config/errors.go.
var (
	// ErrNodeNotFound names the lookup failure for a stale or
	// never-issued node identifier. The Engine's setters and queries
	// report that case with a false return, not with this error.
	ErrNodeNotFound = errors.New("factorial: node not found")
	// ErrEdgeNotFound names the lookup failure for a stale or
	// never-issued edge identifier. The Engine's setters and queries
	// report that case with a false return, not with this error.
	ErrEdgeNotFound = errors.New("factorial: edge not found")
)
