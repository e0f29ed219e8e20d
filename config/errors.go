// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrInvalidFixedTimestep = errors.New("config: fixed timestep must be >= 1")
	ErrInvalidReactiveQueue = errors.New("config: reactive queue capacity must be >= 0")
	ErrInvalidRingCapacity  = errors.New("config: snapshot ring capacity must be >= 0")
	ErrInvalidStrategy      = errors.New("config: unrecognized tick strategy")
	ErrNegativeBufferCap    = errors.New("config: event buffer capacity must be >= 0")
)
