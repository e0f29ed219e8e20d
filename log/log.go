// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package log wires factorial's structured logging onto
// github.com/luxfi/log, the teacher's logging dependency.
package log

import (
	luxlog "github.com/luxfi/log"
)

// Logger is re-exported so callers outside this module never need to
// import github.com/luxfi/log directly.
type Logger = luxlog.Logger

// NewNoOp returns a Logger that discards everything, used as the
// default when a caller constructs factorial.Engine without supplying
// one (grounded on the teacher's log.NewNoOpLogger wrapper).
func NewNoOp() Logger {
	return luxlog.NewNoOpLogger()
}
