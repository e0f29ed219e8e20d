// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewNoOpDoesNotPanic(t *testing.T) {
	require := require.New(t)
	l := NewNoOp()
	require.NotNil(l)
	l.Info("factory started")
	l.Debug("tick advanced", "tick", 1)
}
