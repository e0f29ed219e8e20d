// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package procstate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateConstructors(t *testing.T) {
	require := require.New(t)

	idle := NewIdle()
	require.True(idle.IsIdle())

	working := NewWorking(5)
	require.True(working.IsWorking())
	require.Equal(int64(5), working.Progress)

	stalled := NewStalled(OutputFull)
	reason, ok := stalled.IsStalled()
	require.True(ok)
	require.Equal(OutputFull, reason)
}

func TestStateStringers(t *testing.T) {
	require := require.New(t)
	require.Equal("Idle", NewIdle().String())
	require.Equal("Working{progress=3}", NewWorking(3).String())
	require.Equal("Stalled{MissingInputs}", NewStalled(MissingInputs).String())
}
