// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package query

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/processor"
	"github.com/zakkeown/factorial/procstate"
	"github.com/zakkeown/factorial/registry"
	"github.com/zakkeown/factorial/tick"
)

func minerRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	b := registry.NewBuilder()
	require.NoError(t, b.RegisterItem("iron_ore", nil))
	require.NoError(t, b.RegisterBuilding("miner", registry.BuildingTemplate{}))
	reg, err := b.Build()
	require.NoError(t, err)
	return reg
}

func TestSnapshotNodeReflectsInventoryAndAdjacency(t *testing.T) {
	require := require.New(t)
	reg := minerRegistry(t)
	ore, _ := reg.ItemByName("iron_ore")
	miner, _ := reg.BuildingByName("miner")

	o := tick.New(tick.DefaultConfig(), reg, 4, 4)
	pending := o.QueueAddNode(miner.ID)
	o.Step()
	nodeID := o.LastApply().Nodes[pending]

	require.True(o.SetInventoryCapacity(nodeID, nil, []int64{10}))
	require.True(o.SetProcessor(nodeID, &processor.Processor{
		Kind:   processor.Source,
		Source: processor.NewSource(ore.ID, fixedpoint.Fixed64FromInt(1), processor.Depletion{Kind: processor.Infinite}),
	}))

	o.Step()

	snap, ok := SnapshotNode(o, nodeID)
	require.True(ok)
	require.Equal(nodeID, snap.Node)
	require.Empty(snap.InboundEdges)
	require.Empty(snap.OutboundEdges)
	require.Greater(snap.Outputs.Quantities[ore.ID], int64(0))
}

func TestNodeCountAndEdgeCountTrackGraph(t *testing.T) {
	require := require.New(t)
	reg := minerRegistry(t)
	miner, _ := reg.BuildingByName("miner")

	o := tick.New(tick.DefaultConfig(), reg, 4, 4)
	require.Equal(0, NodeCount(o))
	o.QueueAddNode(miner.ID)
	o.QueueAddNode(miner.ID)
	o.Step()
	require.Equal(2, NodeCount(o))
	require.Equal(0, EdgeCount(o))
}

func TestDiagnoseNodeReportsStallReason(t *testing.T) {
	require := require.New(t)
	reg := minerRegistry(t)
	ore, _ := reg.ItemByName("iron_ore")
	miner, _ := reg.BuildingByName("miner")

	o := tick.New(tick.DefaultConfig(), reg, 4, 4)
	pending := o.QueueAddNode(miner.ID)
	o.Step()
	nodeID := o.LastApply().Nodes[pending]

	require.True(o.SetInventoryCapacity(nodeID, nil, []int64{1}))
	require.True(o.SetProcessor(nodeID, &processor.Processor{
		Kind:   processor.Source,
		Source: processor.NewSource(ore.ID, fixedpoint.Fixed64FromInt(1), processor.Depletion{Kind: processor.Infinite}),
	}))

	for i := 0; i < 3; i++ {
		o.Step()
	}

	info, ok := DiagnoseNode(o, nodeID)
	require.True(ok)
	require.Equal(nodeID, info.Node)
	require.True(info.Stalled)
	require.Equal(procstate.OutputFull, info.StallReason)
}

func TestSnapshotTransportMissingEdgeReturnsFalse(t *testing.T) {
	require := require.New(t)
	reg := minerRegistry(t)
	o := tick.New(tick.DefaultConfig(), reg, 4, 4)
	_, ok := SnapshotTransport(o, o.LastApply().Edges[0])
	require.False(ok)
}
