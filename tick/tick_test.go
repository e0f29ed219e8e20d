// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tick

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zakkeown/factorial/fixedpoint"
	"github.com/zakkeown/factorial/processor"
	"github.com/zakkeown/factorial/registry"
	"github.com/zakkeown/factorial/transport"
)

func smeltingRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	b := registry.NewBuilder()
	require.NoError(t, b.RegisterItem("iron_ore", nil))
	require.NoError(t, b.RegisterItem("iron_plate", nil))
	require.NoError(t, b.RegisterRecipe("smelt",
		[]registry.RecipeInput{{ItemName: "iron_ore", Quantity: 1}},
		[]registry.RecipeInput{{ItemName: "iron_plate", Quantity: 1}}, 2))
	require.NoError(t, b.RegisterBuilding("miner", registry.BuildingTemplate{}))
	require.NoError(t, b.RegisterBuilding("furnace", registry.BuildingTemplate{RecipeName: "smelt"}))
	reg, err := b.Build()
	require.NoError(t, err)
	return reg
}

func TestSmeltingChainProducesPlates(t *testing.T) {
	require := require.New(t)
	reg := smeltingRegistry(t)
	ore, _ := reg.ItemByName("iron_ore")
	plate, _ := reg.ItemByName("iron_plate")
	recipe, _ := reg.RecipeByName("smelt")
	miner, _ := reg.BuildingByName("miner")
	furnace, _ := reg.BuildingByName("furnace")

	o := New(DefaultConfig(), reg, 8, 8)

	pendingSrc := o.QueueAddNode(miner.ID)
	pendingDst := o.QueueAddNode(furnace.ID)

	o.Step()
	apply := o.LastApply()
	srcID, ok := apply.Nodes[pendingSrc]
	require.True(ok)
	dstID, ok := apply.Nodes[pendingDst]
	require.True(ok)

	require.True(o.SetInventoryCapacity(srcID, nil, []int64{100}))
	require.True(o.SetInventoryCapacity(dstID, []int64{100}, []int64{100}))

	require.True(o.SetProcessor(srcID, &processor.Processor{
		Kind:   processor.Source,
		Source: processor.NewSource(ore.ID, fixedpoint.Fixed64FromInt(1), processor.Depletion{Kind: processor.Infinite}),
	}))
	require.True(o.SetProcessor(dstID, &processor.Processor{
		Kind:  processor.Fixed,
		Fixed: processor.NewFixed(recipe.ID),
	}))

	pendingEdge := o.QueueConnect(srcID, dstID)
	o.Step()
	apply = o.LastApply()
	edgeID, ok := apply.Edges[pendingEdge]
	require.True(ok)

	strat := transport.NewFlow(transport.FlowConfig{Rate: fixedpoint.Fixed64FromInt(1)})
	require.True(o.SetTransport(edgeID, strat, transport.Filter{Item: ore.ID, Has: true}))

	for i := 0; i < 10; i++ {
		o.Step()
	}

	dstRec, ok := o.Node(dstID)
	require.True(ok)
	require.Greater(dstRec.Inventory.Output.Quantity(plate.ID), int64(0))
	require.Equal(int64(12), o.Tick())
}

func TestPauseFlagSkipsStep(t *testing.T) {
	require := require.New(t)
	reg := smeltingRegistry(t)
	o := New(DefaultConfig(), reg, 4, 4)
	o.SetPaused(true)

	ran := o.Step()
	require.False(ran)
	require.Equal(int64(0), o.Tick())
}

func TestAdvanceRunsWholeFixedTimestepsOnly(t *testing.T) {
	require := require.New(t)
	reg := smeltingRegistry(t)
	cfg := DefaultConfig()
	cfg.FixedTimestep = 3
	o := New(cfg, reg, 4, 4)

	passes := o.Advance(7)
	require.Equal(2, passes)
	require.Equal(int64(2), o.Tick())
}

func TestStateHashChangesWhenInventoryMutates(t *testing.T) {
	require := require.New(t)
	reg := smeltingRegistry(t)
	miner, _ := reg.BuildingByName("miner")
	ore, _ := reg.ItemByName("iron_ore")

	o := New(DefaultConfig(), reg, 4, 4)
	pending := o.QueueAddNode(miner.ID)
	o.Step()
	nodeID := o.LastApply().Nodes[pending]

	o.SetInventoryCapacity(nodeID, nil, []int64{100})
	o.SetProcessor(nodeID, &processor.Processor{
		Kind:   processor.Source,
		Source: processor.NewSource(ore.ID, fixedpoint.Fixed64FromInt(1), processor.Depletion{Kind: processor.Infinite}),
	})

	before := o.StateHash()
	o.Step()
	after := o.StateHash()
	require.NotEqual(before, after)
}
