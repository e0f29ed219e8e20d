// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factorial

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zakkeown/factorial/config"
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
		[]registry.RecipeInput{{ItemName: "iron_plate", Quantity: 1}}, 60))
	require.NoError(t, b.RegisterBuilding("miner", registry.BuildingTemplate{}))
	require.NoError(t, b.RegisterBuilding("smelter", registry.BuildingTemplate{RecipeName: "smelt"}))
	reg, err := b.Build()
	require.NoError(t, err)
	return reg
}

// buildSmeltingChain wires up scenario A (spec.md §8): a Source miner
// feeding a Fixed-recipe smelter over a rate-10 Flow edge.
func buildSmeltingChain(t *testing.T, e *Engine, reg *registry.Registry) (miner, smelter NodeID) {
	t.Helper()
	ore, ok := reg.ItemByName("iron_ore")
	require.True(t, ok)
	recipe, ok := reg.RecipeByName("smelt")
	require.True(t, ok)
	minerBuilding, ok := reg.BuildingByName("miner")
	require.True(t, ok)
	smelterBuilding, ok := reg.BuildingByName("smelter")
	require.True(t, ok)

	pendingM := e.QueueAddNode(minerBuilding.ID)
	pendingS := e.QueueAddNode(smelterBuilding.ID)
	_, err := e.Step()
	require.NoError(t, err)
	apply := e.LastApply()
	m, ok := apply.Nodes[pendingM]
	require.True(t, ok)
	s, ok := apply.Nodes[pendingS]
	require.True(t, ok)

	applied, err := e.SetInventoryCapacity(m, nil, []int64{100})
	require.NoError(t, err)
	require.True(t, applied)
	applied, err = e.SetInventoryCapacity(s, []int64{100}, []int64{100})
	require.NoError(t, err)
	require.True(t, applied)
	applied, err = e.SetProcessor(m, &processor.Processor{
		Kind:   processor.Source,
		Source: processor.NewSource(ore.ID, fixedpoint.Fixed64FromInt(1), processor.Depletion{Kind: processor.Infinite}),
	})
	require.NoError(t, err)
	require.True(t, applied)
	applied, err = e.SetProcessor(s, &processor.Processor{
		Kind:  processor.Fixed,
		Fixed: processor.NewFixed(recipe.ID),
	})
	require.NoError(t, err)
	require.True(t, applied)

	pendingEdge := e.QueueConnect(m, s)
	_, err = e.Step()
	require.NoError(t, err)
	apply = e.LastApply()
	edge, ok := apply.Edges[pendingEdge]
	require.True(t, ok)
	strat := transport.NewFlow(transport.FlowConfig{Rate: fixedpoint.Fixed64FromInt(10)})
	applied, err = e.SetTransport(edge, strat, transport.Filter{Item: ore.ID, Has: true})
	require.NoError(t, err)
	require.True(t, applied)

	return m, s
}

// TestScenarioASmeltingChainProducesPlate reproduces scenario A
// (spec.md §8), adjusted for the two setup passes buildSmeltingChain
// spends materializing the queued node/edge additions before the
// Flow transport can be armed (edge identifiers only exist once
// QueueConnect's pending identifier has been resolved by a pass's
// phase 1, so the earliest a transfer can reach S's input is the
// pass after that one). Counting from those two setup passes: ore
// first reaches S's input and is consumed on pass 3, and
// ProcessFixed's own one-call consumption plus Duration=60 further
// calls to accumulate progress means the recipe output is produced on
// the call where Progress reaches 60 for the first time, i.e. pass
// 63 overall.
func TestScenarioASmeltingChainProducesPlate(t *testing.T) {
	reg := smeltingRegistry(t)
	opts, err := config.NewBuilder().Build()
	require.NoError(t, err)
	e := New(reg, opts)

	_, smelter := buildSmeltingChain(t, e, reg)
	plate, ok := reg.ItemByName("iron_plate")
	require.True(t, ok)

	for i := int64(0); i < 60; i++ {
		_, err := e.Step()
		require.NoError(t, err)
	}
	snap, ok := e.SnapshotNode(smelter)
	require.True(t, ok)
	require.Equal(t, int64(0), snap.Outputs.Quantities[plate.ID])

	_, err = e.Step()
	require.NoError(t, err)
	snap, ok = e.SnapshotNode(smelter)
	require.True(t, ok)
	require.Equal(t, int64(1), snap.Outputs.Quantities[plate.ID])
}

func TestScenarioDSnapshotRoundTripMatchesStateHash(t *testing.T) {
	reg := smeltingRegistry(t)
	opts, err := config.NewBuilder().Build()
	require.NoError(t, err)
	e1 := New(reg, opts)
	buildSmeltingChain(t, e1, reg)

	// buildSmeltingChain already ran two passes; 498 more reach tick 500.
	for i := 0; i < 498; i++ {
		_, err := e1.Step()
		require.NoError(t, err)
	}

	snap, err := e1.SerializePartitioned()
	require.NoError(t, err)

	e2 := New(reg, opts)
	require.NoError(t, e2.DeserializePartitioned(snap, reg))

	_, err = e1.Step()
	require.NoError(t, err)
	_, err = e2.Step()
	require.NoError(t, err)

	require.Equal(t, int64(501), e1.Tick())
	require.Equal(t, int64(501), e2.Tick())
	require.Equal(t, e1.StateHash(), e2.StateHash())
}

func TestPausedEngineMakesNoMutations(t *testing.T) {
	reg := smeltingRegistry(t)
	opts, err := config.NewBuilder().Build()
	require.NoError(t, err)
	e := New(reg, opts)
	buildSmeltingChain(t, e, reg)

	e.SetPaused(true)
	before := e.StateHash()
	ran, err := e.Step()
	require.NoError(t, err)
	require.False(t, ran)
	require.Equal(t, before, e.StateHash())
}

func TestPollEventsSuppressionYieldsNoEvents(t *testing.T) {
	reg := smeltingRegistry(t)
	opts, err := config.NewBuilder().Build()
	require.NoError(t, err)
	e := New(reg, opts)
	e.SuppressEvent(EventKind(0))
	buildSmeltingChain(t, e, reg)

	for i := 0; i < 100; i++ {
		_, err := e.Step()
		require.NoError(t, err)
	}

	require.Empty(t, e.PollEvents(EventKind(0)))
}
