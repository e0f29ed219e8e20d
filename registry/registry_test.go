// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func smeltingBuilder(t *testing.T) *Builder {
	t.Helper()
	b := NewBuilder()
	require.NoError(t, b.RegisterItem("iron_ore", nil))
	require.NoError(t, b.RegisterItem("iron_plate", nil))
	require.NoError(t, b.RegisterRecipe("smelt",
		[]RecipeInput{{ItemName: "iron_ore", Quantity: 1}},
		[]RecipeInput{{ItemName: "iron_plate", Quantity: 1}},
		60))
	require.NoError(t, b.RegisterBuilding("miner", BuildingTemplate{}))
	require.NoError(t, b.RegisterBuilding("smelter", BuildingTemplate{RecipeName: "smelt"}))
	return b
}

func TestBuilderRegisterDuplicateName(t *testing.T) {
	require := require.New(t)
	b := smeltingBuilder(t)

	err := b.RegisterItem("iron_ore", nil)
	require.Error(err)
	var regErr *Error
	require.ErrorAs(err, &regErr)
	require.Equal(DuplicateName, regErr.Kind)
	require.Equal(CategoryItem, regErr.Category)
}

func TestBuilderMutateNotFound(t *testing.T) {
	require := require.New(t)
	b := smeltingBuilder(t)

	err := b.MutateItem("copper_ore", nil)
	require.Error(err)
	var regErr *Error
	require.ErrorAs(err, &regErr)
	require.Equal(NotFound, regErr.Kind)
}

func TestBuildResolvesCrossReferences(t *testing.T) {
	require := require.New(t)
	b := smeltingBuilder(t)

	reg, err := b.Build()
	require.NoError(err)

	ore, ok := reg.ItemByName("iron_ore")
	require.True(ok)
	require.False(ore.Stateful())

	smelt, ok := reg.RecipeByName("smelt")
	require.True(ok)
	require.Len(smelt.Inputs, 1)
	require.Equal(ore.ID, smelt.Inputs[0].Item)

	smelter, ok := reg.BuildingByName("smelter")
	require.True(ok)
	require.True(smelter.HasRecipe)
	require.Equal(smelt.ID, smelter.Recipe)

	miner, ok := reg.BuildingByName("miner")
	require.True(ok)
	require.False(miner.HasRecipe)
}

func TestBuildFailsOnUnresolvedReference(t *testing.T) {
	require := require.New(t)
	b := NewBuilder()
	require.NoError(b.RegisterRecipe("smelt",
		[]RecipeInput{{ItemName: "iron_ore", Quantity: 1}},
		nil, 60))

	_, err := b.Build()
	require.Error(err)
	var regErr *Error
	require.ErrorAs(err, &regErr)
	require.Equal(UnresolvedReference, regErr.Kind)
	require.Equal("iron_ore", regErr.Reference)
}

func TestBuildFailsOnUnresolvedBuildingRecipe(t *testing.T) {
	require := require.New(t)
	b := NewBuilder()
	require.NoError(b.RegisterBuilding("smelter", BuildingTemplate{RecipeName: "smelt"}))

	_, err := b.Build()
	require.Error(err)
	var regErr *Error
	require.ErrorAs(err, &regErr)
	require.Equal(UnresolvedReference, regErr.Kind)
}

func TestStatefulItemType(t *testing.T) {
	require := require.New(t)
	b := NewBuilder()
	require.NoError(b.RegisterItem("robot", []PropertyDecl{
		{Name: "durability", Kind: PropertyInt64},
	}))

	reg, err := b.Build()
	require.NoError(err)

	robot, ok := reg.ItemByName("robot")
	require.True(ok)
	require.True(robot.Stateful())
}

func TestRegistrationOrderPreserved(t *testing.T) {
	require := require.New(t)
	b := smeltingBuilder(t)
	require.Equal([]string{"iron_ore", "iron_plate"}, func() []string {
		var names []string
		// NewHashmap preserves insertion order; Builder does not expose
		// drafts directly, so this is verified indirectly via Build().
		reg, err := b.Build()
		require.NoError(err)
		names = reg.ItemNames()
		return names
	}())
}
