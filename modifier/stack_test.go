// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package modifier

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zakkeown/factorial/fixedpoint"
)

func TestFoldEmptyIsIdentity(t *testing.T) {
	require := require.New(t)
	defs := NewAllocator(4)
	require.Equal(identity, Fold(nil, Speed, defs))
}

func TestFoldMultiplicative(t *testing.T) {
	require := require.New(t)
	defs := NewAllocator(4)
	id1 := defs.Define(Speed, Multiplicative, 0)
	id2 := defs.Define(Speed, Multiplicative, 0)

	instances := []Instance{
		{ID: id1, Magnitude: fixedpoint.Fixed64FromFloat64(1.5)},
		{ID: id2, Magnitude: fixedpoint.Fixed64FromFloat64(2.0)},
	}
	SortInstances(instances)

	result := Fold(instances, Speed, defs)
	require.InDelta(3.0, result.Float64(), 1e-6)
}

func TestFoldAdditive(t *testing.T) {
	require := require.New(t)
	defs := NewAllocator(4)
	id1 := defs.Define(Productivity, Additive, 0)
	id2 := defs.Define(Productivity, Additive, 0)

	instances := []Instance{
		{ID: id1, Magnitude: fixedpoint.Fixed64FromFloat64(1.1)},
		{ID: id2, Magnitude: fixedpoint.Fixed64FromFloat64(1.2)},
	}

	result := Fold(instances, Productivity, defs)
	require.InDelta(1.3, result.Float64(), 1e-6)
}

func TestFoldDiminishingConverges(t *testing.T) {
	require := require.New(t)
	defs := NewAllocator(4)
	id1 := defs.Define(Efficiency, Diminishing, 0)
	id2 := defs.Define(Efficiency, Diminishing, 0)
	id3 := defs.Define(Efficiency, Diminishing, 0)

	instances := []Instance{
		{ID: id1, Magnitude: fixedpoint.Fixed64FromFloat64(2.0)},
		{ID: id2, Magnitude: fixedpoint.Fixed64FromFloat64(2.0)},
		{ID: id3, Magnitude: fixedpoint.Fixed64FromFloat64(2.0)},
	}

	result := Fold(instances, Efficiency, defs)
	// delta 1.0 + 0.5 + 0.25 = 1.75, plus base 1.0 = 2.75
	require.InDelta(2.75, result.Float64(), 1e-6)
}

func TestFoldCappedClamps(t *testing.T) {
	require := require.New(t)
	defs := NewAllocator(4)
	cap := fixedpoint.Fixed64FromFloat64(1.5)
	id1 := defs.Define(Speed, Capped, cap)
	id2 := defs.Define(Speed, Capped, cap)

	instances := []Instance{
		{ID: id1, Magnitude: fixedpoint.Fixed64FromFloat64(1.3)},
		{ID: id2, Magnitude: fixedpoint.Fixed64FromFloat64(1.3)},
	}

	result := Fold(instances, Speed, defs)
	require.Equal(cap, result)
}

func TestFoldIgnoresOtherKinds(t *testing.T) {
	require := require.New(t)
	defs := NewAllocator(4)
	speedID := defs.Define(Speed, Multiplicative, 0)
	prodID := defs.Define(Productivity, Multiplicative, 0)

	instances := []Instance{
		{ID: speedID, Magnitude: fixedpoint.Fixed64FromFloat64(2.0)},
		{ID: prodID, Magnitude: fixedpoint.Fixed64FromFloat64(3.0)},
	}

	result := Fold(instances, Speed, defs)
	require.InDelta(2.0, result.Float64(), 1e-6)
}

func TestSortInstancesOrdersByID(t *testing.T) {
	require := require.New(t)
	defs := NewAllocator(4)
	idA := defs.Define(Speed, Multiplicative, 0)
	idB := defs.Define(Speed, Multiplicative, 0)

	instances := []Instance{{ID: idB}, {ID: idA}}
	SortInstances(instances)
	require.Equal(idA, instances[0].ID)
	require.Equal(idB, instances[1].ID)
}
