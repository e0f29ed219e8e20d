// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package item

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/registry"
)

var ironOre = registry.ItemTypeID{Index: 1, Gen: 1}
var ironPlate = registry.ItemTypeID{Index: 2, Gen: 1}

func TestSlotAddRespectsCapacity(t *testing.T) {
	require := require.New(t)
	s := NewSlot(10)

	overflow := s.Add(ironOre, 7, handle.Nil)
	require.Equal(int64(0), overflow)
	require.Equal(int64(7), s.Total())

	overflow = s.Add(ironOre, 5, handle.Nil)
	require.Equal(int64(2), overflow)
	require.Equal(int64(10), s.Total())
}

func TestSlotAddMergesFungibleStacks(t *testing.T) {
	require := require.New(t)
	s := NewSlot(100)

	s.Add(ironOre, 3, handle.Nil)
	s.Add(ironOre, 4, handle.Nil)
	require.Equal(int64(7), s.Quantity(ironOre))
}

func TestSlotRemoveDrainsInOrder(t *testing.T) {
	require := require.New(t)
	s := NewSlot(100)
	s.Add(ironOre, 5, handle.Nil)

	removed, drained := s.Remove(ironOre, 3)
	require.Equal(int64(3), removed)
	require.Empty(drained)
	require.Equal(int64(2), s.Quantity(ironOre))
}

func TestSlotRemoveCapsAtAvailable(t *testing.T) {
	require := require.New(t)
	s := NewSlot(100)
	s.Add(ironOre, 2, handle.Nil)

	removed, _ := s.Remove(ironOre, 10)
	require.Equal(int64(2), removed)
	require.Equal(int64(0), s.Quantity(ironOre))
}

func TestSlotZeroCapacityBlocksAllInserts(t *testing.T) {
	require := require.New(t)
	s := NewSlot(0)

	overflow := s.Add(ironOre, 5, handle.Nil)
	require.Equal(int64(5), overflow)
	require.Equal(int64(0), s.Total())
}

func TestSlotStatefulStacksDoNotMergeByDefault(t *testing.T) {
	require := require.New(t)
	s := NewSlot(100)

	h1 := handle.Handle{Index: 1, Gen: 1}
	h2 := handle.Handle{Index: 2, Gen: 1}
	s.Add(ironPlate, 1, h1)
	s.Add(ironPlate, 1, h2)

	require.Equal(int64(2), s.Quantity(ironPlate))

	removed, drained := s.Remove(ironPlate, 1)
	require.Equal(int64(1), removed)
	require.Equal([]handle.Handle{h1}, drained)
}

func TestHalfAddDistributesAcrossSlots(t *testing.T) {
	require := require.New(t)
	h := NewHalf([]int64{5, 5})

	overflow := h.Add(ironOre, 8, handle.Nil)
	require.Equal(int64(0), overflow)
	require.Equal(int64(5), h.Slots[0].Total())
	require.Equal(int64(3), h.Slots[1].Total())
	require.Equal(int64(8), h.Quantity(ironOre))
}

func TestHalfRemoveDrainsAcrossSlots(t *testing.T) {
	require := require.New(t)
	h := NewHalf([]int64{5, 5})
	h.Add(ironOre, 8, handle.Nil)

	removed, _ := h.Remove(ironOre, 6)
	require.Equal(int64(6), removed)
	require.Equal(int64(2), h.Quantity(ironOre))
}

func TestInventoryHalvesAreIndependent(t *testing.T) {
	require := require.New(t)
	inv := NewInventory([]int64{100}, []int64{100})

	inv.Input.Add(ironOre, 10, handle.Nil)
	require.Equal(int64(10), inv.Input.Quantity(ironOre))
	require.Equal(int64(0), inv.Output.Quantity(ironOre))
}
