// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package junction

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zakkeown/factorial/graph"
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/item"
	"github.com/zakkeown/factorial/registry"
)

func edgeID(i int) graph.EdgeID {
	return graph.EdgeID(handle.Handle{Index: uint32(i), Gen: 0})
}

func TestRoundRobinSplitAdvancesIndex(t *testing.T) {
	require := require.New(t)
	_, state := NewSplitter(SplitterConfig{Policy: RoundRobin})
	edges := []graph.EdgeID{edgeID(0), edgeID(1), edgeID(2)}
	caps := []int64{100, 100, 100}

	budgets := ComputeBudgets(state, 10, edges, caps)
	require.Equal(int64(4), budgets[0].Quantity) // 10/3=3 + remainder 1 at index 0
	require.Equal(int64(3), budgets[1].Quantity)
	require.Equal(int64(3), budgets[2].Quantity)

	budgets = ComputeBudgets(state, 10, edges, caps)
	require.Equal(int64(3), budgets[0].Quantity)
	require.Equal(int64(4), budgets[1].Quantity) // remainder now at index 1
	require.Equal(int64(3), budgets[2].Quantity)
}

func TestPrioritySplitOverflowsToNextEdge(t *testing.T) {
	require := require.New(t)
	_, state := NewSplitter(SplitterConfig{Policy: Priority})
	edges := []graph.EdgeID{edgeID(0), edgeID(1), edgeID(2)}
	caps := []int64{5, 5, 100}

	budgets := ComputeBudgets(state, 12, edges, caps)
	require.Equal(int64(5), budgets[0].Quantity)
	require.Equal(int64(5), budgets[1].Quantity)
	require.Equal(int64(2), budgets[2].Quantity)
}

func TestEvenSplitRemainderToSmallestEdge(t *testing.T) {
	require := require.New(t)
	_, state := NewSplitter(SplitterConfig{Policy: EvenSplit})
	edges := []graph.EdgeID{edgeID(0), edgeID(1), edgeID(2)}
	caps := []int64{100, 100, 100}

	budgets := ComputeBudgets(state, 10, edges, caps)
	require.Equal(int64(4), budgets[0].Quantity)
	require.Equal(int64(3), budgets[1].Quantity)
	require.Equal(int64(3), budgets[2].Quantity)
}

func TestProcessInserterFiresOnCycle(t *testing.T) {
	require := require.New(t)
	b := registry.NewBuilder()
	require.NoError(b.RegisterItem("bolt", nil))
	reg, err := b.Build()
	require.NoError(err)
	bolt, _ := reg.ItemByName("bolt")

	src := item.NewInventory(nil, []int64{100})
	dst := item.NewInventory([]int64{100}, nil)
	src.Output.Add(bolt.ID, 10, handle.Nil)

	cfg, state := NewInserter(InserterConfig{CycleTime: 2, StackSize: 3, Filter: bolt.ID, Has: true})

	result := ProcessInserter(cfg, state, src, dst)
	require.Empty(result.Delivered)

	result = ProcessInserter(cfg, state, src, dst)
	require.Len(result.Delivered, 1)
	require.Equal(int64(3), result.Delivered[0].Quantity)
	require.Equal(int64(0), state.Counter)
}
