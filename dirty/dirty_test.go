// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dirty

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zakkeown/factorial/graph"
	"github.com/zakkeown/factorial/handle"
)

func nodeID(i int) graph.NodeID { return graph.NodeID(handle.Handle{Index: uint32(i)}) }
func edgeID(i int) graph.EdgeID { return graph.EdgeID(handle.Handle{Index: uint32(i)}) }

func TestMarkNodeDirtiesProcessorsAndInventories(t *testing.T) {
	require := require.New(t)
	tr := New()

	tr.MarkNode(nodeID(1))

	require.True(tr.PartitionDirty(Processors))
	require.True(tr.PartitionDirty(Inventories))
	require.False(tr.PartitionDirty(Transports))
	require.False(tr.PartitionDirty(Graph))
	require.Equal([]graph.NodeID{nodeID(1)}, tr.DirtyNodes())
}

func TestMarkEdgeDirtiesTransports(t *testing.T) {
	require := require.New(t)
	tr := New()

	tr.MarkEdge(edgeID(1))

	require.True(tr.PartitionDirty(Transports))
	require.False(tr.PartitionDirty(Processors))
}

func TestMarkGraphDirtiesGraphPartition(t *testing.T) {
	require := require.New(t)
	tr := New()

	tr.MarkGraph()

	require.True(tr.GraphDirty())
	require.True(tr.PartitionDirty(Graph))
}

func TestMarkCleanResetsEntitiesNotPartitions(t *testing.T) {
	require := require.New(t)
	tr := New()

	tr.MarkNode(nodeID(1))
	tr.MarkClean()

	require.Empty(tr.DirtyNodes())
	require.True(tr.PartitionDirty(Processors))

	tr.ClearAllPartitions()
	require.False(tr.PartitionDirty(Processors))
}

func TestPhaseOwnWriteRules(t *testing.T) {
	require := require.New(t)
	tr := New()

	tr.MarkTransportPhase()
	require.True(tr.PartitionDirty(Transports))
	require.True(tr.PartitionDirty(Inventories))
	tr.ClearAllPartitions()

	tr.MarkProcessPhase()
	require.True(tr.PartitionDirty(Processors))
	require.True(tr.PartitionDirty(Inventories))
	tr.ClearAllPartitions()

	tr.MarkComponentPhase()
	require.True(tr.PartitionDirty(Junctions))
	tr.ClearAllPartitions()

	tr.MarkBookkeeping()
	require.True(tr.PartitionDirty(Graph))
}
