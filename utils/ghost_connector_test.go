package utils

import (
	"github.com/notargets/FVMetal/partitions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

// barEdges returns the edges of a 1D chain of n nodes
func barEdges(n int) [][2]int {
	edges := make([][2]int, 0, n-1)
	for i := 1; i < n; i++ {
		edges = append(edges, [2]int{i - 1, i})
	}
	return edges
}

func buildBar(t *testing.T, n, parts int, strategy partitions.PartitionStrategy) *GhostConnector {
	pb := &partitions.PartitionBuilder{NumNodes: n, NumPartitions: parts, Strategy: strategy}
	layout, err := pb.BuildPartitions()
	require.NoError(t, err)
	gc, err := NewGhostConnector(layout, barEdges(n))
	require.NoError(t, err)
	return gc
}

func TestGhostConnectorBlockBar(t *testing.T) {
	gc := buildBar(t, 9, 3, partitions.BlockPartition)
	require.NoError(t, gc.Verify())

	assert.Equal(t, []int{0, 1, 2, 3}, gc.LocalToGlobalNode[0])
	assert.Equal(t, []int{3, 4, 5, 2, 6}, gc.LocalToGlobalNode[1])
	assert.Equal(t, []int{6, 7, 8, 5}, gc.LocalToGlobalNode[2])
	assert.Equal(t, []int{3, 3, 3}, gc.OwnedPerPartition)

	// partition 1 sends node 3 to partition 0 and node 5 to partition 2
	assert.Equal(t, []int{0}, gc.GetPickIndices(1, 0))
	assert.Equal(t, []int{3}, gc.GetPlaceIndices(0, 1))
	assert.Equal(t, []int{2}, gc.GetPickIndices(1, 2))
	assert.Equal(t, []int{3}, gc.GetPlaceIndices(2, 1))
	assert.Empty(t, gc.GetPickIndices(0, 2))
	assert.Nil(t, gc.GetPickIndices(0, 5))

	assert.True(t, gc.IsOwned(1, 2))
	assert.False(t, gc.IsOwned(1, 3))
}

func TestGhostConnectorExchange(t *testing.T) {
	for _, strategy := range []partitions.PartitionStrategy{partitions.BlockPartition, partitions.RoundRobin} {
		gc := buildBar(t, 11, 4, strategy)
		require.NoError(t, gc.Verify())

		// owned slots hold the global index, ghosts start stale
		locals := make([][]float64, gc.NumPartitions)
		for p := range locals {
			locals[p] = make([]float64, gc.NodesPerPartition[p])
			for l := range locals[p] {
				locals[p][l] = -1
				if gc.IsOwned(p, l) {
					locals[p][l] = float64(gc.LocalToGlobalNode[p][l])
				}
			}
		}
		require.NoError(t, gc.Exchange(locals))

		for p := range locals {
			for l, v := range locals[p] {
				assert.Equal(t, float64(gc.LocalToGlobalNode[p][l]), v, "%s p=%d l=%d", strategy, p, l)
			}
		}
	}
}

func TestGhostConnectorErrors(t *testing.T) {
	layout, err := partitions.NewPartitionLayout([]int{0, 1})
	require.NoError(t, err)

	_, err = NewGhostConnector(layout, [][2]int{{0, 2}})
	assert.Error(t, err)
	_, err = NewGhostConnector(nil, nil)
	assert.Error(t, err)

	gc, err := NewGhostConnector(layout, [][2]int{{0, 1}})
	require.NoError(t, err)
	assert.Error(t, gc.Exchange([][]float64{{0, 0}}))
	assert.Error(t, gc.Exchange([][]float64{{0}, {0, 0, 0}}))

	// a place index pointing at an owned slot is rejected
	gc.PlaceIndices[0][1].Indices[0] = 0
	assert.Error(t, gc.Verify())
}
