// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLabelIslandsIsATruePartition checks island labeling on two disjoint
// triangles plus an isolated node: exactly two islands are found, all edges
// of one triangle share one island id, and the two triangles get different
// ids (spec.md 3's island invariant).
func TestLabelIslandsIsATruePartition(t *testing.T) {
	// Two disjoint triangles: nodes 0,1,2 and nodes 3,4,5, plus one isolated
	// node 6 with no edges at all.
	nodeCount := 7
	edges := []int32{
		0, 1, 1, 2, 2, 0,
		3, 4, 4, 5, 5, 3,
	}

	edgeIsland, numIslands := labelIslands(nodeCount, edges)
	require.Equal(t, 2, numIslands)
	require.Len(t, edgeIsland, 6)

	// every edge in the first triangle shares one island id...
	firstTriangleIsland := edgeIsland[0]
	for e := 0; e < 3; e++ {
		assert.Equal(t, firstTriangleIsland, edgeIsland[e], "edge %d", e)
	}
	// ...and the second triangle shares a different one.
	secondTriangleIsland := edgeIsland[3]
	for e := 3; e < 6; e++ {
		assert.Equal(t, secondTriangleIsland, edgeIsland[e], "edge %d", e)
	}
	assert.NotEqual(t, firstTriangleIsland, secondTriangleIsland)
}

func TestLabelIslandsNoEdges(t *testing.T) {
	edgeIsland, numIslands := labelIslands(5, nil)
	assert.Equal(t, 0, numIslands)
	assert.Empty(t, edgeIsland)
}

func TestReorderByIslandProducesContiguousNonDecreasingRanges(t *testing.T) {
	edges := []int32{0, 1, 1, 2, 3, 4}
	restLen := []float64{1, 1, 1}
	edgeIsland := []int32{0, 0, 1}

	newEdges, newRestLen, islands := reorderByIsland(edges, restLen, edgeIsland, 2)

	require.Len(t, islands, 2)
	assert.Equal(t, 0, islands[0].Lo)
	for i := 1; i < len(islands); i++ {
		assert.GreaterOrEqual(t, islands[i].Lo, islands[i-1].Hi)
	}
	assert.Equal(t, len(newRestLen)*2, len(newEdges))
	assert.Equal(t, len(restLen), len(newRestLen))
}

func TestBuildAdjacencyDegreeMatchesEdgeCount(t *testing.T) {
	edges := []int32{0, 1, 1, 2}
	adj := buildAdjacency(3, edges)
	// node 1 touches both edges, so it has degree 2 in the CSR offsets.
	degree1 := adj.start[2] - adj.start[1]
	assert.Equal(t, int32(2), degree1)
}
