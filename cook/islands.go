// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cook

import "github.com/cpmech/hinacloth/sched"

// adjacency is a per-node list of (neighbor node, edge index) pairs, built
// once from the edges array. This is the "adjacency list plus a
// visited-marker array" representation named in spec.md 9's Design Notes,
// in place of a pointer graph.
type adjacency struct {
	neighborNode []int32
	neighborEdge []int32
	start        []int32 // CSR-style offsets into neighborNode/neighborEdge, length nodeCount+1
}

func buildAdjacency(nodeCount int, edges []int32) adjacency {
	numEdges := len(edges) / 2
	degree := make([]int32, nodeCount)
	for e := 0; e < numEdges; e++ {
		degree[edges[2*e]]++
		degree[edges[2*e+1]]++
	}

	start := make([]int32, nodeCount+1)
	for i := 0; i < nodeCount; i++ {
		start[i+1] = start[i] + degree[i]
	}

	cursor := append([]int32(nil), start...)
	neighborNode := make([]int32, 2*numEdges)
	neighborEdge := make([]int32, 2*numEdges)
	for e := 0; e < numEdges; e++ {
		a, b := edges[2*e], edges[2*e+1]

		neighborNode[cursor[a]] = b
		neighborEdge[cursor[a]] = int32(e)
		cursor[a]++

		neighborNode[cursor[b]] = a
		neighborEdge[cursor[b]] = int32(e)
		cursor[b]++
	}

	return adjacency{neighborNode: neighborNode, neighborEdge: neighborEdge, start: start}
}

// labelIslands flood-fills the edge graph via an explicit FIFO queue (no
// recursion, no pointer graph) and returns, per edge, the island id it
// belongs to, along with the number of islands found.
func labelIslands(nodeCount int, edges []int32) (edgeIsland []int32, numIslands int) {
	numEdges := len(edges) / 2
	edgeIsland = make([]int32, numEdges)
	for i := range edgeIsland {
		edgeIsland[i] = -1
	}
	if numEdges == 0 {
		return edgeIsland, 0
	}

	adj := buildAdjacency(nodeCount, edges)
	visited := make([]bool, nodeCount)
	queue := make([]int32, 0, nodeCount)

	for start := 0; start < nodeCount; start++ {
		if visited[start] {
			continue
		}
		// skip isolated nodes that touch no edge; they do not create an
		// island (islands are defined over the edge graph).
		if adj.start[start] == adj.start[start+1] {
			visited[start] = true
			continue
		}

		island := int32(numIslands)
		queue = queue[:0]
		queue = append(queue, int32(start))
		visited[start] = true

		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]

			for k := adj.start[node]; k < adj.start[node+1]; k++ {
				e := adj.neighborEdge[k]
				if edgeIsland[e] == -1 {
					edgeIsland[e] = island
				}
				neighbor := adj.neighborNode[k]
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
		numIslands++
	}
	return edgeIsland, numIslands
}

// reorderByIsland permutes edges (and their parallel rest-length array) so
// that each island occupies a contiguous range, and emits the island
// offset array (spec.md 4.5 step 4, 3's island invariant).
func reorderByIsland(edges []int32, restLen []float64, edgeIsland []int32, numIslands int) ([]int32, []float64, []sched.IslandRange) {
	numEdges := len(restLen)

	counts := make([]int, numIslands)
	for _, isl := range edgeIsland {
		counts[isl]++
	}
	offsets := make([]int, numIslands+1)
	for i := 0; i < numIslands; i++ {
		offsets[i+1] = offsets[i] + counts[i]
	}

	cursor := append([]int(nil), offsets...)
	newEdges := make([]int32, len(edges))
	newRestLen := make([]float64, numEdges)
	for e := 0; e < numEdges; e++ {
		isl := edgeIsland[e]
		dst := cursor[isl]
		cursor[isl]++
		newEdges[2*dst] = edges[2*e]
		newEdges[2*dst+1] = edges[2*e+1]
		newRestLen[dst] = restLen[e]
	}

	islands := make([]sched.IslandRange, numIslands)
	for i := 0; i < numIslands; i++ {
		islands[i] = sched.IslandRange{Lo: offsets[i], Hi: offsets[i+1]}
	}

	return newEdges, newRestLen, islands
}
