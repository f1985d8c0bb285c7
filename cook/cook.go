// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cook

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/cpmech/hinacloth/vec3"
)

// Cook validates and compiles a BuildDesc into an immutable Model,
// consulting the content-addressed cache first (spec.md 4.5). desc must
// already satisfy Validate(desc) == nil; Cook does not re-validate.
func Cook(desc BuildDesc) (*Model, error) {
	if m, hit := cacheGet(desc); hit {
		return m.clone(), nil
	}

	m, err := cookFresh(desc)
	if err != nil {
		return nil, err
	}
	cachePut(desc, m)
	return m.clone(), nil
}

func cookFresh(desc BuildDesc) (*Model, error) {
	nodeCount := int(desc.Topology.NodeCount)

	pos, _ := desc.Field("position", "pos", "positions")
	px, py, pz := splitTriples(pos.Data)

	edges := []int32{}
	if rel, ok := desc.Relation("edges"); ok {
		edges = append(edges, rel.Indices...)
	}
	numEdges := len(edges) / 2
	restLen := make([]float64, numEdges)
	for e := 0; e < numEdges; e++ {
		a, b := edges[2*e], edges[2*e+1]
		pa := vec3.New(px[a], py[a], pz[a])
		pb := vec3.New(px[b], py[b], pz[b])
		restLen[e] = vec3.Len(vec3.Sub(pb, pa))
	}

	var bendQuads []int32
	var bendRestAngle []float64
	if rel, ok := desc.Relation("bend_pairs"); ok {
		bendQuads = append(bendQuads, rel.Indices...)
		numQuads := len(bendQuads) / 4
		bendRestAngle = make([]float64, numQuads)
		for q := 0; q < numQuads; q++ {
			i0, i1, i2, i3 := bendQuads[4*q], bendQuads[4*q+1], bendQuads[4*q+2], bendQuads[4*q+3]
			bendRestAngle[q] = dihedralAngle(
				vec3.New(px[i0], py[i0], pz[i0]),
				vec3.New(px[i1], py[i1], pz[i1]),
				vec3.New(px[i2], py[i2], pz[i2]),
				vec3.New(px[i3], py[i3], pz[i3]),
			)
		}
	}

	edgeIsland, numIslands := labelIslands(nodeCount, edges)
	orderedEdges, orderedRestLen, islands := reorderByIsland(edges, restLen, edgeIsland, numIslands)

	blockSize := desc.Pack.BlockSize
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}

	remap := make([]int32, nodeCount)
	for i := range remap {
		remap[i] = int32(i)
	}

	return &Model{
		NodeCount:     nodeCount,
		Edges:         orderedEdges,
		RestLen:       orderedRestLen,
		Islands:       islands,
		NodeRemap:     remap,
		BendQuads:     bendQuads,
		BendRestAngle: bendRestAngle,
		BlockSize:     blockSize,
	}, nil
}

// splitTriples unpacks an interleaved xyz array into three dense scratch
// rows, preallocated with gosl's la.MatAlloc the same way shp/algos.go
// preallocates its per-node coordinate matrices before filling them in a
// loop, rather than growing a slice with append.
func splitTriples(flat []float64) (x, y, z []float64) {
	n := len(flat) / 3
	coords := la.MatAlloc(3, n)
	x, y, z = coords[0], coords[1], coords[2]
	for i := 0; i < n; i++ {
		x[i] = flat[3*i]
		y[i] = flat[3*i+1]
		z[i] = flat[3*i+2]
	}
	return
}

// dihedralAngle computes the rest dihedral angle between the two triangles
// (i0,i1,i2) and (i0,i1,i3) sharing edge (i0,i1), following the same
// cross-product construction as the runtime bending kernel (spec.md
// 4.2.2 steps 1-4), so the cooked angle is the kernel's zero-error state.
// On a flat mesh this is 0 when i2 and i3 lie on the same side of the
// shared edge and pi when they lie on opposite sides (as in BuildGrid).
func dihedralAngle(p0, p1, p2, p3 vec3.Vec3) float64 {
	e0 := vec3.Sub(p1, p0)
	e1 := vec3.Sub(p2, p0)
	e2 := vec3.Sub(p3, p0)
	n1 := vec3.Cross(e0, e1)
	n2 := vec3.Cross(e0, e2)
	n1Len := vec3.Len(n1)
	n2Len := vec3.Len(n2)
	if n1Len < 1e-12 || n2Len < 1e-12 {
		return 0
	}
	cosTheta := vec3.Dot(n1, n2) / (n1Len * n2Len)
	if cosTheta > 1 {
		cosTheta = 1
	} else if cosTheta < -1 {
		cosTheta = -1
	}
	return math.Acos(cosTheta)
}
