// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cook

import "github.com/cpmech/hinacloth/sched"

// defaultBlockSize is used when PackOptions.BlockSize is unset (spec.md 4.5
// step 5).
const defaultBlockSize = 8

// Model is the immutable topology compiled from a BuildDesc: node count,
// edges, rest lengths, island offsets, a node remap, bend quads and their
// rest angles, and the chosen block size (spec.md 3).
type Model struct {
	NodeCount int

	Edges   []int32   // flat a0,b0,a1,b1,...
	RestLen []float64 // len == len(Edges)/2

	Islands []sched.IslandRange // non-decreasing, partitioning Edges

	NodeRemap []int32 // old id -> new id, identity until a structural rebuild

	BendQuads     []int32   // flat i0,i1,i2,i3,...
	BendRestAngle []float64 // len == len(BendQuads)/4

	BlockSize int
}

// EdgeCount returns len(RestLen).
func (m *Model) EdgeCount() int { return len(m.RestLen) }

// QuadCount returns len(BendRestAngle).
func (m *Model) QuadCount() int { return len(m.BendRestAngle) }

// clone returns a deep copy of m, used both by the cooking cache (so a
// cache hit never hands out aliased slices a caller could mutate) and by
// Rebuild (which starts from a copy of the current Model).
func (m *Model) clone() *Model {
	c := &Model{
		NodeCount: m.NodeCount,
		BlockSize: m.BlockSize,
	}
	c.Edges = append([]int32(nil), m.Edges...)
	c.RestLen = append([]float64(nil), m.RestLen...)
	c.Islands = append([]sched.IslandRange(nil), m.Islands...)
	c.NodeRemap = append([]int32(nil), m.NodeRemap...)
	c.BendQuads = append([]int32(nil), m.BendQuads...)
	c.BendRestAngle = append([]float64(nil), m.BendRestAngle...)
	return c
}
