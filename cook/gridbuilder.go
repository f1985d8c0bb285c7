// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cook

import "github.com/cpmech/hinacloth/backend"

// BuildGrid synthesizes a BuildDesc for a regular nx*nz cloth grid in the
// XZ plane (Y=0) with spacing between adjacent nodes. Each grid cell is
// split into two triangles sharing a diagonal edge, giving a structural
// distance-edge mesh plus a bend quad across every interior diagonal. The
// returned desc carries a StateInit "inv_mass" field that is 1 for every
// node except those for which pin (if non-nil) returns true, which are 0.
// simdata.New does not read that field: a Solver created from the desc
// starts with inverse mass 1 on every node.
//
// This mirrors the original C++ core's cloth_grid_utils.h mesh-generation
// helper (see SPEC_FULL.md 4.6): it exists so tests and examples have a
// realistic, parameterized input builder instead of hand-writing topology
// arrays for every grid size.
func BuildGrid(nx, nz int, spacing float64, pin func(ix, iz int) bool) BuildDesc {
	idx := func(ix, iz int) int32 { return int32(iz*nx + ix) }
	n := nx * nz

	pos := make([]float64, 3*n)
	invMass := make([]float64, n)
	for iz := 0; iz < nz; iz++ {
		for ix := 0; ix < nx; ix++ {
			i := idx(ix, iz)
			pos[3*i] = float64(ix) * spacing
			pos[3*i+1] = 0
			pos[3*i+2] = float64(iz) * spacing
			invMass[i] = 1
			if pin != nil && pin(ix, iz) {
				invMass[i] = 0
			}
		}
	}

	var edges []int32
	addEdge := func(a, b int32) { edges = append(edges, a, b) }
	for iz := 0; iz < nz; iz++ {
		for ix := 0; ix < nx; ix++ {
			if ix+1 < nx {
				addEdge(idx(ix, iz), idx(ix+1, iz))
			}
			if iz+1 < nz {
				addEdge(idx(ix, iz), idx(ix, iz+1))
			}
			if ix+1 < nx && iz+1 < nz {
				addEdge(idx(ix, iz), idx(ix+1, iz+1)) // diagonal
			}
		}
	}

	var bendQuads []int32
	for iz := 0; iz < nz-1; iz++ {
		for ix := 0; ix < nx-1; ix++ {
			i0 := idx(ix, iz)     // shared edge endpoint
			i1 := idx(ix+1, iz+1) // shared edge endpoint (the diagonal)
			i2 := idx(ix+1, iz)   // opposing vertex, triangle (i0,i2,i1)
			i3 := idx(ix, iz+1)   // opposing vertex, triangle (i0,i1,i3)
			bendQuads = append(bendQuads, i0, i1, i2, i3)
		}
	}

	desc := BuildDesc{
		State: []FieldView{
			{Name: "position", Type: F32, Components: 3, Data: pos, Count: n},
			{Name: "inv_mass", Type: F32, Components: 1, Data: invMass, Count: n},
		},
		Topology: TopologyIn{
			NodeCount: uint32(n),
			Relations: []RelationView{
				{Tag: "edges", Arity: 2, Indices: edges, Count: len(edges) / 2},
				{Tag: "bend_pairs", Arity: 4, Indices: bendQuads, Count: len(bendQuads) / 4},
			},
		},
		Policy: Policy{
			Exec: ExecPolicy{Layout: backend.LayoutAuto, Backend: backend.ReqAuto},
			Solve: SolvePolicy{Substeps: 1, Iterations: 8, Damping: 0},
		},
		Validate: Strict,
	}
	return desc
}
