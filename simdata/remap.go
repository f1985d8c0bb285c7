// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simdata

import (
	"github.com/cpmech/hinacloth/cook"
	"github.com/cpmech/hinacloth/store"
)

// ApplyRemap allocates a fresh Data of the same size as d and copies every
// per-node field from old slot i into new slot plan[i] (spec.md 4.6).
// Per-edge lambda is carried over verbatim, since this release's Rebuild
// always preserves edge count (spec.md 9's Open Question).
func (d *Data) ApplyRemap(plan cook.RemapPlan) *Data {
	n := d.NodeCount
	nd := &Data{
		NodeCount:       n,
		Pos:             emptySoA(n),
		Vel:             emptySoA(n),
		Pred:            emptySoA(n),
		InvMass:         make([]float64, n),
		AttachWeight:    make([]float64, n),
		AttachTarget:    make([]float64, 3*n),
		Lambda:          append([]float64(nil), d.Lambda...),
		AlphaTilde:      append([]float64(nil), d.AlphaTilde...),
		Params:          d.Params,
		Operators:       d.Operators,
		UseSIMD:         d.UseSIMD,
		UseTaskPool:     d.UseTaskPool,
		ThreadCount:     d.ThreadCount,
		LayoutIsBlocked: d.LayoutIsBlocked,
	}
	if len(d.Compliance) > 0 {
		nd.Compliance = append([]float64(nil), d.Compliance...)
	}

	for i := 0; i < n; i++ {
		j := int(plan[i])
		x, y, z := d.Pos.Read(i)
		nd.Pos.Write(j, x, y, z)
		vx, vy, vz := d.Vel.Read(i)
		nd.Vel.Write(j, vx, vy, vz)
		px, py, pz := d.Pred.Read(i)
		nd.Pred.Write(j, px, py, pz)

		nd.InvMass[j] = d.InvMass[i]
		nd.AttachWeight[j] = d.AttachWeight[i]
		nd.AttachTarget[3*j], nd.AttachTarget[3*j+1], nd.AttachTarget[3*j+2] =
			d.AttachTarget[3*i], d.AttachTarget[3*i+1], d.AttachTarget[3*i+2]
	}

	if d.LayoutIsBlocked {
		nd.BlockedScratch = d.BlockedScratch // reallocated lazily by the stepper if size changed
	}

	return nd
}

func emptySoA(n int) *store.SoAView { return store.NewSoA(n) }

// ResizeEdgeArrays grows or shrinks Lambda/AlphaTilde (and Compliance, if
// set) to newEdgeCount, filling any new entries with zero (spec.md 4.8
// step 4: "resize per-edge lambda to the new edge count").
func (d *Data) ResizeEdgeArrays(newEdgeCount int) {
	d.Lambda = resizeFloat64(d.Lambda, newEdgeCount)
	d.AlphaTilde = resizeFloat64(d.AlphaTilde, newEdgeCount)
	if len(d.Compliance) > 0 {
		d.Compliance = resizeFloat64(d.Compliance, newEdgeCount)
	}
}

func resizeFloat64(arr []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, arr)
	return out
}
