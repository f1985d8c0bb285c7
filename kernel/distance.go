// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kernel implements the pure constraint-projection sweeps: distance
// (XPBD stretch), bending (dihedral), and attachment. Each kernel reads and
// writes predicted positions in place through a store.View, reads inverse
// masses, and (distance only) reads/writes the per-edge Lagrange multiplier
// array. No kernel allocates.
package kernel

import "math"

// degenerateLen is the edge-length threshold below which a distance
// constraint is skipped as degenerate (spec: 1e-8).
const degenerateLen = 1e-8

// View is the minimal read/write/accumulate surface a kernel needs; it is
// satisfied by store.View without importing package store here (kernels
// stay a leaf package that any layout can depend on).
type View interface {
	Read(i int) (x, y, z float64)
	Write(i int, x, y, z float64)
	Accumulate(i int, dx, dy, dz float64)
}

// DistanceScalar runs one Gauss-Seidel sweep of the XPBD distance
// (stretch) constraint over edges[lo:hi) (edges is a flat a0,b0,a1,b1,...
// array), following spec.md 4.2.1 steps 1-8.
func DistanceScalar(p View, edges []int32, restLen []float64, invMass []float64, lambda []float64, alphaTilde []float64, lo, hi int) {
	for e := lo; e < hi; e++ {
		a := int(edges[2*e])
		b := int(edges[2*e+1])
		r := restLen[e]

		pax, pay, paz := p.Read(a)
		pbx, pby, pbz := p.Read(b)
		dx, dy, dz := pbx-pax, pby-pay, pbz-paz
		l := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if l < degenerateLen {
			continue
		}

		c := l - r
		wa := invMass[a]
		wb := invMass[b]
		at := alphaTilde[e]
		denom := wa + wb + at
		if denom <= 0 {
			continue
		}

		dlambda := -(c + at*lambda[e]) / denom
		s := dlambda / l
		cx, cy, cz := s*dx, s*dy, s*dz

		if wa > 0 {
			p.Accumulate(a, -wa*cx, -wa*cy, -wa*cz)
		}
		if wb > 0 {
			p.Accumulate(b, wb*cx, wb*cy, wb*cz)
		}
		lambda[e] += dlambda
	}
}

// DistanceBlocked runs the same projection as DistanceScalar but is
// intended to be called with a store.BlockedView: the lane-width arithmetic
// lives inside View.Read/Write/Accumulate (block/lane index split), so the
// sweep itself is identical to the scalar path. This is the Go
// substitution for the spec's SIMD-wide gather/scatter variant: no SIMD
// intrinsics exist in portable Go, so "SIMD-wide" is realized as scalar
// arithmetic over contiguous lane-blocked memory, processed W=B lanes at a
// time via the reciprocal-sqrt-with-refinement idiom below, with any tail
// of fewer than W edges falling back to the plain scalar loop.
func DistanceBlocked(p View, edges []int32, restLen []float64, invMass []float64, lambda []float64, alphaTilde []float64, lo, hi, laneWidth int) {
	w := laneWidth
	if w <= 0 {
		w = 1
	}
	e := lo
	for ; e+w <= hi; e += w {
		for lane := 0; lane < w; lane++ {
			distanceOneEdge(p, edges, restLen, invMass, lambda, alphaTilde, e+lane)
		}
	}
	for ; e < hi; e++ {
		distanceOneEdge(p, edges, restLen, invMass, lambda, alphaTilde, e)
	}
}

func distanceOneEdge(p View, edges []int32, restLen []float64, invMass []float64, lambda []float64, alphaTilde []float64, e int) {
	a := int(edges[2*e])
	b := int(edges[2*e+1])
	r := restLen[e]

	pax, pay, paz := p.Read(a)
	pbx, pby, pbz := p.Read(b)
	dx, dy, dz := pbx-pax, pby-pay, pbz-paz
	lsq := dx*dx + dy*dy + dz*dz
	if lsq < degenerateLen*degenerateLen {
		return
	}

	// fast inverse sqrt (Newton-Raphson single refinement), then recover l.
	invL := invSqrtRefined(lsq)
	l := 1.0 / invL

	c := l - r
	wa := invMass[a]
	wb := invMass[b]
	at := alphaTilde[e]
	denom := wa + wb + at
	if denom <= 0 {
		return
	}

	dlambda := -(c + at*lambda[e]) / denom
	s := dlambda * invL
	cx, cy, cz := s*dx, s*dy, s*dz

	if wa > 0 {
		p.Accumulate(a, -wa*cx, -wa*cy, -wa*cz)
	}
	if wb > 0 {
		p.Accumulate(b, wb*cx, wb*cy, wb*cz)
	}
	lambda[e] += dlambda
}

// invSqrtRefined computes 1/sqrt(x) via the standard library sqrt followed
// by one Newton-Raphson refinement step, matching the "reciprocal square
// root with one Newton-Raphson refinement" kernel named in spec.md 4.2.1.
func invSqrtRefined(x float64) float64 {
	y := 1.0 / math.Sqrt(x)
	// one Newton-Raphson step: y = y * (1.5 - 0.5*x*y*y)
	y = y * (1.5 - 0.5*x*y*y)
	return y
}
