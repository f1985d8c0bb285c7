// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"
	"testing"

	"github.com/cpmech/hinacloth/store"
)

func TestDistanceScalarPullsTowardRestLength(t *testing.T) {
	p := store.NewSoA(2)
	p.Write(0, 0, 0, 0)
	p.Write(1, 2, 0, 0) // stretched: rest length is 1

	edges := []int32{0, 1}
	restLen := []float64{1}
	invMass := []float64{1, 1}
	lambda := []float64{0}
	alphaTilde := []float64{0} // zero compliance: infinitely stiff

	for i := 0; i < 20; i++ {
		DistanceScalar(p, edges, restLen, invMass, lambda, alphaTilde, 0, 1)
	}

	x0, _, _ := p.Read(0)
	x1, _, _ := p.Read(1)
	l := x1 - x0
	if math.Abs(l-1) > 1e-6 {
		t.Fatalf("after convergence expected length ~1, got %v", l)
	}
}

func TestDistanceScalarRespectsPinnedNode(t *testing.T) {
	p := store.NewSoA(2)
	p.Write(0, 0, 0, 0)
	p.Write(1, 2, 0, 0)

	edges := []int32{0, 1}
	restLen := []float64{1}
	invMass := []float64{0, 1} // node 0 pinned
	lambda := []float64{0}
	alphaTilde := []float64{0}

	for i := 0; i < 20; i++ {
		DistanceScalar(p, edges, restLen, invMass, lambda, alphaTilde, 0, 1)
	}

	x0, y0, z0 := p.Read(0)
	if x0 != 0 || y0 != 0 || z0 != 0 {
		t.Fatalf("pinned node moved: got (%v,%v,%v)", x0, y0, z0)
	}
}

func TestDistanceScalarSkipsDegenerateEdge(t *testing.T) {
	p := store.NewSoA(2)
	p.Write(0, 0, 0, 0)
	p.Write(1, 0, 0, 0) // coincident nodes: degenerate

	edges := []int32{0, 1}
	restLen := []float64{1}
	invMass := []float64{1, 1}
	lambda := []float64{0}
	alphaTilde := []float64{0}

	DistanceScalar(p, edges, restLen, invMass, lambda, alphaTilde, 0, 1)

	x0, y0, z0 := p.Read(0)
	x1, y1, z1 := p.Read(1)
	if x0 != 0 || y0 != 0 || z0 != 0 || x1 != 0 || y1 != 0 || z1 != 0 {
		t.Fatalf("degenerate edge should not move either node")
	}
	if lambda[0] != 0 {
		t.Fatalf("degenerate edge should not accumulate lambda")
	}
}

func TestDistanceBlockedMatchesDistanceScalar(t *testing.T) {
	// Two independent edges, exercised once via the scalar path and once
	// via the blocked (lane-width 2) path from the same initial state;
	// both should converge to the same rest length.
	restLen := []float64{1, 1}
	invMass := []float64{1, 1, 1, 1}
	edges := []int32{0, 1, 2, 3}

	runScalar := func() *store.SoAView {
		p := store.NewSoA(4)
		p.Write(0, 0, 0, 0)
		p.Write(1, 3, 0, 0)
		p.Write(2, 0, 1, 0)
		p.Write(3, 3, 1, 0)
		lambda := []float64{0, 0}
		alphaTilde := []float64{0, 0}
		for i := 0; i < 30; i++ {
			DistanceScalar(p, edges, restLen, invMass, lambda, alphaTilde, 0, 2)
		}
		return p
	}

	runBlocked := func() *store.SoAView {
		p := store.NewSoA(4)
		p.Write(0, 0, 0, 0)
		p.Write(1, 3, 0, 0)
		p.Write(2, 0, 1, 0)
		p.Write(3, 3, 1, 0)
		lambda := []float64{0, 0}
		alphaTilde := []float64{0, 0}
		for i := 0; i < 30; i++ {
			DistanceBlocked(p, edges, restLen, invMass, lambda, alphaTilde, 0, 2, 2)
		}
		return p
	}

	ps := runScalar()
	pb := runBlocked()
	for i := 0; i < 4; i++ {
		xs, ys, zs := ps.Read(i)
		xb, yb, zb := pb.Read(i)
		if math.Abs(xs-xb) > 1e-6 || math.Abs(ys-yb) > 1e-6 || math.Abs(zs-zb) > 1e-6 {
			t.Fatalf("node %d: scalar (%v,%v,%v) vs blocked (%v,%v,%v)", i, xs, ys, zs, xb, yb, zb)
		}
	}
}

func TestInvSqrtRefinedIsAccurate(t *testing.T) {
	for _, x := range []float64{1, 4, 9, 100, 0.25, 2.0} {
		got := invSqrtRefined(x)
		want := 1.0 / math.Sqrt(x)
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("invSqrtRefined(%v): got %v, want ~%v", x, got, want)
		}
	}
}
