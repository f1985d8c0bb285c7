// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import "testing"

func exerciseView(t *testing.T, v View, n int) {
	t.Helper()
	if v.Len() != n {
		t.Fatalf("Len: got %d, want %d", v.Len(), n)
	}
	for i := 0; i < n; i++ {
		v.Write(i, float64(i), float64(i)*2, float64(i)*3)
	}
	for i := 0; i < n; i++ {
		x, y, z := v.Read(i)
		if x != float64(i) || y != float64(i)*2 || z != float64(i)*3 {
			t.Fatalf("Read(%d): got (%v,%v,%v)", i, x, y, z)
		}
	}
	v.Accumulate(0, 1, 1, 1)
	x, y, z := v.Read(0)
	if x != 1 || y != 1 || z != 1 {
		t.Fatalf("Accumulate(0): got (%v,%v,%v), want (1,1,1)", x, y, z)
	}
}

func TestSoAView(t *testing.T) {
	exerciseView(t, NewSoA(5), 5)
}

func TestAoSView(t *testing.T) {
	exerciseView(t, NewAoS(5, 3), 5)
	exerciseView(t, NewAoS(5, 4), 5) // padded stride still satisfies View
}

func TestAoSViewCoercesShortStride(t *testing.T) {
	v := NewAoS(3, 1)
	if v.Stride != 3 {
		t.Fatalf("stride < 3 should be coerced to 3, got %d", v.Stride)
	}
}

func TestBlockedView(t *testing.T) {
	exerciseView(t, NewBlocked(5, 2), 5)
	exerciseView(t, NewBlocked(9, 4), 9) // tail block only partially full
}

func TestPackUnpackBlockedRoundTrip(t *testing.T) {
	n, b := 11, 4
	x := make([]float64, n)
	y := make([]float64, n)
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i], y[i], z[i] = float64(i), float64(i)+0.5, -float64(i)
	}

	blocked := NewBlocked(n, b)
	PackSoAToBlocked(x, y, z, n, b, blocked)

	ox := make([]float64, n)
	oy := make([]float64, n)
	oz := make([]float64, n)
	UnpackBlockedToSoA(blocked, ox, oy, oz, n)

	for i := 0; i < n; i++ {
		if ox[i] != x[i] || oy[i] != y[i] || oz[i] != z[i] {
			t.Fatalf("round trip mismatch at %d: got (%v,%v,%v), want (%v,%v,%v)",
				i, ox[i], oy[i], oz[i], x[i], y[i], z[i])
		}
	}
}

func TestPackZeroPadsTailLanes(t *testing.T) {
	n, b := 5, 4 // last block has 3 padding lanes (8 slots, 5 used)
	x := make([]float64, n)
	y := make([]float64, n)
	z := make([]float64, n)
	for i := range x {
		x[i], y[i], z[i] = 1, 2, 3
	}

	blocked := NewBlocked(n, b)
	PackSoAToBlocked(x, y, z, n, b, blocked)

	for i := n; i < blocked.NumBlocks()*b; i++ {
		px, py, pz := blocked.Read(i)
		if px != 0 || py != 0 || pz != 0 {
			t.Fatalf("tail lane %d not zero-padded: got (%v,%v,%v)", i, px, py, pz)
		}
	}
}

func TestLayoutString(t *testing.T) {
	cases := map[Layout]string{SoA: "SoA", AoS: "AoS", Blocked: "Blocked"}
	for l, want := range cases {
		if got := l.String(); got != want {
			t.Fatalf("Layout(%d).String(): got %q, want %q", l, got, want)
		}
	}
}

func TestSoACopyFrom(t *testing.T) {
	src := NewSoA(3)
	src.Write(0, 1, 2, 3)
	src.Write(1, 4, 5, 6)
	dst := NewSoA(3)
	dst.CopyFrom(src)
	for i := 0; i < 2; i++ {
		x1, y1, z1 := src.Read(i)
		x2, y2, z2 := dst.Read(i)
		if x1 != x2 || y1 != y2 || z1 != z2 {
			t.Fatalf("CopyFrom mismatch at %d", i)
		}
	}
}
