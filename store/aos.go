// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

// AoSView is the Array-of-Structures layout: one interleaved slice of N
// triples with a configurable stride (>= 3 floats per node, letting callers
// reserve trailing lanes for e.g. a padding word without changing the
// kernel-visible contract).
type AoSView struct {
	Data   []float64
	Stride int
	n      int
}

// NewAoS allocates a zeroed AoSView of n nodes with the given stride
// (stride < 3 is coerced to 3).
func NewAoS(n, stride int) *AoSView {
	if stride < 3 {
		stride = 3
	}
	return &AoSView{Data: make([]float64, n*stride), Stride: stride, n: n}
}

// Len implements View.
func (v *AoSView) Len() int { return v.n }

// Read implements View.
func (v *AoSView) Read(i int) (x, y, z float64) {
	base := i * v.Stride
	return v.Data[base], v.Data[base+1], v.Data[base+2]
}

// Write implements View.
func (v *AoSView) Write(i int, x, y, z float64) {
	base := i * v.Stride
	v.Data[base], v.Data[base+1], v.Data[base+2] = x, y, z
}

// Accumulate implements View.
func (v *AoSView) Accumulate(i int, dx, dy, dz float64) {
	base := i * v.Stride
	v.Data[base] += dx
	v.Data[base+1] += dy
	v.Data[base+2] += dz
}
