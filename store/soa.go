// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

// SoAView is the Structure-of-Arrays layout: three independent slices, each
// of length N.
type SoAView struct {
	X, Y, Z []float64
}

// NewSoA allocates a zeroed SoAView of n nodes.
func NewSoA(n int) *SoAView {
	return &SoAView{X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n)}
}

// Len implements View.
func (v *SoAView) Len() int { return len(v.X) }

// Read implements View.
func (v *SoAView) Read(i int) (x, y, z float64) { return v.X[i], v.Y[i], v.Z[i] }

// Write implements View.
func (v *SoAView) Write(i int, x, y, z float64) { v.X[i] = x; v.Y[i] = y; v.Z[i] = z }

// Accumulate implements View.
func (v *SoAView) Accumulate(i int, dx, dy, dz float64) {
	v.X[i] += dx
	v.Y[i] += dy
	v.Z[i] += dz
}

// CopyFrom overwrites v with the contents of src, which must have the same
// length.
func (v *SoAView) CopyFrom(src *SoAView) {
	copy(v.X, src.X)
	copy(v.Y, src.Y)
	copy(v.Z, src.Z)
}
