// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

// BlockedView is the AoSoA layout: nodes are partitioned into ceil(N/B)
// blocks of B lanes; within one block the layout is
// [x0..xB-1, y0..yB-1, z0..zB-1]; blocks are contiguous in memory. Tail
// lanes beyond N are zero-padded so SIMD-width kernels can always read a
// full block.
type BlockedView struct {
	Data      []float64
	B         int
	n         int
	numBlocks int
}

// NewBlocked allocates a zeroed BlockedView of n nodes with block size b.
func NewBlocked(n, b int) *BlockedView {
	if b <= 0 {
		b = 8
	}
	numBlocks := (n + b - 1) / b
	return &BlockedView{
		Data:      make([]float64, numBlocks*3*b),
		B:         b,
		n:         n,
		numBlocks: numBlocks,
	}
}

// Len implements View.
func (v *BlockedView) Len() int { return v.n }

// NumBlocks returns ceil(N/B).
func (v *BlockedView) NumBlocks() int { return v.numBlocks }

func (v *BlockedView) offsets(i int) (blockBase, lane int) {
	block := i / v.B
	lane = i % v.B
	blockBase = block * 3 * v.B
	return
}

// Read implements View.
func (v *BlockedView) Read(i int) (x, y, z float64) {
	base, lane := v.offsets(i)
	return v.Data[base+lane], v.Data[base+v.B+lane], v.Data[base+2*v.B+lane]
}

// Write implements View.
func (v *BlockedView) Write(i int, x, y, z float64) {
	base, lane := v.offsets(i)
	v.Data[base+lane] = x
	v.Data[base+v.B+lane] = y
	v.Data[base+2*v.B+lane] = z
}

// Accumulate implements View.
func (v *BlockedView) Accumulate(i int, dx, dy, dz float64) {
	base, lane := v.offsets(i)
	v.Data[base+lane] += dx
	v.Data[base+v.B+lane] += dy
	v.Data[base+2*v.B+lane] += dz
}

// PackSoAToBlocked copies three SoA arrays of length n into a Blocked
// buffer of block size b, zero-padding the tail of the last block.
func PackSoAToBlocked(x, y, z []float64, n, b int, out *BlockedView) {
	for i := 0; i < n; i++ {
		out.Write(i, x[i], y[i], z[i])
	}
	// zero-pad tail lanes beyond n within the last block
	last := out.numBlocks * b
	for i := n; i < last; i++ {
		out.Write(i, 0, 0, 0)
	}
}

// UnpackBlockedToSoA copies a Blocked buffer back into three SoA arrays of
// length n (the inverse of PackSoAToBlocked, restricted to the non-padded
// portion).
func UnpackBlockedToSoA(in *BlockedView, x, y, z []float64, n int) {
	for i := 0; i < n; i++ {
		x[i], y[i], z[i] = in.Read(i)
	}
}
