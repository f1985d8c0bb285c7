// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

// Attachment pulls each non-pinned node with a positive attachment weight
// toward its attachment target, per spec.md 4.2.3. weight and target are
// per-node arrays (target is a flat x,y,z triple per node); invMass == 0
// marks a pinned node, which is never moved by this kernel.
func Attachment(p View, weight []float64, target []float64, invMass []float64) {
	n := len(weight)
	for i := 0; i < n; i++ {
		w := weight[i]
		if w <= 0 || invMass[i] == 0 {
			continue
		}
		if w > 1 {
			w = 1
		}
		px, py, pz := p.Read(i)
		tx, ty, tz := target[3*i], target[3*i+1], target[3*i+2]
		p.Write(i, px+w*(tx-px), py+w*(ty-py), pz+w*(tz-pz))
	}
}
