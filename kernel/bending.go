// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "math"

const (
	bendNormalEps = 1e-12
	bendAngleEps  = 1e-6
	bendGain      = 0.1 // k in spec.md 4.2.2 step 6
)

// BendingDihedral runs one sweep of the simplified dihedral bending
// constraint over quads (flat i0,i1,i2,i3 per spec.md 4.2.2). quads and
// restAngle must have matching lengths (len(quads) == 4*len(restAngle)).
func BendingDihedral(p View, quads []int32, restAngle []float64) {
	for q := 0; q < len(restAngle); q++ {
		i0 := int(quads[4*q])
		i1 := int(quads[4*q+1])
		i2 := int(quads[4*q+2])
		i3 := int(quads[4*q+3])
		theta0 := restAngle[q]

		p0x, p0y, p0z := p.Read(i0)
		p1x, p1y, p1z := p.Read(i1)
		p2x, p2y, p2z := p.Read(i2)
		p3x, p3y, p3z := p.Read(i3)

		e0x, e0y, e0z := p1x-p0x, p1y-p0y, p1z-p0z
		e1x, e1y, e1z := p2x-p0x, p2y-p0y, p2z-p0z
		e2x, e2y, e2z := p3x-p0x, p3y-p0y, p3z-p0z

		n1x, n1y, n1z := cross(e0x, e0y, e0z, e1x, e1y, e1z)
		n2x, n2y, n2z := cross(e0x, e0y, e0z, e2x, e2y, e2z)

		n1Sq := n1x*n1x + n1y*n1y + n1z*n1z
		n2Sq := n2x*n2x + n2y*n2y + n2z*n2z
		if n1Sq < bendNormalEps*bendNormalEps || n2Sq < bendNormalEps*bendNormalEps {
			continue
		}
		n1Len := math.Sqrt(n1Sq)
		n2Len := math.Sqrt(n2Sq)

		cosTheta := (n1x*n2x + n1y*n2y + n1z*n2z) / (n1Len * n2Len)
		if cosTheta > 1 {
			cosTheta = 1
		} else if cosTheta < -1 {
			cosTheta = -1
		}
		theta := math.Acos(cosTheta)

		errv := theta - theta0
		if math.Abs(errv) < bendAngleEps {
			continue
		}

		move := bendGain * errv
		n1ux, n1uy, n1uz := n1x/n1Len, n1y/n1Len, n1z/n1Len
		n2ux, n2uy, n2uz := n2x/n2Len, n2y/n2Len, n2z/n2Len

		p.Accumulate(i2, -move*n1ux, -move*n1uy, -move*n1uz)
		p.Accumulate(i3, move*n2ux, move*n2uy, move*n2uz)
	}
}

func cross(ax, ay, az, bx, by, bz float64) (x, y, z float64) {
	return ay*bz - az*by, az*bx - ax*bz, ax*by - ay*bx
}
