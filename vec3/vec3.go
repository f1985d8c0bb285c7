// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vec3 provides a small Vec3 value type and the handful of
// operations cooking and testing code needs off the hot simulation path.
// Hot-path kernels operate on raw float64 triples via store.View instead of
// allocating Vec3 values; see store.View.
package vec3

import "math"

// Vec3 is a 3-component vector.
type Vec3 struct {
	X, Y, Z float64
}

// New returns a Vec3 from three components.
func New(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Add returns a+b.
func Add(a, b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a-b.
func Sub(a, b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns a*s.
func Scale(a Vec3, s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

// Dot returns the dot product of a and b.
func Dot(a, b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns a×b.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// LenSq returns the squared length of a.
func LenSq(a Vec3) float64 { return Dot(a, a) }

// Len returns the length of a.
func Len(a Vec3) float64 { return math.Sqrt(LenSq(a)) }

// Normalized returns a scaled to unit length; the zero vector is returned
// unchanged if its length is below eps.
func Normalized(a Vec3, eps float64) Vec3 {
	l := Len(a)
	if l < eps {
		return a
	}
	return Scale(a, 1.0/l)
}

// IsFinite reports whether all three components are finite (no NaN/Inf).
func IsFinite(a Vec3) bool {
	return !math.IsNaN(a.X) && !math.IsInf(a.X, 0) &&
		!math.IsNaN(a.Y) && !math.IsInf(a.Y, 0) &&
		!math.IsNaN(a.Z) && !math.IsInf(a.Z, 0)
}
