// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simdata owns the Solver's mutable per-node and per-edge state:
// positions, velocities, predicted positions, inverse masses, XPBD
// multipliers, per-edge compliance, attachment targets, and operator
// enable flags (spec.md 3, 4.6).
package simdata

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/hinacloth/cook"
	"github.com/cpmech/hinacloth/store"
)

// Operators holds the two toggleable operator enable bits. Distance is
// always on and has no bit (spec.md 9: EnableOperator("distance") /
// DisableOperator("distance") have no observable effect).
type Operators struct {
	Attachment bool
	Bending    bool
}

// Params holds the scalar solver parameters recognized by SetParam
// (spec.md 6), plus the supplemental warm-start decay factor (SPEC_FULL 4.6).
type Params struct {
	GravityX, GravityY, GravityZ float64
	DistanceCompliance           float64
	Iterations                   int
	Substeps                     int
	Damping                      float64
	WarmstartDecay               float64 // 0 => reset lambda to zero each substep (default)
}

// Data is the mutable per-node/per-edge state owned by a Solver.
type Data struct {
	NodeCount int

	// canonical per-node storage; always SoA regardless of chosen layout
	// (spec.md 4.7: the Blocked buffer is scratch, packed/unpacked around
	// canonical SoA each substep).
	Pos  *store.SoAView
	Vel  *store.SoAView
	Pred *store.SoAView

	InvMass      []float64
	AttachWeight []float64
	AttachTarget []float64 // flat x,y,z per node

	Lambda     []float64 // per-edge XPBD multiplier
	Compliance []float64 // per-edge override; empty if unset (spec.md 9)
	AlphaTilde []float64 // derived: compliance/dt^2, recomputed every sweep

	Params    Params
	Operators Operators

	// execution flags, set once at create/choose time
	UseSIMD     bool
	UseTaskPool bool
	ThreadCount int
	LayoutIsBlocked bool

	// scratch Blocked buffer, allocated only when LayoutIsBlocked
	BlockedScratch *store.BlockedView
}

// posAliases and velAliases are the alias groups for the position and
// velocity fields, the same ones cook uses.
var (
	posAliases = []string{"position", "pos", "positions"}
	velAliases = []string{"velocity", "vel", "velocities"}
)

// New constructs Data from a validated BuildDesc and a cooked Model,
// per spec.md 4.6.
func New(desc cook.BuildDesc, model *cook.Model) (*Data, error) {
	n := model.NodeCount
	d := &Data{
		NodeCount:    n,
		Pos:          store.NewSoA(n),
		Vel:          store.NewSoA(n),
		Pred:         store.NewSoA(n),
		InvMass:      make([]float64, n),
		AttachWeight: make([]float64, n),
		AttachTarget: make([]float64, 3*n),
		Lambda:       make([]float64, model.EdgeCount()),
		AlphaTilde:   make([]float64, model.EdgeCount()),
	}

	pos, ok := desc.Field(posAliases...)
	if !ok {
		return nil, chk.Err("simdata: New requires a validated BuildDesc with a position field\n")
	}
	for i := 0; i < n; i++ {
		x, y, z := pos.Data[3*i], pos.Data[3*i+1], pos.Data[3*i+2]
		d.Pos.Write(i, x, y, z)
		d.AttachTarget[3*i], d.AttachTarget[3*i+1], d.AttachTarget[3*i+2] = x, y, z
	}

	if vel, ok := desc.Field(velAliases...); ok {
		for i := 0; i < n; i++ {
			d.Vel.Write(i, vel.Data[3*i], vel.Data[3*i+1], vel.Data[3*i+2])
		}
	}

	for i := 0; i < n; i++ {
		d.InvMass[i] = 1
	}

	d.Params.Substeps = desc.Policy.Solve.Substeps
	d.Params.Iterations = desc.Policy.Solve.Iterations
	d.Params.Damping = desc.Policy.Solve.Damping
	if d.Params.Substeps == 0 {
		d.Params.Substeps = 1
	}
	if d.Params.Iterations == 0 {
		d.Params.Iterations = 1
	}
	for name, val := range paramsFrom(desc) {
		applyScalarParam(&d.Params, name, val)
	}
	if d.Params.Substeps == 0 {
		d.Params.Substeps = 1 // spec.md 8: substeps=0 is coerced to 1
	}

	return d, nil
}

func paramsFrom(desc cook.BuildDesc) map[string]float64 {
	out := make(map[string]float64, len(desc.Params))
	for _, p := range desc.Params {
		out[p.Name] = p.Value
	}
	return out
}

// applyScalarParam sets the parameter named name if it is one of the
// recognized scalars of spec.md 6 or warmstart_decay, and reports whether
// the name was recognized.
func applyScalarParam(p *Params, name string, value float64) bool {
	switch name {
	case "gravity_x":
		p.GravityX = value
	case "gravity_y":
		p.GravityY = value
	case "gravity_z":
		p.GravityZ = value
	case "distance_compliance":
		p.DistanceCompliance = value
	case "iterations":
		p.Iterations = int(value)
	case "substeps":
		p.Substeps = int(value)
	case "damping":
		p.Damping = value
	case "warmstart_decay":
		p.WarmstartDecay = value
	default:
		return false // unknown parameters are ignored
	}
	return true
}

// RecomputeAlphaTilde recomputes the per-edge alpha-tilde array from
// per-edge compliance (or the global scalar) and the current substep dt,
// per spec.md 3 invariant 7 and 9's compliance-precedence rule: per-edge
// overrides the scalar when the edge array exists and has the right
// length, otherwise the scalar is used uniformly.
func (d *Data) RecomputeAlphaTilde(dtSub float64, edgeCount int) {
	dt2 := dtSub * dtSub
	usePerEdge := len(d.Compliance) == edgeCount
	for e := 0; e < edgeCount; e++ {
		c := d.Params.DistanceCompliance
		if usePerEdge {
			c = d.Compliance[e]
		}
		if dt2 > 0 {
			d.AlphaTilde[e] = c / dt2
		} else {
			// dtSub == 0: treat as a hard constraint (alpha_tilde = 0) rather
			// than a 0/0 blow-up, so a zero-duration step stays a no-op
			// (spec.md 8) instead of corrupting lambda/positions with Inf*0.
			d.AlphaTilde[e] = 0
		}
	}
}

// ResetOrDecayLambda applies the warm-start policy at the start of a
// substep: resets Lambda to zero (the default), or multiplies it by
// Params.WarmstartDecay when that is set (SPEC_FULL 4.6, spec.md 9).
func (d *Data) ResetOrDecayLambda() {
	if d.Params.WarmstartDecay <= 0 {
		for i := range d.Lambda {
			d.Lambda[i] = 0
		}
		return
	}
	for i := range d.Lambda {
		d.Lambda[i] *= d.Params.WarmstartDecay
	}
}
