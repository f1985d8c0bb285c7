// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stepper implements the per-frame state machine of spec.md 4.7:
// integrate (prediction) -> apply operators -> project constraints ->
// finalize velocities, looped over substeps.
package stepper

import (
	"math"
	"time"

	"github.com/cpmech/hinacloth/backend"
	"github.com/cpmech/hinacloth/cook"
	"github.com/cpmech/hinacloth/kernel"
	"github.com/cpmech/hinacloth/sched"
	"github.com/cpmech/hinacloth/simdata"
	"github.com/cpmech/hinacloth/store"
	"github.com/cpmech/hinacloth/telemetry"
)

// simdWideLaneWidth is the lane count used by the "SIMD-wide" distance
// kernel variant (spec.md 9: block size B is typically 8 or 16).
func simdWideLaneWidth(blockSize int) int {
	if blockSize <= 0 {
		return 8
	}
	return blockSize
}

// Step advances data by dt, following spec.md 4.7's pseudocode exactly,
// including the residual computation and non-finite skipping of spec.md
// 4.7/7. It always succeeds (spec.md 4.7's "Failure semantics of step").
func Step(data *simdata.Data, model *cook.Model, chosen backend.Chosen, dt float64) telemetry.StepStats {
	start := time.Now()

	substeps := data.Params.Substeps
	if substeps <= 0 {
		substeps = 1
	}
	iterations := data.Params.Iterations
	dtSub := dt / float64(substeps)

	gx, gy, gz := data.Params.GravityX, data.Params.GravityY, data.Params.GravityZ
	n := data.NodeCount

	for s := 0; s < substeps; s++ {
		predict(data, dtSub, gx, gy, gz, n)

		if data.Operators.Attachment {
			kernel.Attachment(data.Pred, data.AttachWeight, data.AttachTarget, data.InvMass)
		}

		data.ResetOrDecayLambda()
		data.RecomputeAlphaTilde(dtSub, model.EdgeCount())

		projectDistance(data, model, chosen, iterations)

		if data.Operators.Bending && model.QuadCount() > 0 {
			for it := 0; it < iterations; it++ {
				kernel.BendingDihedral(data.Pred, model.BendQuads, model.BendRestAngle)
			}
		}

		finalize(data, dtSub, n)
	}

	residual := computeResidual(data, model)

	return telemetry.StepStats{
		Duration:   time.Since(start),
		Residual:   residual,
		Substeps:   substeps,
		Iterations: iterations,
	}
}

func predict(data *simdata.Data, dtSub, gx, gy, gz float64, n int) {
	for i := 0; i < n; i++ {
		if data.InvMass[i] > 0 {
			vx, vy, vz := data.Vel.Read(i)
			vx += dtSub * gx
			vy += dtSub * gy
			vz += dtSub * gz
			data.Vel.Write(i, vx, vy, vz)

			x, y, z := data.Pos.Read(i)
			data.Pred.Write(i, x+dtSub*vx, y+dtSub*vy, z+dtSub*vz)
		} else {
			x, y, z := data.Pos.Read(i)
			data.Pred.Write(i, x, y, z)
			data.Vel.Write(i, 0, 0, 0)
		}
	}
}

func finalize(data *simdata.Data, dtSub float64, n int) {
	damp := data.Params.Damping
	if damp < 0 {
		damp = 0
	} else if damp > 1 {
		damp = 1
	}
	mul := 1 - damp

	for i := 0; i < n; i++ {
		if data.InvMass[i] > 0 {
			x, y, z := data.Pos.Read(i)
			px, py, pz := data.Pred.Read(i)
			if dtSub != 0 {
				data.Vel.Write(i, (px-x)/dtSub*mul, (py-y)/dtSub*mul, (pz-z)/dtSub*mul)
			} else {
				data.Vel.Write(i, 0, 0, 0)
			}
			data.Pos.Write(i, px, py, pz)
		} else {
			data.Vel.Write(i, 0, 0, 0)
			x, y, z := data.Pos.Read(i)
			data.Pred.Write(i, x, y, z)
		}
	}
}

func projectDistance(data *simdata.Data, model *cook.Model, chosen backend.Chosen, iterations int) {
	if chosen.Layout == store.Blocked {
		if data.BlockedScratch == nil || data.BlockedScratch.Len() != data.NodeCount {
			data.BlockedScratch = store.NewBlocked(data.NodeCount, model.BlockSize)
		}
		store.PackSoAToBlocked(data.Pred.X, data.Pred.Y, data.Pred.Z, data.NodeCount, model.BlockSize, data.BlockedScratch)

		project := func(lo, hi int) {
			for it := 0; it < iterations; it++ {
				kernel.DistanceBlocked(data.BlockedScratch, model.Edges, model.RestLen, data.InvMass, data.Lambda, data.AlphaTilde, lo, hi, simdWideLaneWidth(model.BlockSize))
			}
		}
		runIslands(model, chosen, project)

		store.UnpackBlockedToSoA(data.BlockedScratch, data.Pred.X, data.Pred.Y, data.Pred.Z, data.NodeCount)
		return
	}

	project := func(lo, hi int) {
		if chosen.Backend == backend.SIMDWide {
			for it := 0; it < iterations; it++ {
				kernel.DistanceBlocked(data.Pred, model.Edges, model.RestLen, data.InvMass, data.Lambda, data.AlphaTilde, lo, hi, simdWideLaneWidth(model.BlockSize))
			}
			return
		}
		for it := 0; it < iterations; it++ {
			kernel.DistanceScalar(data.Pred, model.Edges, model.RestLen, data.InvMass, data.Lambda, data.AlphaTilde, lo, hi)
		}
	}
	runIslands(model, chosen, project)
}

func runIslands(model *cook.Model, chosen backend.Chosen, project sched.Project) {
	islands := make([]sched.IslandRange, len(model.Islands))
	copy(islands, model.Islands)

	if chosen.Backend == backend.TaskPool && len(islands) > 1 {
		sched.Parallel(islands, chosen.Threads, project)
		return
	}
	sched.Sequential(islands, project)
}

// computeResidual is the average over edges of |len(edge) - rest|,
// skipping degenerate or non-finite entries (spec.md 4.7).
func computeResidual(data *simdata.Data, model *cook.Model) float64 {
	sum := 0.0
	count := 0
	for e := 0; e < model.EdgeCount(); e++ {
		a := int(model.Edges[2*e])
		b := int(model.Edges[2*e+1])
		ax, ay, az := data.Pos.Read(a)
		bx, by, bz := data.Pos.Read(b)
		dx, dy, dz := bx-ax, by-ay, bz-az
		l := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if math.IsNaN(l) || math.IsInf(l, 0) {
			continue
		}
		if l < 1e-8 { // degenerate edge, same threshold as the distance kernel
			continue
		}
		diff := math.Abs(l - model.RestLen[e])
		if math.IsNaN(diff) || math.IsInf(diff, 0) {
			continue
		}
		sum += diff
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
