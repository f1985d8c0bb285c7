// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package telemetry holds the out-parameter shapes read back by
// telemetry_query_frame (spec.md 6) and the rolling-average rule for
// structural-rebuild duration (spec.md 9).
package telemetry

import (
	"time"

	"github.com/cpmech/gosl/utl"
)

// StepStats is what one call to stepper.Step reports back to the Shell.
type StepStats struct {
	Duration   time.Duration
	Residual   float64
	Substeps   int
	Iterations int
}

// Frame is the TelemetryFrame out-parameter of telemetry_query_frame.
type Frame struct {
	StepDurationMs       float64
	AvgResidual          float64
	LastRebuildDurationMs float64
	AvgRebuildDurationMs  float64
	AppliedCommands       uint64
	StructuralRebuilds    uint64
	SubstepsUsed          int
	IterationsUsed        int
}

// String renders a one-line diagnostic summary of the frame: durations in
// milliseconds, the residual in exponent notation, and the two counters.
func (f Frame) String() string {
	return utl.Sf("step=%.3fms  residual=%.6e  rebuild(last=%.3fms avg=%.3fms)  cmds=%d  rebuilds=%d",
		f.StepDurationMs, f.AvgResidual, f.LastRebuildDurationMs, f.AvgRebuildDurationMs,
		f.AppliedCommands, f.StructuralRebuilds)
}

// rollingAlpha is the weight given to the previous rolling average in
// UpdateRebuildAverage, per spec.md 9: avg = 0.9*avg_prev + 0.1*new.
const rollingAlpha = 0.9

// UpdateRebuildAverage folds a newly observed rebuild duration into the
// existing rolling average, matching spec.md 9's documented formula exactly
// so independent implementations produce matching numbers.
func UpdateRebuildAverage(prevAvgMs, newMs float64) float64 {
	return rollingAlpha*prevAvgMs + (1-rollingAlpha)*newMs
}
