// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hinacloth

import (
	"github.com/cpmech/hinacloth/backend"
	"github.com/cpmech/hinacloth/telemetry"
)

// Chosen is the resolved (backend, layout, thread count) for a Solver,
// re-exported from package backend (spec.md 6).
type Chosen = backend.Chosen

// Capability is one (backend, layout, name) triple this build supports,
// re-exported from package backend (spec.md 6).
type Capability = backend.Capability

// TelemetryFrame is the out-parameter shape of TelemetryQueryFrame,
// re-exported from package telemetry (spec.md 6).
type TelemetryFrame = telemetry.Frame

// TelemetryQueryFrame returns the current telemetry snapshot (spec.md 6).
func (s *Solver) TelemetryQueryFrame() TelemetryFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return telemetry.Frame{
		StepDurationMs:        float64(s.lastStep.Duration) / 1e6,
		AvgResidual:           s.lastStep.Residual,
		LastRebuildDurationMs: s.lastRebuildDurationMs,
		AvgRebuildDurationMs:  s.avgRebuildDurationMs,
		AppliedCommands:       s.appliedCommands,
		StructuralRebuilds:    s.structuralRebuilds,
		SubstepsUsed:          s.lastStep.Substeps,
		IterationsUsed:        s.lastStep.Iterations,
	}
}

// QueryChosen returns the resolved (backend, layout, thread count) this
// Solver committed to at create time (spec.md 6).
func (s *Solver) QueryChosen() Chosen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chosen
}

// CopyPositions writes interleaved xyz triples into dst, reflecting the
// internal x array exactly (not the predicted p array), per spec.md 6, 8's
// round-trip law. If maxCount == 0 it copies all nodes; otherwise up to
// maxCount. It returns the number of nodes written.
func (s *Solver) CopyPositions(dst []float64, maxCount int) (written int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return 0
	}

	n := s.data.NodeCount
	if maxCount > 0 && maxCount < n {
		n = maxCount
	}
	if len(dst) < 3*n {
		n = len(dst) / 3
	}
	for i := 0; i < n; i++ {
		x, y, z := s.data.Pos.Read(i)
		dst[3*i], dst[3*i+1], dst[3*i+2] = x, y, z
	}
	return n
}

// EnumerateCapabilities writes up to len(out) (backend, layout, name)
// triples this build supports into out and returns the total number
// available, so the caller can call it once with a nil/short slice to
// size a buffer and once more to fill it (spec.md 6).
func EnumerateCapabilities(out []Capability) int {
	caps := backend.Capabilities()
	copy(out, caps)
	return len(caps)
}
