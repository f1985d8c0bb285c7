// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hinacloth

import (
	"sync"

	"github.com/cpmech/hinacloth/backend"
	"github.com/cpmech/hinacloth/command"
	"github.com/cpmech/hinacloth/cook"
	"github.com/cpmech/hinacloth/simdata"
	"github.com/cpmech/hinacloth/telemetry"
)

// Phase selects which command queue push_command/flush_commands targets
// (spec.md 6, re-exported from package command for API ergonomics).
type Phase = command.Phase

const (
	BeforeFrame = command.BeforeFrame
	AfterSolve  = command.AfterSolve
)

// Command is one queued edit (spec.md 6, re-exported from package command).
type Command = command.Command

// lifecycleState is the Solver's private Created/Applying/Stepping state
// machine (spec.md 4.8).
type lifecycleState int

const (
	stateCreated lifecycleState = iota
	stateApplying
	stateStepping
)

// Solver is the opaque handle of spec.md 3/6: it owns a Model, a Data, the
// before-frame and after-solve command queues, a telemetry record, and
// applied-command/structural-rebuild counters. The zero value is not a
// valid Solver; use Create.
type Solver struct {
	mu    sync.Mutex // guards state + both queues; step/flush are not re-entrant (spec.md 5)
	state lifecycleState

	model  *cook.Model
	data   *simdata.Data
	chosen backend.Chosen

	beforeFrame []command.Command
	afterSolve  []command.Command

	appliedCommands    uint64
	structuralRebuilds uint64

	lastStep             telemetry.StepStats
	lastRebuildDurationMs float64
	avgRebuildDurationMs  float64
}
