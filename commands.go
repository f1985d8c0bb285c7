// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hinacloth

import (
	"time"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/hinacloth/command"
	"github.com/cpmech/hinacloth/cook"
	"github.com/cpmech/hinacloth/telemetry"
)

// PushCommand appends c to the queue for phase. It always succeeds
// (spec.md 4.8): a malformed command is only ever rejected at flush time,
// and even then only skipped, never a failure.
func (s *Solver) PushCommand(phase Phase, c Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch phase {
	case BeforeFrame:
		s.beforeFrame = append(s.beforeFrame, c)
	case AfterSolve:
		s.afterSolve = append(s.afterSolve, c)
	}
}

// FlushCommands drains the queue for phase, applies small commands, and,
// if any structural commands were queued, rebuilds the Model and remaps
// Data, per spec.md 4.8.
func (s *Solver) FlushCommands(phase Phase) Status {
	if !s.mu.TryLock() {
		return Busy
	}
	defer s.mu.Unlock()

	if s.model == nil || s.data == nil {
		return InvalidArgs
	}

	s.state = stateApplying
	defer func() { s.state = stateCreated }()

	var queue []command.Command
	switch phase {
	case BeforeFrame:
		queue, s.beforeFrame = s.beforeFrame, nil
	case AfterSolve:
		queue, s.afterSolve = s.afterSolve, nil
	default:
		return InvalidArgs
	}
	if len(queue) == 0 {
		return Ok
	}

	var small []command.Command
	var structural []command.Command
	for _, c := range queue {
		if c.Tag.Structural() {
			structural = append(structural, c)
		} else {
			small = append(small, c)
		}
	}

	s.data.ApplyOverrides(small)

	if len(structural) > 0 {
		structCmds := make([]cook.StructuralCommand, len(structural))
		for i, c := range structural {
			structCmds[i] = structuralTagOf(c)
		}

		rebuildStart := time.Now()
		newModel, plan, err := cook.Rebuild(s.model, structCmds)
		if err != nil {
			chk.Panic("hinacloth: cooking rebuild failed on a previously valid Model: %v", err)
		}
		newData := s.data.ApplyRemap(plan)
		newData.ResizeEdgeArrays(newModel.EdgeCount())

		s.model = newModel
		s.data = newData
		s.structuralRebuilds++

		rebuildMs := float64(time.Since(rebuildStart)) / float64(time.Millisecond)
		s.lastRebuildDurationMs = rebuildMs
		if s.structuralRebuilds == 1 {
			s.avgRebuildDurationMs = rebuildMs
		} else {
			s.avgRebuildDurationMs = telemetry.UpdateRebuildAverage(s.avgRebuildDurationMs, rebuildMs)
		}
	}

	s.appliedCommands += uint64(len(queue))
	return Ok
}

func structuralTagOf(c command.Command) cook.StructuralCommand {
	switch c.Tag {
	case command.AddNodes:
		return cook.StructuralCommand{Tag: cook.AddNodes}
	case command.RemoveNodes:
		return cook.StructuralCommand{Tag: cook.RemoveNodes}
	case command.AddRelations:
		return cook.StructuralCommand{Tag: cook.AddRelations}
	case command.RemoveRelations:
		return cook.StructuralCommand{Tag: cook.RemoveRelations}
	default:
		return cook.StructuralCommand{}
	}
}
