// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hinacloth

import "github.com/cpmech/hinacloth/stepper"

// Step advances the simulation by dt, looping substeps internally
// (spec.md 4.7). The simulation step itself has no failure mode, so Step
// returns Ok on a Solver from a successful Create; it returns Busy when
// another call holds the Solver and InvalidArgs after Destroy.
func (s *Solver) Step(dt float64) Status {
	if !s.mu.TryLock() {
		return Busy
	}
	defer s.mu.Unlock()

	if s.model == nil || s.data == nil {
		return InvalidArgs
	}

	s.state = stateStepping
	defer func() { s.state = stateCreated }()

	s.lastStep = stepper.Step(s.data, s.model, s.chosen, dt)
	return Ok
}
