// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hinacloth

import (
	"errors"

	"github.com/cpmech/hinacloth/backend"
	"github.com/cpmech/hinacloth/cook"
	"github.com/cpmech/hinacloth/simdata"
	"github.com/cpmech/hinacloth/store"
)

// Create validates desc, cooks it into a Model, constructs Data, and
// resolves the execution backend, returning a ready Solver (spec.md 6, 7).
// On failure it returns (nil, Status), never a non-nil Solver paired with
// a non-Ok Status.
func Create(desc cook.BuildDesc) (*Solver, Status) {
	if err := cook.Validate(desc); err != nil {
		if errors.Is(err, cook.ErrUnsupported) {
			return nil, Unsupported
		}
		return nil, ValidationFailed
	}

	model, err := cook.Cook(desc)
	if err != nil {
		return nil, ValidationFailed
	}

	policy := backend.Policy{
		Backend: desc.Policy.Exec.Backend,
		Layout:  desc.Policy.Exec.Layout,
		Threads: desc.Policy.Exec.Threads,
	}
	chosen, ok := backend.Choose(policy)
	if !ok {
		return nil, NoBackend
	}

	data, err := simdata.New(desc, model)
	if err != nil {
		return nil, ValidationFailed
	}
	data.UseSIMD = chosen.Backend == backend.SIMDWide
	data.UseTaskPool = chosen.Backend == backend.TaskPool
	data.ThreadCount = chosen.Threads
	data.LayoutIsBlocked = chosen.Layout == store.Blocked

	return &Solver{
		model:  model,
		data:   data,
		chosen: chosen,
		state:  stateCreated,
	}, Ok
}

// Destroy releases s's resources. hinacloth has no external handles (no
// files, no OS resources) so Destroy is a documentation marker for the
// Solver's end of life rather than an action that must run; it is provided
// so callers that mirror the C API 1:1 have a symmetrical call. Using s
// after Destroy is a caller bug (spec.md 8 property 2): the core's duty is
// only not to leak, which a garbage-collected Go type satisfies without
// help.
func Destroy(s *Solver) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = nil
	s.data = nil
}
