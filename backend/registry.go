// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package backend enumerates the (Backend, Layout) capability pairs this
// build supports and resolves a Policy request into a concrete Chosen
// configuration, per spec.md 4.4. CPU instruction-set bits are probed once
// at process start (via golang.org/x/sys/cpu) and cached; the chosen kernel
// variant is then fixed for a Solver's lifetime, matching the Design Notes
// in spec.md 9.
package backend

import (
	"sync"

	"golang.org/x/sys/cpu"

	"github.com/cpmech/hinacloth/store"
)

// Backend identifies one of the closed set of execution backends.
type Backend int

const (
	Scalar Backend = iota
	SIMDWide
	TaskPool
	GPU // always unsupported by this build; request yields NoBackend
)

func (b Backend) String() string {
	switch b {
	case Scalar:
		return "Scalar"
	case SIMDWide:
		return "SIMD-wide"
	case TaskPool:
		return "Task-pool"
	case GPU:
		return "GPU"
	default:
		return "Unknown"
	}
}

// BackendRequest extends Backend with an Auto sentinel for policy input.
type BackendRequest int

const (
	ReqAuto BackendRequest = iota
	ReqScalar
	ReqSIMDWide
	ReqTaskPool
	ReqGPU
)

// LayoutRequest extends store.Layout with an Auto sentinel for policy input.
type LayoutRequest int

const (
	LayoutAuto LayoutRequest = iota
	LayoutSoA
	LayoutAoS
	LayoutBlocked
)

// Policy is the subset of BuildDesc.Policy.Exec that backend resolution
// consumes.
type Policy struct {
	Backend BackendRequest
	Layout  LayoutRequest
	Threads int // 0 or negative => library default
}

// Chosen is the resolved (backend, layout, thread count) for a Solver.
type Chosen struct {
	Backend Backend
	Layout  store.Layout
	Threads int
}

// Capability is one (backend, layout, name) triple this build supports,
// for enumerate_capabilities (spec.md 6).
type Capability struct {
	Backend Backend
	Layout  store.Layout
	Name    string
}

var (
	probeOnce   sync.Once
	simdPresent bool
)

func probeCPU() {
	probeOnce.Do(func() {
		simdPresent = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD
	})
}

// SIMDAvailable reports whether this build and CPU support the SIMD-wide
// backend. Queried once and cached (spec.md 9).
func SIMDAvailable() bool {
	probeCPU()
	return simdPresent
}

// Capabilities enumerates every (backend, layout) pair available on this
// build and CPU.
func Capabilities() []Capability {
	caps := []Capability{
		{Scalar, store.SoA, "distance"},
		{Scalar, store.AoS, "distance"},
		{Scalar, store.SoA, "bending"},
		{Scalar, store.SoA, "attachment"},
		{TaskPool, store.SoA, "distance"},
		{TaskPool, store.Blocked, "distance"},
	}
	if SIMDAvailable() {
		caps = append(caps,
			Capability{SIMDWide, store.Blocked, "distance"},
			Capability{SIMDWide, store.SoA, "distance"},
		)
	}
	return caps
}

// available reports whether (b, l) appears in Capabilities().
func available(b Backend, l store.Layout) bool {
	for _, c := range Capabilities() {
		if c.Backend == b && c.Layout == l {
			return true
		}
	}
	return false
}

// Choose resolves a Policy into a Chosen configuration following spec.md
// 4.4's rules exactly. ok is false if the resolved (backend, layout) pair
// is not an available capability, or if GPU is requested (the caller
// should surface Status NoBackend).
func Choose(p Policy) (chosen Chosen, ok bool) {
	var b Backend
	switch p.Backend {
	case ReqAuto:
		if SIMDAvailable() {
			b = SIMDWide
		} else {
			b = Scalar
		}
	case ReqScalar:
		b = Scalar
	case ReqSIMDWide:
		b = SIMDWide
	case ReqTaskPool:
		b = TaskPool
	case ReqGPU:
		return Chosen{}, false
	default:
		b = Scalar
	}

	var l store.Layout
	switch p.Layout {
	case LayoutAuto:
		if b == SIMDWide {
			l = store.Blocked
		} else {
			l = store.SoA
		}
	case LayoutSoA:
		l = store.SoA
	case LayoutAoS:
		l = store.AoS
	case LayoutBlocked:
		l = store.Blocked
	default:
		l = store.SoA
	}

	if !available(b, l) {
		return Chosen{}, false
	}

	threads := p.Threads
	if threads <= 0 {
		threads = 0 // 0 means "library default"; resolved lazily by sched
	}

	return Chosen{Backend: b, Layout: l, Threads: threads}, true
}
