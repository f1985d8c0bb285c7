// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cook validates a BuildDesc and compiles it into an immutable
// Model: edges, rest lengths, bend quads, islands, and a node remap. It
// also owns the content-addressed cooking cache (spec.md 4.5).
package cook

import "github.com/cpmech/hinacloth/backend"

// ScalarType tags the element type of a FieldView (spec.md 6).
type ScalarType int

const (
	F32 ScalarType = iota
	I32
	U32
)

// FieldView is one named array in StateInit: a position/velocity-like
// per-node field. Components is 1..4 (e.g. 3 for a Vec3 field); Data is a
// flat row-major array of length Count*Components.
type FieldView struct {
	Name       string
	Type       ScalarType
	Components int
	Data       []float64
	Count      int
}

// RelationView is one named arity-N relation in TopologyIn: edges (arity 2)
// or bend_pairs (arity 4). Indices is flat, length Count*Arity.
type RelationView struct {
	Tag     string
	Arity   int
	Indices []int32
	Count   int
}

// TopologyIn aggregates the node count and relations of a BuildDesc.
type TopologyIn struct {
	NodeCount uint32
	Relations []RelationView
}

// Param is one (name, value) entry of BuildDesc.Parameters. The current
// core only consumes F32-typed scalars (spec.md 9), so Param is a plain
// named float64.
type Param struct {
	Name  string
	Value float64
}

// ExecPolicy is the execution half of Policy (spec.md 6).
type ExecPolicy struct {
	Layout        backend.LayoutRequest
	Backend       backend.BackendRequest
	Threads       int
	Deterministic bool
	Telemetry     bool
}

// SolvePolicy is the solve half of Policy (spec.md 6).
type SolvePolicy struct {
	Substeps   int
	Iterations int
	Damping    float64
	Stepper    string // opaque stepper hint; current core ignores it
}

// Policy aggregates ExecPolicy and SolvePolicy.
type Policy struct {
	Exec  ExecPolicy
	Solve SolvePolicy
}

// ValidateLevel selects strict or tolerant BuildDesc validation.
type ValidateLevel int

const (
	Strict ValidateLevel = iota
	Tolerant
)

// PackOptions controls block-size selection for the Blocked layout.
type PackOptions struct {
	LazyPack  bool
	BlockSize int
}

// SpaceDesc, OperatorsDecl, and EventsScript are opaque metadata descriptors
// per spec.md 6: the current core treats them as metadata only, but they
// are still part of the BuildDesc shape (and contribute to the cooking
// cache key) because a future core may give them semantics.
type SpaceDesc map[string]string
type OperatorsDecl map[string]bool
type EventsScript []string

// BuildDesc is the full input contract for Cook/Validate: State,
// Parameters, Topology, Policy, plus Space/Operators/Events metadata,
// ValidateLevel, and PackOptions (spec.md 6).
type BuildDesc struct {
	State     []FieldView
	Params    []Param
	Topology  TopologyIn
	Policy    Policy
	Space     SpaceDesc
	Operators OperatorsDecl
	Events    EventsScript
	Validate  ValidateLevel
	Pack      PackOptions
}

// Field looks up a StateInit field by any of the given aliases, returning
// the first match.
func (d *BuildDesc) Field(aliases ...string) (FieldView, bool) {
	for _, alias := range aliases {
		for _, f := range d.State {
			if f.Name == alias {
				return f, true
			}
		}
	}
	return FieldView{}, false
}

// Relation looks up a TopologyIn relation by tag.
func (d *BuildDesc) Relation(tag string) (RelationView, bool) {
	for _, r := range d.Topology.Relations {
		if r.Tag == tag {
			return r, true
		}
	}
	return RelationView{}, false
}

// Param looks up a Parameters entry by name.
func (d *BuildDesc) Param(name string) (float64, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return 0, false
}
