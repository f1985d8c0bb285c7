// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cook

import (
	"errors"
	"math"

	"github.com/cpmech/gosl/chk"
)

// ErrUnsupported marks a validation failure caused by an unrecognized
// relation tag in strict mode (spec.md 7's Unsupported status), as
// distinct from a malformed/out-of-range BuildDesc (ValidationFailed).
// Callers should check errors.Is(err, ErrUnsupported).
var ErrUnsupported = errors.New("cook: unsupported relation tag in strict mode")

var knownRelationTags = map[string]bool{
	"edges":      true,
	"bend_pairs": true,
}

// Validate checks a BuildDesc against spec.md 4.8's validate rules. It
// returns a non-nil error (ValidationFailed at the API boundary) on the
// first violation found; malformed individual commands are a Shell concern,
// not a cooking concern, and are handled there.
func Validate(d BuildDesc) error {
	pos, ok := d.Field("position", "pos", "positions")
	if !ok {
		return chk.Err("validate: state must contain a \"position\" field\n")
	}
	if pos.Components != 3 {
		return chk.Err("validate: \"position\" must be a vec3 field, got %d components\n", pos.Components)
	}
	if uint32(pos.Count) != d.Topology.NodeCount {
		return chk.Err("validate: \"position\" count %d does not match node_count %d\n", pos.Count, d.Topology.NodeCount)
	}
	if !allFinite(pos.Data) {
		return chk.Err("validate: \"position\" contains NaN or Inf values\n")
	}

	if vel, ok := d.Field("velocity", "vel", "velocities"); ok {
		if vel.Components != 3 {
			return chk.Err("validate: \"velocity\" must be a vec3 field, got %d components\n", vel.Components)
		}
		if vel.Count != pos.Count {
			return chk.Err("validate: \"velocity\" count %d does not match \"position\" count %d\n", vel.Count, pos.Count)
		}
		if !allFinite(vel.Data) {
			return chk.Err("validate: \"velocity\" contains NaN or Inf values\n")
		}
	}

	nodeCount := int(d.Topology.NodeCount)
	if d.Validate == Strict {
		for _, rel := range d.Topology.Relations {
			if !knownRelationTags[rel.Tag] {
				return errors.Join(ErrUnsupported, chk.Err("validate: unrecognized relation tag %q\n", rel.Tag))
			}
		}
	}
	if edges, ok := d.Relation("edges"); ok {
		if edges.Arity != 2 {
			return chk.Err("validate: \"edges\" relation must have arity 2, got %d\n", edges.Arity)
		}
		if err := validateIndices(edges.Indices, nodeCount, d.Validate); err != nil {
			return err
		}
		if d.Validate == Strict {
			if err := checkNoDuplicateUndirectedEdges(edges.Indices); err != nil {
				return err
			}
		}
	}
	if quads, ok := d.Relation("bend_pairs"); ok {
		if quads.Arity != 4 {
			return chk.Err("validate: \"bend_pairs\" relation must have arity 4, got %d\n", quads.Arity)
		}
		if err := validateIndices(quads.Indices, nodeCount, d.Validate); err != nil {
			return err
		}
	}

	if d.Policy.Solve.Substeps < 0 {
		return chk.Err("validate: substeps must be >= 0, got %d\n", d.Policy.Solve.Substeps)
	}
	if d.Policy.Solve.Iterations < 0 {
		return chk.Err("validate: iterations must be >= 0, got %d\n", d.Policy.Solve.Iterations)
	}

	return nil
}

func allFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func validateIndices(indices []int32, nodeCount int, level ValidateLevel) error {
	if level != Strict {
		return nil
	}
	for _, idx := range indices {
		if idx < 0 || int(idx) >= nodeCount {
			return chk.Err("validate: relation index %d out of range [0, %d)\n", idx, nodeCount)
		}
	}
	return nil
}

func checkNoDuplicateUndirectedEdges(indices []int32) error {
	seen := make(map[[2]int32]bool, len(indices)/2)
	for e := 0; e+1 < len(indices); e += 2 {
		a, b := indices[e], indices[e+1]
		if a > b {
			a, b = b, a
		}
		key := [2]int32{a, b}
		if seen[key] {
			return chk.Err("validate: duplicate undirected edge (%d, %d)\n", a, b)
		}
		seen[key] = true
	}
	return nil
}
