// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cook

// StructuralTag identifies one of the four structural command kinds that
// trigger a rebuild (spec.md 6).
type StructuralTag int

const (
	AddNodes StructuralTag = iota
	RemoveNodes
	AddRelations
	RemoveRelations
)

// StructuralCommand is a structural edit queued against the Shell. Per the
// Open Question recorded in spec.md 9 ("a future revision must specify the
// payload layout"), this release carries no payload: a rebuild driven by a
// batch of StructuralCommands re-cooks the current Model unchanged and
// emits an identity remap, exactly matching the documented source
// behavior.
type StructuralCommand struct {
	Tag StructuralTag
}

// RemapPlan maps old node id -> new node id; a bijection on [0, NodeCount)
// per spec.md 3 invariant 6.
type RemapPlan []int32

// Rebuild takes the current Model and a batch of structural commands and
// produces a new Model plus a RemapPlan, per spec.md 4.5's structural
// rebuild step. In this release the structural payloads are empty, so the
// new Model is a clone of the old one and the remap is the identity,
// documented consistently with the Open Question in spec.md 9.
func Rebuild(model *Model, _ []StructuralCommand) (*Model, RemapPlan, error) {
	newModel := model.clone()

	plan := make(RemapPlan, newModel.NodeCount)
	for i := range plan {
		plan[i] = int32(i)
	}
	newModel.NodeRemap = append([]int32(nil), plan...)

	return newModel, plan, nil
}
