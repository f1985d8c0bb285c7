// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simdata

import (
	"testing"

	"github.com/cpmech/hinacloth/backend"
	"github.com/cpmech/hinacloth/command"
	"github.com/cpmech/hinacloth/cook"
)

func twoNodeDesc() cook.BuildDesc {
	return cook.BuildDesc{
		State: []cook.FieldView{
			{Name: "position", Components: 3, Data: []float64{0, 0, 0, 1, 0, 0}, Count: 2},
		},
		Topology: cook.TopologyIn{
			NodeCount: 2,
			Relations: []cook.RelationView{
				{Tag: "edges", Arity: 2, Indices: []int32{0, 1}, Count: 1},
			},
		},
		Policy: cook.Policy{
			Exec:  cook.ExecPolicy{Layout: backend.LayoutAuto, Backend: backend.ReqAuto},
			Solve: cook.SolvePolicy{Substeps: 1, Iterations: 4},
		},
		Params:   []cook.Param{{Name: "distance_compliance", Value: 1e-4}},
		Validate: cook.Strict,
	}
}

func mustModel(t *testing.T, d cook.BuildDesc) *cook.Model {
	t.Helper()
	cook.ClearCache()
	if err := cook.Validate(d); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	m, err := cook.Cook(d)
	if err != nil {
		t.Fatalf("Cook: %v", err)
	}
	return m
}

func TestNewSeedsPositionsAndDefaults(t *testing.T) {
	d := twoNodeDesc()
	m := mustModel(t, d)

	data, err := New(d, m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	x, y, z := data.Pos.Read(1)
	if x != 1 || y != 0 || z != 0 {
		t.Fatalf("position not seeded: got (%v,%v,%v)", x, y, z)
	}
	for i := 0; i < data.NodeCount; i++ {
		if data.InvMass[i] != 1 {
			t.Fatalf("default inv_mass should be 1, got %v at %d", data.InvMass[i], i)
		}
	}
	if data.Params.DistanceCompliance != 1e-4 {
		t.Fatalf("distance_compliance param not applied: got %v", data.Params.DistanceCompliance)
	}
	if data.Params.Iterations != 4 {
		t.Fatalf("Policy.Solve.Iterations not wired into Params: got %v, want 4", data.Params.Iterations)
	}
}

func TestNewCoercesZeroSubstepsToOne(t *testing.T) {
	d := twoNodeDesc()
	d.Policy.Solve.Substeps = 0
	m := mustModel(t, d)
	data, err := New(d, m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if data.Params.Substeps != 1 {
		t.Fatalf("substeps=0 should coerce to 1, got %d", data.Params.Substeps)
	}
}

func TestApplyOverridesSetFieldRegionInvMass(t *testing.T) {
	d := twoNodeDesc()
	m := mustModel(t, d)
	data, err := New(d, m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cmds := []command.Command{
		{Tag: command.SetFieldRegion, FieldName: "inv_mass", Start: 0, Count: 1, Vec: [3]float64{0, 0, 0}},
	}
	data.ApplyOverrides(cmds)
	if data.InvMass[0] != 0 {
		t.Fatalf("inv_mass override did not apply: got %v", data.InvMass[0])
	}
	if data.InvMass[1] != 1 {
		t.Fatalf("override should be scoped to [0,1): node 1 changed to %v", data.InvMass[1])
	}
}

func TestApplyOverridesSkipsOutOfRangeRegion(t *testing.T) {
	d := twoNodeDesc()
	m := mustModel(t, d)
	data, err := New(d, m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cmds := []command.Command{
		{Tag: command.SetFieldRegion, FieldName: "inv_mass", Start: 1, Count: 5}, // out of range
	}
	data.ApplyOverrides(cmds)
	if data.InvMass[0] != 1 || data.InvMass[1] != 1 {
		t.Fatalf("out-of-range region should be skipped entirely, got %v", data.InvMass)
	}
}

func TestApplyOverridesEnableDisableOperator(t *testing.T) {
	d := twoNodeDesc()
	m := mustModel(t, d)
	data, err := New(d, m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	data.ApplyOverrides([]command.Command{{Tag: command.EnableOperator, Operator: "bending"}})
	if !data.Operators.Bending {
		t.Fatalf("EnableOperator(bending) did not take effect")
	}
	data.ApplyOverrides([]command.Command{{Tag: command.DisableOperator, Operator: "bending"}})
	if data.Operators.Bending {
		t.Fatalf("DisableOperator(bending) did not take effect")
	}
}

func TestApplyOverridesDistanceOperatorIsNoop(t *testing.T) {
	d := twoNodeDesc()
	m := mustModel(t, d)
	data, err := New(d, m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := *data // shallow copy of the struct value for comparison of scalar fields
	data.ApplyOverrides([]command.Command{{Tag: command.DisableOperator, Operator: "distance"}})
	if data.Operators != before.Operators {
		t.Fatalf("toggling the distance operator must have no observable effect")
	}
}

func TestRecomputeAlphaTildePerEdgePrecedence(t *testing.T) {
	d := twoNodeDesc()
	m := mustModel(t, d)
	data, err := New(d, m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Only the global scalar is set: per-edge compliance array is absent.
	data.RecomputeAlphaTilde(0.01, m.EdgeCount())
	globalAlpha := data.AlphaTilde[0]
	wantGlobal := data.Params.DistanceCompliance / (0.01 * 0.01)
	if globalAlpha != wantGlobal {
		t.Fatalf("global alpha_tilde: got %v, want %v", globalAlpha, wantGlobal)
	}

	// Fully populate the per-edge array: it should now take precedence.
	data.Compliance = []float64{5e-3}
	data.RecomputeAlphaTilde(0.01, m.EdgeCount())
	wantPerEdge := 5e-3 / (0.01 * 0.01)
	if data.AlphaTilde[0] != wantPerEdge {
		t.Fatalf("per-edge alpha_tilde: got %v, want %v", data.AlphaTilde[0], wantPerEdge)
	}
}

func TestResetOrDecayLambda(t *testing.T) {
	d := twoNodeDesc()
	m := mustModel(t, d)
	data, err := New(d, m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data.Lambda[0] = 10

	data.ResetOrDecayLambda() // default: reset to zero
	if data.Lambda[0] != 0 {
		t.Fatalf("default warmstart policy should reset lambda to 0, got %v", data.Lambda[0])
	}

	data.Lambda[0] = 10
	data.Params.WarmstartDecay = 0.5
	data.ResetOrDecayLambda()
	if data.Lambda[0] != 5 {
		t.Fatalf("warmstart decay 0.5 should halve lambda, got %v", data.Lambda[0])
	}
}
