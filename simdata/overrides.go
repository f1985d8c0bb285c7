// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simdata

import "github.com/cpmech/hinacloth/command"

// ApplyOverrides applies every small (non-structural) command in cmds in
// order (spec.md 4.6, 4.8 step 3). Malformed commands (unknown parameter
// name, out-of-range field region, unrecognized field/operator name) are
// silently skipped, matching spec.md 7's "a malformed command is skipped,
// not a failure".
func (d *Data) ApplyOverrides(cmds []command.Command) {
	for _, c := range cmds {
		switch c.Tag {
		case command.SetParam:
			applyScalarParam(&d.Params, c.Name, c.Value)

		case command.EnableOperator:
			d.setOperator(c.Operator, true)

		case command.DisableOperator:
			d.setOperator(c.Operator, false)

		case command.SetFieldRegion:
			d.applyFieldRegion(c)

		case command.Custom:
			// no-op: Custom commands have no core-defined semantics.

		default:
			// structural tags reach here only if a caller misuses the
			// API directly instead of going through the Shell; ignored.
		}
	}
}

func (d *Data) setOperator(name string, enabled bool) {
	switch name {
	case "attachment":
		d.Operators.Attachment = enabled
	case "bending":
		d.Operators.Bending = enabled
	case "distance":
		// no observable effect (spec.md 9)
	default:
		// unrecognized operator id: skipped
	}
}

func (d *Data) applyFieldRegion(c command.Command) {
	switch c.FieldName {
	case "inv_mass":
		writeScalarRegion(d.InvMass, c.Start, c.Count, c.Vec[0])

	case "attach_w":
		writeScalarRegion(d.AttachWeight, c.Start, c.Count, c.Vec[0])

	case "attach_target":
		writeVec3Region(d.AttachTarget, c.Start, c.Count, c.Vec)

	case "distance_compliance_edge":
		edgeCount := len(d.Lambda)
		if len(d.Compliance) != edgeCount {
			d.Compliance = make([]float64, edgeCount)
		}
		writeScalarRegion(d.Compliance, c.Start, c.Count, c.Vec[0])

	default:
		// unrecognized field name: skipped
	}
}

func writeScalarRegion(arr []float64, start, count int, value float64) {
	end := start + count
	if start < 0 || count < 0 || end > len(arr) {
		return // out-of-range region: skipped
	}
	for i := start; i < end; i++ {
		arr[i] = value
	}
}

func writeVec3Region(flat []float64, start, count int, value [3]float64) {
	end := start + count
	if start < 0 || count < 0 || 3*end > len(flat) {
		return
	}
	for i := start; i < end; i++ {
		flat[3*i], flat[3*i+1], flat[3*i+2] = value[0], value[1], value[2]
	}
}
